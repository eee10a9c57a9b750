/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package scheduler

import (
	corev1 "k8s.io/api/core/v1"
)

// PrioritySort orders pods by descending spec.Priority; pods with no
// priority set are treated as priority 0.
type PrioritySort struct{}

func (PrioritySort) Less(a, b *corev1.Pod) bool {
	return podPriority(a) > podPriority(b)
}

func podPriority(p *corev1.Pod) int32 {
	if p.Spec.Priority != nil {
		return *p.Spec.Priority
	}
	return 0
}

// SortPods orders pods in place by sorter, stable so pods of equal
// priority keep their original relative order.
func SortPods(sorter QueueSort, pods []*corev1.Pod) {
	stableSort(pods, sorter.Less)
}

func stableSort(pods []*corev1.Pod, less func(a, b *corev1.Pod) bool) {
	// insertion sort: N is always small (one Apply batch), and stability
	// matters more than asymptotic complexity here.
	for i := 1; i < len(pods); i++ {
		for j := i; j > 0 && less(pods[j], pods[j-1]); j-- {
			pods[j], pods[j-1] = pods[j-1], pods[j]
		}
	}
}
