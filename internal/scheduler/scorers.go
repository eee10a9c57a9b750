/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package scheduler

import (
	corev1 "k8s.io/api/core/v1"

	"github.com/fleetoss/fleetd/internal/state"
)

// LeastPods scores a node by how few pods it already carries: fewer pods,
// higher score. Raw value is the current pod count, inverted on normalize
// so the emptiest node wins.
type LeastPods struct{}

func (LeastPods) Name() string { return "LeastPods" }

func (LeastPods) Score(_ *corev1.Pod, node *state.NodeState) (uint64, error) {
	if node.HostInfo == nil || node.HostInfo.System == nil {
		return 0, nil
	}
	return uint64(len(node.HostInfo.System.Pods)), nil
}

func (LeastPods) NormalizeScores(raw map[string]uint64) {
	invertedNormalizeScores(raw)
}

// LeastAllocated scores a node by how much spare capacity it has after
// accounting for the pod's own request: more headroom, higher score. The
// final score is the mean of the cpu and memory sub-scores (equal
// weight 1 each).
type LeastAllocated struct{}

func (LeastAllocated) Name() string { return "LeastAllocated" }

func (LeastAllocated) Score(pod *corev1.Pod, node *state.NodeState) (uint64, error) {
	req := GetPodRequests(&pod.Spec)
	allocCPU, allocMem := nodeAllocatable(node)
	reqCPU, reqMem := nodeRequested(node)

	cpuScore := leastRequestedScore(reqCPU+req.CPUMillis, allocCPU)
	memScore := leastRequestedScore(reqMem+req.MemBytes, allocMem)

	const cpuWeight, memWeight = 1, 1
	return (cpuWeight*cpuScore + memWeight*memScore) / (cpuWeight + memWeight), nil
}

func (LeastAllocated) NormalizeScores(raw map[string]uint64) {
	normalizeScores(raw)
}

// leastRequestedScore scores a single resource dimension: capacity fully
// free scores MaxNodeScore, fully (or over-)committed scores 0.
func leastRequestedScore(requested, capacity uint64) uint64 {
	if capacity == 0 {
		return 0
	}
	if requested > capacity {
		return 0
	}
	return (capacity - requested) * MaxNodeScore / capacity
}
