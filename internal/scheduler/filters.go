/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package scheduler

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"

	"github.com/fleetoss/fleetd/internal/state"
)

// NodeNameFilter admits a node only when the pod either has no
// spec.NodeName set, or it names this node exactly.
type NodeNameFilter struct{}

func (NodeNameFilter) Name() string { return "NodeNameFilter" }

func (NodeNameFilter) Filter(pod *corev1.Pod, node *state.NodeState) error {
	if pod.Spec.NodeName == "" || pod.Spec.NodeName == node.NodeName {
		return nil
	}
	return fmt.Errorf("unschedulable and unresolvable")
}

// NodeSelectorFilter requires every spec.nodeSelector entry to match a
// node label exactly.
type NodeSelectorFilter struct{}

func (NodeSelectorFilter) Name() string { return "NodeSelectorFilter" }

func (NodeSelectorFilter) Filter(pod *corev1.Pod, node *state.NodeState) error {
	if len(pod.Spec.NodeSelector) == 0 {
		return nil
	}
	labels := NodeLabels(node)
	for k, v := range pod.Spec.NodeSelector {
		if labels[k] != v {
			return fmt.Errorf("node selector %s:%s did not match", k, v)
		}
	}
	return nil
}

// UnschedulableFilter admits only nodes currently reporting Healthy.
type UnschedulableFilter struct{}

func (UnschedulableFilter) Name() string { return "UnschedulableFilter" }

func (UnschedulableFilter) Filter(_ *corev1.Pod, node *state.NodeState) error {
	if node.Status != state.StatusHealthy {
		return fmt.Errorf("node is unschedulable")
	}
	return nil
}

// NodeLabels derives the synthetic labels the scheduler matches
// nodeSelector entries against, from a node's last reported platform info:
// skate.io/arch, skate.io/os, skate.io/hostname.
func NodeLabels(n *state.NodeState) map[string]string {
	if n.HostInfo == nil {
		return nil
	}
	return map[string]string{
		"skate.io/arch":     n.HostInfo.Platform.Arch,
		"skate.io/os":       n.HostInfo.Platform.OS,
		"skate.io/hostname": n.HostInfo.Hostname,
	}
}

// NodeResourcesFit is both a PreFilter (which never rejects: requests are
// already typed quantities once the manifest decodes, and unset requests
// fall back to defaults) and a Filter (rejects a node whose remaining
// capacity can't cover the pod's request on either dimension).
type NodeResourcesFit struct{}

func (NodeResourcesFit) Name() string { return "NodeResourcesFit" }

func (NodeResourcesFit) PreFilter(pod *corev1.Pod, _ []state.NodeState) error {
	GetPodRequests(&pod.Spec) // never errors: unset requests fall back to defaults
	return nil
}

func (NodeResourcesFit) Filter(pod *corev1.Pod, node *state.NodeState) error {
	req := GetPodRequests(&pod.Spec)
	allocCPU, allocMem := nodeAllocatable(node)
	reqCPU, reqMem := nodeRequested(node)

	if freeCPU := saturatingSub(allocCPU, reqCPU); freeCPU < req.CPUMillis {
		return fmt.Errorf("insufficient cpu: node has %dm free, pod requests %dm", freeCPU, req.CPUMillis)
	}
	if freeMem := saturatingSub(allocMem, reqMem); freeMem < req.MemBytes {
		return fmt.Errorf("insufficient memory: node has %d bytes free, pod requests %d bytes", freeMem, req.MemBytes)
	}
	return nil
}

func saturatingSub(a, b uint64) uint64 {
	if b >= a {
		return 0
	}
	return a - b
}
