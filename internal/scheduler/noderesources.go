/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package scheduler

import (
	"k8s.io/klog/v2"

	"github.com/fleetoss/fleetd/internal/resource"
	"github.com/fleetoss/fleetd/internal/state"
)

// nodeAllocatable returns the node's total reported CPU/memory capacity,
// treating every reported resource as fully allocatable. A node with no
// inventory snapshot (unreachable or not yet refreshed) allocates nothing.
func nodeAllocatable(n *state.NodeState) (cpuMillis, memBytes uint64) {
	if n.HostInfo == nil || n.HostInfo.System == nil {
		return 0, 0
	}
	si := n.HostInfo.System
	return si.CPUTotalMillis(), si.TotalMemoryBytes()
}

// nodeRequested sums the resource requests of every pod the node is
// already carrying, by re-parsing each stored pod manifest. A manifest
// that fails to parse is skipped and logged rather than failing the whole
// scheduling decision.
func nodeRequested(n *state.NodeState) (cpuMillis, memBytes uint64) {
	if n.HostInfo == nil || n.HostInfo.System == nil {
		return 0, 0
	}
	for _, item := range n.HostInfo.System.Pods {
		if item.Manifest == "" {
			continue
		}
		resources, err := resource.ParseAll([]byte(item.Manifest))
		if err != nil || len(resources) == 0 || resources[0].Pod == nil {
			klog.V(5).Infof("node %s: skipping unparsable pod manifest for %s: %v", n.NodeName, item.Name, err)
			continue
		}
		req := GetPodRequests(&resources[0].Pod.Spec)
		cpuMillis += req.CPUMillis
		memBytes += req.MemBytes
	}
	return cpuMillis, memBytes
}
