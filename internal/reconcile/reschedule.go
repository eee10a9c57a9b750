/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/fleetoss/fleetd/internal/cluster"
	"github.com/fleetoss/fleetd/internal/inventory"
	"github.com/fleetoss/fleetd/internal/scheduler"
	"github.com/fleetoss/fleetd/internal/state"
)

// Reschedule re-applies the Services, Secrets, Deployments, DaemonSets and
// Ingresses stored in one donor node's inventory to the cluster. Useful
// after a node join or cordon change widens the set of nodes a broadcast
// resource should reach. excludeNode, if nonempty, is never chosen as the
// donor; the resulting Apply is an ordinary Apply over the whole cluster
// and can still place onto excludeNode.
func Reschedule(ctx context.Context, c *cluster.Cluster, st *state.ClusterState, excludeNode string, fw *scheduler.Framework) (*ApplyResult, error) {
	donor := findDonor(st, excludeNode)
	if donor == nil {
		return nil, fmt.Errorf("reschedule: no node with a system snapshot to use as a donor")
	}

	var manifests strings.Builder
	for _, group := range [][]inventory.ObjectListItem{
		donor.HostInfo.System.Services,
		donor.HostInfo.System.Secrets,
		donor.HostInfo.System.Deployments,
		donor.HostInfo.System.DaemonSets,
		donor.HostInfo.System.Ingresses,
	} {
		for _, item := range group {
			if item.Manifest == "" {
				continue
			}
			manifests.WriteString(item.Manifest)
			manifests.WriteString("\n---\n")
		}
	}
	if manifests.Len() == 0 {
		return &ApplyResult{State: st}, nil
	}
	return Apply(ctx, c, st, []byte(manifests.String()), fw)
}

func findDonor(st *state.ClusterState, excludeNode string) *state.NodeState {
	for i := range st.Nodes {
		n := &st.Nodes[i]
		if excludeNode != "" && n.NodeName == excludeNode {
			continue
		}
		if n.HostInfo != nil && n.HostInfo.System != nil {
			return n
		}
	}
	return nil
}
