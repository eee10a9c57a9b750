/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package state

import (
	"context"

	"k8s.io/klog/v2"

	"github.com/fleetoss/fleetd/internal/cluster"
	"github.com/fleetoss/fleetd/internal/hashutil"
	"github.com/fleetoss/fleetd/internal/inventory"
	"github.com/fleetoss/fleetd/internal/nodeclient"
)

// Refresh connects to every node in c, collects a fresh NodeSystemInfo from
// each one it can reach, and reconciles the result into prev (which may be
// the zero ClusterState for a first run). It returns the new ClusterState
// and the ReconcileResult describing what changed; nodes that didn't answer
// this round are not treated as fatal — they end up StatusUnknown.
func Refresh(ctx context.Context, c *cluster.Cluster, prev *ClusterState) (*ClusterState, ReconcileResult, error) {
	clients, connErr := nodeclient.Connect(ctx, c)
	if connErr != nil {
		klog.Warningf("cluster %s: %v", c.Name, connErr)
	}
	defer func() {
		if err := nodeclient.CloseAll(clients); err != nil {
			klog.V(3).Infof("cluster %s: error closing node connections: %v", c.Name, err)
		}
	}()

	results := nodeclient.FanOut(ctx, clients, func(ctx context.Context, cl nodeclient.Client) (*inventory.NodeSystemInfo, error) {
		return cl.NodeSystemInfo(ctx)
	})

	reports := make(map[string]*inventory.NodeSystemInfo, len(results))
	for _, r := range results {
		if r.Err != nil {
			klog.Warningf("node %s: %v", r.NodeName, r.Err)
			continue
		}
		reports[r.NodeName] = r.Value
	}

	ids := make([]hashutil.NodeIdentity, 0, len(c.Nodes))
	names := make([]string, 0, len(c.Nodes))
	for _, n := range c.Nodes {
		names = append(names, n.Name)
		ids = append(ids, hashutil.NodeIdentity{
			Name: n.Name, Host: n.Host, Port: n.Port, SubnetCIDR: n.SubnetCIDR,
			User: c.ResolvedUser(n), Key: c.ResolvedKey(n),
		})
	}
	hash := hashutil.ClusterConfigHash(c.Name, c.DefaultUser, c.DefaultKeyPath, ids)

	next := prev
	if next == nil {
		next = &ClusterState{ClusterName: c.Name}
	}
	result := next.Reconcile(hash, names, reports)
	klog.V(2).Infof("cluster %s: refreshed (%d new, %d orphaned)", c.Name, result.NewNodes, result.OrphanedNodes)
	return next, result, nil
}
