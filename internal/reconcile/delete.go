/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package reconcile

import (
	"context"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/fleetoss/fleetd/internal/cluster"
	"github.com/fleetoss/fleetd/internal/nodeclient"
	"github.com/fleetoss/fleetd/internal/orcherr"
	"github.com/fleetoss/fleetd/internal/resource"
	"github.com/fleetoss/fleetd/internal/state"
)

// DeleteResult aggregates everything that happened during one Delete call.
type DeleteResult struct {
	Removed      []NodeOutcome
	HookFailures []*orcherr.HookFailure
}

// Delete implements Delete(resources, grace): locate every current
// placement of the named resource, run the pre-remove hook ahead of
// remove_manifest for pod placements, and report per-node failures without
// rolling back whatever already succeeded.
func Delete(ctx context.Context, c *cluster.Cluster, st *state.ClusterState, kind resource.Kind, name, namespace string, graceSeconds int) (*DeleteResult, error) {
	clients, connErr := nodeclient.Connect(ctx, c)
	if connErr != nil {
		klog.Warningf("delete: %v", connErr)
	}
	defer func() {
		if err := nodeclient.CloseAll(clients); err != nil {
			klog.V(3).Infof("delete: error closing node connections: %v", err)
		}
	}()

	res := &DeleteResult{}
	var errs []error

	if kind == resource.KindPod {
		for _, p := range st.LocatePods(name, namespace) {
			if err := PreRemoveHook(ctx, p, namespace, clients); err != nil {
				hf, _ := err.(*orcherr.HookFailure)
				if hf != nil {
					res.HookFailures = append(res.HookFailures, hf)
				}
				errs = append(errs, err)
				continue
			}
			removeOne(ctx, clients, p, graceSeconds, res, &errs)
		}
		return res, orcherr.Combine(errs...)
	}

	for _, p := range st.LocatePlacements(kind.ToInventoryType(), name, namespace) {
		removeOne(ctx, clients, p, graceSeconds, res, &errs)
	}
	return res, orcherr.Combine(errs...)
}

func removeOne(ctx context.Context, clients []nodeclient.Client, p state.PlacedObject, graceSeconds int, res *DeleteResult, errs *[]error) {
	cl := clientFor(clients, p.Node.NodeName)
	if cl == nil {
		*errs = append(*errs, &orcherr.Unreachable{Node: p.Node.NodeName, Err: fmt.Errorf("no connection to node")})
		return
	}
	stdout, stderr, err := cl.RemoveManifest(ctx, p.Item.Manifest, graceSeconds)
	res.Removed = append(res.Removed, NodeOutcome{
		Resource: p.Item.Name, Kind: resource.Kind(p.Item.ResourceType), Node: p.Node.NodeName,
		Stdout: stdout, Stderr: stderr, Err: err,
	})
	if err != nil {
		*errs = append(*errs, err)
	}
}
