/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

// Package reconcile implements SPEC_FULL.md §4.6: turning a parsed,
// fixed-up set of resources into per-node apply/remove RPCs, plus the
// rollout-restart taint and the pre-remove drain hook.
package reconcile

import (
	"context"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/fleetoss/fleetd/internal/cluster"
	"github.com/fleetoss/fleetd/internal/inventory"
	"github.com/fleetoss/fleetd/internal/nodeclient"
	"github.com/fleetoss/fleetd/internal/orcherr"
	"github.com/fleetoss/fleetd/internal/resource"
	"github.com/fleetoss/fleetd/internal/scheduler"
	"github.com/fleetoss/fleetd/internal/state"
)

// NodeOutcome is one node's result from applying or removing a single
// resource.
type NodeOutcome struct {
	Resource inventory.NamespacedName
	Kind     resource.Kind
	Node     string
	Stdout   string
	Stderr   string
	Err      error
}

// ApplyResult aggregates everything that happened during one Apply call.
type ApplyResult struct {
	State      *state.ClusterState
	Outcomes   []NodeOutcome
	Skipped    []inventory.NamespacedName
	Rejections []orcherr.SchedulingRejection
}

// Apply implements Apply(resources): parse, fix-up, refresh cluster state
// once, then schedule pod-bearing resources and broadcast cluster-wide
// ones. A parse or fix-up error returns at once, before any node is
// contacted; after that, a failure on one node or resource never aborts
// the others, and the returned error (if any) is every individual failure
// folded together.
func Apply(ctx context.Context, c *cluster.Cluster, prev *state.ClusterState, manifest []byte, fw *scheduler.Framework) (*ApplyResult, error) {
	parsed, err := resource.ParseAll(manifest)
	if err != nil {
		return nil, err
	}

	fixedUp := make([]resource.Resource, 0, len(parsed))
	for _, r := range parsed {
		fr, err := resource.FixUp(r)
		if err != nil {
			return nil, err
		}
		fixedUp = append(fixedUp, fr)
	}

	next, reconciled, err := state.Refresh(ctx, c, prev)
	if err != nil {
		return nil, err
	}
	klog.V(2).Infof("apply: cluster %s refreshed (%d new, %d orphaned)", c.Name, reconciled.NewNodes, reconciled.OrphanedNodes)

	clients, connErr := nodeclient.Connect(ctx, c)
	if connErr != nil {
		klog.Warningf("apply: %v", connErr)
	}
	defer func() {
		if err := nodeclient.CloseAll(clients); err != nil {
			klog.V(3).Infof("apply: error closing node connections: %v", err)
		}
	}()
	byName := clientsByName(clients)

	res := &ApplyResult{State: next}
	var errs []error
	for _, r := range fixedUp {
		if r.IsPodBearing() {
			errs = append(errs, applyPodBearing(ctx, r, next, byName, fw, res)...)
		} else {
			errs = append(errs, applyBroadcast(ctx, r, next, byName, res)...)
		}
	}
	return res, orcherr.Combine(errs...)
}

func clientsByName(clients []nodeclient.Client) map[string]nodeclient.Client {
	out := make(map[string]nodeclient.Client, len(clients))
	for _, c := range clients {
		out[c.NodeName()] = c
	}
	return out
}

func applyPodBearing(ctx context.Context, r resource.Resource, st *state.ClusterState, byName map[string]nodeclient.Client, fw *scheduler.Framework, res *ApplyResult) []error {
	derived, err := derivePods(r, st.HealthyNodes())
	if err != nil {
		return []error{err}
	}

	var errs []error
	for _, dp := range derived {
		target := dp.FixedNode
		if target == "" {
			sel := fw.ChooseNode(dp.Pod.Pod, st.HealthyNodes())
			if sel.Selected == nil {
				res.Rejections = append(res.Rejections, orcherr.SchedulingRejection{
					Pod:      dp.Pod.Name().String(),
					Rejected: sel.Rejected,
				})
				continue
			}
			target = sel.Selected.NodeName
		}

		if samePlacement(st, dp.Pod.Name(), target, podHash(dp.Pod)) {
			res.Skipped = append(res.Skipped, dp.Pod.Name())
			continue
		}

		cl, ok := byName[target]
		if !ok {
			errs = append(errs, &orcherr.Unreachable{Node: target, Err: fmt.Errorf("no connection to node")})
			continue
		}
		manifest, err := resource.Marshal(dp.Pod)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		stdout, stderr, applyErr := cl.ApplyManifest(ctx, string(manifest))
		res.Outcomes = append(res.Outcomes, NodeOutcome{
			Resource: dp.Pod.Name(), Kind: resource.KindPod, Node: target,
			Stdout: stdout, Stderr: stderr, Err: applyErr,
		})
		if applyErr != nil {
			errs = append(errs, applyErr)
		}
	}
	return errs
}

func applyBroadcast(ctx context.Context, r resource.Resource, st *state.ClusterState, byName map[string]nodeclient.Client, res *ApplyResult) []error {
	manifest, err := resource.Marshal(r)
	if err != nil {
		return []error{err}
	}
	var errs []error
	for _, n := range st.HealthyNodes() {
		cl, ok := byName[n.NodeName]
		if !ok {
			continue
		}
		stdout, stderr, applyErr := cl.ApplyManifest(ctx, string(manifest))
		res.Outcomes = append(res.Outcomes, NodeOutcome{
			Resource: r.Name(), Kind: r.Kind, Node: n.NodeName,
			Stdout: stdout, Stderr: stderr, Err: applyErr,
		})
		if applyErr != nil {
			errs = append(errs, applyErr)
		}
	}
	return errs
}

// samePlacement reports whether node already holds a pod of this name with
// this exact hash, in which case Apply skips re-sending it.
func samePlacement(st *state.ClusterState, name inventory.NamespacedName, node, hash string) bool {
	if hash == "" {
		return false
	}
	for _, p := range st.LocatePods(name.Name, name.Namespace) {
		if p.Node.NodeName == node && p.Item.ManifestHash == hash {
			return true
		}
	}
	return false
}

func podHash(r resource.Resource) string {
	if r.Pod == nil {
		return ""
	}
	return r.Pod.Labels[resource.LabelHash]
}
