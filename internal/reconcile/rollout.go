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
	"github.com/fleetoss/fleetd/internal/resource"
	"github.com/fleetoss/fleetd/internal/scheduler"
	"github.com/fleetoss/fleetd/internal/state"
)

// RolloutRestart implements Rollout restart(type, name, namespace):
// it blanks the stored content hash on every matching Deployment/DaemonSet
// object and on each of its derived pods, then runs Apply on the stored
// manifests. The blanked stored hash guarantees Apply's identical-hash
// skip never fires, forcing a redeploy. Dry-run returns after the taint
// step without touching any node. st is mutated in place.
func RolloutRestart(ctx context.Context, c *cluster.Cluster, st *state.ClusterState, kind resource.Kind, name, namespace string, dryRun bool, fw *scheduler.Framework) (*ApplyResult, error) {
	var ownerLabel string
	switch kind {
	case resource.KindDeployment:
		ownerLabel = "skate.io/deployment"
	case resource.KindDaemonSet:
		ownerLabel = "skate.io/daemonset"
	default:
		return nil, fmt.Errorf("rollout restart: unsupported resource kind %q", kind)
	}

	objects := st.LocateObjects(kind.ToInventoryType(), name, namespace)
	if len(objects) == 0 {
		return nil, fmt.Errorf("rollout restart: no %s named %q found in namespace %q", kind, name, namespace)
	}

	names := make(map[string]struct{}, len(objects))
	var manifests strings.Builder
	for _, o := range objects {
		names[o.Name.String()] = struct{}{}
		taintObjectHash(st, kind.ToInventoryType(), o.Name)
		manifests.WriteString(o.Manifest)
		manifests.WriteString("\n---\n")
	}
	taintDerivedPods(st, ownerLabel, names)

	if dryRun {
		return &ApplyResult{State: st}, nil
	}
	return Apply(ctx, c, st, []byte(manifests.String()), fw)
}

func taintObjectHash(st *state.ClusterState, rt inventory.ResourceType, name inventory.NamespacedName) {
	for ni := range st.Nodes {
		n := &st.Nodes[ni]
		if n.HostInfo == nil || n.HostInfo.System == nil {
			continue
		}
		items := n.HostInfo.System.ByType(rt)
		for ii := range items {
			if items[ii].Name == name {
				items[ii].ManifestHash = ""
			}
		}
	}
}

func taintDerivedPods(st *state.ClusterState, ownerLabel string, ownerNames map[string]struct{}) {
	for ni := range st.Nodes {
		n := &st.Nodes[ni]
		if n.HostInfo == nil || n.HostInfo.System == nil {
			continue
		}
		pods := n.HostInfo.System.Pods
		for pi := range pods {
			parsed, err := resource.ParseAll([]byte(pods[pi].Manifest))
			if err != nil || len(parsed) != 1 || parsed[0].Pod == nil {
				continue
			}
			owner := inventory.NamespacedName{
				Name:      parsed[0].Pod.Labels[ownerLabel],
				Namespace: parsed[0].Pod.Labels["skate.io/namespace"],
			}
			if _, ok := ownerNames[owner.String()]; ok {
				pods[pi].ManifestHash = ""
			}
		}
	}
}
