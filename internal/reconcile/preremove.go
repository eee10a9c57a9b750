/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package reconcile

import (
	"context"
	"fmt"
	"strings"

	"k8s.io/klog/v2"

	"github.com/fleetoss/fleetd/internal/inventory"
	"github.com/fleetoss/fleetd/internal/nodeclient"
	"github.com/fleetoss/fleetd/internal/orcherr"
	"github.com/fleetoss/fleetd/internal/resource"
	"github.com/fleetoss/fleetd/internal/state"
)

// deploymentOwner reports the skate.io/deployment label baked into a
// placed pod's stored manifest, or "" if the pod was not derived from a
// Deployment (and so has no traffic to drain before removal).
func deploymentOwner(item inventory.ObjectListItem) string {
	parsed, err := resource.ParseAll([]byte(item.Manifest))
	if err != nil || len(parsed) != 1 || parsed[0].Pod == nil {
		return ""
	}
	return parsed[0].Pod.Labels["skate.io/deployment"]
}

// PreRemoveHook implements SPEC_FULL.md §4.7: before a Deployment-owned
// pod is removed, every reachable node is told to stop routing traffic to
// its IPs and sync its ipvs/keepalived table, so in-flight connections can
// drain. It blocks the caller's remove_manifest only on failure.
func PreRemoveHook(ctx context.Context, placement state.PlacedObject, namespace string, clients []nodeclient.Client) error {
	deployment := deploymentOwner(placement.Item)
	if deployment == "" {
		return nil
	}

	cl := clientFor(clients, placement.Node.NodeName)
	if cl == nil {
		return &orcherr.HookFailure{Pod: placement.Item.Name.String(), Causes: []error{fmt.Errorf("no connection to %s", placement.Node.NodeName)}}
	}
	ipOut, err := cl.Execute(ctx, fmt.Sprintf("fleetd-agent pod ips %s", placement.Item.Name.String()))
	if err != nil {
		return &orcherr.HookFailure{Pod: placement.Item.Name.String(), Causes: []error{err}}
	}
	ips := strings.Fields(ipOut)
	if len(ips) == 0 {
		klog.V(3).Infof("pre-remove hook: pod %s reported no IPs, nothing to drain", placement.Item.Name)
		return nil
	}

	service := fmt.Sprintf("%s.%s", deployment, namespace)
	var causes []error
	for _, c := range clients {
		if _, err := c.Execute(ctx, fmt.Sprintf("fleetd-agent ipvs disable-ip %s %s", service, strings.Join(ips, " "))); err != nil {
			causes = append(causes, fmt.Errorf("%s: %w", c.NodeName(), err))
			continue
		}
		if _, err := c.Execute(ctx, fmt.Sprintf("fleetd-agent ipvs sync %s", service)); err != nil {
			causes = append(causes, fmt.Errorf("%s: %w", c.NodeName(), err))
		}
	}
	if len(causes) > 0 {
		return &orcherr.HookFailure{Pod: placement.Item.Name.String(), Causes: causes}
	}
	return nil
}

func clientFor(clients []nodeclient.Client, name string) nodeclient.Client {
	for _, c := range clients {
		if c.NodeName() == name {
			return c
		}
	}
	return nil
}
