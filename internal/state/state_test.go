/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package state

import (
	"testing"

	"gotest.tools/assert"

	"github.com/fleetoss/fleetd/internal/inventory"
)

func healthyInfo() *inventory.NodeSystemInfo {
	return &inventory.NodeSystemInfo{
		AgentVersion:  "1.0.0",
		EngineVersion: "1.0.0",
		System:        &inventory.SystemInfo{NumCPUs: 2},
	}
}

func TestHealthyRequiresVersionsAndSnapshot(t *testing.T) {
	assert.Equal(t, Healthy(nil), false)
	assert.Equal(t, Healthy(&inventory.NodeSystemInfo{}), false)
	assert.Equal(t, Healthy(healthyInfo()), true)

	cordoned := healthyInfo()
	cordoned.System.Cordoned = true
	assert.Equal(t, Healthy(cordoned), false)
}

func TestReconcileAddsAndOrphans(t *testing.T) {
	s := &ClusterState{
		ClusterName: "demo",
		Nodes: []NodeState{
			{NodeName: "old-node", Status: StatusHealthy},
		},
	}
	reports := map[string]*inventory.NodeSystemInfo{
		"new-node": healthyInfo(),
	}
	result := s.Reconcile("hash1", []string{"new-node"}, reports)

	assert.Equal(t, result.NewNodes, 1)
	assert.Equal(t, result.OrphanedNodes, 1)
	assert.Equal(t, len(s.Nodes), 1)
	assert.Equal(t, s.Nodes[0].NodeName, "new-node")
	assert.Equal(t, s.Nodes[0].Status, StatusHealthy)
	assert.Equal(t, len(s.OrphanedNodes), 1)
	assert.Equal(t, s.OrphanedNodes[0].NodeName, "old-node")
}

func TestReconcileMarksUnansweredNodeUnknown(t *testing.T) {
	s := &ClusterState{ClusterName: "demo"}
	result := s.Reconcile("hash1", []string{"silent-node"}, map[string]*inventory.NodeSystemInfo{})
	assert.Equal(t, result.NewNodes, 1)
	assert.Equal(t, s.Nodes[0].Status, StatusUnknown)
}

func TestLocateObjectsDedupesByName(t *testing.T) {
	item := inventory.ObjectListItem{
		ResourceType: inventory.ResourceDeployment,
		Name:         inventory.NamespacedName{Name: "web", Namespace: "default"},
		Manifest:     "kind: Deployment",
	}
	s := &ClusterState{
		Nodes: []NodeState{
			{NodeName: "n1", HostInfo: &inventory.NodeSystemInfo{System: &inventory.SystemInfo{Deployments: []inventory.ObjectListItem{item}}}},
			{NodeName: "n2", HostInfo: &inventory.NodeSystemInfo{System: &inventory.SystemInfo{Deployments: []inventory.ObjectListItem{item}}}},
		},
	}
	got := s.LocateObjects(inventory.ResourceDeployment, "", "")
	assert.Equal(t, len(got), 1)
}

func TestLocateObjectsSkipsEmptyManifest(t *testing.T) {
	item := inventory.ObjectListItem{
		ResourceType: inventory.ResourceDeployment,
		Name:         inventory.NamespacedName{Name: "web", Namespace: "default"},
	}
	s := &ClusterState{
		Nodes: []NodeState{
			{NodeName: "n1", HostInfo: &inventory.NodeSystemInfo{System: &inventory.SystemInfo{Deployments: []inventory.ObjectListItem{item}}}},
		},
	}
	got := s.LocateObjects(inventory.ResourceDeployment, "", "")
	assert.Equal(t, len(got), 0)
}
