/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

// Package state owns the on-disk snapshot of a cluster's nodes: who's in
// the config, who answered the last refresh, and what each one reported.
// It never talks to a node directly; internal/nodeclient does that, and
// this package turns the results into NodeState/ClusterState and persists
// them between runs.
package state

import (
	"sort"

	"github.com/fleetoss/fleetd/internal/inventory"
)

// NodeStatus is a node's health as of the last refresh.
type NodeStatus string

const (
	StatusUnknown   NodeStatus = "Unknown"
	StatusHealthy   NodeStatus = "Healthy"
	StatusUnhealthy NodeStatus = "Unhealthy"
)

// NodeState is one node's last-known identity, health and reported
// inventory.
type NodeState struct {
	NodeName        string                     `json:"node_name"`
	Status          NodeStatus                 `json:"status"`
	HostInfo        *inventory.NodeSystemInfo  `json:"host_info,omitempty"`
	InventoryFound  bool                       `json:"inventory_found"`
}

// Healthy reports whether info satisfies the health predicate from
// SPEC_FULL.md §4.2: the agent answered, reported both its own version and
// an engine version, returned a system snapshot, and isn't cordoned.
func Healthy(info *inventory.NodeSystemInfo) bool {
	if info == nil {
		return false
	}
	if info.AgentVersion == "" || info.EngineVersion == "" {
		return false
	}
	if info.System == nil {
		return false
	}
	if info.System.Cordoned {
		return false
	}
	return true
}

// ClusterState is the full view of a cluster as of its last refresh: a
// config hash (to detect drift) and ordered node states, plus anything
// that fell out of the config since the last run.
type ClusterState struct {
	ClusterName   string      `json:"cluster_name"`
	Hash          string      `json:"hash"`
	Nodes         []NodeState `json:"nodes"`
	OrphanedNodes []NodeState `json:"orphaned_nodes,omitempty"`
}

// NodeByName finds a node's state by name.
func (s *ClusterState) NodeByName(name string) (*NodeState, bool) {
	for i := range s.Nodes {
		if s.Nodes[i].NodeName == name {
			return &s.Nodes[i], true
		}
	}
	return nil, false
}

// HealthyNodes returns the subset of Nodes currently Healthy, in config order.
func (s *ClusterState) HealthyNodes() []NodeState {
	out := make([]NodeState, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.Status == StatusHealthy {
			out = append(out, n)
		}
	}
	return out
}

// ReconcileResult summarizes what changed during a Reconcile call.
type ReconcileResult struct {
	NewNodes      int
	OrphanedNodes int
}

// Reconcile rewrites s.Nodes against the current config node-name set
// (configNames) and the freshly reported health (reports, keyed by node
// name): nodes that vanished from config move to OrphanedNodes, nodes new
// to config are appended, and every surviving or new node's health is
// refreshed from reports (or set to Unknown if it didn't answer this
// round). Node order in the surviving+new list follows configNames.
func (s *ClusterState) Reconcile(hash string, configNames []string, reports map[string]*inventory.NodeSystemInfo) ReconcileResult {
	s.Hash = hash

	configSet := make(map[string]struct{}, len(configNames))
	for _, n := range configNames {
		configSet[n] = struct{}{}
	}
	existing := make(map[string]NodeState, len(s.Nodes))
	for _, n := range s.Nodes {
		existing[n.NodeName] = n
	}

	var orphaned []NodeState
	for name, n := range existing {
		if _, ok := configSet[name]; !ok {
			orphaned = append(orphaned, n)
		}
	}
	sort.Slice(orphaned, func(i, j int) bool { return orphaned[i].NodeName < orphaned[j].NodeName })

	newCount := 0
	surviving := make([]NodeState, 0, len(configNames))
	for _, name := range configNames {
		n, ok := existing[name]
		if !ok {
			n = NodeState{NodeName: name, Status: StatusUnknown}
			newCount++
		}
		if info, reported := reports[name]; reported {
			n.HostInfo = info
			n.InventoryFound = true
			if Healthy(info) {
				n.Status = StatusHealthy
			} else {
				n.Status = StatusUnhealthy
			}
		} else {
			n.Status = StatusUnknown
		}
		surviving = append(surviving, n)
	}

	s.Nodes = surviving
	s.OrphanedNodes = orphaned

	return ReconcileResult{NewNodes: newCount, OrphanedNodes: len(orphaned)}
}
