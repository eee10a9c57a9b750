/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package state

import (
	"github.com/fleetoss/fleetd/internal/inventory"
)

// PlacedObject pairs an object reported by some node's inventory with the
// node that reported it.
type PlacedObject struct {
	Item inventory.ObjectListItem
	Node NodeState
}

// FilterPods returns every pod across every healthy-or-not node whose
// inventory passes keep, paired with its node.
func (s *ClusterState) FilterPods(keep func(inventory.ObjectListItem) bool) []PlacedObject {
	var out []PlacedObject
	for _, n := range s.Nodes {
		if n.HostInfo == nil || n.HostInfo.System == nil {
			continue
		}
		for _, item := range n.HostInfo.System.Pods {
			if keep(item) {
				out = append(out, PlacedObject{Item: item, Node: n})
			}
		}
	}
	return out
}

// LocatePods finds every placement of a pod by its namespaced name. An
// empty name or namespace matches any value, so LocatePods("", "") lists
// every placed pod.
func (s *ClusterState) LocatePods(name, namespace string) []PlacedObject {
	return s.FilterPods(func(i inventory.ObjectListItem) bool {
		return (name == "" || i.Name.Name == name) && (namespace == "" || i.Name.Namespace == namespace)
	})
}

// LocatePlacements is LocateObjects without the cross-node dedup: every
// node carrying a matching object is returned, paired with that node. Used
// by delete, which must issue remove_manifest once per node that actually
// holds a copy.
func (s *ClusterState) LocatePlacements(rt inventory.ResourceType, name, namespace string) []PlacedObject {
	var out []PlacedObject
	for _, n := range s.Nodes {
		if n.HostInfo == nil || n.HostInfo.System == nil {
			continue
		}
		for _, item := range n.HostInfo.System.ByType(rt) {
			if name != "" && item.Name.Name != name {
				continue
			}
			if namespace != "" && item.Name.Namespace != namespace {
				continue
			}
			if item.Manifest == "" {
				continue
			}
			out = append(out, PlacedObject{Item: item, Node: n})
		}
	}
	return out
}

// LocateObjects gathers every object of rt matching name/namespace across
// every node's inventory and deduplicates by namespaced name: a cluster-wide
// resource (Deployment, DaemonSet, CronJob, ...) is stored identically on
// every node it's placed on, so the first sighting of each name is kept and
// later copies are discarded. Objects with no manifest body are dropped,
// mirroring the source's filter for tainted/placeholder entries.
func (s *ClusterState) LocateObjects(rt inventory.ResourceType, name, namespace string) []inventory.ObjectListItem {
	seen := make(map[string]struct{})
	var out []inventory.ObjectListItem
	for _, n := range s.Nodes {
		if n.HostInfo == nil || n.HostInfo.System == nil {
			continue
		}
		for _, item := range n.HostInfo.System.ByType(rt) {
			if name != "" && item.Name.Name != name {
				continue
			}
			if namespace != "" && item.Name.Namespace != namespace {
				continue
			}
			if item.Manifest == "" {
				continue
			}
			key := item.Name.String()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}
