/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

// Package cluster holds the config-file view of a fleet: clusters, nodes and
// the defaults a node inherits when it does not set its own user/key.
package cluster

import (
	"fmt"
	"net"
)

// Node is one host in a Cluster, reachable over SSH.
type Node struct {
	Name      string `yaml:"name"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	SubnetCIDR string `yaml:"subnet-cidr"`
	User      string `yaml:"user,omitempty"`
	Key       string `yaml:"key,omitempty"`
}

// Cluster is a named, ordered set of Nodes plus optional connection defaults.
type Cluster struct {
	Name           string  `yaml:"name"`
	Nodes          []Node  `yaml:"nodes"`
	DefaultUser    string  `yaml:"default-user,omitempty"`
	DefaultKeyPath string  `yaml:"default-key,omitempty"`
}

// ResolvedUser returns the node's own user, falling back to the cluster default.
func (c *Cluster) ResolvedUser(n Node) string {
	if n.User != "" {
		return n.User
	}
	return c.DefaultUser
}

// ResolvedKey returns the node's own key path, falling back to the cluster default.
func (c *Cluster) ResolvedKey(n Node) string {
	if n.Key != "" {
		return n.Key
	}
	return c.DefaultKeyPath
}

// Validate checks the invariants from the data model: every node has a
// non-empty, unique name, and no two nodes' subnet CIDRs overlap.
func (c *Cluster) Validate() error {
	seen := make(map[string]struct{}, len(c.Nodes))
	for _, n := range c.Nodes {
		if n.Name == "" {
			return fmt.Errorf("node has empty name in cluster %q", c.Name)
		}
		if _, ok := seen[n.Name]; ok {
			return fmt.Errorf("duplicate node name %q in cluster %q", n.Name, c.Name)
		}
		seen[n.Name] = struct{}{}
	}
	return overlappingSubnets(c.Nodes)
}

func overlappingSubnets(nodes []Node) error {
	type parsed struct {
		name string
		cidr string
	}
	var withCIDR []parsed
	for _, n := range nodes {
		if n.SubnetCIDR != "" {
			withCIDR = append(withCIDR, parsed{n.Name, n.SubnetCIDR})
		}
	}
	for i := 0; i < len(withCIDR); i++ {
		for j := i + 1; j < len(withCIDR); j++ {
			a, b := withCIDR[i], withCIDR[j]
			overlap := a.cidr == b.cidr
			_, netA, errA := net.ParseCIDR(a.cidr)
			_, netB, errB := net.ParseCIDR(b.cidr)
			if errA == nil && errB == nil {
				overlap = netA.Contains(netB.IP) || netB.Contains(netA.IP)
			}
			if overlap {
				return fmt.Errorf("nodes %q and %q have overlapping subnets %q and %q", a.name, b.name, a.cidr, b.cidr)
			}
		}
	}
	return nil
}

// NodeByName finds a node by name, returning ok=false if absent.
func (c *Cluster) NodeByName(name string) (Node, bool) {
	for _, n := range c.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}
