/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

// Package hashutil computes the stable, non-cryptographic hashes this
// system relies on to detect drift: one over a cluster's config (node
// identity) and one over a normalized resource manifest.
package hashutil

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	sigsyaml "sigs.k8s.io/yaml"
)

// Hex hashes an arbitrary byte slice with xxhash and renders it as hex,
// matching the "hex of a 64-bit non-cryptographic hash" label format.
func Hex(b []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(b))
}

// CanonicalYAML re-marshals an arbitrary YAML document through JSON so map
// keys come out sorted and formatting differences disappear, then hands
// back the bytes so callers can hash or compare them. sigs.k8s.io/yaml
// round-trips via encoding/json, which sorts map keys deterministically;
// gopkg.in/yaml.v3 does not make that guarantee.
func CanonicalYAML(v interface{}) ([]byte, error) {
	return sigsyaml.Marshal(v)
}

// ClusterConfigHash hashes the identity-relevant fields of a cluster's
// nodes (name, host, subnet, user/key defaults) so a refresh can detect
// that the config changed underneath it. Field order is fixed so the
// result never depends on map iteration order.
func ClusterConfigHash(clusterName, defaultUser, defaultKey string, nodes []NodeIdentity) string {
	sorted := make([]NodeIdentity, len(nodes))
	copy(sorted, nodes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var sb strings.Builder
	sb.WriteString(clusterName)
	sb.WriteByte('\x00')
	sb.WriteString(defaultUser)
	sb.WriteByte('\x00')
	sb.WriteString(defaultKey)
	for _, n := range sorted {
		sb.WriteByte('\x00')
		fmt.Fprintf(&sb, "%s|%s|%d|%s|%s|%s", n.Name, n.Host, n.Port, n.SubnetCIDR, n.User, n.Key)
	}
	return Hex([]byte(sb.String()))
}

// NodeIdentity is the subset of cluster.Node that participates in the
// config-drift hash.
type NodeIdentity struct {
	Name       string
	Host       string
	Port       int
	SubnetCIDR string
	User       string
	Key        string
}
