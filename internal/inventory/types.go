/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

// Package inventory holds the data a node agent reports back about itself:
// its system snapshot and the resources it already has stored. These types
// sit below both internal/nodeclient and internal/state so neither has to
// import the other.
package inventory

import (
	"fmt"
	"strings"
	"time"
)

// ResourceType tags a stored or in-flight manifest by kind. Values match
// the lowercase singular form used in the on-disk object store path and in
// the CLI's get/describe subcommands.
type ResourceType string

const (
	ResourcePod           ResourceType = "pod"
	ResourceDeployment    ResourceType = "deployment"
	ResourceDaemonSet     ResourceType = "daemonset"
	ResourceIngress       ResourceType = "ingress"
	ResourceCronJob       ResourceType = "cronjob"
	ResourceSecret        ResourceType = "secret"
	ResourceService       ResourceType = "service"
	ResourceClusterIssuer ResourceType = "clusterissuer"
	ResourceNamespace     ResourceType = "namespace"
)

// NamespacedName is the "<name>.<namespace>" identity used for physical
// object names on a node.
type NamespacedName struct {
	Name      string
	Namespace string
}

func (n NamespacedName) String() string {
	if n.Namespace == "" {
		return n.Name
	}
	return fmt.Sprintf("%s.%s", n.Name, n.Namespace)
}

// ParseNamespacedName splits "name.namespace" on the last dot. A value
// without a dot is treated as a bare name with no namespace.
func ParseNamespacedName(s string) NamespacedName {
	idx := strings.LastIndex(s, ".")
	if idx < 0 {
		return NamespacedName{Name: s}
	}
	return NamespacedName{Name: s[:idx], Namespace: s[idx+1:]}
}

// ObjectListItem is one entry in a node's object store: a resource type,
// its namespaced name, the hash/generation/manifest it was last applied
// with, and when it was created/updated.
type ObjectListItem struct {
	ResourceType ResourceType
	Name         NamespacedName
	ManifestHash string
	Manifest     string
	Generation   int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Platform describes the architecture/OS/distribution triple of a node.
type Platform struct {
	Arch         string
	OS           string
	Distribution string
}

// SystemInfo is the live snapshot an agent reports: resource usage plus
// the current inventory of every supported resource kind.
type SystemInfo struct {
	NumCPUs         int
	CPUFreqMHz      float64
	CPUUsagePct     float64
	CPUBrand        string
	TotalMemoryMiB  uint64
	UsedMemoryMiB   uint64
	TotalSwapMiB    uint64
	UsedSwapMiB     uint64
	RootDiskTotalB  uint64
	RootDiskAvailB  uint64
	RootDiskKind    string
	InternalIP      string
	ExternalIP      string
	Cordoned        bool

	Pods           []ObjectListItem
	Ingresses      []ObjectListItem
	CronJobs       []ObjectListItem
	Secrets        []ObjectListItem
	Services       []ObjectListItem
	ClusterIssuers []ObjectListItem
	Deployments    []ObjectListItem
	DaemonSets     []ObjectListItem
}

// CPUTotalMillis treats every reported CPU as fully allocatable, in
// milliCPU units, for use by the resource-fit scheduler plugins.
func (s *SystemInfo) CPUTotalMillis() uint64 {
	return uint64(s.NumCPUs) * 1000
}

// TotalMemoryBytes converts the MiB total into bytes.
func (s *SystemInfo) TotalMemoryBytes() uint64 {
	return s.TotalMemoryMiB * 1024 * 1024
}

// ByType returns the inventory slice for a given resource type, or nil for
// kinds this snapshot does not track (Namespace has no persisted objects).
func (s *SystemInfo) ByType(rt ResourceType) []ObjectListItem {
	switch rt {
	case ResourcePod:
		return s.Pods
	case ResourceIngress:
		return s.Ingresses
	case ResourceCronJob:
		return s.CronJobs
	case ResourceSecret:
		return s.Secrets
	case ResourceService:
		return s.Services
	case ResourceClusterIssuer:
		return s.ClusterIssuers
	case ResourceDeployment:
		return s.Deployments
	case ResourceDaemonSet:
		return s.DaemonSets
	default:
		return nil
	}
}

// NodeSystemInfo is what node_system_info() returns: identity plus an
// optional live snapshot (absent when the agent could not be reached).
type NodeSystemInfo struct {
	Hostname      string
	Platform      Platform
	AgentVersion  string
	EngineVersion string
	System        *SystemInfo
}
