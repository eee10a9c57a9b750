/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

// Package nodeclient issues request/response RPCs to a single remote
// agent and provides fan-out helpers for talking to every node in a
// cluster concurrently. Transport is SSH (golang.org/x/crypto/ssh); the
// on-node agent contract itself is described in SPEC_FULL.md §6.
package nodeclient

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/fleetoss/fleetd/internal/inventory"
	"github.com/fleetoss/fleetd/internal/orcherr"
)

// Client is the uniform contract every node transport satisfies. Every
// method may return *orcherr.Unreachable (transport failure) or
// *orcherr.AgentError (nonzero exit on the remote agent).
type Client interface {
	// NodeName is the cluster-config name of the node this client talks to.
	NodeName() string

	// NodeSystemInfo performs the single-shot inventory collection
	// described in SPEC_FULL.md §4.1.
	NodeSystemInfo(ctx context.Context) (*inventory.NodeSystemInfo, error)

	// ApplyManifest writes yaml to a content-addressed temp path on the
	// node and invokes the apply primitive, returning combined stdout/stderr.
	ApplyManifest(ctx context.Context, yaml string) (stdout string, stderr string, err error)

	// RemoveManifest invokes the delete primitive with an optional grace
	// period (ignored if negative).
	RemoveManifest(ctx context.Context, yaml string, graceSeconds int) (stdout string, stderr string, err error)

	// Execute runs an arbitrary hook command on the node (used by the
	// pre-remove hook and cordon/uncordon).
	Execute(ctx context.Context, cmd string) (output string, err error)

	// Close releases the underlying transport.
	Close() error
}

// parseSystemInfo decodes the agent's `system info` JSON payload and
// returns an error for any payload that is not valid JSON. Whether that
// error matters is decided by the caller, which knows whether the agent
// binary reported a version.
func parseSystemInfo(raw []byte) (*inventory.SystemInfo, error) {
	var wire wireSystemInfo
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, errors.Wrap(err, "parsing system info snapshot")
	}
	return wire.toSystemInfo(), nil
}

// wireSystemInfo is the JSON shape the agent emits on `system info`. It is
// kept separate from inventory.SystemInfo so the wire format can evolve
// without having to rename the domain type everywhere it's used.
type wireSystemInfo struct {
	NumCPUs        int     `json:"num_cpus"`
	CPUFreqMHz     float64 `json:"cpu_freq_mhz"`
	CPUUsagePct    float64 `json:"cpu_usage_pct"`
	CPUBrand       string  `json:"cpu_brand"`
	TotalMemoryMiB uint64  `json:"total_memory_mib"`
	UsedMemoryMiB  uint64  `json:"used_memory_mib"`
	TotalSwapMiB   uint64  `json:"total_swap_mib"`
	UsedSwapMiB    uint64  `json:"used_swap_mib"`
	RootDiskTotalB uint64  `json:"root_disk_total_bytes"`
	RootDiskAvailB uint64  `json:"root_disk_avail_bytes"`
	RootDiskKind   string  `json:"root_disk_kind"`
	InternalIP     string  `json:"internal_ip"`
	ExternalIP     string  `json:"external_ip"`
	Cordoned       bool    `json:"cordoned"`

	Pods           []wireObjectListItem `json:"pods"`
	Ingresses      []wireObjectListItem `json:"ingresses"`
	CronJobs       []wireObjectListItem `json:"cronjobs"`
	Secrets        []wireObjectListItem `json:"secrets"`
	Services       []wireObjectListItem `json:"services"`
	ClusterIssuers []wireObjectListItem `json:"clusterissuers"`
	Deployments    []wireObjectListItem `json:"deployments"`
	DaemonSets     []wireObjectListItem `json:"daemonsets"`
}

type wireObjectListItem struct {
	ResourceType string `json:"resource_type"`
	Name         string `json:"name"`
	ManifestHash string `json:"manifest_hash"`
	Manifest     string `json:"manifest"`
	Generation   int64  `json:"generation"`
}

func (w wireSystemInfo) toSystemInfo() *inventory.SystemInfo {
	conv := func(items []wireObjectListItem, rt inventory.ResourceType) []inventory.ObjectListItem {
		out := make([]inventory.ObjectListItem, 0, len(items))
		for _, it := range items {
			out = append(out, inventory.ObjectListItem{
				ResourceType: rt,
				Name:         inventory.ParseNamespacedName(it.Name),
				ManifestHash: it.ManifestHash,
				Manifest:     it.Manifest,
				Generation:   it.Generation,
			})
		}
		return out
	}
	return &inventory.SystemInfo{
		NumCPUs:        w.NumCPUs,
		CPUFreqMHz:     w.CPUFreqMHz,
		CPUUsagePct:    w.CPUUsagePct,
		CPUBrand:       w.CPUBrand,
		TotalMemoryMiB: w.TotalMemoryMiB,
		UsedMemoryMiB:  w.UsedMemoryMiB,
		TotalSwapMiB:   w.TotalSwapMiB,
		UsedSwapMiB:    w.UsedSwapMiB,
		RootDiskTotalB: w.RootDiskTotalB,
		RootDiskAvailB: w.RootDiskAvailB,
		RootDiskKind:   w.RootDiskKind,
		InternalIP:     w.InternalIP,
		ExternalIP:     w.ExternalIP,
		Cordoned:       w.Cordoned,
		Pods:           conv(w.Pods, inventory.ResourcePod),
		Ingresses:      conv(w.Ingresses, inventory.ResourceIngress),
		CronJobs:       conv(w.CronJobs, inventory.ResourceCronJob),
		Secrets:        conv(w.Secrets, inventory.ResourceSecret),
		Services:       conv(w.Services, inventory.ResourceService),
		ClusterIssuers: conv(w.ClusterIssuers, inventory.ResourceClusterIssuer),
		Deployments:    conv(w.Deployments, inventory.ResourceDeployment),
		DaemonSets:     conv(w.DaemonSets, inventory.ResourceDaemonSet),
	}
}

// classifyInfoError implements the node_system_info() error rules from
// SPEC_FULL.md §4.1: Unreachable on timeout/connect failure (handled by the
// caller before this is ever invoked), AgentMissing when there's no agent
// version but the engine answered, SnapshotInvalid when the JSON failed to
// parse while the agent is present.
func classifyInfoError(nodeName, agentVersion string, engineSeen bool, snapshotErr error) error {
	if agentVersion == "" {
		if engineSeen {
			return &orcherr.AgentError{Node: nodeName, ExitCode: 0, Stderr: "agent missing: engine reachable but no agent version reported"}
		}
	}
	if snapshotErr != nil {
		return errors.Wrapf(snapshotErr, "node %s reported an invalid system snapshot", nodeName)
	}
	return nil
}
