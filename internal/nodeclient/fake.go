/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package nodeclient

import (
	"context"
	"sync"

	"github.com/fleetoss/fleetd/internal/inventory"
	"github.com/fleetoss/fleetd/internal/orcherr"
)

// FakeClient is an in-memory Client double for tests: it tracks applied and
// removed manifests and lets the test pre-script a NodeSystemInfo response
// or force every call to fail as if unreachable.
type FakeClient struct {
	mu sync.Mutex

	Name string

	// Info is returned verbatim by NodeSystemInfo unless Unreachable is set.
	Info *inventory.NodeSystemInfo

	// Unreachable, when true, makes every method return *orcherr.Unreachable.
	Unreachable bool

	Applied []string
	Removed []string
	Execs   []string

	// ExecOutput, if set, is returned as the output of every Execute call;
	// tests use it to script a command's stdout (e.g. a "pod ips" probe).
	ExecOutput string
}

var _ Client = (*FakeClient)(nil)

// NewFakeClient builds a FakeClient that reports itself healthy with an
// empty system snapshot unless the caller overrides Info.
func NewFakeClient(name string) *FakeClient {
	return &FakeClient{
		Name: name,
		Info: &inventory.NodeSystemInfo{
			Hostname:      name,
			AgentVersion:  "fake-1.0.0",
			EngineVersion: "fake-1.0.0",
			System:        &inventory.SystemInfo{NumCPUs: 4, TotalMemoryMiB: 16384},
		},
	}
}

func (f *FakeClient) NodeName() string { return f.Name }

func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) unreachableErr() error {
	return &orcherr.Unreachable{Node: f.Name, Err: errUnreachable}
}

func (f *FakeClient) NodeSystemInfo(ctx context.Context) (*inventory.NodeSystemInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Unreachable {
		return nil, f.unreachableErr()
	}
	return f.Info, nil
}

func (f *FakeClient) ApplyManifest(ctx context.Context, yaml string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Unreachable {
		return "", "", f.unreachableErr()
	}
	f.Applied = append(f.Applied, yaml)
	return "applied", "", nil
}

func (f *FakeClient) RemoveManifest(ctx context.Context, yaml string, graceSeconds int) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Unreachable {
		return "", "", f.unreachableErr()
	}
	f.Removed = append(f.Removed, yaml)
	return "removed", "", nil
}

func (f *FakeClient) Execute(ctx context.Context, cmd string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Unreachable {
		return "", f.unreachableErr()
	}
	f.Execs = append(f.Execs, cmd)
	return f.ExecOutput, nil
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }

const errUnreachable = fakeErr("fake client forced unreachable")
