/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package nodeclient

import (
	"context"
	"testing"

	"gotest.tools/assert"

	"github.com/fleetoss/fleetd/internal/inventory"
	"github.com/fleetoss/fleetd/internal/orcherr"
)

func TestFanOutPreservesClientOrder(t *testing.T) {
	clients := []Client{
		NewFakeClient("a"),
		NewFakeClient("b"),
		NewFakeClient("c"),
	}
	results := FanOut(context.Background(), clients, func(ctx context.Context, c Client) (string, error) {
		return c.NodeName(), nil
	})
	assert.Equal(t, len(results), 3)
	for i, want := range []string{"a", "b", "c"} {
		assert.Equal(t, results[i].NodeName, want)
		assert.Equal(t, results[i].Value, want)
	}
}

func TestFanOutPartialFailurePartitions(t *testing.T) {
	unreachable := NewFakeClient("bad")
	unreachable.Unreachable = true
	clients := []Client{NewFakeClient("good"), unreachable}

	results := FanOut(context.Background(), clients, func(ctx context.Context, c Client) (*inventory.NodeSystemInfo, error) {
		return c.NodeSystemInfo(ctx)
	})
	ok, err := orcherr.Partition(results)
	assert.Equal(t, len(ok), 1)
	assert.Equal(t, ok[0].NodeName, "good")
	assert.Assert(t, err != nil)
}

func TestFakeClientTracksApplyAndRemove(t *testing.T) {
	fc := NewFakeClient("n1")
	_, _, err := fc.ApplyManifest(context.Background(), "kind: Pod")
	assert.NilError(t, err)
	_, _, err = fc.RemoveManifest(context.Background(), "kind: Pod", 30)
	assert.NilError(t, err)
	assert.Equal(t, len(fc.Applied), 1)
	assert.Equal(t, len(fc.Removed), 1)
}

func TestFakeClientUnreachableFailsEveryCall(t *testing.T) {
	fc := NewFakeClient("n1")
	fc.Unreachable = true
	_, err := fc.NodeSystemInfo(context.Background())
	assert.ErrorContains(t, err, "unreachable")
	_, _, err = fc.ApplyManifest(context.Background(), "kind: Pod")
	assert.ErrorContains(t, err, "unreachable")
}
