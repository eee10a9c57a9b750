/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package main

import (
	"testing"

	"gotest.tools/assert"

	"github.com/fleetoss/fleetd/internal/cluster"
)

func TestRequireClusterNilEnvironment(t *testing.T) {
	var env *environment
	err := env.requireCluster()
	assert.ErrorContains(t, err, "no active cluster context")
}

func TestRequireClusterNoActiveCluster(t *testing.T) {
	env := &environment{config: &cluster.Config{}}
	err := env.requireCluster()
	assert.ErrorContains(t, err, "no active cluster context")
}

func TestRequireClusterWithActiveCluster(t *testing.T) {
	env := &environment{cluster: &cluster.Cluster{Name: "prod"}}
	assert.NilError(t, env.requireCluster())
}

func TestLoadStateWithoutActiveClusterErrors(t *testing.T) {
	env := &environment{}
	_, err := env.loadState()
	assert.ErrorContains(t, err, "no active cluster context")
}
