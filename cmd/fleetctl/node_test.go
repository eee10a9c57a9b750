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

func resetCreateNodeFlags() {
	createNodeHost = ""
	createNodePort = 22
	createNodeSubnetCIDR = ""
	createNodeUser = ""
	createNodeKey = ""
}

func TestRunCreateNodeRequiresHost(t *testing.T) {
	env = testEnv()
	resetCreateNodeFlags()
	err := runCreateNode(createNodeCmd, []string{"n1"})
	assertCliErrorCode(t, err, exitValidation)
}

func TestRunCreateNodeRequiresActiveCluster(t *testing.T) {
	env = &environment{}
	resetCreateNodeFlags()
	createNodeHost = "10.0.0.1"
	err := runCreateNode(createNodeCmd, []string{"n1"})
	assertCliErrorCode(t, err, exitError)
}

func TestRunDeleteNodeRejectsUnknownNode(t *testing.T) {
	env = &environment{cluster: &cluster.Cluster{
		Name:  "prod",
		Nodes: []cluster.Node{{Name: "n1", Host: "10.0.0.1", Port: 22}},
	}}
	err := runDeleteNode(deleteNodeCmd, []string{"does-not-exist"})
	assertCliErrorCode(t, err, exitValidation)
	assert.Equal(t, len(env.cluster.Nodes), 1)
}
