/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package main

import (
	"testing"

	"github.com/fleetoss/fleetd/internal/cluster"
)

func testEnv() *environment {
	return &environment{cluster: &cluster.Cluster{Name: "prod"}}
}

func TestRunRolloutRestartRejectsUnsupportedKind(t *testing.T) {
	env = testEnv()
	rolloutAssumeYes = true
	defer func() { rolloutAssumeYes = false }()

	err := runRolloutRestart(rolloutRestartCmd, []string{"pod/web-abc"})
	assertCliErrorCode(t, err, exitValidation)
}

func TestRunRolloutRestartRejectsMalformedResourceArg(t *testing.T) {
	env = testEnv()
	err := runRolloutRestart(rolloutRestartCmd, []string{"deployment-web"})
	assertCliErrorCode(t, err, exitValidation)
}

func TestRunRolloutRestartRequiresActiveCluster(t *testing.T) {
	env = &environment{}
	err := runRolloutRestart(rolloutRestartCmd, []string{"deployment/web"})
	assertCliErrorCode(t, err, exitError)
}
