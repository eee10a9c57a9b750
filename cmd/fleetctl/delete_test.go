/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package main

import (
	"testing"
)

func TestRunDeleteRejectsMalformedResourceArg(t *testing.T) {
	env = testEnv()
	err := runDelete(deleteCmd, []string{"deployment-web"})
	assertCliErrorCode(t, err, exitValidation)
}

func TestRunDeleteRequiresActiveCluster(t *testing.T) {
	env = &environment{}
	err := runDelete(deleteCmd, []string{"deployment/web"})
	assertCliErrorCode(t, err, exitError)
}
