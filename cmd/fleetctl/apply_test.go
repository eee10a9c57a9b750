/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package main

import (
	"errors"
	"testing"

	"gotest.tools/assert"

	"github.com/fleetoss/fleetd/internal/reconcile"
)

func TestPrintApplyResultDoesNotPanicOnEmptyResult(t *testing.T) {
	printApplyResult("web.yaml", &reconcile.ApplyResult{})
}

func TestRunApplyRequiresAtLeastOneFile(t *testing.T) {
	applyFiles = nil
	env = testEnv()
	err := runApply(applyCmd, nil)
	assertCliErrorCode(t, err, exitValidation)
}

func assertCliErrorCode(t *testing.T, err error, code int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", code)
	}
	var ce *cliError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *cliError, got %T: %v", err, err)
	}
	assert.Equal(t, ce.code, code)
}
