/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package scheduler

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSchedulerProperties(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Scheduler Property Suite")
}
