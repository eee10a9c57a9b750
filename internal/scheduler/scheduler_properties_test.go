/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package scheduler

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fleetoss/fleetd/internal/inventory"
	"github.com/fleetoss/fleetd/internal/state"
)

var _ = Describe("Framework.ChooseNode", func() {
	It("only ever selects a node present in its input slice, or none", func() {
		fw := NewDefaultFramework()
		nodes := []state.NodeState{healthyNode("n1", 2, 2048), healthyNode("n2", 2, 2048)}

		sel := fw.ChooseNode(simplePod("p"), nodes)

		if sel.Selected == nil {
			Expect(sel.Rejected).NotTo(BeEmpty())
			return
		}
		var found bool
		for _, n := range nodes {
			if n.NodeName == sel.Selected.NodeName {
				found = true
			}
		}
		Expect(found).To(BeTrue())
	})

	It("picks the single highest-scoring node deterministically", func() {
		fw := NewDefaultFramework()
		winner := healthyNode("n1", 8, 16384)
		loser := healthyNode("n2", 8, 16384)
		loser.HostInfo.System.Pods = make([]inventory.ObjectListItem, 50)

		for i := 0; i < 20; i++ {
			sel := fw.ChooseNode(simplePod("p"), []state.NodeState{winner, loser})
			Expect(sel.Selected).NotTo(BeNil())
			Expect(sel.Selected.NodeName).To(Equal("n1"))
		}
	})
})

var _ = Describe("Filter determinism", func() {
	It("returns the same verdict for two node values describing identical state", func() {
		a := healthyNode("n1", 4, 8192)
		b := healthyNode("n1", 4, 8192)
		a.Status = state.StatusUnhealthy
		b.Status = state.StatusUnhealthy

		errA := UnschedulableFilter{}.Filter(simplePod("p"), &a)
		errB := UnschedulableFilter{}.Filter(simplePod("p"), &b)

		Expect(errA).To(HaveOccurred())
		Expect(errB).To(HaveOccurred())
		Expect(errA.Error()).To(Equal(errB.Error()))
	})
})

var _ = Describe("Score normalization", func() {
	It("keeps every normalized score within [0, MaxNodeScore]", func() {
		raw := map[string]uint64{"a": 0, "b": 37, "c": 1000000}
		normalizeScores(raw)
		for _, v := range raw {
			Expect(v).To(BeNumerically("<=", uint64(MaxNodeScore)))
			Expect(v).To(BeNumerically(">=", uint64(0)))
		}
	})
})
