/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package scheduler

// NewDefaultFramework wires the plugin set SPEC_FULL.md §4.4 describes:
// NodeResourcesFit as both a PreFilter and a Filter, NodeName/NodeSelector/
// Unschedulable as the remaining filters, LeastPods and LeastAllocated as
// the scorers.
func NewDefaultFramework() *Framework {
	fit := NodeResourcesFit{}
	return &Framework{
		Sorter:     PrioritySort{},
		PreFilters: []PreFilter{fit},
		Filters: []Filter{
			NodeNameFilter{},
			NodeSelectorFilter{},
			UnschedulableFilter{},
			fit,
		},
		Scorers: []Scorer{
			LeastPods{},
			LeastAllocated{},
		},
	}
}
