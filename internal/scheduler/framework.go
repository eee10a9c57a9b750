/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

// Package scheduler implements the pluggable QueueSort/PreFilter/Filter/
// Score pipeline described in SPEC_FULL.md §4.4: given a pod and a slice of
// candidate nodes, it picks exactly one node or explains why none qualify.
package scheduler

import (
	"math/rand"
	"sort"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/klog/v2"

	"github.com/fleetoss/fleetd/internal/orcherr"
	"github.com/fleetoss/fleetd/internal/state"
)

// MaxNodeScore is the ceiling every scorer's normalized output is mapped
// into before summation.
const MaxNodeScore = 100

// QueueSort orders a batch of pods before scheduling. Pods are pending
// placement in the same Apply/Delete call and have no other notion of
// submission order, so ties fall back to the pods' original slice index.
type QueueSort interface {
	Less(a, b *corev1.Pod) bool
}

// PreFilter checks a hard precondition of the pod itself, independent of
// any node. A failure aborts placement for the whole pod with a single "*"
// rejection.
type PreFilter interface {
	Name() string
	PreFilter(pod *corev1.Pod, nodes []state.NodeState) error
}

// Filter gives a per-node boolean verdict (nil error means the node
// survives) with a human-readable reason on rejection.
type Filter interface {
	Name() string
	Filter(pod *corev1.Pod, node *state.NodeState) error
}

// Scorer ranks nodes that survived filtering. Raw scores need not be in
// any particular range; NormalizeScores (called once per scorer, across
// every surviving node) maps them into [0, MaxNodeScore].
type Scorer interface {
	Name() string
	Score(pod *corev1.Pod, node *state.NodeState) (uint64, error)
	NormalizeScores(raw map[string]uint64)
}

// Framework bundles one pipeline of plugins. NewDefaultFramework wires the
// concrete plugin set described in SPEC_FULL.md §4.4.
type Framework struct {
	Sorter     QueueSort
	PreFilters []PreFilter
	Filters    []Filter
	Scorers    []Scorer
}

// NodeSelection is the scheduler's verdict for a single pod: either the
// chosen node, or the reasons every candidate (or the pod itself) was
// rejected.
type NodeSelection struct {
	Selected *state.NodeState
	Rejected []orcherr.Rejection
}

// ChooseNode runs the full pipeline for a single pod against nodes.
func (f *Framework) ChooseNode(pod *corev1.Pod, nodes []state.NodeState) NodeSelection {
	for _, pf := range f.PreFilters {
		if err := pf.PreFilter(pod, nodes); err != nil {
			return NodeSelection{Rejected: []orcherr.Rejection{{NodeName: "*", Reason: err.Error()}}}
		}
	}

	var survivors []state.NodeState
	var rejected []orcherr.Rejection
	for i := range nodes {
		n := nodes[i]
		ok := true
		for _, flt := range f.Filters {
			if err := flt.Filter(pod, &n); err != nil {
				rejected = append(rejected, orcherr.Rejection{NodeName: n.NodeName, Reason: err.Error()})
				ok = false
				break
			}
		}
		if ok {
			survivors = append(survivors, n)
		}
	}

	klog.V(4).Infof("scheduler: %d/%d nodes survived filtering for pod %s", len(survivors), len(nodes), pod.Name)

	if len(survivors) == 0 {
		return NodeSelection{Rejected: rejected}
	}

	total := make(map[string]uint64, len(survivors))
	for _, scorer := range f.Scorers {
		raw := make(map[string]uint64, len(survivors))
		for _, n := range survivors {
			n := n
			s, err := scorer.Score(pod, &n)
			if err != nil {
				return NodeSelection{Rejected: []orcherr.Rejection{{NodeName: n.NodeName, Reason: err.Error()}}}
			}
			raw[n.NodeName] = s
		}
		scorer.NormalizeScores(raw)
		for name, s := range raw {
			total[name] += s
		}
	}

	winner, err := pickWinner(total)
	if err != nil {
		return NodeSelection{Rejected: []orcherr.Rejection{{NodeName: "*", Reason: err.Error()}}}
	}

	for i := range survivors {
		if survivors[i].NodeName == winner {
			selected := survivors[i]
			return NodeSelection{Selected: &selected, Rejected: rejected}
		}
	}
	return NodeSelection{Rejected: []orcherr.Rejection{{NodeName: "*", Reason: "internal: winner not found among survivors"}}}
}

// pickWinner collects the node names with the maximum total score and
// returns one: deterministic if there's a single winner, uniformly random
// among ties otherwise.
func pickWinner(total map[string]uint64) (string, error) {
	if len(total) == 0 {
		return "", errNoScores
	}
	names := make([]string, 0, len(total))
	for n := range total {
		names = append(names, n)
	}
	sort.Strings(names) // fixed iteration order before any randomness is applied

	var max uint64
	for _, n := range names {
		if total[n] > max {
			max = total[n]
		}
	}
	var winners []string
	for _, n := range names {
		if total[n] == max {
			winners = append(winners, n)
		}
	}
	if len(winners) == 1 {
		return winners[0], nil
	}
	return winners[rand.Intn(len(winners))], nil
}

type schedErr string

func (e schedErr) Error() string { return string(e) }

const errNoScores = schedErr("no nodes with max score found")
