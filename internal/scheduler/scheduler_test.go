/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package scheduler

import (
	"testing"

	"gotest.tools/assert"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/fleetoss/fleetd/internal/inventory"
	"github.com/fleetoss/fleetd/internal/state"
)

func healthyNode(name string, cpus int, memMiB uint64) state.NodeState {
	return state.NodeState{
		NodeName: name,
		Status:   state.StatusHealthy,
		HostInfo: &inventory.NodeSystemInfo{
			Hostname:      name,
			AgentVersion:  "1.0.0",
			EngineVersion: "1.0.0",
			Platform:      inventory.Platform{Arch: "amd64"},
			System: &inventory.SystemInfo{
				NumCPUs:        cpus,
				TotalMemoryMiB: memMiB,
			},
		},
	}
}

func simplePod(name string) *corev1.Pod {
	return &corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "default"}}
}

func TestUnschedulableFilterRejectsNonHealthyNode(t *testing.T) {
	n := healthyNode("n1", 4, 8192)
	n.Status = state.StatusUnhealthy
	err := UnschedulableFilter{}.Filter(simplePod("p"), &n)
	assert.ErrorContains(t, err, "node is unschedulable")
}

func TestNodeSelectorFilterReasonFormat(t *testing.T) {
	n := healthyNode("n1", 4, 8192)
	pod := simplePod("p")
	pod.Spec.NodeSelector = map[string]string{"skate.io/arch": "arm64"}
	err := NodeSelectorFilter{}.Filter(pod, &n)
	assert.Error(t, err, "node selector skate.io/arch:arm64 did not match")
}

func podRequesting(name string, cpuMillis int64, memBytes int64) *corev1.Pod {
	pod := simplePod(name)
	pod.Spec.Containers = []corev1.Container{{
		Name: name,
		Resources: corev1.ResourceRequirements{
			Requests: corev1.ResourceList{
				corev1.ResourceCPU:    *resource.NewMilliQuantity(cpuMillis, resource.DecimalSI),
				corev1.ResourceMemory: *resource.NewQuantity(memBytes, resource.BinarySI),
			},
		},
	}}
	return pod
}

func TestNodeResourcesFitRejectsInsufficientCPU(t *testing.T) {
	n := healthyNode("n1", 1, 8192) // 1 CPU == 1000m allocatable
	pod := podRequesting("p", 2000, 100*1024*1024)
	err := NodeResourcesFit{}.Filter(pod, &n)
	assert.ErrorContains(t, err, "cpu")
}

func TestNodeResourcesFitRejectsInsufficientMemory(t *testing.T) {
	n := healthyNode("n1", 4, 256) // 256MiB allocatable
	pod := podRequesting("p", 100, 512*1024*1024)
	err := NodeResourcesFit{}.Filter(pod, &n)
	assert.ErrorContains(t, err, "memory")
}

func TestNodeResourcesFitAdmitsWhenCapacityAllows(t *testing.T) {
	n := healthyNode("n1", 4, 8192)
	pod := podRequesting("p", 500, 100*1024*1024)
	assert.NilError(t, NodeResourcesFit{}.Filter(pod, &n))
}

func TestChooseNodePicksHighestScore(t *testing.T) {
	fw := NewDefaultFramework()
	busy := healthyNode("busy", 2, 2048)
	busy.HostInfo.System.Pods = make([]inventory.ObjectListItem, 10)
	idle := healthyNode("idle", 8, 16384)

	sel := fw.ChooseNode(simplePod("p"), []state.NodeState{busy, idle})
	assert.Assert(t, sel.Selected != nil)
	assert.Equal(t, sel.Selected.NodeName, "idle")
}

func TestChooseNodeRejectsWhenAllUnhealthy(t *testing.T) {
	fw := NewDefaultFramework()
	n1 := healthyNode("n1", 4, 8192)
	n1.Status = state.StatusUnknown
	sel := fw.ChooseNode(simplePod("p"), []state.NodeState{n1})
	assert.Assert(t, sel.Selected == nil)
	assert.Assert(t, len(sel.Rejected) > 0)
}

func TestScoresAreBoundedByMax(t *testing.T) {
	n := healthyNode("n1", 4, 8192)
	raw := map[string]uint64{"n1": 10, "n2": 50, "n3": 75}
	normalizeScores(raw)
	for _, v := range raw {
		assert.Assert(t, v <= MaxNodeScore)
	}
	_ = n
}

func TestInvertedNormalizeFlipsOrder(t *testing.T) {
	raw := map[string]uint64{"low": 1, "high": 9}
	invertedNormalizeScores(raw)
	assert.Assert(t, raw["low"] > raw["high"])
}
