/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package scheduler

import (
	corev1 "k8s.io/api/core/v1"
)

// DefaultMilliCPURequest and DefaultMemoryRequestBytes are substituted when
// a pod's combined request (see GetPodRequests) comes to zero on that
// dimension, so every pod participates in the fit/allocation plugins even
// when authors didn't set requests.
const (
	DefaultMilliCPURequest    uint64 = 100               // 0.1 vCPU
	DefaultMemoryRequestBytes uint64 = 200 * 1024 * 1024 // 200MiB
)

// PodRequests is a pod's total resource ask: the larger of the containers'
// summed request and the largest single init container's request, per the
// Kubernetes pod-level resource semantics (init containers run serially
// before the main containers).
type PodRequests struct {
	CPUMillis uint64
	MemBytes  uint64
}

// GetPodRequests sums container requests across spec.Containers and takes
// the max across spec.InitContainers; per dimension, the result is
// whichever of the two phases asks for more. A dimension that still comes
// to zero falls back to the package default.
func GetPodRequests(spec *corev1.PodSpec) PodRequests {
	var cpuSum, memSum uint64
	for _, c := range spec.Containers {
		cpu, mem := containerRequest(c)
		cpuSum += cpu
		memSum += mem
	}

	var maxInitCPU, maxInitMem uint64
	for _, c := range spec.InitContainers {
		cpu, mem := containerRequest(c)
		if cpu > maxInitCPU {
			maxInitCPU = cpu
		}
		if mem > maxInitMem {
			maxInitMem = mem
		}
	}

	cpu := cpuSum
	if maxInitCPU > cpu {
		cpu = maxInitCPU
	}
	mem := memSum
	if maxInitMem > mem {
		mem = maxInitMem
	}
	if cpu == 0 {
		cpu = DefaultMilliCPURequest
	}
	if mem == 0 {
		mem = DefaultMemoryRequestBytes
	}
	return PodRequests{CPUMillis: cpu, MemBytes: mem}
}

func containerRequest(c corev1.Container) (cpuMillis, memBytes uint64) {
	if c.Resources.Requests == nil {
		return 0, 0
	}
	if cpu, ok := c.Resources.Requests[corev1.ResourceCPU]; ok {
		cpuMillis = uint64(cpu.MilliValue())
	}
	if mem, ok := c.Resources.Requests[corev1.ResourceMemory]; ok {
		memBytes = uint64(mem.Value())
	}
	return cpuMillis, memBytes
}
