/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

// Package orcherr defines the error taxonomy the core uses to classify
// failures so callers can decide what aborts a run and what merely
// narrows it. None of these ever panic across an RPC boundary: every
// node operation returns one of these wrapped in the aggregate result.
package orcherr

import "fmt"

// ValidationError means a manifest failed a structural check before any
// RPC was issued. No node was contacted.
type ValidationError struct {
	Resource string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Resource, e.Reason)
}

// Unreachable means a connect/transport failure to one node. It never
// fails the whole batch: the node is marked Unknown and excluded from
// scheduling for the run.
type Unreachable struct {
	Node string
	Err  error
}

func (e *Unreachable) Error() string {
	return fmt.Sprintf("node %s unreachable: %v", e.Node, e.Err)
}

func (e *Unreachable) Unwrap() error { return e.Err }

// AgentError means the remote agent exited nonzero. It carries enough to
// surface to the user; only the one resource/node pair is aborted.
type AgentError struct {
	Node     string
	ExitCode int
	Stderr   string
}

func (e *AgentError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("agent on %s exited %d: %s", e.Node, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("agent on %s exited %d", e.Node, e.ExitCode)
}

// HookFailure is the aggregate failure of a pre-remove hook. It blocks
// deletion of the one pod it was guarding, not of other pods in the batch.
type HookFailure struct {
	Pod    string
	Causes []error
}

func (e *HookFailure) Error() string {
	return fmt.Sprintf("pre-remove hook failed for pod %s: %s", e.Pod, joinErrs(e.Causes))
}

// SchedulingRejection means no node satisfied the filters for one pod. The
// batch continues with the remaining pods.
type SchedulingRejection struct {
	Pod      string
	Rejected []Rejection
}

// Rejection is one node's reason for refusing a pod.
type Rejection struct {
	NodeName string
	Reason   string
}

func (e *SchedulingRejection) Error() string {
	return fmt.Sprintf("no node accepted pod %s (%d rejections)", e.Pod, len(e.Rejected))
}

// Internal indicates a bug (a scorer/filter returned an error it should
// never return in practice). It aborts the whole invocation.
type Internal struct {
	Reason string
}

func (e *Internal) Error() string {
	return fmt.Sprintf("internal error: %s", e.Reason)
}

func joinErrs(errs []error) string {
	s := ""
	for i, e := range errs {
		if i > 0 {
			s += "; "
		}
		s += e.Error()
	}
	return s
}
