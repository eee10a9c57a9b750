/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package orcherr

import "go.uber.org/multierr"

// NodeResult is a single node's outcome from a fan-out call, tagged with
// the node name since the order results arrive in carries no meaning.
type NodeResult[T any] struct {
	NodeName string
	Value    T
	Err      error
}

// Partition splits a slice of NodeResult into the ok values and an
// aggregated error for everything that failed. A nil error and an empty
// ok slice never both happen when results is nonempty.
func Partition[T any](results []NodeResult[T]) (ok []NodeResult[T], err error) {
	for _, r := range results {
		if r.Err != nil {
			err = multierr.Append(err, &Unreachable{Node: r.NodeName, Err: r.Err})
			continue
		}
		ok = append(ok, r)
	}
	return ok, err
}

// Combine folds a list of possibly-nil errors from independent items
// (resources, pods, nodes) into one aggregate error, or nil if every item
// succeeded. Unlike a plain Wrap chain, a failure here never hides the
// others.
func Combine(errs ...error) error {
	var out error
	for _, e := range errs {
		out = multierr.Append(out, e)
	}
	return out
}
