/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fleetoss/fleetd/internal/orcherr"
	"github.com/fleetoss/fleetd/internal/reconcile"
)

var applyFiles []string

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply one or more manifest files to the active cluster",
	Long: `apply parses, fixes up, and schedules or broadcasts every resource in
each given manifest file, persisting the resulting cluster state after each
file.

Example:
  fleetctl apply -f web.yaml -f db-secret.yaml`,
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringArrayVarP(&applyFiles, "file", "f", nil, "manifest file (repeatable)")
}

func runApply(cmd *cobra.Command, args []string) error {
	if err := env.requireCluster(); err != nil {
		return fail(exitError, "%v", err)
	}
	if len(applyFiles) == 0 {
		return fail(exitValidation, "apply: at least one -f FILE is required")
	}

	prev, err := env.loadState()
	if err != nil {
		return fail(exitError, "%v", err)
	}

	ctx := cmd.Context()
	var failed, invalid bool
	for _, path := range applyFiles {
		manifest, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "apply: reading %s: %v\n", path, err)
			return fail(exitValidation, "")
		}

		result, err := reconcile.Apply(ctx, env.cluster, prev, manifest, env.framework)
		if result != nil {
			prev = result.State
			if persistErr := prev.Persist(); persistErr != nil {
				fmt.Fprintln(os.Stderr, persistErr)
			}
			printApplyResult(path, result)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "apply: %s: %v\n", path, err)
			var ve *orcherr.ValidationError
			if errors.As(err, &ve) {
				invalid = true
			}
			failed = true
		}
	}
	if invalid {
		return fail(exitValidation, "")
	}
	if failed {
		return fail(exitError, "")
	}
	return nil
}

func printApplyResult(path string, r *reconcile.ApplyResult) {
	for _, o := range r.Outcomes {
		status := "applied"
		if o.Err != nil {
			status = fmt.Sprintf("failed: %v", o.Err)
		}
		fmt.Printf("%s\t%s %s -> %s: %s\n", path, o.Kind, o.Resource, o.Node, status)
	}
	for _, s := range r.Skipped {
		fmt.Printf("%s\t%s unchanged, skipped\n", path, s)
	}
	for _, rej := range r.Rejections {
		fmt.Printf("%s\tpod %s unschedulable (%d nodes rejected it)\n", path, rej.Pod, len(rej.Rejected))
	}
}
