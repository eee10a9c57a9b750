/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fleetoss/fleetd/internal/reconcile"
	"github.com/fleetoss/fleetd/internal/resource"
)

var (
	rolloutNamespace string
	rolloutDryRun    bool
	rolloutAssumeYes bool
)

var rolloutCmd = &cobra.Command{
	Use:   "rollout",
	Short: "Manage rollouts of scheduled resources",
}

var rolloutRestartCmd = &cobra.Command{
	Use:   "restart {deployment|daemonset}/<name>",
	Short: "Taint and reapply every pod a Deployment or DaemonSet owns",
	Args:  cobra.ExactArgs(1),
	RunE:  runRolloutRestart,
}

func init() {
	rootCmd.AddCommand(rolloutCmd)
	rolloutCmd.AddCommand(rolloutRestartCmd)
	rolloutRestartCmd.Flags().StringVarP(&rolloutNamespace, "namespace", "n", "default", "namespace")
	rolloutRestartCmd.Flags().BoolVar(&rolloutDryRun, "dry-run", false, "taint hashes without reapplying")
	rolloutRestartCmd.Flags().BoolVarP(&rolloutAssumeYes, "yes", "y", false, "skip the confirmation prompt")
}

func runRolloutRestart(cmd *cobra.Command, args []string) error {
	if err := env.requireCluster(); err != nil {
		return fail(exitError, "%v", err)
	}

	kind, name, err := resource.ParseResourceArg(args[0])
	if err != nil {
		return fail(exitValidation, "%v", err)
	}
	if kind != resource.KindDeployment && kind != resource.KindDaemonSet {
		return fail(exitValidation, "rollout restart: unsupported resource kind %q", kind)
	}

	if !rolloutAssumeYes && !rolloutDryRun {
		if !confirm(fmt.Sprintf("restart %s/%s in namespace %s?", kind, name, rolloutNamespace)) {
			fmt.Println("aborted")
			return nil
		}
	}

	st, err := env.loadState()
	if err != nil {
		return fail(exitError, "%v", err)
	}

	result, err := reconcile.RolloutRestart(cmd.Context(), env.cluster, st, kind, name, rolloutNamespace, rolloutDryRun, env.framework)
	if result != nil {
		// RolloutRestart mutates st in place (taints hashes) even on a
		// dry run, so it can report what would change; only persist that
		// mutation to the cache when this wasn't a dry run.
		if !rolloutDryRun {
			if persistErr := result.State.Persist(); persistErr != nil {
				fmt.Fprintln(os.Stderr, persistErr)
			}
		}
		printApplyResult(args[0], result)
	}
	if err != nil {
		return fail(exitError, "%v", err)
	}
	return nil
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
