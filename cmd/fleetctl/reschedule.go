/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package main

import (
	"github.com/spf13/cobra"

	"github.com/fleetoss/fleetd/internal/reconcile"
)

var rescheduleExclude string

var rescheduleCmd = &cobra.Command{
	Use:   "reschedule",
	Short: "Re-apply a donor node's broadcast resources across the cluster",
	Long: `reschedule picks a node with a known system snapshot and re-applies
every Service/Secret/Deployment/DaemonSet/Ingress it already carries across
the rest of the cluster. Run it after a node join or a cordon change widens
the set of nodes a broadcast resource should reach.`,
	Args: cobra.NoArgs,
	RunE: runReschedule,
}

func init() {
	rootCmd.AddCommand(rescheduleCmd)
	rescheduleCmd.Flags().StringVar(&rescheduleExclude, "exclude-node", "", "node to skip as donor (e.g. the node that just joined)")
}

func runReschedule(cmd *cobra.Command, args []string) error {
	if err := env.requireCluster(); err != nil {
		return fail(exitError, "%v", err)
	}

	st, err := env.loadState()
	if err != nil {
		return fail(exitError, "%v", err)
	}

	result, err := reconcile.Reschedule(cmd.Context(), env.cluster, st, rescheduleExclude, env.framework)
	if result != nil {
		if persistErr := result.State.Persist(); persistErr != nil {
			return fail(exitError, "%v", persistErr)
		}
		printApplyResult("reschedule", result)
	}
	if err != nil {
		return fail(exitError, "%v", err)
	}
	return nil
}
