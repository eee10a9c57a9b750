/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleetoss/fleetd/internal/state"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh and persist the active cluster's cached node state",
	Args:  cobra.NoArgs,
	RunE:  runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	if err := env.requireCluster(); err != nil {
		return fail(exitError, "%v", err)
	}

	prev, err := env.loadState()
	if err != nil {
		return fail(exitError, "%v", err)
	}

	next, result, err := state.Refresh(cmd.Context(), env.cluster, prev)
	if err != nil {
		return fail(exitError, "%v", err)
	}
	if err := next.Persist(); err != nil {
		return fail(exitError, "%v", err)
	}

	fmt.Printf("cluster %s: %d nodes (%d new, %d orphaned)\n", next.ClusterName, len(next.Nodes), result.NewNodes, result.OrphanedNodes)
	for _, n := range next.Nodes {
		fmt.Printf("  %s\t%s\n", n.NodeName, n.Status)
	}
	return nil
}
