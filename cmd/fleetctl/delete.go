/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fleetoss/fleetd/internal/reconcile"
	"github.com/fleetoss/fleetd/internal/resource"
)

var (
	deleteNamespace string
	deleteGrace     int
)

var deleteCmd = &cobra.Command{
	Use:   "delete <type>/<name>",
	Short: "Remove a resource from every node it was placed on",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var deleteNodeCmd = &cobra.Command{
	Use:   "node <name>",
	Short: "Remove a node from the active cluster's config",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteNode,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.AddCommand(deleteNodeCmd)
	deleteCmd.Flags().StringVarP(&deleteNamespace, "namespace", "n", "default", "namespace")
	deleteCmd.Flags().IntVar(&deleteGrace, "grace", 30, "grace period in seconds")
}

func runDelete(cmd *cobra.Command, args []string) error {
	if err := env.requireCluster(); err != nil {
		return fail(exitError, "%v", err)
	}

	kind, name, err := resource.ParseResourceArg(args[0])
	if err != nil {
		return fail(exitValidation, "%v", err)
	}

	st, err := env.loadState()
	if err != nil {
		return fail(exitError, "%v", err)
	}

	result, err := reconcile.Delete(cmd.Context(), env.cluster, st, kind, name, deleteNamespace, deleteGrace)
	if result != nil {
		for _, o := range result.Removed {
			status := "removed"
			if o.Err != nil {
				status = fmt.Sprintf("failed: %v", o.Err)
			}
			fmt.Printf("%s %s on %s: %s\n", o.Kind, o.Resource, o.Node, status)
		}
		for _, hf := range result.HookFailures {
			fmt.Fprintf(os.Stderr, "pre-remove hook failed for pod %s: %d cause(s)\n", hf.Pod, len(hf.Causes))
		}
		if persistErr := st.Persist(); persistErr != nil {
			fmt.Fprintln(os.Stderr, persistErr)
		}
	}
	if err != nil {
		return fail(exitError, "%v", err)
	}
	return nil
}

func runDeleteNode(cmd *cobra.Command, args []string) error {
	if err := env.requireCluster(); err != nil {
		return fail(exitError, "%v", err)
	}
	name := args[0]

	kept := env.cluster.Nodes[:0]
	found := false
	for _, n := range env.cluster.Nodes {
		if n.Name == name {
			found = true
			continue
		}
		kept = append(kept, n)
	}
	if !found {
		return fail(exitValidation, "delete node: no node named %q in cluster %q", name, env.cluster.Name)
	}
	env.cluster.Nodes = kept

	if err := env.config.Persist(env.configPath); err != nil {
		return fail(exitError, "%v", err)
	}
	fmt.Printf("node %s removed from cluster %s (still present in cached state until next refresh)\n", name, env.cluster.Name)
	return nil
}
