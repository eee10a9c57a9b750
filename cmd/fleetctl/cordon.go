/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fleetoss/fleetd/internal/nodeclient"
)

var cordonCmd = &cobra.Command{
	Use:   "cordon <node>",
	Short: "Mark a node unschedulable",
	Args:  cobra.ExactArgs(1),
	RunE:  runCordon,
}

var uncordonCmd = &cobra.Command{
	Use:   "uncordon <node>",
	Short: "Mark a node schedulable again",
	Args:  cobra.ExactArgs(1),
	RunE:  runUncordon,
}

func init() {
	rootCmd.AddCommand(cordonCmd)
	rootCmd.AddCommand(uncordonCmd)
}

func runCordon(cmd *cobra.Command, args []string) error {
	return runCordonUncordon(cmd, args, "cordon")
}

func runUncordon(cmd *cobra.Command, args []string) error {
	return runCordonUncordon(cmd, args, "uncordon")
}

func runCordonUncordon(cmd *cobra.Command, args []string, verb string) error {
	if err := env.requireCluster(); err != nil {
		return fail(exitError, "%v", err)
	}
	nodeName := args[0]
	if _, ok := env.cluster.NodeByName(nodeName); !ok {
		return fail(exitValidation, "%s: no node named %q in cluster %q", verb, nodeName, env.cluster.Name)
	}

	ctx := cmd.Context()
	clients, connErr := nodeclient.Connect(ctx, env.cluster)
	defer func() { _ = nodeclient.CloseAll(clients) }()

	cl := findClient(clients, nodeName)
	if cl == nil {
		if connErr != nil {
			fmt.Fprintln(os.Stderr, connErr)
		}
		return fail(exitError, "%s: node %s unreachable", verb, nodeName)
	}
	if _, err := cl.Execute(ctx, verb); err != nil {
		return fail(exitError, "%v", err)
	}
	fmt.Printf("node %s %sed\n", nodeName, verb)
	return nil
}
