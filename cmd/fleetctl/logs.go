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

var logsNamespace string

var logsCmd = &cobra.Command{
	Use:   "logs <pod>",
	Short: "Print container logs from every node a pod is placed on",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.Flags().StringVarP(&logsNamespace, "namespace", "n", "default", "namespace")
}

func runLogs(cmd *cobra.Command, args []string) error {
	if err := env.requireCluster(); err != nil {
		return fail(exitError, "%v", err)
	}
	name := args[0]

	st, err := env.loadState()
	if err != nil {
		return fail(exitError, "%v", err)
	}
	placed := st.LocatePods(name, logsNamespace)
	if len(placed) == 0 {
		return fail(exitError, "logs: no pod %q found in namespace %q", name, logsNamespace)
	}

	ctx := cmd.Context()
	clients, connErr := nodeclient.Connect(ctx, env.cluster)
	defer func() { _ = nodeclient.CloseAll(clients) }()

	var failed bool
	for _, p := range placed {
		cl := findClient(clients, p.Node.NodeName)
		if cl == nil {
			fmt.Fprintf(os.Stderr, "logs: node %s unreachable\n", p.Node.NodeName)
			failed = true
			continue
		}
		// "logs <id>" is the agent's container-log hook; its exact shape
		// lives in the agent, not the control plane.
		out, err := cl.Execute(ctx, fmt.Sprintf("logs %s", p.Item.Name.String()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "logs: %s on %s: %v\n", name, p.Node.NodeName, err)
			failed = true
			continue
		}
		fmt.Print(out)
	}
	if connErr != nil {
		fmt.Fprintln(os.Stderr, connErr)
	}
	if failed {
		return fail(exitError, "")
	}
	return nil
}

func findClient(clients []nodeclient.Client, name string) nodeclient.Client {
	for _, c := range clients {
		if c.NodeName() == name {
			return c
		}
	}
	return nil
}
