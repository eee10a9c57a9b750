/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit fleetctl's own config file",
}

var configCurrentContextCmd = &cobra.Command{
	Use:   "current-context",
	Short: "Print the config's current-context",
	Args:  cobra.NoArgs,
	RunE:  runConfigCurrentContext,
}

var configGetContextsCmd = &cobra.Command{
	Use:   "get-contexts",
	Short: "List every cluster context in the config",
	Args:  cobra.NoArgs,
	RunE:  runConfigGetContexts,
}

var configUseContextCmd = &cobra.Command{
	Use:   "use-context <name>",
	Short: "Switch the config's current-context",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUseContext,
}

var configDeleteContextCmd = &cobra.Command{
	Use:   "delete-context <name>",
	Short: "Remove a cluster context from the config",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigDeleteContext,
}

var configGetNodesCmd = &cobra.Command{
	Use:   "get-nodes",
	Short: "List the active cluster's nodes",
	Args:  cobra.NoArgs,
	RunE:  runConfigGetNodes,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configCurrentContextCmd, configGetContextsCmd, configUseContextCmd, configDeleteContextCmd, configGetNodesCmd)
}

func requireConfigLoaded() error {
	if env == nil || env.config == nil {
		return fail(exitError, "config: failed to load config file")
	}
	return nil
}

func runConfigCurrentContext(cmd *cobra.Command, args []string) error {
	if err := requireConfigLoaded(); err != nil {
		return err
	}
	if env.config.CurrentContext == "" {
		fmt.Println("(none)")
		return nil
	}
	fmt.Println(env.config.CurrentContext)
	return nil
}

func runConfigGetContexts(cmd *cobra.Command, args []string) error {
	if err := requireConfigLoaded(); err != nil {
		return err
	}
	for _, c := range env.config.Clusters {
		marker := "  "
		if c.Name == env.config.CurrentContext {
			marker = "* "
		}
		fmt.Printf("%s%s\t(%d nodes)\n", marker, c.Name, len(c.Nodes))
	}
	return nil
}

func runConfigUseContext(cmd *cobra.Command, args []string) error {
	if err := requireConfigLoaded(); err != nil {
		return err
	}
	if _, err := env.config.ActiveCluster(args[0]); err != nil {
		return fail(exitValidation, "%v", err)
	}
	env.config.CurrentContext = args[0]
	if err := env.config.Persist(env.configPath); err != nil {
		return fail(exitError, "%v", err)
	}
	fmt.Printf("switched to context %q\n", args[0])
	return nil
}

func runConfigDeleteContext(cmd *cobra.Command, args []string) error {
	if err := requireConfigLoaded(); err != nil {
		return err
	}
	name := args[0]
	idx := -1
	for i, c := range env.config.Clusters {
		if c.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fail(exitValidation, "config delete-context: no context named %q", name)
	}
	env.config.Clusters = append(env.config.Clusters[:idx], env.config.Clusters[idx+1:]...)
	if env.config.CurrentContext == name {
		env.config.CurrentContext = ""
	}
	if err := env.config.Persist(env.configPath); err != nil {
		return fail(exitError, "%v", err)
	}
	fmt.Printf("deleted context %q\n", name)
	return nil
}

func runConfigGetNodes(cmd *cobra.Command, args []string) error {
	if err := requireConfigLoaded(); err != nil {
		return err
	}
	if err := env.requireCluster(); err != nil {
		return fail(exitError, "%v", err)
	}
	for _, n := range env.cluster.Nodes {
		fmt.Printf("%s\t%s:%d\n", n.Name, n.Host, n.Port)
	}
	return nil
}
