/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleetoss/fleetd/internal/cluster"
)

var (
	createNodeHost       string
	createNodePort       int
	createNodeSubnetCIDR string
	createNodeUser       string
	createNodeKey        string
)

// createCmd only implements "create node ..."; other resource kinds are
// created through apply, not through fleetctl create.
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a node in the active cluster's config",
}

var createNodeCmd = &cobra.Command{
	Use:   "node <name>",
	Short: "Add a node to the active cluster's config",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreateNode,
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.AddCommand(createNodeCmd)
	createNodeCmd.Flags().StringVar(&createNodeHost, "host", "", "SSH host (required)")
	createNodeCmd.Flags().IntVar(&createNodePort, "port", 22, "SSH port")
	createNodeCmd.Flags().StringVar(&createNodeSubnetCIDR, "subnet-cidr", "", "subnet CIDR this node owns")
	createNodeCmd.Flags().StringVar(&createNodeUser, "user", "", "SSH user (falls back to the cluster default)")
	createNodeCmd.Flags().StringVar(&createNodeKey, "key", "", "SSH private key path (falls back to the cluster default)")
}

func runCreateNode(cmd *cobra.Command, args []string) error {
	if err := env.requireCluster(); err != nil {
		return fail(exitError, "%v", err)
	}
	if createNodeHost == "" {
		return fail(exitValidation, "create node: --host is required")
	}
	name := args[0]
	if _, exists := env.cluster.NodeByName(name); exists {
		return fail(exitValidation, "create node: node %q already exists in cluster %q", name, env.cluster.Name)
	}

	node := cluster.Node{
		Name: name, Host: createNodeHost, Port: createNodePort,
		SubnetCIDR: createNodeSubnetCIDR, User: createNodeUser, Key: createNodeKey,
	}
	env.cluster.Nodes = append(env.cluster.Nodes, node)
	if err := env.cluster.Validate(); err != nil {
		return fail(exitValidation, "%v", err)
	}
	if err := env.config.Persist(env.configPath); err != nil {
		return fail(exitError, "%v", err)
	}
	fmt.Printf("node %s added to cluster %s (Unknown until next refresh)\n", name, env.cluster.Name)
	return nil
}
