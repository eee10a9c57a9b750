/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleetoss/fleetd/internal/resource"
)

var getNamespace string

var getCmd = &cobra.Command{
	Use:   "get {pods|deployments|daemonsets|...}",
	Short: "List every placed object of a given kind",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().StringVarP(&getNamespace, "namespace", "n", "", "namespace (all namespaces if empty)")
}

func runGet(cmd *cobra.Command, args []string) error {
	if err := env.requireCluster(); err != nil {
		return fail(exitError, "%v", err)
	}

	kind, err := resource.ParseKind(args[0])
	if err != nil {
		return fail(exitValidation, "%v", err)
	}

	st, err := env.loadState()
	if err != nil {
		return fail(exitError, "%v", err)
	}

	if kind == resource.KindPod {
		placed := st.LocatePods("", getNamespace)
		fmt.Printf("%-30s %-12s %-10s\n", "NAME", "NAMESPACE", "NODE")
		for _, p := range placed {
			fmt.Printf("%-30s %-12s %-10s\n", p.Item.Name.Name, p.Item.Name.Namespace, p.Node.NodeName)
		}
		return nil
	}

	objects := st.LocateObjects(kind.ToInventoryType(), "", getNamespace)
	fmt.Printf("%-30s %-12s %-18s\n", "NAME", "NAMESPACE", "HASH")
	for _, o := range objects {
		fmt.Printf("%-30s %-12s %-18s\n", o.Name.Name, o.Name.Namespace, o.ManifestHash)
	}
	return nil
}
