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

var describeNamespace string

var describeCmd = &cobra.Command{
	Use:   "describe <type>/<name>",
	Short: "Show the stored manifest and placement for one resource",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringVarP(&describeNamespace, "namespace", "n", "default", "namespace")
}

func runDescribe(cmd *cobra.Command, args []string) error {
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

	if kind == resource.KindPod {
		placed := st.LocatePods(name, describeNamespace)
		if len(placed) == 0 {
			return fail(exitError, "describe: no pod %q found in namespace %q", name, describeNamespace)
		}
		for _, p := range placed {
			describeItem(p.Item.Name.String(), p.Node.NodeName, p.Item.ManifestHash, p.Item.Generation, p.Item.Manifest)
		}
		return nil
	}

	objects := st.LocateObjects(kind.ToInventoryType(), name, describeNamespace)
	if len(objects) == 0 {
		return fail(exitError, "describe: no %s named %q found in namespace %q", kind, name, describeNamespace)
	}
	for _, o := range objects {
		describeItem(o.Name.String(), "", o.ManifestHash, o.Generation, o.Manifest)
	}
	return nil
}

func describeItem(name, node, hash string, generation int64, manifest string) {
	fmt.Printf("Name:\t\t%s\n", name)
	if node != "" {
		fmt.Printf("Node:\t\t%s\n", node)
	}
	fmt.Printf("Hash:\t\t%s\n", hash)
	fmt.Printf("Generation:\t%d\n", generation)
	fmt.Println("Manifest:")
	fmt.Println(manifest)
	fmt.Println("---")
}
