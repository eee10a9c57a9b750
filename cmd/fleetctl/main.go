/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

// fleetctl is the control-plane CLI: a thin wrapper over internal/cluster,
// internal/state, internal/resource, internal/scheduler and
// internal/reconcile. It never embeds placement or reconciliation logic
// itself, only argument parsing and output formatting.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

// Exit codes mirror SPEC_FULL.md §6: 0 success, 1 any error, 2 validation
// failure (bad arguments, a manifest that fails validation, unknown
// resource kind).
const (
	exitOK         = 0
	exitError      = 1
	exitValidation = 2
)

var (
	contextName string
	configPath  string
	env         *environment
)

var rootCmd = &cobra.Command{
	Use:   "fleetctl",
	Short: "Fleet orchestration control plane",
	Long: `fleetctl drives a cluster of nodes running the fleetd agent over SSH:
applying and deleting manifests, refreshing cached node state, inspecting
placed objects, and restarting rollouts.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadEnvironment,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&contextName, "context", "", "cluster context to use instead of current-context")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.fleetd/config.yaml)")
}

// loadEnvironment resolves the active cluster once per invocation, before
// any subcommand's RunE runs. config and create are exempt from a
// resolution failure here: the config subcommands (listing and switching
// contexts) work without a resolved cluster, and create reports a missing
// cluster itself. Every other command fails here when none resolves.
func loadEnvironment(cmd *cobra.Command, args []string) error {
	e, err := newEnvironment(configPath, contextName)
	env = e
	if err != nil && !commandIsExempt(cmd) {
		return fail(exitError, "%v", err)
	}
	return nil
}

func commandIsExempt(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" || c.Name() == "create" {
			return true
		}
	}
	return false
}

// cliError carries the exit code a command wants on failure. silent marks
// that the message was already printed inline (so Execute doesn't print it
// again); the zero value behaves like a plain error.
type cliError struct {
	code   int
	err    error
	silent bool
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

// fail prints format to stderr (unless empty) and returns a cliError coded
// with code, so the caller can just `return fail(exitValidation, "...")`
// instead of separately printing and returning an int.
func fail(code int, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}
	return &cliError{code: code, err: errors.New(msg), silent: true}
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return exitOK
	}
	var ce *cliError
	if errors.As(err, &ce) {
		if !ce.silent {
			fmt.Fprintln(os.Stderr, ce.err)
		}
		return ce.code
	}
	fmt.Fprintln(os.Stderr, err)
	return exitError
}

func main() {
	klog.InitFlags(nil)
	defer klog.Flush()
	os.Exit(Execute())
}
