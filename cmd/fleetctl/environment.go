/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package main

import (
	"github.com/pkg/errors"

	"github.com/fleetoss/fleetd/internal/cluster"
	"github.com/fleetoss/fleetd/internal/scheduler"
	"github.com/fleetoss/fleetd/internal/state"
)

// environment bundles everything a subcommand needs: the resolved config,
// the active cluster (if one could be resolved) and the scheduler framework
// used to place pod-bearing resources. The cluster's cached state is not
// held here; loadState reads it on demand.
type environment struct {
	configPath string
	config     *cluster.Config
	cluster    *cluster.Cluster
	framework  *scheduler.Framework
}

func newEnvironment(configPath, contextName string) (*environment, error) {
	cfg, err := cluster.Load(configPath)
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		configPath, err = cluster.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	env := &environment{configPath: configPath, config: cfg, framework: scheduler.NewDefaultFramework()}

	active, err := cfg.ActiveCluster(contextName)
	if err != nil {
		// Some commands (config get-contexts, config use-context) operate
		// without a resolvable cluster; let the caller decide whether
		// that's fatal.
		return env, err
	}
	if verr := active.Validate(); verr != nil {
		return env, errors.Wrap(verr, "validating cluster config")
	}
	env.cluster = active
	return env, nil
}

// loadState reads the active cluster's cached ClusterState, erroring if no
// cluster was resolved.
func (e *environment) loadState() (*state.ClusterState, error) {
	if e.cluster == nil {
		return nil, errors.New("no active cluster context")
	}
	return state.LoadClusterState(e.cluster.Name)
}

// requireCluster returns an error wrapping "no active cluster context" if
// the environment never resolved one, so subcommands can fail fast with a
// consistent message instead of nil-pointer-dereferencing on e.cluster.
func (e *environment) requireCluster() error {
	if e == nil || e.cluster == nil {
		return errors.New("no active cluster context: set one with 'fleetctl config use-context' or pass --context")
	}
	return nil
}
