/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package cluster

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

// Config is the on-disk ~/.fleetd/config.yaml shape: a context name and an
// ordered list of clusters, mirroring kubeconfig's current-context idiom.
type Config struct {
	CurrentContext string    `yaml:"current-context"`
	Clusters       []Cluster `yaml:"clusters"`
}

// DefaultConfigPath returns ~/.fleetd/config.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolving home directory")
	}
	return filepath.Join(home, ".fleetd", "config.yaml"), nil
}

// Load reads and parses the config file at path. An empty path resolves to
// DefaultConfigPath().
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	return &cfg, nil
}

// Persist writes the config back to path atomically (write to a temp file
// in the same directory, then rename) so a crash mid-write never corrupts
// the existing config.
func (c *Config) Persist(path string) error {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshalling config")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating config dir %s", dir)
	}
	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return errors.Wrap(err, "creating temp config file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp config file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp config file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrapf(err, "renaming temp config file to %s", path)
	}
	klog.V(4).Infof("persisted config to %s", path)
	return nil
}

// ActiveCluster resolves the cluster named by context, or CurrentContext if
// context is empty.
func (c *Config) ActiveCluster(context string) (*Cluster, error) {
	if context == "" {
		context = c.CurrentContext
	}
	if context == "" {
		return nil, errors.New("no context specified and no current-context set")
	}
	for i := range c.Clusters {
		if c.Clusters[i].Name == context {
			return &c.Clusters[i], nil
		}
	}
	return nil, errors.Errorf("no cluster named %q", context)
}
