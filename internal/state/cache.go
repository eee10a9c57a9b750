/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// CacheDir returns ~/.fleetd/cache, creating it if it doesn't yet exist.
func CacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolving home directory")
	}
	dir := filepath.Join(home, ".fleetd", "cache")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating cache dir %s", dir)
	}
	return dir, nil
}

// Slugify lowercases s and replaces every run of non alphanumeric
// characters with a single dash, trimming leading/trailing dashes. It
// mirrors the cache-filename convention used for cluster state files.
func Slugify(s string) string {
	var sb strings.Builder
	prevDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				sb.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

// CachePath returns the path the cluster's state file lives at.
func CachePath(clusterName string) (string, error) {
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, Slugify(clusterName)+".state.json"), nil
}

// Persist writes s to its cache file atomically (temp file + rename).
func (s *ClusterState) Persist() error {
	path, err := CachePath(s.ClusterName)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshalling cluster state")
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return errors.Wrap(err, "creating temp state file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp state file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp state file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrapf(err, "renaming temp state file to %s", path)
	}
	klog.V(4).Infof("persisted state for cluster %s to %s", s.ClusterName, path)
	return nil
}

// LoadClusterState reads a cluster's cached state, or returns a fresh empty
// state (not an error) if no cache file exists yet.
func LoadClusterState(clusterName string) (*ClusterState, error) {
	path, err := CachePath(clusterName)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &ClusterState{ClusterName: clusterName}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading state file %s", path)
	}
	var s ClusterState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(err, "parsing state file %s", path)
	}
	return &s, nil
}
