/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package state

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Watcher notifies a caller when a cluster's cache file changes on disk,
// so a long-running command (e.g. a status dashboard) can pick up state
// written by a concurrent `fleetctl refresh` without polling.
type Watcher struct {
	fsw *fsnotify.Watcher
}

// WatchCluster starts watching clusterName's cache file. The returned
// channel receives the cluster name each time the underlying file is
// written or renamed into place (our own atomic-rename Persist triggers a
// CREATE event on the target path, not a WRITE on it). Call Close when done.
func WatchCluster(ctx context.Context, clusterName string) (*Watcher, <-chan string, error) {
	path, err := CachePath(clusterName)
	if err != nil {
		return nil, nil, err
	}
	dir, err := CacheDir()
	if err != nil {
		return nil, nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, errors.Wrap(err, "creating fsnotify watcher")
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, nil, errors.Wrapf(err, "watching cache dir %s", dir)
	}

	out := make(chan string, 1)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if ev.Name != path {
					continue
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
					continue
				}
				select {
				case out <- clusterName:
				default:
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				klog.V(3).Infof("watching cache dir: %v", err)
			}
		}
	}()

	return &Watcher{fsw: fsw}, out, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
