/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package nodeclient

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/fleetoss/fleetd/internal/cluster"
	"github.com/fleetoss/fleetd/internal/orcherr"
)

// Connect dials every node in c concurrently and partitions the results:
// clients holds one *SSHClient per reachable node, errs is non-nil whenever
// at least one node could not be dialed. Both may be non-empty at once; per
// SPEC_FULL.md §4.1 a partial connect never aborts the whole run.
func Connect(ctx context.Context, c *cluster.Cluster) (clients []Client, errs error) {
	results := make([]orcherr.NodeResult[Client], len(c.Nodes))
	var g errgroup.Group
	for i, n := range c.Nodes {
		i, n := i, n
		g.Go(func() error {
			client, err := DialNode(ctx, c, n)
			if err != nil {
				results[i] = orcherr.NodeResult[Client]{NodeName: n.Name, Err: err}
				return nil
			}
			results[i] = orcherr.NodeResult[Client]{NodeName: n.Name, Value: client}
			return nil
		})
	}
	_ = g.Wait() // each goroutine records its own failure; g itself never errors

	ok, err := orcherr.Partition(results)
	clients = make([]Client, 0, len(ok))
	for _, r := range ok {
		clients = append(clients, r.Value)
	}
	if err != nil {
		klog.V(2).Infof("cluster %s: %d of %d nodes unreachable", c.Name, len(c.Nodes)-len(ok), len(c.Nodes))
	}
	return clients, err
}

// CloseAll closes every client, collecting (but not stopping on) individual
// close errors.
func CloseAll(clients []Client) error {
	var mu sync.Mutex
	var errs []error
	var wg sync.WaitGroup
	for _, c := range clients {
		c := c
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Close(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if len(errs) == 0 {
		return nil
	}
	return orcherr.Combine(errs...)
}

// FanOut runs fn against every client concurrently and returns one
// NodeResult per client, in client order (not completion order), so callers
// can zip results back against the originating node deterministically.
func FanOut[T any](ctx context.Context, clients []Client, fn func(ctx context.Context, c Client) (T, error)) []orcherr.NodeResult[T] {
	results := make([]orcherr.NodeResult[T], len(clients))
	var g errgroup.Group
	for i, c := range clients {
		i, c := i, c
		g.Go(func() error {
			v, err := fn(ctx, c)
			results[i] = orcherr.NodeResult[T]{NodeName: c.NodeName(), Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
