/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package resource

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fleetoss/fleetd/internal/hashutil"
	"github.com/fleetoss/fleetd/internal/orcherr"
)

// ComputeHash computes the stable content hash described in SPEC_FULL.md
// §6: the hex of a 64-bit non-cryptographic hash over the canonicalized
// manifest, with the hash label itself excluded and the remaining labels
// folded in sorted by value (not key), so the result never depends on the
// label map's iteration order.
func ComputeHash(r Resource) (string, error) {
	labels := topLevelLabels(r)
	if labels == nil {
		return "", &orcherr.Internal{Reason: fmt.Sprintf("hash: unhandled kind %q", r.Kind)}
	}

	working := make(map[string]string, len(*labels))
	for k, v := range *labels {
		if k != labelHash {
			working[k] = v
		}
	}

	saved := *labels
	*labels = nil
	obj := activeObject(r)
	canon, err := hashutil.CanonicalYAML(obj)
	*labels = saved
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Write(canon)
	sb.WriteByte(0)
	for _, kv := range sortedByValue(working) {
		fmt.Fprintf(&sb, "%s=%s\n", kv[0], kv[1])
	}
	return hashutil.Hex([]byte(sb.String())), nil
}

// sortedByValue orders label entries by value first, key second, so the
// hash input is deterministic regardless of Go's randomized map iteration.
func sortedByValue(m map[string]string) [][2]string {
	out := make([][2]string, 0, len(m))
	for k, v := range m {
		out = append(out, [2]string{k, v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][1] != out[j][1] {
			return out[i][1] < out[j][1]
		}
		return out[i][0] < out[j][0]
	})
	return out
}

// Marshal renders r's active object as canonical YAML, the form sent to a
// node's apply/delete primitives and stored in its object list.
func Marshal(r Resource) ([]byte, error) {
	obj := activeObject(r)
	if obj == nil {
		return nil, &orcherr.Internal{Reason: fmt.Sprintf("marshal: unhandled kind %q", r.Kind)}
	}
	return hashutil.CanonicalYAML(obj)
}

func activeObject(r Resource) interface{} {
	switch r.Kind {
	case KindPod:
		return r.Pod
	case KindDeployment:
		return r.Deployment
	case KindDaemonSet:
		return r.DaemonSet
	case KindIngress:
		return r.Ingress
	case KindCronJob:
		return r.CronJob
	case KindSecret:
		return r.Secret
	case KindService:
		return r.Service
	case KindClusterIssuer:
		return r.ClusterIssuer
	case KindNamespace:
		return r.Namespace
	default:
		return nil
	}
}
