/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package resource

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"

	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"

	"github.com/fleetoss/fleetd/internal/orcherr"
)

type typeMeta struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
}

// ParseAll splits a multi-document YAML stream ("---"-separated) into
// Resources, dispatching on each document's apiVersion/kind. Empty
// documents (a trailing "---") are skipped.
func ParseAll(doc []byte) ([]Resource, error) {
	dec := yaml.NewDecoder(bytes.NewReader(doc))
	var out []Resource
	for {
		var raw yaml.Node
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "parsing manifest stream")
		}
		if raw.Kind == 0 || (raw.Kind == yaml.DocumentNode && len(raw.Content) == 0) {
			continue
		}
		r, err := parseOne(&raw)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// decodeTyped re-renders a yaml.Node back to bytes and unmarshals it through
// sigs.k8s.io/yaml, which round-trips via encoding/json and so honors the
// `json:` struct tags k8s.io/api types carry (they have no `yaml:` tags at
// all, so node.Decode against them would silently match almost nothing).
func decodeTyped(node *yaml.Node, out interface{}) error {
	raw, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	return sigsyaml.Unmarshal(raw, out)
}

func parseOne(node *yaml.Node) (Resource, error) {
	var meta typeMeta
	if err := node.Decode(&meta); err != nil {
		return Resource{}, errors.Wrap(err, "reading apiVersion/kind")
	}
	if meta.APIVersion == "" || meta.Kind == "" {
		return Resource{}, &orcherr.ValidationError{Resource: "<unknown>", Reason: "missing apiVersion or kind"}
	}

	switch meta.Kind {
	case "Pod":
		var p corev1.Pod
		if err := decodeTyped(node, &p); err != nil {
			return Resource{}, errors.Wrap(err, "decoding Pod")
		}
		return Resource{Kind: KindPod, Pod: &p}, nil
	case "Deployment":
		var d appsv1.Deployment
		if err := decodeTyped(node, &d); err != nil {
			return Resource{}, errors.Wrap(err, "decoding Deployment")
		}
		return Resource{Kind: KindDeployment, Deployment: &d}, nil
	case "DaemonSet":
		var ds appsv1.DaemonSet
		if err := decodeTyped(node, &ds); err != nil {
			return Resource{}, errors.Wrap(err, "decoding DaemonSet")
		}
		return Resource{Kind: KindDaemonSet, DaemonSet: &ds}, nil
	case "Ingress":
		var i networkingv1.Ingress
		if err := decodeTyped(node, &i); err != nil {
			return Resource{}, errors.Wrap(err, "decoding Ingress")
		}
		return Resource{Kind: KindIngress, Ingress: &i}, nil
	case "CronJob":
		var c batchv1.CronJob
		if err := decodeTyped(node, &c); err != nil {
			return Resource{}, errors.Wrap(err, "decoding CronJob")
		}
		return Resource{Kind: KindCronJob, CronJob: &c}, nil
	case "Secret":
		var s corev1.Secret
		if err := decodeTyped(node, &s); err != nil {
			return Resource{}, errors.Wrap(err, "decoding Secret")
		}
		return Resource{Kind: KindSecret, Secret: &s}, nil
	case "Service":
		var s corev1.Service
		if err := decodeTyped(node, &s); err != nil {
			return Resource{}, errors.Wrap(err, "decoding Service")
		}
		return Resource{Kind: KindService, Service: &s}, nil
	case "ClusterIssuer":
		var ci ClusterIssuer
		if err := decodeTyped(node, &ci); err != nil {
			return Resource{}, errors.Wrap(err, "decoding ClusterIssuer")
		}
		return Resource{Kind: KindClusterIssuer, ClusterIssuer: &ci}, nil
	case "Namespace":
		var ns Namespace
		if err := decodeTyped(node, &ns); err != nil {
			return Resource{}, errors.Wrap(err, "decoding Namespace")
		}
		return Resource{Kind: KindNamespace, Namespace: &ns}, nil
	default:
		return Resource{}, &orcherr.ValidationError{Resource: meta.Kind, Reason: "unsupported resource type"}
	}
}

// ParseResourceArg parses the CLI's "<type>/<name>" shorthand (e.g.
// "deployment/web") used by describe/delete/rollout.
func ParseResourceArg(arg string) (Kind, string, error) {
	idx := bytes.IndexByte([]byte(arg), '/')
	if idx < 0 {
		return "", "", errors.Errorf("expected <type>/<name>, got %q", arg)
	}
	kind, err := ParseKind(arg[:idx])
	if err != nil {
		return "", "", err
	}
	name := arg[idx+1:]
	if name == "" {
		return "", "", errors.Errorf("empty resource name in %q", arg)
	}
	return kind, name, nil
}
