/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package resource

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	corev1 "k8s.io/api/core/v1"

	"github.com/fleetoss/fleetd/internal/orcherr"
)

const (
	labelName      = "skate.io/name"
	labelNamespace = "skate.io/namespace"
	labelDeploy    = "skate.io/deployment"
	labelDaemonSet = "skate.io/daemonset"
	labelCronJob   = "skate.io/cronjob"
	annotationMark = "io.skate"

	// LabelHash is the content-hash label fix-up stamps on every resource's
	// top-level object. Exported so reconcile/rollout can read or blank it
	// without duplicating the literal.
	LabelHash = "skate.io/hash"
)

const labelHash = LabelHash

// FixUp normalizes r in place, per SPEC_FULL.md §4.3: validates identity,
// sets the standard labels/annotation, renames namespace-scoped kinds, and
// propagates fix-up into templated pod specs. It is idempotent: calling it
// twice on an already fixed-up resource produces byte-identical output,
// since every namespace-suffix rename first checks whether the name already
// carries that suffix, and the identity read from an already renamed object
// has that suffix removed again before the labels are stamped.
func FixUp(r Resource) (Resource, error) {
	name, ns, err := requireIdentity(r)
	if err != nil {
		return r, err
	}

	switch r.Kind {
	case KindSecret:
		applyMetaFixup(name, ns, &r.Secret.Labels, &r.Secret.Annotations, nil)
		r.Secret.Name = namespaceSuffixed(name, ns)

	case KindService:
		applyMetaFixup(name, ns, &r.Service.Labels, &r.Service.Annotations, nil)
		r.Service.Name = namespaceSuffixed(name, ns)

	case KindPod:
		applyMetaFixup(name, ns, &r.Pod.Labels, &r.Pod.Annotations, nil)
		r.Pod.Name = namespaceSuffixed(name, ns)

	case KindIngress:
		applyMetaFixup(name, ns, &r.Ingress.Labels, &r.Ingress.Annotations, nil)
		r.Ingress.Name = namespaceSuffixed(name, ns)

	case KindClusterIssuer:
		applyMetaFixup(name, ns, &r.ClusterIssuer.Metadata.Labels, &r.ClusterIssuer.Metadata.Annotations, nil)
		r.ClusterIssuer.Metadata.Name = namespaceSuffixed(name, ns)

	case KindDeployment:
		extra := map[string]string{labelDeploy: name}
		applyMetaFixup(name, ns, &r.Deployment.Labels, &r.Deployment.Annotations, extra)
		tmpl := &r.Deployment.Spec.Template
		if tmpl.Name == "" {
			tmpl.Name = name
		}
		tmpl.Namespace = ns
		applyMetaFixup(tmpl.Name, ns, &tmpl.Labels, &tmpl.Annotations, extra)
		fixUpPodTemplateSpec(&tmpl.Spec, ns)

	case KindDaemonSet:
		extra := map[string]string{labelDaemonSet: name}
		applyMetaFixup(name, ns, &r.DaemonSet.Labels, &r.DaemonSet.Annotations, extra)
		tmpl := &r.DaemonSet.Spec.Template
		if tmpl.Name == "" {
			tmpl.Name = name
		}
		tmpl.Namespace = ns
		applyMetaFixup(tmpl.Name, ns, &tmpl.Labels, &tmpl.Annotations, extra)
		fixUpPodTemplateSpec(&tmpl.Spec, ns)

	case KindCronJob:
		if _, err := cron.ParseStandard(r.CronJob.Spec.Schedule); err != nil {
			return r, &orcherr.ValidationError{Resource: string(r.Kind), Reason: fmt.Sprintf("invalid schedule %q: %v", r.CronJob.Spec.Schedule, err)}
		}
		extra := map[string]string{labelCronJob: name}
		applyMetaFixup(name, ns, &r.CronJob.Labels, &r.CronJob.Annotations, extra)
		tmpl := &r.CronJob.Spec.JobTemplate.Spec.Template
		if tmpl.Name == "" {
			tmpl.Name = name
		}
		tmpl.Namespace = ns
		applyMetaFixup(tmpl.Name, ns, &tmpl.Labels, &tmpl.Annotations, extra)
		fixUpPodTemplateSpec(&tmpl.Spec, ns)

	case KindNamespace:
		applyMetaFixup(name, "", &r.Namespace.Metadata.Labels, &r.Namespace.Metadata.Annotations, nil)

	default:
		return r, &orcherr.Internal{Reason: fmt.Sprintf("fix-up: unhandled kind %q", r.Kind)}
	}

	hash, err := ComputeHash(r)
	if err != nil {
		return r, err
	}
	setTopLevelLabel(r, labelHash, hash)
	return r, nil
}

func requireIdentity(r Resource) (name, namespace string, err error) {
	name, namespace = r.rawIdentity()
	if name == "" {
		return "", "", &orcherr.ValidationError{Resource: string(r.Kind), Reason: "metadata.name is empty"}
	}
	if r.Kind == KindNamespace {
		return name, "", nil
	}
	if namespace == "" {
		return "", "", &orcherr.ValidationError{Resource: string(r.Kind), Reason: "metadata.namespace is empty"}
	}
	return name, namespace, nil
}

// applyMetaFixup sets the standard skate.io/name + skate.io/namespace
// labels (plus any resource-specific extras) and the io.skate annotation
// on the label/annotation maps pointed to by labels/annotations. ns may be
// empty for the bare Namespace kind, which has no namespace of its own.
func applyMetaFixup(name, ns string, labels, annotations *map[string]string, extra map[string]string) {
	effectiveNS := ns
	if effectiveNS == "" {
		effectiveNS = "default"
	}

	if *labels == nil {
		*labels = map[string]string{}
	}
	(*labels)[labelName] = name
	(*labels)[labelNamespace] = effectiveNS
	for k, v := range extra {
		(*labels)[k] = v
	}

	if *annotations == nil {
		*annotations = map[string]string{}
	}
	(*annotations)[annotationMark] = "true"
}

func fixUpPodTemplateSpec(spec *corev1.PodSpec, ns string) {
	for ci := range spec.Containers {
		rewriteContainerSecretEnv(&spec.Containers[ci], ns)
	}
	for ci := range spec.InitContainers {
		rewriteContainerSecretEnv(&spec.InitContainers[ci], ns)
	}
	for vi := range spec.Volumes {
		if spec.Volumes[vi].Secret != nil && spec.Volumes[vi].Secret.SecretName != "" {
			spec.Volumes[vi].Secret.SecretName = namespaceSuffixed(spec.Volumes[vi].Secret.SecretName, ns)
		}
	}
}

func rewriteContainerSecretEnv(c *corev1.Container, ns string) {
	for ei := range c.Env {
		e := &c.Env[ei]
		if e.ValueFrom != nil && e.ValueFrom.SecretKeyRef != nil && e.ValueFrom.SecretKeyRef.Name != "" {
			e.ValueFrom.SecretKeyRef.Name = namespaceSuffixed(e.ValueFrom.SecretKeyRef.Name, ns)
		}
	}
}

// namespaceSuffixed appends ".<ns>" to name unless it already ends in that
// exact suffix, so re-running fix-up on an already namespaced name (e.g. a
// rollout restart reapplying a previously stored, already fixed-up
// manifest) never double-suffixes it.
func namespaceSuffixed(name, ns string) string {
	suffix := "." + ns
	if strings.HasSuffix(name, suffix) {
		return name
	}
	return name + suffix
}

// setTopLevelLabel sets a single label on r's top-level object, used to
// stamp (and, during rollout restart, blank) the content-hash label.
func setTopLevelLabel(r Resource, key, value string) {
	meta := topLevelLabels(r)
	if meta == nil {
		return
	}
	if *meta == nil {
		*meta = map[string]string{}
	}
	(*meta)[key] = value
}

func topLevelLabels(r Resource) *map[string]string {
	switch r.Kind {
	case KindPod:
		return &r.Pod.Labels
	case KindDeployment:
		return &r.Deployment.Labels
	case KindDaemonSet:
		return &r.DaemonSet.Labels
	case KindIngress:
		return &r.Ingress.Labels
	case KindCronJob:
		return &r.CronJob.Labels
	case KindSecret:
		return &r.Secret.Labels
	case KindService:
		return &r.Service.Labels
	case KindClusterIssuer:
		return &r.ClusterIssuer.Metadata.Labels
	case KindNamespace:
		return &r.Namespace.Metadata.Labels
	default:
		return nil
	}
}
