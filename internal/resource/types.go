/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

// Package resource implements the manifest discriminated union and the
// fix-up/hash pipeline every manifest goes through before scheduling.
package resource

import (
	"fmt"
	"strings"

	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"

	"github.com/fleetoss/fleetd/internal/inventory"
)

// Kind tags the underlying Go type of a Resource. String form is the
// lowercase singular accepted on the CLI and in ObjectListItem.ResourceType.
type Kind string

const (
	KindPod           Kind = "pod"
	KindDeployment    Kind = "deployment"
	KindDaemonSet     Kind = "daemonset"
	KindIngress       Kind = "ingress"
	KindCronJob       Kind = "cronjob"
	KindSecret        Kind = "secret"
	KindService       Kind = "service"
	KindClusterIssuer Kind = "clusterissuer"
	KindNamespace     Kind = "namespace"
)

// ParseKind accepts singular/plural, any-case spellings of every supported
// kind (e.g. "Pods", "daemonset", "DaemonSets").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "pod", "pods":
		return KindPod, nil
	case "deployment", "deployments":
		return KindDeployment, nil
	case "daemonset", "daemonsets":
		return KindDaemonSet, nil
	case "ingress", "ingresses":
		return KindIngress, nil
	case "cronjob", "cronjobs":
		return KindCronJob, nil
	case "secret", "secrets":
		return KindSecret, nil
	case "service", "services":
		return KindService, nil
	case "clusterissuer", "clusterissuers":
		return KindClusterIssuer, nil
	case "namespace", "namespaces":
		return KindNamespace, nil
	default:
		return "", fmt.Errorf("unsupported resource kind %q", s)
	}
}

// ToInventoryType maps a Kind onto the inventory package's ResourceType,
// which the node's object store and ClusterState.LocateObjects key on.
func (k Kind) ToInventoryType() inventory.ResourceType {
	return inventory.ResourceType(k)
}

// ClusterIssuer mirrors the cert-manager ClusterIssuer shape closely enough
// for identity, labeling and YAML round-tripping; fleetd never validates
// issuer backend configuration itself, only stores and distributes it.
type ClusterIssuer struct {
	APIVersion string         `yaml:"apiVersion" json:"apiVersion"`
	Kind       string         `yaml:"kind" json:"kind"`
	Metadata   ObjectMeta     `yaml:"metadata" json:"metadata"`
	Spec       map[string]any `yaml:"spec,omitempty" json:"spec,omitempty"`
}

// ObjectMeta is a minimal stand-in for metav1.ObjectMeta used by the local
// Namespace/ClusterIssuer types, which have no upstream k8s.io/api home.
type ObjectMeta struct {
	Name        string            `yaml:"name" json:"name"`
	Namespace   string            `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	Labels      map[string]string `yaml:"labels,omitempty" json:"labels,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty" json:"annotations,omitempty"`
}

// Namespace is a bare identity resource: applying it ensures the name
// exists as a scoping prefix, nothing more (it is never scheduled and
// carries no inventory entry, matching inventory.SystemInfo.ByType).
type Namespace struct {
	APIVersion string     `yaml:"apiVersion" json:"apiVersion"`
	Kind       string     `yaml:"kind" json:"kind"`
	Metadata   ObjectMeta `yaml:"metadata" json:"metadata"`
}

// Resource is the discriminated union over every supported manifest kind.
// Exactly one of the embedded pointer fields is non-nil.
type Resource struct {
	Kind Kind

	Pod           *corev1.Pod
	Deployment    *appsv1.Deployment
	DaemonSet     *appsv1.DaemonSet
	Ingress       *networkingv1.Ingress
	CronJob       *batchv1.CronJob
	Secret        *corev1.Secret
	Service       *corev1.Service
	ClusterIssuer *ClusterIssuer
	Namespace     *Namespace
}

// Name returns the resource's namespaced identity. For the kinds FixUp
// renames to "<name>.<namespace>", the namespace suffix is left out of
// Name, so the result is the same before and after fix-up and matches how
// a node's inventory names the object.
func (r *Resource) Name() inventory.NamespacedName {
	name, ns := r.rawIdentity()
	return inventory.NamespacedName{Name: name, Namespace: ns}
}

// withoutNamespaceSuffix strips the ".<namespace>" suffix FixUp appends to
// the kinds it renames.
func withoutNamespaceSuffix(name, namespace string) (string, string) {
	if namespace != "" {
		name = strings.TrimSuffix(name, "."+namespace)
	}
	return name, namespace
}

func (r *Resource) rawIdentity() (name, namespace string) {
	switch r.Kind {
	case KindPod:
		return withoutNamespaceSuffix(r.Pod.Name, r.Pod.Namespace)
	case KindDeployment:
		return r.Deployment.Name, r.Deployment.Namespace
	case KindDaemonSet:
		return r.DaemonSet.Name, r.DaemonSet.Namespace
	case KindIngress:
		return withoutNamespaceSuffix(r.Ingress.Name, r.Ingress.Namespace)
	case KindCronJob:
		return r.CronJob.Name, r.CronJob.Namespace
	case KindSecret:
		return withoutNamespaceSuffix(r.Secret.Name, r.Secret.Namespace)
	case KindService:
		return withoutNamespaceSuffix(r.Service.Name, r.Service.Namespace)
	case KindClusterIssuer:
		return withoutNamespaceSuffix(r.ClusterIssuer.Metadata.Name, r.ClusterIssuer.Metadata.Namespace)
	case KindNamespace:
		return r.Namespace.Metadata.Name, ""
	default:
		return "", ""
	}
}

// HostNetwork reports whether the resource's pod template (or the pod
// itself) requests the host network namespace.
func (r *Resource) HostNetwork() bool {
	switch r.Kind {
	case KindPod:
		return r.Pod.Spec.HostNetwork
	case KindDeployment:
		return r.Deployment.Spec.Template.Spec.HostNetwork
	case KindDaemonSet:
		return r.DaemonSet.Spec.Template.Spec.HostNetwork
	case KindCronJob:
		return r.CronJob.Spec.JobTemplate.Spec.Template.Spec.HostNetwork
	default:
		return false
	}
}

// IsPodBearing reports whether this kind is scheduler-placed (derives one
// or more pods) as opposed to broadcast to every healthy node.
func (r *Resource) IsPodBearing() bool {
	switch r.Kind {
	case KindPod, KindDeployment, KindDaemonSet, KindCronJob:
		return true
	default:
		return false
	}
}
