/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package reconcile

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/fleetoss/fleetd/internal/resource"
	"github.com/fleetoss/fleetd/internal/state"
)

// derivedPod is one pod carved out of a pod-bearing resource. FixedNode is
// set for placements the source resource dictates directly (DaemonSet: one
// per healthy node); it is empty when the scheduler must choose.
type derivedPod struct {
	Pod       resource.Resource
	FixedNode string
}

// derivePods implements SPEC_FULL.md §4.6 step 4's pod derivation: one pod
// per Deployment replica, one pod per healthy node for a DaemonSet, one pod
// for a CronJob's template, or the Pod itself.
func derivePods(r resource.Resource, healthy []state.NodeState) ([]derivedPod, error) {
	switch r.Kind {
	case resource.KindPod:
		return []derivedPod{{Pod: r}}, nil

	case resource.KindDeployment:
		replicas := int32(1)
		if r.Deployment.Spec.Replicas != nil {
			replicas = *r.Deployment.Spec.Replicas
		}
		out := make([]derivedPod, 0, replicas)
		for i := int32(0); i < replicas; i++ {
			name := fmt.Sprintf("%s-%d", r.Deployment.Name, i)
			pod, err := fixedUpPod(r.Deployment.Spec.Template, name, r.Deployment.Namespace)
			if err != nil {
				return nil, err
			}
			out = append(out, derivedPod{Pod: pod})
		}
		return out, nil

	case resource.KindDaemonSet:
		out := make([]derivedPod, 0, len(healthy))
		for _, n := range healthy {
			name := fmt.Sprintf("%s-%s", r.DaemonSet.Name, n.NodeName)
			tmpl := r.DaemonSet.Spec.Template
			tmpl.Spec.NodeName = n.NodeName
			pod, err := fixedUpPod(tmpl, name, r.DaemonSet.Namespace)
			if err != nil {
				return nil, err
			}
			out = append(out, derivedPod{Pod: pod, FixedNode: n.NodeName})
		}
		return out, nil

	case resource.KindCronJob:
		tmpl := r.CronJob.Spec.JobTemplate.Spec.Template
		pod, err := fixedUpPod(tmpl, r.CronJob.Name, r.CronJob.Namespace)
		if err != nil {
			return nil, err
		}
		return []derivedPod{{Pod: pod}}, nil

	default:
		return nil, fmt.Errorf("derivePods: %s is not pod-bearing", r.Kind)
	}
}

func fixedUpPod(tmpl corev1.PodTemplateSpec, name, namespace string) (resource.Resource, error) {
	pod := &corev1.Pod{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Pod"},
		ObjectMeta: metav1.ObjectMeta{
			Name:        name,
			Namespace:   namespace,
			Labels:      cloneMap(tmpl.Labels),
			Annotations: cloneMap(tmpl.Annotations),
		},
		Spec: *tmpl.Spec.DeepCopy(),
	}
	return resource.FixUp(resource.Resource{Kind: resource.KindPod, Pod: pod})
}

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
