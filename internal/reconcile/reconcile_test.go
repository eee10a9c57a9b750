/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package reconcile

import (
	"context"
	"testing"

	"gotest.tools/assert"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/fleetoss/fleetd/internal/inventory"
	"github.com/fleetoss/fleetd/internal/nodeclient"
	"github.com/fleetoss/fleetd/internal/resource"
	"github.com/fleetoss/fleetd/internal/state"
)

func int32Ptr(v int32) *int32 { return &v }

func sampleDeployment(replicas int32) resource.Resource {
	return resource.Resource{
		Kind: resource.KindDeployment,
		Deployment: &appsv1.Deployment{
			ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "default"},
			Spec: appsv1.DeploymentSpec{
				Replicas: int32Ptr(replicas),
				Template: corev1.PodTemplateSpec{
					Spec: corev1.PodSpec{
						Containers: []corev1.Container{{Name: "web", Image: "nginx"}},
					},
				},
			},
		},
	}
}

func TestDerivePodsOnePerDeploymentReplica(t *testing.T) {
	fixed, err := resource.FixUp(sampleDeployment(3))
	assert.NilError(t, err)

	pods, err := derivePods(fixed, nil)
	assert.NilError(t, err)
	assert.Equal(t, len(pods), 3)
	for i, dp := range pods {
		assert.Equal(t, dp.Pod.Kind, resource.KindPod)
		assert.Equal(t, dp.FixedNode, "")
		assert.Assert(t, dp.Pod.Pod.Labels["skate.io/deployment"] == "web")
		_ = i
	}
}

func TestDerivePodsOnePerHealthyNodeForDaemonSet(t *testing.T) {
	ds := resource.Resource{
		Kind: resource.KindDaemonSet,
		DaemonSet: &appsv1.DaemonSet{
			ObjectMeta: metav1.ObjectMeta{Name: "logger", Namespace: "default"},
			Spec: appsv1.DaemonSetSpec{
				Template: corev1.PodTemplateSpec{
					Spec: corev1.PodSpec{Containers: []corev1.Container{{Name: "logger", Image: "fluentd"}}},
				},
			},
		},
	}
	fixed, err := resource.FixUp(ds)
	assert.NilError(t, err)

	healthy := []state.NodeState{
		{NodeName: "n1", Status: state.StatusHealthy},
		{NodeName: "n2", Status: state.StatusHealthy},
	}
	pods, err := derivePods(fixed, healthy)
	assert.NilError(t, err)
	assert.Equal(t, len(pods), 2)
	assert.Equal(t, pods[0].FixedNode, "n1")
	assert.Equal(t, pods[1].FixedNode, "n2")
}

func TestSamePlacementSkipsIdenticalHash(t *testing.T) {
	pod, err := resource.FixUp(resource.Resource{
		Kind: resource.KindPod,
		Pod: &corev1.Pod{
			ObjectMeta: metav1.ObjectMeta{Name: "web-0", Namespace: "default"},
		},
	})
	assert.NilError(t, err)
	hash := podHash(pod)
	assert.Assert(t, hash != "")

	st := &state.ClusterState{
		Nodes: []state.NodeState{
			{
				NodeName: "n1",
				HostInfo: &inventory.NodeSystemInfo{
					System: &inventory.SystemInfo{
						Pods: []inventory.ObjectListItem{
							{Name: inventory.NamespacedName{Name: "web-0", Namespace: "default"}, ManifestHash: hash},
						},
					},
				},
			},
		},
	}
	assert.Assert(t, samePlacement(st, pod.Name(), "n1", hash))
	assert.Assert(t, !samePlacement(st, pod.Name(), "n2", hash))
}

func TestPreRemoveHookSkipsWhenNotDeploymentOwned(t *testing.T) {
	pod, err := resource.FixUp(resource.Resource{
		Kind: resource.KindPod,
		Pod: &corev1.Pod{
			ObjectMeta: metav1.ObjectMeta{Name: "standalone", Namespace: "default"},
		},
	})
	assert.NilError(t, err)
	manifest, err := resource.Marshal(pod)
	assert.NilError(t, err)

	placement := state.PlacedObject{
		Item: inventory.ObjectListItem{Name: pod.Name(), Manifest: string(manifest)},
		Node: state.NodeState{NodeName: "n1"},
	}
	err = PreRemoveHook(context.Background(), placement, "default", nil)
	assert.NilError(t, err)
}

func TestPreRemoveHookDrainsReachableNodes(t *testing.T) {
	tmplPod := resource.Resource{
		Kind: resource.KindDeployment,
		Deployment: &appsv1.Deployment{
			ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "default"},
			Spec: appsv1.DeploymentSpec{
				Replicas: int32Ptr(1),
				Template: corev1.PodTemplateSpec{
					Spec: corev1.PodSpec{Containers: []corev1.Container{{Name: "web", Image: "nginx"}}},
				},
			},
		},
	}
	fixed, err := resource.FixUp(tmplPod)
	assert.NilError(t, err)
	pods, err := derivePods(fixed, nil)
	assert.NilError(t, err)
	assert.Equal(t, len(pods), 1)

	manifest, err := resource.Marshal(pods[0].Pod)
	assert.NilError(t, err)

	n1 := nodeclient.NewFakeClient("n1")
	n1.ExecOutput = "10.30.1.5"
	n2 := nodeclient.NewFakeClient("n2")
	placement := state.PlacedObject{
		Item: inventory.ObjectListItem{Name: pods[0].Pod.Name(), Manifest: string(manifest)},
		Node: state.NodeState{NodeName: "n1"},
	}
	err = PreRemoveHook(context.Background(), placement, "default", []nodeclient.Client{n1, n2})
	assert.NilError(t, err)
	assert.Assert(t, len(n1.Execs) >= 2)
	assert.Assert(t, len(n2.Execs) >= 2)
}

func TestTaintObjectHashBlanksStoredHash(t *testing.T) {
	st := &state.ClusterState{
		Nodes: []state.NodeState{
			{
				NodeName: "n1",
				HostInfo: &inventory.NodeSystemInfo{
					System: &inventory.SystemInfo{
						Deployments: []inventory.ObjectListItem{
							{Name: inventory.NamespacedName{Name: "web", Namespace: "default"}, ManifestHash: "h1"},
						},
					},
				},
			},
		},
	}
	taintObjectHash(st, inventory.ResourceDeployment, inventory.NamespacedName{Name: "web", Namespace: "default"})
	assert.Equal(t, st.Nodes[0].HostInfo.System.Deployments[0].ManifestHash, "")
}
