/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package resource

import (
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"gotest.tools/assert"
)

func samplePod() Resource {
	return Resource{
		Kind: KindPod,
		Pod: &corev1.Pod{
			ObjectMeta: metav1.ObjectMeta{
				Name:      "web",
				Namespace: "default",
			},
			Spec: corev1.PodSpec{
				Containers: []corev1.Container{{
					Name: "web",
					Env: []corev1.EnvVar{{
						Name: "PASSWORD",
						ValueFrom: &corev1.EnvVarSource{
							SecretKeyRef: &corev1.SecretKeySelector{
								LocalObjectReference: corev1.LocalObjectReference{Name: "db-secret"},
							},
						},
					}},
				}},
			},
		},
	}
}

func TestFixUpRenamesToNamespacedForm(t *testing.T) {
	fixed, err := FixUp(samplePod())
	assert.NilError(t, err)
	assert.Equal(t, fixed.Pod.Name, "web.default")
	assert.Equal(t, fixed.Pod.Labels[labelName], "web")
	assert.Equal(t, fixed.Pod.Labels[labelNamespace], "default")
	assert.Equal(t, fixed.Pod.Annotations[annotationMark], "true")
}

func TestFixUpRewritesSecretEnvRef(t *testing.T) {
	fixed, err := FixUp(samplePod())
	assert.NilError(t, err)
	ref := fixed.Pod.Spec.Containers[0].Env[0].ValueFrom.SecretKeyRef
	assert.Equal(t, ref.Name, "db-secret.default")
}

func TestFixUpRejectsMissingNamespace(t *testing.T) {
	p := samplePod()
	p.Pod.Namespace = ""
	_, err := FixUp(p)
	assert.ErrorContains(t, err, "namespace")
}

// TestFixUpIsIdempotentAcrossReparse re-parses and re-marshals the fixed-up
// resource before fixing it up again, so the second FixUp call operates on
// an independently decoded *corev1.Pod rather than aliasing the same one
// (Resource's kind-specific fields are pointers, so FixUp(once) would
// otherwise just compare a struct to itself).
func TestFixUpIsIdempotentAcrossReparse(t *testing.T) {
	manifest := []byte(`
apiVersion: v1
kind: Pod
metadata:
  name: web
  namespace: default
spec:
  containers:
  - name: web
    env:
    - name: PASSWORD
      valueFrom:
        secretKeyRef:
          name: db-secret
`)
	parsedOnce, err := ParseAll(manifest)
	assert.NilError(t, err)
	assert.Equal(t, len(parsedOnce), 1)
	once, err := FixUp(parsedOnce[0])
	assert.NilError(t, err)

	remarshaled, err := Marshal(once)
	assert.NilError(t, err)

	parsedTwice, err := ParseAll(remarshaled)
	assert.NilError(t, err)
	assert.Equal(t, len(parsedTwice), 1)
	twice, err := FixUp(parsedTwice[0])
	assert.NilError(t, err)

	assert.Equal(t, once.Pod.Name, twice.Pod.Name)
	assert.Equal(t, "web.default", twice.Pod.Name)
	assert.Equal(t, once.Pod.Labels[labelHash], twice.Pod.Labels[labelHash])
	ref := twice.Pod.Spec.Containers[0].Env[0].ValueFrom.SecretKeyRef
	assert.Equal(t, ref.Name, "db-secret.default")
}

func TestComputeHashStableRegardlessOfLabelInsertionOrder(t *testing.T) {
	a := samplePod()
	a.Pod.Labels = map[string]string{"z": "1", "a": "2"}
	b := samplePod()
	b.Pod.Labels = map[string]string{"a": "2", "z": "1"}

	ha, err := ComputeHash(a)
	assert.NilError(t, err)
	hb, err := ComputeHash(b)
	assert.NilError(t, err)
	assert.Equal(t, ha, hb)
}

func TestParseResourceArg(t *testing.T) {
	kind, name, err := ParseResourceArg("deployment/web")
	assert.NilError(t, err)
	assert.Equal(t, kind, KindDeployment)
	assert.Equal(t, name, "web")

	_, _, err = ParseResourceArg("badformat")
	assert.ErrorContains(t, err, "expected")
}
