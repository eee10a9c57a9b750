/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package resource

import (
	"testing"

	"gotest.tools/assert"
)

const twoDocManifest = `
apiVersion: v1
kind: Pod
metadata:
  name: web
  namespace: default
spec:
  containers:
    - name: web
      image: nginx
---
apiVersion: apps/v1
kind: Deployment
metadata:
  name: web
  namespace: default
spec:
  replicas: 2
  template:
    spec:
      containers:
        - name: web
          image: nginx
`

func TestParseAllDecodesMetadataViaJSONTags(t *testing.T) {
	resources, err := ParseAll([]byte(twoDocManifest))
	assert.NilError(t, err)
	assert.Equal(t, len(resources), 2)

	assert.Equal(t, resources[0].Kind, KindPod)
	assert.Equal(t, resources[0].Pod.Name, "web")
	assert.Equal(t, resources[0].Pod.Namespace, "default")
	assert.Equal(t, resources[0].Pod.Spec.Containers[0].Image, "nginx")

	assert.Equal(t, resources[1].Kind, KindDeployment)
	assert.Equal(t, resources[1].Deployment.Name, "web")
	assert.Assert(t, resources[1].Deployment.Spec.Replicas != nil)
	assert.Equal(t, *resources[1].Deployment.Spec.Replicas, int32(2))
}

func TestParseAllRejectsUnknownKind(t *testing.T) {
	_, err := ParseAll([]byte("apiVersion: v1\nkind: Widget\nmetadata:\n  name: x\n"))
	assert.ErrorContains(t, err, "unsupported resource type")
}

func TestParseAllSkipsTrailingEmptyDocument(t *testing.T) {
	resources, err := ParseAll([]byte(twoDocManifest + "\n---\n"))
	assert.NilError(t, err)
	assert.Equal(t, len(resources), 2)
}
