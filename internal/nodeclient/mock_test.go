/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package nodeclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fleetoss/fleetd/internal/inventory"
)

// MockClient is a mock.Mock-backed Client double, complementing FakeClient
// for tests that need to assert on call arguments and counts rather than
// just inspect accumulated state afterward.
type MockClient struct {
	mock.Mock
	name string
}

func NewMockClient(name string) *MockClient {
	return &MockClient{name: name}
}

func (m *MockClient) NodeName() string { return m.name }

func (m *MockClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockClient) NodeSystemInfo(ctx context.Context) (*inventory.NodeSystemInfo, error) {
	args := m.Called(ctx)
	info, _ := args.Get(0).(*inventory.NodeSystemInfo)
	return info, args.Error(1)
}

func (m *MockClient) ApplyManifest(ctx context.Context, yaml string) (string, string, error) {
	args := m.Called(ctx, yaml)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockClient) RemoveManifest(ctx context.Context, yaml string, graceSeconds int) (string, string, error) {
	args := m.Called(ctx, yaml, graceSeconds)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockClient) Execute(ctx context.Context, cmd string) (string, error) {
	args := m.Called(ctx, cmd)
	return args.String(0), args.Error(1)
}

var _ Client = (*MockClient)(nil)

func TestMockClientApplyManifestForwardsArgsAndResult(t *testing.T) {
	m := NewMockClient("n1")
	m.On("ApplyManifest", mock.Anything, "kind: Pod").Return("applied", "", nil)

	stdout, stderr, err := m.ApplyManifest(context.Background(), "kind: Pod")
	assert.NoError(t, err)
	assert.Equal(t, "applied", stdout)
	assert.Equal(t, "", stderr)
	m.AssertExpectations(t)
	m.AssertNumberOfCalls(t, "ApplyManifest", 1)
}

func TestFanOutWithMockClientsCollectsPerNodeErrors(t *testing.T) {
	good := NewMockClient("good")
	good.On("NodeSystemInfo", mock.Anything).Return(&inventory.NodeSystemInfo{Hostname: "good"}, nil)

	bad := NewMockClient("bad")
	bad.On("NodeSystemInfo", mock.Anything).Return((*inventory.NodeSystemInfo)(nil), assertErr("boom"))

	results := FanOut(context.Background(), []Client{good, bad}, func(ctx context.Context, c Client) (*inventory.NodeSystemInfo, error) {
		return c.NodeSystemInfo(ctx)
	})

	assert.Len(t, results, 2)
	assert.Equal(t, "good", results[0].NodeName)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "bad", results[1].NodeName)
	assert.Error(t, results[1].Err)

	good.AssertExpectations(t)
	bad.AssertExpectations(t)
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
