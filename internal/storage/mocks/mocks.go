// Package mocks provides a testify mock of storage.Storage for handler
// tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/aanand-mishra/tank-man-api/internal/storage"
	"github.com/aanand-mishra/tank-man-api/internal/types"
)

// MockStorage is a mock implementation of storage.Storage.
type MockStorage struct {
	mock.Mock
}

var _ storage.Storage = (*MockStorage)(nil)

func (m *MockStorage) CreateProfile(ctx context.Context, p types.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockStorage) GetProfile(ctx context.Context) (types.Profile, error) {
	args := m.Called(ctx)
	return args.Get(0).(types.Profile), args.Error(1)
}

func (m *MockStorage) CreateTank(ctx context.Context, t types.Tank) (string, error) {
	args := m.Called(ctx, t)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) GetTankByID(ctx context.Context, id string) (types.Tank, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(types.Tank), args.Error(1)
}

func (m *MockStorage) GetTanks(ctx context.Context, limit int64) ([]types.Tank, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Tank), args.Error(1)
}

func (m *MockStorage) ReplaceTankByID(ctx context.Context, id string, t types.Tank) error {
	args := m.Called(ctx, id, t)
	return args.Error(0)
}

func (m *MockStorage) DeleteTankByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorage) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStorage) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
