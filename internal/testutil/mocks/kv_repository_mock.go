package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/palabras/internal/models"
	"github.com/vytor/palabras/internal/repository"
)

// MockKVRepository is a mock implementation of repository.KVRepository
type MockKVRepository struct {
	mock.Mock
}

func (m *MockKVRepository) Get(ctx context.Context, key string) (*models.KVEntry, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.KVEntry), args.Error(1)
}

func (m *MockKVRepository) Put(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockKVRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockKVRepository) List(ctx context.Context, prefix string) ([]models.KVEntry, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.KVEntry), args.Error(1)
}

func (m *MockKVRepository) DeletePrefix(ctx context.Context, prefix string) (int64, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockKVRepository) Replace(ctx context.Context, prefix string, values map[string]string) error {
	args := m.Called(ctx, prefix, values)
	return args.Error(0)
}

func (m *MockKVRepository) Swap(ctx context.Context, writes []repository.KVWrite) error {
	args := m.Called(ctx, writes)
	return args.Error(0)
}
