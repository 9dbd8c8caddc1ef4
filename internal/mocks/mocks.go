package mocks

import (
	"context"

	"warranty-service/internal/domain"
	"warranty-service/internal/infra/storage"

	"github.com/stretchr/testify/mock"
)

type MockClaimRepository struct {
	mock.Mock
}

type MockCommerceClient struct {
	mock.Mock
}

type MockUploader struct {
	mock.Mock
}

type MockNotifier struct {
	mock.Mock
}

type MockCatalogCache struct {
	mock.Mock
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, message interface{}) error {
	args := m.Called(ctx, topic, message)
	return args.Error(0)
}

func (m *MockClaimRepository) Create(ctx context.Context, claim *domain.WarrantyClaim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

func (m *MockCommerceClient) ListAllProducts(ctx context.Context) (*domain.Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Catalog), args.Error(1)
}

func (m *MockCommerceClient) GetOrderByName(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockUploader) Upload(ctx context.Context, obj storage.Object) (string, error) {
	args := m.Called(ctx, obj)
	return args.String(0), args.Error(1)
}

func (m *MockNotifier) Name() string {
	return "mock"
}

func (m *MockNotifier) Notify(ctx context.Context, claim *domain.WarrantyClaim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

func (m *MockCatalogCache) Get(ctx context.Context) (*domain.Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Catalog), args.Error(1)
}

func (m *MockCatalogCache) Set(ctx context.Context, catalog *domain.Catalog) error {
	args := m.Called(ctx, catalog)
	return args.Error(0)
}
