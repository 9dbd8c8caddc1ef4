package services

import (
	"context"
	"errors"
	"testing"

	"warranty-service/internal/domain"
	"warranty-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testCatalog(truncated bool) *domain.Catalog {
	return domain.NewCatalog([]domain.Product{
		{ID: "gid://shopify/Product/1", Title: "Ortho Plus", ProductType: "Mattress"},
		{ID: "gid://shopify/Product/2", Title: "Cloud Pillow", ProductType: "Pillow"},
		{ID: "gid://shopify/Product/3", Title: "Ortho Lite", ProductType: "Mattress"},
	}, truncated)
}

func TestCatalogService_ListProducts(t *testing.T) {
	tests := []struct {
		name          string
		withCache     bool
		setupMocks    func(*mocks.MockCommerceClient, *mocks.MockCatalogCache)
		expectedErr   string
		expectedCount int
	}{
		{
			name: "no cache",
			setupMocks: func(c *mocks.MockCommerceClient, _ *mocks.MockCatalogCache) {
				c.On("ListAllProducts", mock.Anything).Return(testCatalog(false), nil)
			},
			expectedCount: 3,
		},
		{
			name:      "cache hit skips commerce api",
			withCache: true,
			setupMocks: func(c *mocks.MockCommerceClient, cache *mocks.MockCatalogCache) {
				cache.On("Get", mock.Anything).Return(domain.NewCatalog([]domain.Product{{ID: "cached"}}, false), nil)
			},
			expectedCount: 1,
		},
		{
			name:      "cache miss stores complete catalog",
			withCache: true,
			setupMocks: func(c *mocks.MockCommerceClient, cache *mocks.MockCatalogCache) {
				cache.On("Get", mock.Anything).Return(nil, nil)
				c.On("ListAllProducts", mock.Anything).Return(testCatalog(false), nil)
				cache.On("Set", mock.Anything, mock.AnythingOfType("*domain.Catalog")).Return(nil)
			},
			expectedCount: 3,
		},
		{
			name:      "truncated catalog is not cached",
			withCache: true,
			setupMocks: func(c *mocks.MockCommerceClient, cache *mocks.MockCatalogCache) {
				cache.On("Get", mock.Anything).Return(nil, nil)
				c.On("ListAllProducts", mock.Anything).Return(testCatalog(true), nil)
			},
			expectedCount: 3,
		},
		{
			name:      "cache errors are bypassed",
			withCache: true,
			setupMocks: func(c *mocks.MockCommerceClient, cache *mocks.MockCatalogCache) {
				cache.On("Get", mock.Anything).Return(nil, errors.New("redis down"))
				c.On("ListAllProducts", mock.Anything).Return(testCatalog(false), nil)
				cache.On("Set", mock.Anything, mock.Anything).Return(errors.New("redis down"))
			},
			expectedCount: 3,
		},
		{
			name: "cancelled",
			setupMocks: func(c *mocks.MockCommerceClient, _ *mocks.MockCatalogCache) {
				c.On("ListAllProducts", mock.Anything).Return(nil, context.Canceled)
			},
			expectedErr: "context canceled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commerce := new(mocks.MockCommerceClient)
			cache := new(mocks.MockCatalogCache)
			tt.setupMocks(commerce, cache)

			s := NewCatalogService(commerce)
			if tt.withCache {
				s.SetCache(cache)
			}

			catalog, err := s.ListProducts(context.Background())

			if tt.expectedErr != "" {
				assert.EqualError(t, err, tt.expectedErr)
				assert.Nil(t, catalog)
			} else {
				require.NoError(t, err)
				assert.Len(t, catalog.Products, tt.expectedCount)
			}
			commerce.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestCatalogService_LookupOrder(t *testing.T) {
	delivered := &domain.Order{
		Name:         "#1001",
		Fulfillments: []domain.Fulfillment{{DisplayStatus: "IN_TRANSIT"}, {DisplayStatus: domain.FulfillmentDelivered}},
		LineItems:    []domain.Product{{ID: "gid://shopify/Product/1", Title: "Ortho Plus", ProductType: "Mattress"}},
	}
	inTransit := &domain.Order{
		Name:         "#1002",
		Fulfillments: []domain.Fulfillment{{DisplayStatus: "IN_TRANSIT"}},
	}

	tests := []struct {
		name        string
		id          string
		setupMocks  func(*mocks.MockCommerceClient)
		expectedErr error
		expected    OrderLookup
	}{
		{
			name:        "blank id",
			id:          "   ",
			setupMocks:  func(*mocks.MockCommerceClient) {},
			expectedErr: ErrOrderIDRequired,
		},
		{
			name: "not found falls back to catalog",
			id:   "999",
			setupMocks: func(c *mocks.MockCommerceClient) {
				c.On("GetOrderByName", mock.Anything, "999").Return(nil, nil)
				c.On("ListAllProducts", mock.Anything).Return(testCatalog(false), nil)
			},
			expected: OrderLookup{Message: MsgOrderNotFound, Catalog: testCatalog(false)},
		},
		{
			name: "not delivered",
			id:   "1002",
			setupMocks: func(c *mocks.MockCommerceClient) {
				c.On("GetOrderByName", mock.Anything, "1002").Return(inTransit, nil)
			},
			expected: OrderLookup{Message: MsgOrderNotDelivered, IsShopifyOrder: true},
		},
		{
			name: "delivered with surrounding spaces",
			id:   " 1001 ",
			setupMocks: func(c *mocks.MockCommerceClient) {
				c.On("GetOrderByName", mock.Anything, "1001").Return(delivered, nil)
			},
			expected: OrderLookup{Message: MsgOrderDelivered, IsShopifyOrder: true, IsDelivered: true, Order: delivered},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commerce := new(mocks.MockCommerceClient)
			tt.setupMocks(commerce)

			got, err := NewCatalogService(commerce).LookupOrder(context.Background(), tt.id)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, *got)
			}
			commerce.AssertExpectations(t)
		})
	}
}

func TestCatalogService_LookupOrderUpstreamError(t *testing.T) {
	commerce := new(mocks.MockCommerceClient)
	commerce.On("GetOrderByName", mock.Anything, "1001").Return(nil, errors.New("commerce api returned status 502"))

	got, err := NewCatalogService(commerce).LookupOrder(context.Background(), "1001")

	assert.Nil(t, got)
	assert.EqualError(t, err, "commerce api returned status 502")
	commerce.AssertNotCalled(t, "ListAllProducts", mock.Anything)
}
