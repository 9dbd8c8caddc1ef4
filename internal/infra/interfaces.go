package infra

import (
	"context"

	"warranty-service/internal/domain"
)

type CommerceClientInterface interface {
	ListAllProducts(ctx context.Context) (*domain.Catalog, error)
	GetOrderByName(ctx context.Context, id string) (*domain.Order, error)
}

var _ CommerceClientInterface = (*CommerceClient)(nil)
