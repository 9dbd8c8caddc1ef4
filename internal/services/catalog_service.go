package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"warranty-service/internal/domain"
	"warranty-service/internal/infra"
)

var ErrOrderIDRequired = errors.New("order id is required")

const (
	MsgOrderNotFound     = "Order not found"
	MsgOrderNotDelivered = "Order is not delivered yet"
	MsgOrderDelivered    = "Order is delivered"
)

type CatalogCacheInterface interface {
	Get(ctx context.Context) (*domain.Catalog, error)
	Set(ctx context.Context, catalog *domain.Catalog) error
}

// OrderLookup is the outcome of LookupOrder. Exactly one of Order and
// Catalog is set, except for undelivered orders where both are nil.
type OrderLookup struct {
	Message        string
	IsShopifyOrder bool
	IsDelivered    bool
	Order          *domain.Order
	Catalog        *domain.Catalog
}

type CatalogService struct {
	commerce infra.CommerceClientInterface
	cache    CatalogCacheInterface
}

func NewCatalogService(c infra.CommerceClientInterface) *CatalogService {
	return &CatalogService{commerce: c}
}

func (s *CatalogService) SetCache(cache CatalogCacheInterface) {
	s.cache = cache
}

func (s *CatalogService) ListProducts(ctx context.Context) (*domain.Catalog, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			log.Printf("catalog cache get failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	catalog, err := s.commerce.ListAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	if catalog.Truncated {
		log.Printf("catalog truncated at %d products, not caching", len(catalog.Products))
	} else if s.cache != nil {
		if err := s.cache.Set(ctx, catalog); err != nil {
			log.Printf("catalog cache set failed: %v", err)
		}
	}

	return catalog, nil
}

// LookupOrder resolves an order id to one of three outcomes: not found
// (with the catalog so the customer can pick a product), found but not
// delivered, or delivered.
func (s *CatalogService) LookupOrder(ctx context.Context, id string) (*OrderLookup, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrOrderIDRequired
	}

	order, err := s.commerce.GetOrderByName(ctx, id)
	if err != nil {
		return nil, err
	}

	if order == nil {
		catalog, err := s.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		return &OrderLookup{
			Message: MsgOrderNotFound,
			Catalog: catalog,
		}, nil
	}

	if !order.Delivered() {
		return &OrderLookup{
			Message:        MsgOrderNotDelivered,
			IsShopifyOrder: true,
		}, nil
	}

	return &OrderLookup{
		Message:        MsgOrderDelivered,
		IsShopifyOrder: true,
		IsDelivered:    true,
		Order:          order,
	}, nil
}
