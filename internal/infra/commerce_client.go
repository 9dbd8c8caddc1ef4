package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"warranty-service/internal/domain"

	"github.com/cenkalti/backoff/v5"
)

const (
	DefaultPageSize    = 250
	DefaultAPIVersion  = "2024-10"
	accessTokenHeader  = "X-Shopify-Access-Token"
	defaultMaxAttempts = 3
)

const productsQuery = `
query Products($first: Int!, $cursor: String) {
  products(first: $first, after: $cursor) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        title
        productType
      }
    }
  }
}`

const orderByNameQuery = `
query OrderByName($name: String!) {
  orders(first: 1, query: $name) {
    edges {
      node {
        name
        email
        createdAt
        updatedAt
        shippingAddress {
          firstName
          lastName
          address1
          address2
          city
          province
          country
          zip
          phone
        }
        customer {
          displayName
          phone
          email
        }
        fulfillments {
          displayStatus
          deliveredAt
          createdAt
          updatedAt
        }
        lineItems(first: 250) {
          edges {
            node {
              title
              quantity
              product {
                id
                title
                productType
              }
            }
          }
        }
      }
    }
  }
}`

// ErrUnexpectedShape means the commerce API answered with JSON that does not
// match the queried shape.
var ErrUnexpectedShape = errors.New("unexpected commerce response shape")

type CommerceConfig struct {
	Endpoint      string
	AccessToken   string
	Timeout       time.Duration
	PageSize      int
	MaxAttempts   int
	RetryInterval time.Duration
}

// ShopifyEndpoint returns the Admin GraphQL URL of a shop.
func ShopifyEndpoint(shopDomain, apiVersion string) string {
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	return fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shopDomain, apiVersion)
}

type CommerceClient struct {
	endpoint      string
	accessToken   string
	httpClient    *http.Client
	pageSize      int
	maxAttempts   int
	retryInterval time.Duration
}

func NewCommerceClient(cfg CommerceConfig) *CommerceClient {
	c := &CommerceClient{
		endpoint:      cfg.Endpoint,
		accessToken:   cfg.AccessToken,
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		pageSize:      cfg.PageSize,
		maxAttempts:   cfg.MaxAttempts,
		retryInterval: cfg.RetryInterval,
	}
	if c.pageSize <= 0 || c.pageSize > DefaultPageSize {
		c.pageSize = DefaultPageSize
	}
	if c.maxAttempts <= 0 {
		c.maxAttempts = defaultMaxAttempts
	}
	if c.retryInterval <= 0 {
		c.retryInterval = 500 * time.Millisecond
	}
	return c
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse[T any] struct {
	Data   *T             `json:"data"`
	Errors []graphQLError `json:"errors"`
}

func postGraphQL[T any](ctx context.Context, c *CommerceClient, query string, vars map[string]any) (*T, error) {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(accessTokenHeader, c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("commerce api returned status %d", resp.StatusCode)
	}

	var out graphQLResponse[T]
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	if len(out.Errors) > 0 {
		msgs := make([]string, 0, len(out.Errors))
		for _, e := range out.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("commerce api errors: %s", strings.Join(msgs, "; "))
	}
	if out.Data == nil {
		return nil, fmt.Errorf("%w: missing data", ErrUnexpectedShape)
	}

	return out.Data, nil
}

type pageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

type productsData struct {
	Products *struct {
		PageInfo *pageInfo `json:"pageInfo"`
		Edges    []struct {
			Node *domain.Product `json:"node"`
		} `json:"edges"`
	} `json:"products"`
}

type productPage struct {
	products    []domain.Product
	hasNextPage bool
	endCursor   string
}

func (c *CommerceClient) fetchProductPage(ctx context.Context, cursor *string) (*productPage, error) {
	data, err := postGraphQL[productsData](ctx, c, productsQuery, map[string]any{
		"first":  c.pageSize,
		"cursor": cursor,
	})
	if err != nil {
		return nil, err
	}
	if data.Products == nil || data.Products.PageInfo == nil {
		return nil, fmt.Errorf("%w: missing products or pageInfo", ErrUnexpectedShape)
	}

	page := &productPage{
		products:    make([]domain.Product, 0, len(data.Products.Edges)),
		hasNextPage: data.Products.PageInfo.HasNextPage,
	}
	if data.Products.PageInfo.EndCursor != nil {
		page.endCursor = *data.Products.PageInfo.EndCursor
	}
	for _, edge := range data.Products.Edges {
		if edge.Node == nil {
			return nil, fmt.Errorf("%w: product edge without node", ErrUnexpectedShape)
		}
		page.products = append(page.products, *edge.Node)
	}
	return page, nil
}

// ListAllProducts walks the whole catalog. Every page is retried with
// exponential backoff; a page that still fails ends the walk and the
// products gathered so far are returned with Truncated set. Only context
// cancellation is reported as an error.
func (c *CommerceClient) ListAllProducts(ctx context.Context) (*domain.Catalog, error) {
	var products []domain.Product
	var cursor *string

	for pageNum := 1; ; pageNum++ {
		page, err := backoff.Retry(ctx, func() (*productPage, error) {
			p, err := c.fetchProductPage(ctx, cursor)
			if errors.Is(err, ErrUnexpectedShape) {
				return nil, backoff.Permanent(err)
			}
			return p, err
		}, c.retryOptions()...)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			log.Printf("commerce: products page %d failed, catalog truncated at %d products: %v", pageNum, len(products), err)
			return domain.NewCatalog(products, true), nil
		}

		products = append(products, page.products...)

		if !page.hasNextPage {
			return domain.NewCatalog(products, false), nil
		}
		if page.endCursor == "" {
			log.Printf("commerce: products page %d has next page but no cursor, catalog truncated at %d products", pageNum, len(products))
			return domain.NewCatalog(products, true), nil
		}
		next := page.endCursor
		cursor = &next
	}
}

func (c *CommerceClient) retryOptions() []backoff.RetryOption {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval
	return []backoff.RetryOption{
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(c.maxAttempts)),
	}
}

type orderNode struct {
	Name            string               `json:"name"`
	Email           string               `json:"email"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
	ShippingAddress *domain.Address      `json:"shippingAddress"`
	Customer        *domain.Customer     `json:"customer"`
	Fulfillments    []domain.Fulfillment `json:"fulfillments"`
	LineItems       *struct {
		Edges []struct {
			Node *struct {
				Title    string          `json:"title"`
				Quantity int             `json:"quantity"`
				Product  *domain.Product `json:"product"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"lineItems"`
}

type ordersData struct {
	Orders *struct {
		Edges []struct {
			Node *orderNode `json:"node"`
		} `json:"edges"`
	} `json:"orders"`
}

// GetOrderByName looks up the order named "#"+id. It returns nil, nil when
// no order carries exactly that name.
func (c *CommerceClient) GetOrderByName(ctx context.Context, id string) (*domain.Order, error) {
	name := "#" + id
	data, err := postGraphQL[ordersData](ctx, c, orderByNameQuery, map[string]any{
		"name": "name:" + name,
	})
	if err != nil {
		return nil, err
	}
	if data.Orders == nil {
		return nil, fmt.Errorf("%w: missing orders", ErrUnexpectedShape)
	}
	if len(data.Orders.Edges) == 0 {
		return nil, nil
	}

	node := data.Orders.Edges[0].Node
	if node == nil {
		return nil, fmt.Errorf("%w: order edge without node", ErrUnexpectedShape)
	}
	if node.Name != name {
		return nil, nil
	}
	if node.LineItems == nil {
		return nil, fmt.Errorf("%w: order %s without lineItems", ErrUnexpectedShape, name)
	}

	order := &domain.Order{
		Name:            node.Name,
		Email:           node.Email,
		CreatedAt:       node.CreatedAt,
		UpdatedAt:       node.UpdatedAt,
		ShippingAddress: node.ShippingAddress,
		Customer:        node.Customer,
		Fulfillments:    node.Fulfillments,
		LineItems:       make([]domain.Product, 0, len(node.LineItems.Edges)),
	}
	if order.Fulfillments == nil {
		order.Fulfillments = []domain.Fulfillment{}
	}
	for _, edge := range node.LineItems.Edges {
		if edge.Node == nil {
			return nil, fmt.Errorf("%w: line item edge without node", ErrUnexpectedShape)
		}
		// deleted products come back as null
		if edge.Node.Product == nil {
			continue
		}
		order.LineItems = append(order.LineItems, *edge.Node.Product)
	}

	return order, nil
}
