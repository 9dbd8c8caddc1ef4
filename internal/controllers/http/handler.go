package http

import (
	"errors"
	"log"
	"net/http"

	"warranty-service/internal/services"
	"warranty-service/internal/validation"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	catalog      *services.CatalogService
	claims       *services.ClaimService
	maxFileBytes int64
}

func NewHandler(catalog *services.CatalogService, claims *services.ClaimService, maxFileBytes int64) *Handler {
	if maxFileBytes <= 0 {
		maxFileBytes = DefaultMaxFileBytes
	}
	return &Handler{catalog: catalog, claims: claims, maxFileBytes: maxFileBytes}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Health)
	r.GET("/health", h.Health)
	r.GET("/products/all", h.ListProducts)
	r.GET("/orders/", h.GetOrder)
	r.GET("/orders/:id", h.GetOrder)
	r.POST("/warranty/claim", h.CreateClaim)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": ServiceName})
}

func (h *Handler) ListProducts(c *gin.Context) {
	catalog, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      msgProducts,
		"products":     catalog.Products,
		"productTypes": catalog.ProductTypes,
	})
}

func (h *Handler) GetOrder(c *gin.Context) {
	lookup, err := h.catalog.LookupOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	body := gin.H{
		"success":        true,
		"message":        lookup.Message,
		"isShopifyOrder": lookup.IsShopifyOrder,
	}
	switch {
	case lookup.Catalog != nil:
		body["products"] = lookup.Catalog.Products
		body["productTypes"] = lookup.Catalog.ProductTypes
	case lookup.Order != nil:
		body["order"] = lookup.Order
		body["isDelivered"] = true
	default:
		body["isDelivered"] = false
	}

	c.JSON(http.StatusOK, body)
}

func (h *Handler) CreateClaim(c *gin.Context) {
	sub, err := readClaimSubmission(c, h.maxFileBytes)
	if err != nil {
		h.fail(c, err)
		return
	}

	claim, err := h.claims.Submit(c.Request.Context(), sub)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": msgClaimCreated,
		"data":    claim,
	})
}

// fail maps err onto the response envelope. Anything that is not a client
// error is logged and reported as a bare 500.
func (h *Handler) fail(c *gin.Context, err error) {
	var fieldErr *validation.FieldError
	var formErr *FormError

	switch {
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusBadRequest, errorBody(fieldErr.Message))
	case errors.As(err, &formErr):
		c.JSON(http.StatusBadRequest, errorBody(formErr.Message))
	case errors.Is(err, services.ErrOrderIDRequired):
		c.JSON(http.StatusBadRequest, errorBody(msgOrderIDNeeded))
	default:
		log.Printf("[%s] %s %s: %v", c.GetString(requestIDKey), c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, internalErrorBody())
	}
}
