// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"time"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler holds dependencies for catalog browsing handlers.
type CatalogHandler struct {
	uc usecase.CatalogUsecase
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// productView is the JSON shape of a catalog product.
type productView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	CategoryID  uuid.UUID `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func toProductView(p *entity.Product) productView {
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		CategoryID:  p.CategoryID,
		CreatedAt:   p.CreatedAt,
	}
}

// ListProducts handles the catalog listing request, optionally filtered by category.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	var (
		products []*entity.Product
		err      error
	)

	if categoryParam := c.QueryParam("category"); categoryParam != "" {
		categoryID, parseErr := uuid.Parse(categoryParam)
		if parseErr != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid category id")
		}
		products, err = h.uc.ListProductsByCategory(c.Request().Context(), categoryID)
	} else {
		products, err = h.uc.ListProducts(c.Request().Context())
	}
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}

	return response.Success(c, http.StatusOK, views, "Products retrieved successfully")
}

// GetProduct handles the single product request.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	product, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductView(product), "Product retrieved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
