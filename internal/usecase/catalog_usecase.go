// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CatalogUsecase defines the interface for catalog browsing operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type CatalogUsecase interface {
	// ListProducts returns the whole catalog, ordered by name.
	ListProducts(ctx context.Context) ([]*entity.Product, error)

	// GetProduct returns a single product.
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// ListProductsByCategory returns all products in a category, ordered by name.
	ListProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*entity.Product, error)
}
