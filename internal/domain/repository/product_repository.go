// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the read-only catalog lookups the pipeline consumes.
type ProductRepository interface {
	// FindByID retrieves a product by its unique ID.
	// Returns ErrProductNotFound when no such product exists.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// List retrieves all products, ordered by name.
	List(ctx context.Context) ([]*entity.Product, error)

	// FindByCategory retrieves all products in a category, ordered by name.
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]*entity.Product, error)
}
