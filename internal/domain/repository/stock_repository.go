package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for stock persistence.
var (
	// ErrStockNotFound is returned when a product has no stock row at all.
	ErrStockNotFound = errors.New("stock not found")
	// ErrInsufficientStock is returned when a conditional decrement would take
	// the remaining quantity below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// StockRepository is the single source of truth for sellable quantity per product.
type StockRepository interface {
	// FindByProductID retrieves the stock row for a product.
	// Returns ErrStockNotFound when the product has no stock row.
	FindByProductID(ctx context.Context, productID uuid.UUID) (*entity.Stock, error)

	// DecrementIfAvailable atomically subtracts quantity from the product's stock,
	// failing without any change when the remaining quantity would go negative.
	// Returns ErrStockNotFound or ErrInsufficientStock accordingly.
	DecrementIfAvailable(ctx context.Context, productID uuid.UUID, quantity int) error

	// Set overwrites the stock quantity for a product, creating the row when absent.
	Set(ctx context.Context, productID uuid.UUID, quantity int) error
}
