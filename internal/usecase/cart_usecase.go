package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// QuantityAction selects the direction of a cart quantity update.
type QuantityAction string

const (
	// QuantityActionIncrement raises the line quantity by 1.
	QuantityActionIncrement QuantityAction = "increment"
	// QuantityActionDecrement lowers the line quantity by 1, subject to the
	// configured decrement policy.
	QuantityActionDecrement QuantityAction = "decrement"
)

// Valid reports whether the action is one of the known values.
func (a QuantityAction) Valid() bool {
	return a == QuantityActionIncrement || a == QuantityActionDecrement
}

// CartUsecase defines the interface for session cart operations.
// All operations read and write the session store; nothing here is durable.
type CartUsecase interface {
	// Add puts one unit of a product in the cart, incrementing when already
	// present. The product must exist in the catalog.
	Add(ctx context.Context, sessionID string, productID uuid.UUID) error

	// UpdateQuantity increments or decrements an existing cart line.
	// The product must already be in the cart.
	UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, action QuantityAction) error

	// Remove deletes a cart line unconditionally.
	Remove(ctx context.Context, sessionID string, productID uuid.UUID) error

	// Clear empties the cart.
	Clear(ctx context.Context, sessionID string) error

	// Snapshot prices the cart against the live catalog and returns the
	// lines plus the grand total.
	Snapshot(ctx context.Context, sessionID string) (*entity.CartSnapshot, error)
}
