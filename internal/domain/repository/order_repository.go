package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines order header and order line persistence.
// Lines are created together with their header and are immutable afterwards.
type OrderRepository interface {
	// Create persists an order header together with its lines.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order with its lines.
	// Returns ErrOrderNotFound when no such order exists.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByPaymentReference retrieves the order created for a provider payment
	// reference, if any. Returns ErrOrderNotFound when none exists.
	// This is the idempotency lookup guarding against double confirmation.
	FindByPaymentReference(ctx context.Context, reference string) (*entity.Order, error)

	// FindByUserID retrieves all orders of one buyer, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// List retrieves all orders, newest first.
	List(ctx context.Context) ([]*entity.Order, error)

	// UpdateStatus sets a new lifecycle status and stamps updated_at.
	// Returns ErrOrderNotFound when no such order exists.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}
