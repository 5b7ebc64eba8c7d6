package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderDetail is an order header with its lines and delivery record.
type OrderDetail struct {
	Order    *entity.Order
	Shipment *entity.Shipment
}

// OrderUsecase defines the interface for order management operations.
// Listing and status changes are admin-facing; ListByUser serves a buyer's
// own order history. Order lines are immutable after creation.
type OrderUsecase interface {
	// ListOrders returns all orders, newest first.
	ListOrders(ctx context.Context) ([]*entity.Order, error)

	// GetOrder returns one order with its lines and shipment.
	GetOrder(ctx context.Context, id uuid.UUID) (*OrderDetail, error)

	// UpdateStatus moves an order through its lifecycle.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	// ListByUser returns one buyer's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
}

// StockUsecase defines the interface for admin stock management.
type StockUsecase interface {
	// GetStock returns the remaining quantity for a product.
	GetStock(ctx context.Context, productID uuid.UUID) (*entity.Stock, error)

	// SetStock overwrites the remaining quantity for a product.
	SetStock(ctx context.Context, productID uuid.UUID, quantity int) error
}
