package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// ErrShipmentNotFound is returned when a shipment is not found.
var ErrShipmentNotFound = errors.New("shipment not found")

// ShipmentRepository persists the delivery record attached to each order.
type ShipmentRepository interface {
	// Create persists a new shipment for an order.
	Create(ctx context.Context, shipment *entity.Shipment) error

	// FindByOrderID retrieves the shipment of an order.
	// Returns ErrShipmentNotFound when none exists.
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Shipment, error)
}
