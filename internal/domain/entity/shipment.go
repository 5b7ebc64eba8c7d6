package entity

import (
	"time"

	"github.com/google/uuid"
)

// ShipmentStatusPending is the initial status of every delivery record.
const ShipmentStatusPending = "pending"

// Shipment attaches a delivery destination to a finalized order.
// When ToUserAddress is true the destination is the saved address referenced
// by AddressID; otherwise DeliveryAddress holds a free-text destination.
type Shipment struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	ToUserAddress   bool
	AddressID       *uuid.UUID // Nil for guest checkouts.
	DeliveryAddress string     // Empty when delivering to a saved address.
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
