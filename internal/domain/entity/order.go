package entity

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. The lifecycle is free text beyond the initial state;
// these are the values the storefront itself writes.
const (
	OrderStatusAwaitingPreparation = "awaiting_preparation"
	OrderStatusPrepared            = "prepared"
	OrderStatusShipped             = "shipped"
	OrderStatusDelivered           = "delivered"
)

// Order is the durable record of a finalized purchase.
// Exactly one of UserID and GuestName identifies the buyer.
type Order struct {
	ID               uuid.UUID
	UserID           *uuid.UUID // Set for authenticated buyers, nil for guests.
	GuestName        string     // Set for guest buyers, empty otherwise.
	PaymentReference string     // Provider payment-intent ID; unique per order.
	TotalCents       int64      // Equals the sum of line subtotals at creation time.
	Status           string
	Lines            []OrderLine
	CreatedAt        time.Time
	UpdatedAt        *time.Time // Nil until the first status change.
}

// OrderLine is one product's quantity and price-at-purchase-time within an order.
// Lines are owned by their order and never mutated after creation.
type OrderLine struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	ProductID     uuid.UUID
	Quantity      int
	SubtotalCents int64 // Live unit price at finalization time * Quantity.
}
