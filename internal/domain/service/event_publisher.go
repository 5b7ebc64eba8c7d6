package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderFinalizedEvent is published after a checkout transaction commits.
// Publishing is best-effort; a publish failure never rolls back the order.
type OrderFinalizedEvent struct {
	OrderID          uuid.UUID `json:"order_id"`
	PaymentReference string    `json:"payment_reference"`
	TotalCents       int64     `json:"total_cents"`
	Currency         string    `json:"currency"`
	LineCount        int       `json:"line_count"`
	FinalizedAt      time.Time `json:"finalized_at"`
	RequestID        string    `json:"request_id,omitempty"`
}

// EventPublisher publishes order lifecycle events to downstream consumers
// (fulfilment, analytics). Implementations must be safe for concurrent use.
type EventPublisher interface {
	PublishOrderFinalized(ctx context.Context, event *OrderFinalizedEvent) error
	Close() error
}
