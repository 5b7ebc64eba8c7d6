package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// Destination describes where a finalized order ships to.
// Exactly one of AddressID and FreeText is meaningful: saved addresses for
// authenticated buyers, free-text destinations for guests.
type Destination struct {
	ToUserAddress bool
	AddressID     *uuid.UUID
	FreeText      string
}

// FinalizeInput carries everything needed to turn a paid cart into an order.
type FinalizeInput struct {
	SessionID        string
	UserID           *uuid.UUID // Set for authenticated buyers.
	GuestName        string     // Set for guest buyers.
	PaymentReference string     // The provider's payment-intent ID.
	ClientTotalCents int64      // The total the buyer saw; verified, never trusted.
	Destination      Destination
	RequestID        string // Propagated into the published event for tracing.
}

// --- Output DTOs ---

// IntentOutput returns what the buyer-side payment widget needs.
type IntentOutput struct {
	ClientSecret string
	Reference    string
	TotalCents   int64
	Currency     string
}

// FinalizeOutput returns the durable order created (or found) for a confirmation.
type FinalizeOutput struct {
	Order *entity.Order

	// AlreadyFinalized is true when the payment reference had already been
	// consumed and the existing order was returned instead of a new one.
	AlreadyFinalized bool
}

// CheckoutUsecase defines the interface for the checkout pipeline.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type CheckoutUsecase interface {
	// CreateIntent registers a payment with the provider for the session's
	// current cart total and returns the widget bootstrap data.
	CreateIntent(ctx context.Context, sessionID string) (*IntentOutput, error)

	// Finalize verifies the payment and atomically persists the order, its
	// lines, the stock decrements and the delivery record.
	Finalize(ctx context.Context, input FinalizeInput) (*FinalizeOutput, error)
}
