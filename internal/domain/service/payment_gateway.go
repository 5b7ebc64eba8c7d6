// Package service defines interfaces for domain services provided by the infrastructure layer.
package service

import "context"

// Payment intent statuses as reported by the provider, reduced to the
// distinctions the checkout pipeline cares about. Only StatusSucceeded
// allows order finalization; everything else short-circuits it.
const (
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusPending   = "pending"
	PaymentStatusFailed    = "failed"
	PaymentStatusUnknown   = "unknown"
)

// PaymentIntent is the provider's view of one payment attempt.
type PaymentIntent struct {
	Reference   string // The provider's payment-intent ID.
	Status      string
	AmountCents int64
	Currency    string
}

// PaymentGateway is the boundary to the external payment provider.
// Calls are synchronous with a bounded timeout; a timeout is a
// provider error, never an implicit success.
type PaymentGateway interface {
	// CreateIntent registers a payment of the given amount with the provider
	// and returns the client secret the buyer-side widget needs, plus the
	// provider reference identifying the intent.
	CreateIntent(ctx context.Context, amountCents int64, currency string) (clientSecret, reference string, err error)

	// RetrieveIntent queries the provider for the current state of an intent.
	RetrieveIntent(ctx context.Context, reference string) (*PaymentIntent, error)
}
