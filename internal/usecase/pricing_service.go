package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// PricingService prices a cart against the live catalog.
// Both the cart view and checkout confirmation go through this single
// implementation so the two can never disagree about a total.
type PricingService interface {
	// Price returns the priced lines and grand total for a cart.
	// Entries whose product no longer exists are skipped, never fatal.
	Price(ctx context.Context, cart entity.Cart) (*entity.CartSnapshot, error)
}
