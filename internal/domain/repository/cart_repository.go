package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// CartRepository is the session-scoped cart store.
// A session that has never written a cart reads back an empty one;
// callers never need to initialize anything.
type CartRepository interface {
	// Read returns the cart for a session, empty when none exists.
	Read(ctx context.Context, sessionID string) (entity.Cart, error)

	// Write replaces the cart for a session. Writing an empty cart is
	// equivalent to Clear.
	Write(ctx context.Context, sessionID string, cart entity.Cart) error

	// Clear removes the session's cart entirely.
	Clear(ctx context.Context, sessionID string) error
}
