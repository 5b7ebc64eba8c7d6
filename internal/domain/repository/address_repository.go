package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// ErrAddressNotFound is returned when an address is not found.
var ErrAddressNotFound = errors.New("address not found")

// AddressRepository defines lookups over buyers' saved delivery addresses.
// The storefront only reads addresses; address management lives elsewhere.
type AddressRepository interface {
	// FindByID retrieves an address by its unique ID.
	// Returns ErrAddressNotFound when no such address exists.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Address, error)

	// FindByUser retrieves all addresses of a user, primary first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error)
}
