package entity

import (
	"time"

	"github.com/google/uuid"
)

// Address is a buyer's saved delivery destination.
type Address struct {
	ID          uuid.UUID // The Global Unique Identifier (GUID) for the address.
	UserID      uuid.UUID // The user that owns this address.
	Label       string    // A user-defined label, e.g., "Home", "Office".
	FullAddress string    // The full, human-readable street address.
	IsPrimary   bool      // Indicates if this is the user's primary address.
	CreatedAt   time.Time // Timestamp of when this address was created.
	UpdatedAt   time.Time // Timestamp of the last modification.
}
