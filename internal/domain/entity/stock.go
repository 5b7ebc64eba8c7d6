package entity

import (
	"time"

	"github.com/google/uuid"
)

// Stock is the authoritative remaining-quantity counter for one product.
type Stock struct {
	ProductID uuid.UUID
	Quantity  int
	UpdatedAt time.Time
}
