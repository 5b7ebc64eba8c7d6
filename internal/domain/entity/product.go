// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a sellable catalog item. The cart never copies the price;
// it is re-read from the catalog on every pricing computation.
type Product struct {
	ID          uuid.UUID // The Global Unique Identifier (GUID) for the product.
	Name        string    // The display name of the product.
	Description string    // A short marketing description.
	PriceCents  int64     // Unit price in the smallest currency unit (e.g. euro cents).
	CategoryID  uuid.UUID // The category this product is listed under.
	CreatedAt   time.Time // Timestamp of when this product was created.
	UpdatedAt   time.Time // Timestamp of the last modification.
}

// Category groups products for catalog browsing.
type Category struct {
	ID   uuid.UUID
	Name string
}
