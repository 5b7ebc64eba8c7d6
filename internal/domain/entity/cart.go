package entity

import "github.com/google/uuid"

// DecrementPolicy controls what happens when a cart line at quantity 1 is decremented.
type DecrementPolicy string

const (
	// DecrementPolicyFloor keeps the line at quantity 1.
	DecrementPolicyFloor DecrementPolicy = "floor"
	// DecrementPolicyRemove deletes the line when it would drop to 0.
	DecrementPolicyRemove DecrementPolicy = "remove"
)

// Valid reports whether the policy is one of the known values.
func (p DecrementPolicy) Valid() bool {
	return p == DecrementPolicyFloor || p == DecrementPolicyRemove
}

// Cart is a session-scoped mapping of product ID to desired quantity.
// Quantities are always >= 1; a zero-quantity entry never exists.
type Cart map[uuid.UUID]int

// NewCart returns an empty cart.
func NewCart() Cart {
	return make(Cart)
}

// Add inserts the product with quantity 1, or increments it when already present.
func (c Cart) Add(productID uuid.UUID) {
	c[productID]++
}

// Increment raises the quantity of an existing entry by 1.
// It reports whether the product was present.
func (c Cart) Increment(productID uuid.UUID) bool {
	if _, ok := c[productID]; !ok {
		return false
	}
	c[productID]++

	return true
}

// Decrement lowers the quantity of an existing entry by 1 according to the policy.
// It reports whether the product was present.
func (c Cart) Decrement(productID uuid.UUID, policy DecrementPolicy) bool {
	qty, ok := c[productID]
	if !ok {
		return false
	}

	switch {
	case qty > 1:
		c[productID] = qty - 1
	case policy == DecrementPolicyRemove:
		delete(c, productID)
	default:
		// Floor policy: a line at quantity 1 stays at 1.
	}

	return true
}

// Remove deletes the entry unconditionally.
func (c Cart) Remove(productID uuid.UUID) {
	delete(c, productID)
}

// IsEmpty reports whether the cart holds no entries.
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

// Quantity returns the quantity for a product, 0 when absent.
func (c Cart) Quantity(productID uuid.UUID) int {
	return c[productID]
}

// Clone returns an independent copy of the cart.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for id, qty := range c {
		out[id] = qty
	}

	return out
}

// PricedCartLine is one cart entry priced against the live catalog.
// It is derived and ephemeral, never persisted.
type PricedCartLine struct {
	ProductID      uuid.UUID
	ProductName    string
	Quantity       int
	UnitPriceCents int64
	SubtotalCents  int64 // UnitPriceCents * Quantity.
}

// CartSnapshot is the priced view of a cart at one instant:
// the lines plus the grand total, computed from live catalog prices.
type CartSnapshot struct {
	Lines      []PricedCartLine
	TotalCents int64 // Sum of line subtotals.
}
