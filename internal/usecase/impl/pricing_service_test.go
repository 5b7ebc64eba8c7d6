package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingService_DeterministicLineOrder(t *testing.T) {
	products := newFakeProductRepo()
	service := NewPricingService(PricingServiceParams{
		ProductRepo: products,
		Logger:      discardLogger(),
	})

	cart := entity.NewCart()
	names := []string{"espresso", "americano", "latte", "mocha", "cappuccino"}
	for _, name := range names {
		p := products.add(name, 500)
		cart[p.ID] = 1
	}

	first, err := service.Price(context.Background(), cart)
	require.NoError(t, err)

	// Repeated pricing of the same cart yields identical snapshots despite
	// random map iteration order.
	for range 10 {
		again, err := service.Price(context.Background(), cart)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	// Lines come out sorted by product name.
	for i := 1; i < len(first.Lines); i++ {
		assert.LessOrEqual(t, first.Lines[i-1].ProductName, first.Lines[i].ProductName)
	}
}

func TestPricingService_IntegerCentsExact(t *testing.T) {
	products := newFakeProductRepo()
	service := NewPricingService(PricingServiceParams{
		ProductRepo: products,
		Logger:      discardLogger(),
	})

	// Prices that would accumulate float error stay exact in cents.
	a := products.add("a", 199)
	b := products.add("b", 301)
	cart := entity.NewCart()
	cart[a.ID] = 3
	cart[b.ID] = 7

	snapshot, err := service.Price(context.Background(), cart)
	require.NoError(t, err)
	assert.Equal(t, int64(199*3+301*7), snapshot.TotalCents)
}

func TestPricingService_EmptyCart(t *testing.T) {
	service := NewPricingService(PricingServiceParams{
		ProductRepo: newFakeProductRepo(),
		Logger:      discardLogger(),
	})

	snapshot, err := service.Price(context.Background(), entity.NewCart())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Lines)
	assert.Equal(t, int64(0), snapshot.TotalCents)
}
