package impl

import (
	"context"
	"testing"

	"storefront/config"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartFixture struct {
	service  usecase.CartUsecase
	products *fakeProductRepo
	carts    *fakeCartRepo
}

func createTestCartService(t *testing.T, policy string) *cartFixture {
	t.Helper()

	products := newFakeProductRepo()
	carts := newFakeCartRepo()

	cfg := &config.Config{}
	cfg.Cart.DecrementPolicy = policy

	logger := discardLogger()
	pricing := NewPricingService(PricingServiceParams{
		ProductRepo: products,
		Logger:      logger,
	})

	service := NewCartService(CartServiceParams{
		CartRepo:    carts,
		ProductRepo: products,
		Pricing:     pricing,
		Config:      cfg,
		Logger:      logger,
	})

	return &cartFixture{service: service, products: products, carts: carts}
}

func TestCartService_AddUnknownProduct(t *testing.T) {
	f := createTestCartService(t, "floor")

	err := f.service.Add(context.Background(), uuid.NewString(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, "PRODUCT_NOT_FOUND", appErrorCode(t, err))
}

func TestCartService_AddIncrementsExistingLine(t *testing.T) {
	f := createTestCartService(t, "floor")
	ctx := context.Background()
	sessionID := uuid.NewString()
	product := f.products.add("tea", 300)

	require.NoError(t, f.service.Add(ctx, sessionID, product.ID))
	require.NoError(t, f.service.Add(ctx, sessionID, product.ID))

	cart, err := f.carts.Read(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Quantity(product.ID))
}

func TestCartService_AddThenRemoveRestoresPriorCart(t *testing.T) {
	f := createTestCartService(t, "floor")
	ctx := context.Background()
	sessionID := uuid.NewString()
	keeper := f.products.add("keeper", 100)
	passer := f.products.add("passer", 200)

	require.NoError(t, f.service.Add(ctx, sessionID, keeper.ID))
	before, err := f.carts.Read(ctx, sessionID)
	require.NoError(t, err)

	require.NoError(t, f.service.Add(ctx, sessionID, passer.ID))
	require.NoError(t, f.service.Remove(ctx, sessionID, passer.ID))

	after, err := f.carts.Read(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCartService_UpdateQuantityAbsentProduct(t *testing.T) {
	f := createTestCartService(t, "floor")

	err := f.service.UpdateQuantity(context.Background(), uuid.NewString(), uuid.New(), usecase.QuantityActionIncrement)
	require.Error(t, err)
	assert.Equal(t, "PRODUCT_NOT_IN_CART", appErrorCode(t, err))
}

func TestCartService_UpdateQuantityUnknownAction(t *testing.T) {
	f := createTestCartService(t, "floor")

	err := f.service.UpdateQuantity(context.Background(), uuid.NewString(), uuid.New(), usecase.QuantityAction("double"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", appErrorCode(t, err))
}

func TestCartService_DecrementFloorPolicyKeepsLineAtOne(t *testing.T) {
	f := createTestCartService(t, "floor")
	ctx := context.Background()
	sessionID := uuid.NewString()
	product := f.products.add("soap", 400)

	require.NoError(t, f.service.Add(ctx, sessionID, product.ID))
	require.NoError(t, f.service.UpdateQuantity(ctx, sessionID, product.ID, usecase.QuantityActionDecrement))

	cart, err := f.carts.Read(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Quantity(product.ID))
}

func TestCartService_DecrementRemovePolicyDeletesLineAtOne(t *testing.T) {
	f := createTestCartService(t, "remove")
	ctx := context.Background()
	sessionID := uuid.NewString()
	product := f.products.add("soap", 400)

	require.NoError(t, f.service.Add(ctx, sessionID, product.ID))
	require.NoError(t, f.service.UpdateQuantity(ctx, sessionID, product.ID, usecase.QuantityActionDecrement))

	cart, err := f.carts.Read(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartService_DecrementAboveOneAlwaysLowers(t *testing.T) {
	for _, policy := range []string{"floor", "remove"} {
		f := createTestCartService(t, policy)
		ctx := context.Background()
		sessionID := uuid.NewString()
		product := f.products.add("mug", 900)

		require.NoError(t, f.service.Add(ctx, sessionID, product.ID))
		require.NoError(t, f.service.Add(ctx, sessionID, product.ID))
		require.NoError(t, f.service.UpdateQuantity(ctx, sessionID, product.ID, usecase.QuantityActionDecrement))

		cart, err := f.carts.Read(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 1, cart.Quantity(product.ID), "policy %s", policy)
	}
}

func TestCartService_SnapshotTotals(t *testing.T) {
	f := createTestCartService(t, "floor")
	ctx := context.Background()
	sessionID := uuid.NewString()
	coffee := f.products.add("coffee", 1000)
	filter := f.products.add("filter", 500)

	require.NoError(t, f.service.Add(ctx, sessionID, coffee.ID))
	require.NoError(t, f.service.Add(ctx, sessionID, coffee.ID))
	require.NoError(t, f.service.Add(ctx, sessionID, filter.ID))

	snapshot, err := f.service.Snapshot(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, snapshot.Lines, 2)
	assert.Equal(t, int64(2500), snapshot.TotalCents)

	var sum int64
	for _, line := range snapshot.Lines {
		sum += line.SubtotalCents
		assert.Equal(t, line.UnitPriceCents*int64(line.Quantity), line.SubtotalCents)
	}
	assert.Equal(t, snapshot.TotalCents, sum)
}

func TestCartService_SnapshotSkipsDelistedProduct(t *testing.T) {
	f := createTestCartService(t, "floor")
	ctx := context.Background()
	sessionID := uuid.NewString()
	coffee := f.products.add("coffee", 1000)
	doomed := f.products.add("doomed", 9999)

	require.NoError(t, f.service.Add(ctx, sessionID, coffee.ID))
	require.NoError(t, f.service.Add(ctx, sessionID, doomed.ID))

	// The product disappears from the catalog after it entered the cart.
	delete(f.products.products, doomed.ID)

	snapshot, err := f.service.Snapshot(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, coffee.ID, snapshot.Lines[0].ProductID)
	assert.Equal(t, int64(1000), snapshot.TotalCents)
}

func TestCartService_SnapshotEmptySession(t *testing.T) {
	f := createTestCartService(t, "floor")

	snapshot, err := f.service.Snapshot(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Lines)
	assert.Equal(t, int64(0), snapshot.TotalCents)
}

func TestCartService_ClearEmptiesCart(t *testing.T) {
	f := createTestCartService(t, "floor")
	ctx := context.Background()
	sessionID := uuid.NewString()
	product := f.products.add("tea", 300)

	require.NoError(t, f.service.Add(ctx, sessionID, product.ID))
	require.NoError(t, f.service.Clear(ctx, sessionID))

	cart, err := f.carts.Read(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartService_InvalidPolicyFallsBackToFloor(t *testing.T) {
	f := createTestCartService(t, "nonsense")
	ctx := context.Background()
	sessionID := uuid.NewString()
	product := f.products.add("soap", 400)

	require.NoError(t, f.service.Add(ctx, sessionID, product.ID))
	require.NoError(t, f.service.UpdateQuantity(ctx, sessionID, product.ID, usecase.QuantityActionDecrement))

	cart, err := f.carts.Read(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Quantity(product.ID))
}
