package impl

import (
	"context"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	service   usecase.CheckoutUsecase
	products  *fakeProductRepo
	carts     *fakeCartRepo
	stocks    *fakeStockRepo
	orders    *fakeOrderRepo
	shipments *fakeShipmentRepo
	addresses *fakeAddressRepo
	gateway   *fakePaymentGateway
	publisher *fakePublisher
}

func createTestCheckoutService(t *testing.T) *checkoutFixture {
	t.Helper()

	products := newFakeProductRepo()
	carts := newFakeCartRepo()
	stocks := newFakeStockRepo()
	orders := newFakeOrderRepo()
	shipments := newFakeShipmentRepo()
	addresses := newFakeAddressRepo()
	gateway := newFakePaymentGateway()
	publisher := &fakePublisher{}

	factory := &fakeFactory{
		products:  products,
		stocks:    stocks,
		orders:    orders,
		shipments: shipments,
		addresses: addresses,
	}

	cfg := &config.Config{}
	cfg.Payment.Currency = "eur"

	logger := discardLogger()
	pricing := NewPricingService(PricingServiceParams{
		ProductRepo: products,
		Logger:      logger,
	})

	service := NewCheckoutService(CheckoutServiceParams{
		CartRepo:  carts,
		OrderRepo: orders,
		Pricing:   pricing,
		TxManager: &fakeTxManager{factory: factory},
		Gateway:   gateway,
		Publisher: publisher,
		Config:    cfg,
		Logger:    logger,
	})

	return &checkoutFixture{
		service:   service,
		products:  products,
		carts:     carts,
		stocks:    stocks,
		orders:    orders,
		shipments: shipments,
		addresses: addresses,
		gateway:   gateway,
		publisher: publisher,
	}
}

// seedCart fills a session cart with two products worth 2500 cents in total
// and stocks both generously.
func (f *checkoutFixture) seedCart(t *testing.T, sessionID string) (*entity.Product, *entity.Product) {
	t.Helper()

	coffee := f.products.add("coffee beans", 1000)
	filter := f.products.add("paper filter", 500)
	f.stocks.quantities[coffee.ID] = 10
	f.stocks.quantities[filter.ID] = 10

	cart := entity.NewCart()
	cart[coffee.ID] = 2
	cart[filter.ID] = 1
	require.NoError(t, f.carts.Write(context.Background(), sessionID, cart))

	return coffee, filter
}

func guestInput(sessionID, reference string, totalCents int64) usecase.FinalizeInput {
	return usecase.FinalizeInput{
		SessionID:        sessionID,
		GuestName:        "王小明",
		PaymentReference: reference,
		ClientTotalCents: totalCents,
		Destination: usecase.Destination{
			FreeText: "台北市信義區市府路1號",
		},
	}
}

func appErrorCode(t *testing.T, err error) string {
	t.Helper()

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)

	return appErr.ErrorCode()
}

func TestCheckoutService_Finalize_GuestHappyPath(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	sessionID := uuid.NewString()
	coffee, filter := f.seedCart(t, sessionID)
	f.gateway.confirm("pi_test", 2500, "eur")

	output, err := f.service.Finalize(ctx, guestInput(sessionID, "pi_test", 2500))
	require.NoError(t, err)
	require.NotNil(t, output.Order)
	assert.False(t, output.AlreadyFinalized)

	order := output.Order
	assert.Equal(t, entity.OrderStatusAwaitingPreparation, order.Status)
	assert.Equal(t, int64(2500), order.TotalCents)
	assert.Equal(t, "pi_test", order.PaymentReference)
	assert.Nil(t, order.UserID)
	assert.Equal(t, "王小明", order.GuestName)
	require.Len(t, order.Lines, 2)

	// The order total equals the sum of line subtotals.
	var sum int64
	for _, line := range order.Lines {
		sum += line.SubtotalCents
	}
	assert.Equal(t, order.TotalCents, sum)

	// Stock was decremented per line.
	assert.Equal(t, 8, f.stocks.quantities[coffee.ID])
	assert.Equal(t, 9, f.stocks.quantities[filter.ID])

	// The shipment carries the free-text destination.
	shipment, err := f.shipments.FindByOrderID(ctx, order.ID)
	require.NoError(t, err)
	assert.False(t, shipment.ToUserAddress)
	assert.Equal(t, "台北市信義區市府路1號", shipment.DeliveryAddress)
	assert.Equal(t, entity.ShipmentStatusPending, shipment.Status)

	// The cart is gone and the event went out.
	cart, err := f.carts.Read(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, order.ID, f.publisher.events[0].OrderID)
}

func TestCheckoutService_Finalize_UserWithSavedAddress(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	sessionID := uuid.NewString()
	f.seedCart(t, sessionID)

	userID := uuid.New()
	address := f.addresses.add(userID)
	f.gateway.confirm("pi_user", 2500, "eur")

	output, err := f.service.Finalize(ctx, usecase.FinalizeInput{
		SessionID:        sessionID,
		UserID:           &userID,
		PaymentReference: "pi_user",
		ClientTotalCents: 2500,
		Destination: usecase.Destination{
			ToUserAddress: true,
			AddressID:     &address.ID,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, output.Order.UserID)
	assert.Equal(t, userID, *output.Order.UserID)

	shipment, err := f.shipments.FindByOrderID(ctx, output.Order.ID)
	require.NoError(t, err)
	assert.True(t, shipment.ToUserAddress)
	require.NotNil(t, shipment.AddressID)
	assert.Equal(t, address.ID, *shipment.AddressID)
}

func TestCheckoutService_Finalize_AddressOwnershipViolation(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	sessionID := uuid.NewString()
	coffee, _ := f.seedCart(t, sessionID)

	userID := uuid.New()
	otherUsersAddress := f.addresses.add(uuid.New())
	f.gateway.confirm("pi_steal", 2500, "eur")

	_, err := f.service.Finalize(ctx, usecase.FinalizeInput{
		SessionID:        sessionID,
		UserID:           &userID,
		PaymentReference: "pi_steal",
		ClientTotalCents: 2500,
		Destination: usecase.Destination{
			ToUserAddress: true,
			AddressID:     &otherUsersAddress.ID,
		},
	})
	require.Error(t, err)
	assert.Equal(t, "ADDRESS_OWNERSHIP_VIOLATION", appErrorCode(t, err))

	// Rolled back: nothing persisted, stock untouched.
	assert.Empty(t, f.orders.orders)
	assert.Equal(t, 10, f.stocks.quantities[coffee.ID])
}

func TestCheckoutService_Finalize_BuyerIdentityValidation(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	sessionID := uuid.NewString()
	f.seedCart(t, sessionID)
	userID := uuid.New()

	// Neither user nor guest name.
	input := guestInput(sessionID, "pi_id", 2500)
	input.GuestName = ""
	_, err := f.service.Finalize(ctx, input)
	require.Error(t, err)
	assert.Equal(t, "BUYER_IDENTITY_INVALID", appErrorCode(t, err))

	// Both user and guest name.
	input = guestInput(sessionID, "pi_id", 2500)
	input.UserID = &userID
	_, err = f.service.Finalize(ctx, input)
	require.Error(t, err)
	assert.Equal(t, "BUYER_IDENTITY_INVALID", appErrorCode(t, err))
}

func TestCheckoutService_Finalize_EmptyCart(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()

	_, err := f.service.Finalize(ctx, guestInput(uuid.NewString(), "pi_empty", 100))
	require.Error(t, err)
	assert.Equal(t, "CART_EMPTY", appErrorCode(t, err))
}

func TestCheckoutService_Finalize_TamperedTotal(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	sessionID := uuid.NewString()
	coffee, _ := f.seedCart(t, sessionID)
	f.gateway.confirm("pi_tamper", 1, "eur")

	// Client claims one cent instead of 2500.
	_, err := f.service.Finalize(ctx, guestInput(sessionID, "pi_tamper", 1))
	require.Error(t, err)
	assert.Equal(t, "TOTAL_MISMATCH", appErrorCode(t, err))

	// Nothing was persisted and the cart survives.
	assert.Empty(t, f.orders.orders)
	assert.Equal(t, 10, f.stocks.quantities[coffee.ID])
	cart, err := f.carts.Read(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, cart.IsEmpty())
}

func TestCheckoutService_Finalize_PaymentNotSucceeded(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	sessionID := uuid.NewString()
	f.seedCart(t, sessionID)

	// The intent exists but never reached succeeded.
	_, reference, err := f.gateway.CreateIntent(ctx, 2500, "eur")
	require.NoError(t, err)

	_, err = f.service.Finalize(ctx, guestInput(sessionID, reference, 2500))
	require.Error(t, err)
	assert.Equal(t, "PAYMENT_NOT_CONFIRMED", appErrorCode(t, err))

	// The cart is preserved for a retry after payment.
	cart, err := f.carts.Read(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, cart.IsEmpty())
	assert.Empty(t, f.orders.orders)
}

func TestCheckoutService_Finalize_PaidAmountMismatch(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	sessionID := uuid.NewString()
	f.seedCart(t, sessionID)

	// Succeeded, but for the wrong amount.
	f.gateway.confirm("pi_short", 100, "eur")

	_, err := f.service.Finalize(ctx, guestInput(sessionID, "pi_short", 2500))
	require.Error(t, err)
	assert.Equal(t, "PAID_AMOUNT_MISMATCH", appErrorCode(t, err))
	assert.Empty(t, f.orders.orders)

	// The cart is preserved so the buyer can settle the difference and retry.
	cart, err := f.carts.Read(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, cart.IsEmpty())
}

func TestCheckoutService_Finalize_ProviderFailure(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	sessionID := uuid.NewString()
	f.seedCart(t, sessionID)
	f.gateway.retrieveErr = errors.New("connection reset")

	_, err := f.service.Finalize(ctx, guestInput(sessionID, "pi_down", 2500))
	require.Error(t, err)
	assert.Equal(t, "PAYMENT_PROVIDER_FAILED", appErrorCode(t, err))

	cart, err := f.carts.Read(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, cart.IsEmpty())
}

func TestCheckoutService_Finalize_Idempotent(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	sessionID := uuid.NewString()
	coffee, filter := f.seedCart(t, sessionID)
	f.gateway.confirm("pi_twice", 2500, "eur")

	first, err := f.service.Finalize(ctx, guestInput(sessionID, "pi_twice", 2500))
	require.NoError(t, err)
	assert.False(t, first.AlreadyFinalized)

	// Replay the confirmation with the cart refilled, as a double-submitting
	// client would.
	cart := entity.NewCart()
	cart[coffee.ID] = 2
	cart[filter.ID] = 1
	require.NoError(t, f.carts.Write(ctx, sessionID, cart))

	second, err := f.service.Finalize(ctx, guestInput(sessionID, "pi_twice", 2500))
	require.NoError(t, err)
	assert.True(t, second.AlreadyFinalized)
	assert.Equal(t, first.Order.ID, second.Order.ID)

	// Exactly one order exists and stock moved only once.
	assert.Len(t, f.orders.orders, 1)
	assert.Equal(t, 8, f.stocks.quantities[coffee.ID])
	assert.Equal(t, 9, f.stocks.quantities[filter.ID])
}

func TestCheckoutService_Finalize_IdempotentAfterCartCleared(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	sessionID := uuid.NewString()
	coffee, filter := f.seedCart(t, sessionID)
	f.gateway.confirm("pi_reload", 2500, "eur")

	first, err := f.service.Finalize(ctx, guestInput(sessionID, "pi_reload", 2500))
	require.NoError(t, err)
	assert.False(t, first.AlreadyFinalized)

	// The buyer reloads the confirmation page. The first success already
	// cleared the cart, so the replay arrives with it empty.
	cart, err := f.carts.Read(ctx, sessionID)
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())

	second, err := f.service.Finalize(ctx, guestInput(sessionID, "pi_reload", 2500))
	require.NoError(t, err)
	assert.True(t, second.AlreadyFinalized)
	assert.Equal(t, first.Order.ID, second.Order.ID)

	assert.Len(t, f.orders.orders, 1)
	assert.Equal(t, 8, f.stocks.quantities[coffee.ID])
	assert.Equal(t, 9, f.stocks.quantities[filter.ID])
}

func TestCheckoutService_Finalize_InsufficientStockRollsBack(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	sessionID := uuid.NewString()
	coffee, filter := f.seedCart(t, sessionID)

	// Enough coffee, not enough filters.
	f.stocks.quantities[filter.ID] = 0
	f.gateway.confirm("pi_oos", 2500, "eur")

	_, err := f.service.Finalize(ctx, guestInput(sessionID, "pi_oos", 2500))
	require.Error(t, err)
	assert.Equal(t, "INSUFFICIENT_STOCK", appErrorCode(t, err))

	// The earlier coffee decrement was rolled back with everything else.
	assert.Equal(t, 10, f.stocks.quantities[coffee.ID])
	assert.Equal(t, 0, f.stocks.quantities[filter.ID])
	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.shipments.shipments)

	cart, err := f.carts.Read(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, cart.IsEmpty())
}

func TestCheckoutService_Finalize_InjectedFailureLeavesNoTrace(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	sessionID := uuid.NewString()
	coffee, filter := f.seedCart(t, sessionID)

	// An arbitrary infrastructure failure on the second line.
	f.stocks.failOn = filter.ID
	f.stocks.failErr = errors.New("deadlock detected")
	f.gateway.confirm("pi_boom", 2500, "eur")

	_, err := f.service.Finalize(ctx, guestInput(sessionID, "pi_boom", 2500))
	require.Error(t, err)

	assert.Equal(t, 10, f.stocks.quantities[coffee.ID])
	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.shipments.shipments)
	assert.Empty(t, f.publisher.events)
}

func TestCheckoutService_Finalize_PublishFailureDoesNotUndoOrder(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	sessionID := uuid.NewString()
	f.seedCart(t, sessionID)
	f.gateway.confirm("pi_pub", 2500, "eur")
	f.publisher.publishErr = errors.New("broker unavailable")

	output, err := f.service.Finalize(ctx, guestInput(sessionID, "pi_pub", 2500))
	require.NoError(t, err)
	assert.Len(t, f.orders.orders, 1)

	// The cart was still cleared; the order stands.
	cart, err := f.carts.Read(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.NotNil(t, output.Order)
}

func TestCheckoutService_CreateIntent(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	sessionID := uuid.NewString()
	f.seedCart(t, sessionID)

	output, err := f.service.CreateIntent(ctx, sessionID)
	require.NoError(t, err)
	assert.NotEmpty(t, output.ClientSecret)
	assert.NotEmpty(t, output.Reference)
	assert.Equal(t, int64(2500), output.TotalCents)
	assert.Equal(t, "eur", output.Currency)
}

func TestCheckoutService_CreateIntent_EmptyCart(t *testing.T) {
	f := createTestCheckoutService(t)

	_, err := f.service.CreateIntent(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.Equal(t, "CART_EMPTY", appErrorCode(t, err))
}

func TestCheckoutService_CreateIntent_ProviderFailure(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	sessionID := uuid.NewString()
	f.seedCart(t, sessionID)
	f.gateway.createErr = errors.New("stripe is down")

	_, err := f.service.CreateIntent(ctx, sessionID)
	require.Error(t, err)
	assert.Equal(t, "PAYMENT_PROVIDER_FAILED", appErrorCode(t, err))
}
