package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type checkoutService struct {
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
	pricing   usecase.PricingService
	txManager repository.TransactionManager
	gateway   service.PaymentGateway
	publisher service.EventPublisher
	currency  string
	logger    *slog.Logger
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	CartRepo  repository.CartRepository
	OrderRepo repository.OrderRepository
	Pricing   usecase.PricingService
	TxManager repository.TransactionManager
	Gateway   service.PaymentGateway
	Publisher service.EventPublisher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewCheckoutService creates a new checkout service instance
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		cartRepo:  params.CartRepo,
		orderRepo: params.OrderRepo,
		pricing:   params.Pricing,
		txManager: params.TxManager,
		gateway:   params.Gateway,
		publisher: params.Publisher,
		currency:  params.Config.Payment.Currency,
		logger:    params.Logger,
	}
}

// CreateIntent registers a payment with the provider for the session's current
// cart total. The amount comes from a fresh snapshot, never from the client.
func (s *checkoutService) CreateIntent(ctx context.Context, sessionID string) (*usecase.IntentOutput, error) {
	cart, err := s.cartRepo.Read(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cart")
	}
	if cart.IsEmpty() {
		return nil, domainerrors.ErrCartEmpty.WrapMessage("cannot create payment intent for empty cart")
	}

	snapshot, err := s.pricing.Price(ctx, cart)
	if err != nil {
		return nil, errors.Wrap(err, "failed to price cart")
	}
	if snapshot.TotalCents <= 0 {
		return nil, domainerrors.ErrCartEmpty.WrapMessage("cart prices to zero")
	}

	clientSecret, reference, err := s.gateway.CreateIntent(ctx, snapshot.TotalCents, s.currency)
	if err != nil {
		s.logger.Error("payment intent creation failed",
			slog.String("session_id", sessionID),
			slog.Any("error", err),
		)

		return nil, domainerrors.ErrPaymentProviderFailed.WrapMessage("create intent")
	}

	return &usecase.IntentOutput{
		ClientSecret: clientSecret,
		Reference:    reference,
		TotalCents:   snapshot.TotalCents,
		Currency:     s.currency,
	}, nil
}

// Finalize turns a paid cart into a durable order. The steps are ordered so
// that every cheap rejection happens before the provider round trip, and the
// provider round trip happens before any database write.
func (s *checkoutService) Finalize(ctx context.Context, input usecase.FinalizeInput) (*usecase.FinalizeOutput, error) {
	if err := validateFinalizeInput(input); err != nil {
		return nil, err
	}

	// Idempotency guard: a replayed confirmation returns the existing order.
	// This must run before the cart read because the first success cleared
	// the cart, so a reload of the confirmation page arrives with it empty.
	existing, err := s.orderRepo.FindByPaymentReference(ctx, input.PaymentReference)
	if err != nil && !errors.Is(err, repository.ErrOrderNotFound) {
		return nil, errors.Wrap(err, "failed to check payment reference")
	}
	if existing != nil {
		s.logger.Info("payment reference already finalized, returning existing order",
			slog.String("payment_reference", input.PaymentReference),
			slog.String("order_id", existing.ID.String()),
		)

		return &usecase.FinalizeOutput{Order: existing, AlreadyFinalized: true}, nil
	}

	cart, err := s.cartRepo.Read(ctx, input.SessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cart")
	}
	if cart.IsEmpty() {
		return nil, domainerrors.ErrCartEmpty.WrapMessage("cannot finalize empty cart")
	}

	snapshot, err := s.pricing.Price(ctx, cart)
	if err != nil {
		return nil, errors.Wrap(err, "failed to price cart")
	}
	if snapshot.TotalCents != input.ClientTotalCents {
		// The client claimed a different total than the live catalog yields.
		s.logger.Warn("client total mismatch, possible tampering",
			slog.String("session_id", input.SessionID),
			slog.Int64("client_total_cents", input.ClientTotalCents),
			slog.Int64("computed_total_cents", snapshot.TotalCents),
		)

		return nil, domainerrors.ErrTotalMismatch.WrapMessage("client total does not match recomputed total")
	}

	if err := s.verifyPayment(ctx, input.PaymentReference, snapshot.TotalCents); err != nil {
		return nil, err
	}

	order := buildOrder(input, snapshot)

	txErr := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if input.Destination.ToUserAddress {
			if err := s.verifyAddressOwnership(ctx, factory, input); err != nil {
				return err
			}
		}

		if err := factory.OrderRepo().Create(ctx, order); err != nil {
			return err
		}

		for _, line := range snapshot.Lines {
			if err := factory.StockRepo().DecrementIfAvailable(ctx, line.ProductID, line.Quantity); err != nil {
				switch {
				case errors.Is(err, repository.ErrStockNotFound):
					return domainerrors.ErrStockNotFound.WithDetails(line.ProductName)
				case errors.Is(err, repository.ErrInsufficientStock):
					return domainerrors.ErrInsufficientStock.WithDetails(line.ProductName)
				default:
					return err
				}
			}
		}

		shipment := &entity.Shipment{
			OrderID:         order.ID,
			ToUserAddress:   input.Destination.ToUserAddress,
			AddressID:       input.Destination.AddressID,
			DeliveryAddress: input.Destination.FreeText,
			Status:          entity.ShipmentStatusPending,
		}

		return factory.ShipmentRepo().Create(ctx, shipment)
	})
	if txErr != nil {
		// Two confirmations can race past the idempotency lookup; the unique
		// index on the payment reference stops the second one here.
		if raced, lookupErr := s.orderRepo.FindByPaymentReference(ctx, input.PaymentReference); lookupErr == nil {
			s.logger.Info("concurrent confirmation lost the race, returning existing order",
				slog.String("payment_reference", input.PaymentReference),
			)

			return &usecase.FinalizeOutput{Order: raced, AlreadyFinalized: true}, nil
		}

		return nil, txErr
	}

	// The order is durable from here on. The cart clear and the event are
	// best-effort and must not undo a committed checkout.
	if err := s.cartRepo.Clear(ctx, input.SessionID); err != nil {
		s.logger.Error("failed to clear cart after checkout",
			slog.String("session_id", input.SessionID),
			slog.String("order_id", order.ID.String()),
			slog.Any("error", err),
		)
	}

	s.publishFinalized(ctx, order, input.RequestID)

	return &usecase.FinalizeOutput{Order: order}, nil
}

// validateFinalizeInput enforces the buyer identity and destination shape rules.
func validateFinalizeInput(input usecase.FinalizeInput) error {
	if input.PaymentReference == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("payment reference is required")
	}

	hasUser := input.UserID != nil
	hasGuest := strings.TrimSpace(input.GuestName) != ""
	if hasUser == hasGuest {
		return domainerrors.ErrBuyerIdentityInvalid.WrapMessage("exactly one of user and guest name")
	}

	if input.Destination.ToUserAddress {
		if !hasUser {
			return domainerrors.ErrValidationFailed.WrapMessage("saved addresses require an authenticated buyer")
		}
		if input.Destination.AddressID == nil {
			return domainerrors.ErrValidationFailed.WrapMessage("address id is required for saved address delivery")
		}
	} else {
		if strings.TrimSpace(input.Destination.FreeText) == "" {
			return domainerrors.ErrValidationFailed.WrapMessage("delivery address is required")
		}
		if input.Destination.AddressID != nil {
			return domainerrors.ErrValidationFailed.WrapMessage("address id is only valid for saved address delivery")
		}
	}

	return nil
}

// verifyPayment queries the provider and accepts only a succeeded intent whose
// amount and currency match the recomputed total.
func (s *checkoutService) verifyPayment(ctx context.Context, reference string, totalCents int64) error {
	intent, err := s.gateway.RetrieveIntent(ctx, reference)
	if err != nil {
		s.logger.Error("payment intent retrieval failed",
			slog.String("payment_reference", reference),
			slog.Any("error", err),
		)

		return domainerrors.ErrPaymentProviderFailed.WrapMessage("retrieve intent")
	}

	if intent.Status != service.PaymentStatusSucceeded {
		return domainerrors.ErrPaymentNotConfirmed.WithDetails(intent.Status)
	}
	if intent.AmountCents != totalCents {
		return domainerrors.ErrPaidAmountMismatch.WithDetails("paid amount does not match order total")
	}
	if !strings.EqualFold(intent.Currency, s.currency) {
		return domainerrors.ErrPaymentNotConfirmed.WithDetails("paid currency does not match configured currency")
	}

	return nil
}

// verifyAddressOwnership confirms the saved address exists and belongs to the buyer.
func (s *checkoutService) verifyAddressOwnership(ctx context.Context, factory repository.RepositoryFactory, input usecase.FinalizeInput) error {
	address, err := factory.AddressRepo().FindByID(ctx, *input.Destination.AddressID)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return domainerrors.ErrAddressNotFound.WrapMessage("delivery address does not exist")
		}

		return errors.Wrap(err, "failed to verify delivery address")
	}

	if address.UserID != *input.UserID {
		return domainerrors.ErrAddressOwnershipViolation.WrapMessage("address belongs to another user")
	}

	return nil
}

// buildOrder assembles the order entity from the verified snapshot.
// Every money figure comes from the snapshot, never from the client.
func buildOrder(input usecase.FinalizeInput, snapshot *entity.CartSnapshot) *entity.Order {
	lines := make([]entity.OrderLine, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		lines = append(lines, entity.OrderLine{
			ProductID:     line.ProductID,
			Quantity:      line.Quantity,
			SubtotalCents: line.SubtotalCents,
		})
	}

	return &entity.Order{
		ID:               uuid.New(),
		UserID:           input.UserID,
		GuestName:        strings.TrimSpace(input.GuestName),
		PaymentReference: input.PaymentReference,
		TotalCents:       snapshot.TotalCents,
		Status:           entity.OrderStatusAwaitingPreparation,
		Lines:            lines,
	}
}

// publishFinalized emits the order.finalized event. Failures are logged only.
func (s *checkoutService) publishFinalized(ctx context.Context, order *entity.Order, requestID string) {
	event := &service.OrderFinalizedEvent{
		OrderID:          order.ID,
		PaymentReference: order.PaymentReference,
		TotalCents:       order.TotalCents,
		Currency:         s.currency,
		LineCount:        len(order.Lines),
		FinalizedAt:      time.Now(),
		RequestID:        requestID,
	}

	if err := s.publisher.PublishOrderFinalized(ctx, event); err != nil {
		s.logger.Error("failed to publish order finalized event",
			slog.String("order_id", order.ID.String()),
			slog.Any("error", err),
		)
	}
}
