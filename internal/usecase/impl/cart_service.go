package impl

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	pricing     usecase.PricingService
	policy      entity.DecrementPolicy
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	Pricing     usecase.PricingService
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCartService creates a new cart service instance
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	policy := entity.DecrementPolicy(params.Config.Cart.DecrementPolicy)
	if !policy.Valid() {
		policy = entity.DecrementPolicyFloor
	}

	return &cartService{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		pricing:     params.Pricing,
		policy:      policy,
		logger:      params.Logger,
	}
}

// Add puts one unit of a product in the cart, incrementing when already present.
func (s *cartService) Add(ctx context.Context, sessionID string, productID uuid.UUID) error {
	// Validate catalog existence before touching the session store.
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound.WrapMessage("cannot add unknown product to cart")
		}

		return errors.Wrap(err, "failed to validate product before cart add")
	}

	cart, err := s.cartRepo.Read(ctx, sessionID)
	if err != nil {
		return errors.Wrap(err, "failed to read cart")
	}

	cart.Add(productID)

	if err := s.cartRepo.Write(ctx, sessionID, cart); err != nil {
		return errors.Wrap(err, "failed to write cart")
	}

	return nil
}

// UpdateQuantity increments or decrements an existing cart line.
func (s *cartService) UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, action usecase.QuantityAction) error {
	if !action.Valid() {
		return domainerrors.ErrValidationFailed.WrapMessage("unknown quantity action")
	}

	cart, err := s.cartRepo.Read(ctx, sessionID)
	if err != nil {
		return errors.Wrap(err, "failed to read cart")
	}

	var present bool
	switch action {
	case usecase.QuantityActionIncrement:
		present = cart.Increment(productID)
	case usecase.QuantityActionDecrement:
		present = cart.Decrement(productID, s.policy)
	}

	if !present {
		return domainerrors.ErrProductNotInCart.WrapMessage("cannot update quantity of absent product")
	}

	if err := s.cartRepo.Write(ctx, sessionID, cart); err != nil {
		return errors.Wrap(err, "failed to write cart")
	}

	return nil
}

// Remove deletes a cart line unconditionally. Removing an absent product is a no-op.
func (s *cartService) Remove(ctx context.Context, sessionID string, productID uuid.UUID) error {
	cart, err := s.cartRepo.Read(ctx, sessionID)
	if err != nil {
		return errors.Wrap(err, "failed to read cart")
	}

	cart.Remove(productID)

	if err := s.cartRepo.Write(ctx, sessionID, cart); err != nil {
		return errors.Wrap(err, "failed to write cart")
	}

	return nil
}

// Clear empties the cart.
func (s *cartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.cartRepo.Clear(ctx, sessionID); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}

// Snapshot prices the cart against the live catalog.
func (s *cartService) Snapshot(ctx context.Context, sessionID string) (*entity.CartSnapshot, error) {
	cart, err := s.cartRepo.Read(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cart")
	}

	snapshot, err := s.pricing.Price(ctx, cart)
	if err != nil {
		return nil, errors.Wrap(err, "failed to price cart")
	}

	return snapshot, nil
}
