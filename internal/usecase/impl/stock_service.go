package impl

import (
	"context"
	"log/slog"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type stockService struct {
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// StockServiceParams holds dependencies for StockService, injected by Fx.
type StockServiceParams struct {
	fx.In

	StockRepo   repository.StockRepository
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewStockService creates a new stock service instance
func NewStockService(params StockServiceParams) usecase.StockUsecase {
	return &stockService{
		stockRepo:   params.StockRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

// GetStock returns the remaining quantity for a product.
func (s *stockService) GetStock(ctx context.Context, productID uuid.UUID) (*entity.Stock, error) {
	stock, err := s.stockRepo.FindByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrStockNotFound) {
			return nil, domainerrors.ErrStockNotFound
		}

		return nil, errors.Wrap(err, "failed to find stock")
	}

	return stock, nil
}

// SetStock overwrites the remaining quantity for a product.
func (s *stockService) SetStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity < 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("stock quantity must not be negative")
	}

	// The stock row is meaningless without a catalog entry.
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to validate product before stock set")
	}

	if err := s.stockRepo.Set(ctx, productID, quantity); err != nil {
		return errors.Wrap(err, "failed to set stock")
	}

	s.logger.Info("stock quantity set",
		slog.String("product_id", productID.String()),
		slog.Int("quantity", quantity),
	)

	return nil
}
