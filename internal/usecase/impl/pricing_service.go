// Package impl provides the concrete implementations of the usecase interfaces.
package impl

import (
	"context"
	"log/slog"
	"sort"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type pricingService struct {
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// PricingServiceParams holds dependencies for PricingService, injected by Fx.
type PricingServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewPricingService creates a new pricing service instance
func NewPricingService(params PricingServiceParams) usecase.PricingService {
	return &pricingService{
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

// Price recomputes every line from the live catalog. The client never supplies
// a price; a cart entry whose product vanished is skipped with a warning so a
// delisted product cannot wedge the whole cart.
func (s *pricingService) Price(ctx context.Context, cart entity.Cart) (*entity.CartSnapshot, error) {
	snapshot := &entity.CartSnapshot{
		Lines: make([]entity.PricedCartLine, 0, len(cart)),
	}

	for productID, quantity := range cart {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				s.logger.Warn("skipping cart entry for missing product",
					slog.String("product_id", productID.String()),
				)

				continue
			}

			return nil, errors.Wrap(err, "failed to price cart entry")
		}

		subtotal := product.PriceCents * int64(quantity)
		snapshot.Lines = append(snapshot.Lines, entity.PricedCartLine{
			ProductID:      product.ID,
			ProductName:    product.Name,
			Quantity:       quantity,
			UnitPriceCents: product.PriceCents,
			SubtotalCents:  subtotal,
		})
		snapshot.TotalCents += subtotal
	}

	// Map iteration order is random; sort so two snapshots of the same cart
	// are identical.
	sort.Slice(snapshot.Lines, func(i, j int) bool {
		if snapshot.Lines[i].ProductName != snapshot.Lines[j].ProductName {
			return snapshot.Lines[i].ProductName < snapshot.Lines[j].ProductName
		}

		return snapshot.Lines[i].ProductID.String() < snapshot.Lines[j].ProductID.String()
	})

	return snapshot, nil
}
