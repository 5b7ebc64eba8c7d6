package impl

import (
	"context"
	"log/slog"
	"strings"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type orderService struct {
	orderRepo    repository.OrderRepository
	shipmentRepo repository.ShipmentRepository
	logger       *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	OrderRepo    repository.OrderRepository
	ShipmentRepo repository.ShipmentRepository
	Logger       *slog.Logger
}

// NewOrderService creates a new order service instance
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		orderRepo:    params.OrderRepo,
		shipmentRepo: params.ShipmentRepo,
		logger:       params.Logger,
	}
}

// ListOrders returns all orders, newest first.
func (s *orderService) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// GetOrder returns one order with its lines and shipment.
func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*usecase.OrderDetail, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	shipment, err := s.shipmentRepo.FindByOrderID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrShipmentNotFound) {
		return nil, errors.Wrap(err, "failed to find shipment")
	}

	return &usecase.OrderDetail{
		Order:    order,
		Shipment: shipment,
	}, nil
}

// UpdateStatus moves an order through its lifecycle.
// The lifecycle is free text beyond being non-empty; a typo'd status is the
// operator's to fix, not ours to reject.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("status must not be empty")
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domainerrors.ErrOrderNotFound
		}

		return errors.Wrap(err, "failed to update order status")
	}

	s.logger.Info("order status updated",
		slog.String("order_id", id.String()),
		slog.String("status", status),
	)

	return nil
}

// ListByUser returns one buyer's orders, newest first.
func (s *orderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders by user")
	}

	return orders, nil
}
