package handler

import (
	"net/http"
	"time"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order management handlers.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	stockUC usecase.StockUsecase
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(orderUC usecase.OrderUsecase, stockUC usecase.StockUsecase) *OrderHandler {
	return &OrderHandler{
		orderUC: orderUC,
		stockUC: stockUC,
	}
}

// updateStatusInput is the body of PATCH /admin/orders/:id/status.
type updateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// setStockInput is the body of PUT /admin/stocks/:productId.
type setStockInput struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// shipmentView is the JSON shape of an order's delivery record.
type shipmentView struct {
	ID              uuid.UUID  `json:"id"`
	ToUserAddress   bool       `json:"to_user_address"`
	AddressID       *uuid.UUID `json:"address_id,omitempty"`
	DeliveryAddress string     `json:"delivery_address,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
}

// orderDetailView is an order with its delivery record.
type orderDetailView struct {
	Order    orderView     `json:"order"`
	Shipment *shipmentView `json:"shipment,omitempty"`
}

// stockView is the JSON shape of a stock row.
type stockView struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toShipmentView(shipment *entity.Shipment) *shipmentView {
	if shipment == nil {
		return nil
	}

	return &shipmentView{
		ID:              shipment.ID,
		ToUserAddress:   shipment.ToUserAddress,
		AddressID:       shipment.AddressID,
		DeliveryAddress: shipment.DeliveryAddress,
		Status:          shipment.Status,
		CreatedAt:       shipment.CreatedAt,
	}
}

// ListOrders handles the admin order listing request.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.orderUC.ListOrders(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, toOrderView(order))
	}

	return response.Success(c, http.StatusOK, views, "Orders retrieved successfully")
}

// GetOrder handles the admin single order request, lines and shipment included.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	detail, err := h.orderUC.GetOrder(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orderDetailView{
		Order:    toOrderView(detail.Order),
		Shipment: toShipmentView(detail.Shipment),
	}, "Order retrieved successfully")
}

// UpdateStatus handles the admin order lifecycle transition request.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	var input updateStatusInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.orderUC.UpdateStatus(c.Request().Context(), id, input.Status); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"id":     id.String(),
		"status": input.Status,
	}, "Order status updated")
}

// ListMyOrders handles a buyer's own order history request.
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	userID := contextUserID(c)
	if userID == nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orders, err := h.orderUC.ListByUser(c.Request().Context(), *userID)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, toOrderView(order))
	}

	return response.Success(c, http.StatusOK, views, "Orders retrieved successfully")
}

// GetStock handles the admin stock lookup request.
func (h *OrderHandler) GetStock(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	stock, err := h.stockUC.GetStock(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stockView{
		ProductID: stock.ProductID,
		Quantity:  stock.Quantity,
		UpdatedAt: stock.UpdatedAt,
	}, "Stock retrieved successfully")
}

// SetStock handles the admin restock request.
func (h *OrderHandler) SetStock(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	var input setStockInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid stock input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.stockUC.SetStock(c.Request().Context(), productID, input.Quantity); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"product_id": productID.String(),
		"quantity":   input.Quantity,
	}, "Stock quantity set")
}
