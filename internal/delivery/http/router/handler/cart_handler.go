package handler

import (
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler holds dependencies for session cart handlers.
type CartHandler struct {
	uc usecase.CartUsecase
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

// addItemInput is the body of POST /cart/items.
type addItemInput struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// updateItemInput is the body of PATCH /cart/items/:id.
type updateItemInput struct {
	Action string `json:"action" validate:"required,oneof=increment decrement"`
}

// cartLineView is the JSON shape of one priced cart line.
type cartLineView struct {
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	SubtotalCents  int64     `json:"subtotal_cents"`
}

// cartView is the JSON shape of the priced cart snapshot.
type cartView struct {
	Lines      []cartLineView `json:"lines"`
	TotalCents int64          `json:"total_cents"`
}

func toCartView(snapshot *entity.CartSnapshot) cartView {
	lines := make([]cartLineView, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		lines = append(lines, cartLineView{
			ProductID:      line.ProductID,
			ProductName:    line.ProductName,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
			SubtotalCents:  line.SubtotalCents,
		})
	}

	return cartView{Lines: lines, TotalCents: snapshot.TotalCents}
}

// sessionID extracts the cart session set by the session middleware.
func sessionID(c echo.Context) (string, bool) {
	id, ok := c.Get(constants.ContextKeySessionID).(string)

	return id, ok && id != ""
}

// AddItem handles adding one unit of a product to the cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	sid, ok := sessionID(c)
	if !ok {
		return response.BadRequest(c, "SESSION_MISSING", "Cart session is missing")
	}

	var input addItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	if err := h.uc.Add(c.Request().Context(), sid, productID); err != nil {
		return errors.WithStack(err)
	}

	return h.respondWithSnapshot(c, sid, "Product added to cart")
}

// UpdateItem handles incrementing or decrementing a cart line.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	sid, ok := sessionID(c)
	if !ok {
		return response.BadRequest(c, "SESSION_MISSING", "Cart session is missing")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	var input updateItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quantity update input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	action := usecase.QuantityAction(input.Action)
	if err := h.uc.UpdateQuantity(c.Request().Context(), sid, productID, action); err != nil {
		return errors.WithStack(err)
	}

	return h.respondWithSnapshot(c, sid, "Cart updated")
}

// RemoveItem handles deleting a cart line unconditionally.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	sid, ok := sessionID(c)
	if !ok {
		return response.BadRequest(c, "SESSION_MISSING", "Cart session is missing")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	if err := h.uc.Remove(c.Request().Context(), sid, productID); err != nil {
		return errors.WithStack(err)
	}

	return h.respondWithSnapshot(c, sid, "Product removed from cart")
}

// ClearCart handles emptying the whole cart.
func (h *CartHandler) ClearCart(c echo.Context) error {
	sid, ok := sessionID(c)
	if !ok {
		return response.BadRequest(c, "SESSION_MISSING", "Cart session is missing")
	}

	if err := h.uc.Clear(c.Request().Context(), sid); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cartView{Lines: []cartLineView{}}, "Cart cleared")
}

// GetCart handles the priced cart snapshot request.
func (h *CartHandler) GetCart(c echo.Context) error {
	sid, ok := sessionID(c)
	if !ok {
		return response.BadRequest(c, "SESSION_MISSING", "Cart session is missing")
	}

	return h.respondWithSnapshot(c, sid, "Cart retrieved successfully")
}

func (h *CartHandler) respondWithSnapshot(c echo.Context, sid, message string) error {
	snapshot, err := h.uc.Snapshot(c.Request().Context(), sid)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartView(snapshot), message)
}
