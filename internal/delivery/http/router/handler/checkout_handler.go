package handler

import (
	"net/http"
	"time"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CheckoutHandler holds dependencies for the checkout pipeline handlers.
type CheckoutHandler struct {
	uc usecase.CheckoutUsecase
}

// NewCheckoutHandler is the constructor for CheckoutHandler, injected by Fx.
func NewCheckoutHandler(uc usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// destinationInput is the delivery destination inside the confirm body.
type destinationInput struct {
	ToUserAddress bool   `json:"to_user_address"`
	AddressID     string `json:"address_id,omitempty"`
	FreeText      string `json:"free_text,omitempty"`
}

// confirmInput is the body of POST /checkout/confirm.
type confirmInput struct {
	PaymentReference string           `json:"payment_reference" validate:"required"`
	TotalCents       int64            `json:"total_cents" validate:"required,gt=0"`
	GuestName        string           `json:"guest_name,omitempty"`
	Destination      destinationInput `json:"destination"`
}

// intentView is the JSON shape of the payment intent bootstrap.
type intentView struct {
	ClientSecret string `json:"client_secret"`
	Reference    string `json:"reference"`
	TotalCents   int64  `json:"total_cents"`
	Currency     string `json:"currency"`
}

// orderLineView is the JSON shape of one order line.
type orderLineView struct {
	ProductID     uuid.UUID `json:"product_id"`
	Quantity      int       `json:"quantity"`
	SubtotalCents int64     `json:"subtotal_cents"`
}

// orderView is the JSON shape of a finalized order.
type orderView struct {
	ID               uuid.UUID       `json:"id"`
	UserID           *uuid.UUID      `json:"user_id,omitempty"`
	GuestName        string          `json:"guest_name,omitempty"`
	PaymentReference string          `json:"payment_reference"`
	TotalCents       int64           `json:"total_cents"`
	Status           string          `json:"status"`
	Lines            []orderLineView `json:"lines"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        *time.Time      `json:"updated_at,omitempty"`
}

// confirmView wraps the order with the idempotency marker.
type confirmView struct {
	Order            orderView `json:"order"`
	AlreadyFinalized bool      `json:"already_finalized"`
}

func toOrderView(order *entity.Order) orderView {
	lines := make([]orderLineView, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, orderLineView{
			ProductID:     line.ProductID,
			Quantity:      line.Quantity,
			SubtotalCents: line.SubtotalCents,
		})
	}

	return orderView{
		ID:               order.ID,
		UserID:           order.UserID,
		GuestName:        order.GuestName,
		PaymentReference: order.PaymentReference,
		TotalCents:       order.TotalCents,
		Status:           order.Status,
		Lines:            lines,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
}

// contextUserID extracts the authenticated user set by the auth middleware, if any.
func contextUserID(c echo.Context) *uuid.UUID {
	if userID, ok := c.Get(constants.ContextKeyUserID).(uuid.UUID); ok {
		return &userID
	}

	return nil
}

// CreateIntent handles the payment widget bootstrap for the session's cart.
func (h *CheckoutHandler) CreateIntent(c echo.Context) error {
	sid, ok := sessionID(c)
	if !ok {
		return response.BadRequest(c, "SESSION_MISSING", "Cart session is missing")
	}

	output, err := h.uc.CreateIntent(c.Request().Context(), sid)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, intentView{
		ClientSecret: output.ClientSecret,
		Reference:    output.Reference,
		TotalCents:   output.TotalCents,
		Currency:     output.Currency,
	}, "Payment intent created")
}

// Confirm handles turning a paid cart into a durable order.
func (h *CheckoutHandler) Confirm(c echo.Context) error {
	sid, ok := sessionID(c)
	if !ok {
		return response.BadRequest(c, "SESSION_MISSING", "Cart session is missing")
	}

	var input confirmInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout confirmation input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	var addressID *uuid.UUID
	if input.Destination.AddressID != "" {
		parsed, err := uuid.Parse(input.Destination.AddressID)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid address id")
		}
		addressID = &parsed
	}

	finalizeInput := usecase.FinalizeInput{
		SessionID:        sid,
		UserID:           contextUserID(c),
		GuestName:        input.GuestName,
		PaymentReference: input.PaymentReference,
		ClientTotalCents: input.TotalCents,
		Destination: usecase.Destination{
			ToUserAddress: input.Destination.ToUserAddress,
			AddressID:     addressID,
			FreeText:      input.Destination.FreeText,
		},
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	}

	output, err := h.uc.Finalize(c.Request().Context(), finalizeInput)
	if err != nil {
		return errors.WithStack(err)
	}

	statusCode := http.StatusCreated
	message := "Order finalized successfully"
	if output.AlreadyFinalized {
		statusCode = http.StatusOK
		message = "Order already finalized for this payment"
	}

	return response.Success(c, statusCode, confirmView{
		Order:            toOrderView(output.Order),
		AlreadyFinalized: output.AlreadyFinalized,
	}, message)
}
