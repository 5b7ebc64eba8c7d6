// Package payment provides the concrete payment provider integration.
package payment

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// stripeGateway implements the PaymentGateway interface against the Stripe API.
type stripeGateway struct {
	api            *client.API
	confirmTimeout time.Duration
	logger         *slog.Logger
}

// NewStripeGateway is the constructor for stripeGateway.
func NewStripeGateway(cfg *config.Config, logger *slog.Logger) (service.PaymentGateway, error) {
	if cfg.Payment.StripeSecretKey == "" {
		return nil, errors.New("stripe secret key must be provided")
	}

	api := &client.API{}
	api.Init(cfg.Payment.StripeSecretKey, nil)

	return &stripeGateway{
		api:            api,
		confirmTimeout: cfg.Payment.ConfirmTimeout,
		logger:         logger,
	}, nil
}

// CreateIntent registers a payment intent with Stripe and returns the client
// secret for the buyer-side widget plus the intent's reference.
func (g *stripeGateway) CreateIntent(ctx context.Context, amountCents int64, currency string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to create payment intent")
	}

	g.logger.Info("payment intent created",
		slog.String("reference", intent.ID),
		slog.Int64("amount_cents", amountCents),
		slog.String("currency", currency),
	)

	return intent.ClientSecret, intent.ID, nil
}

// RetrieveIntent queries Stripe for the current state of an intent.
// The call is bounded by the configured confirmation timeout; hitting it
// reports a provider error, never a success.
func (g *stripeGateway) RetrieveIntent(ctx context.Context, reference string) (*service.PaymentIntent, error) {
	if g.confirmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.confirmTimeout)
		defer cancel()
	}

	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	}

	intent, err := g.api.PaymentIntents.Get(reference, params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to retrieve payment intent")
	}

	return &service.PaymentIntent{
		Reference:   intent.ID,
		Status:      mapIntentStatus(intent.Status),
		AmountCents: intent.Amount,
		Currency:    string(intent.Currency),
	}, nil
}

// mapIntentStatus reduces Stripe's intent lifecycle to the three states the
// checkout pipeline distinguishes.
func mapIntentStatus(status stripe.PaymentIntentStatus) string {
	switch status {
	case stripe.PaymentIntentStatusSucceeded:
		return service.PaymentStatusSucceeded
	case stripe.PaymentIntentStatusProcessing,
		stripe.PaymentIntentStatusRequiresAction,
		stripe.PaymentIntentStatusRequiresCapture,
		stripe.PaymentIntentStatusRequiresConfirmation,
		stripe.PaymentIntentStatusRequiresPaymentMethod:
		return service.PaymentStatusPending
	case stripe.PaymentIntentStatusCanceled:
		return service.PaymentStatusFailed
	default:
		return service.PaymentStatusUnknown
	}
}
