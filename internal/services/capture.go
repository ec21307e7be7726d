package service

import (
	"context"
	"log/slog"

	"github.com/sunrisestore/storefront-backend/internal/errors"
	"github.com/sunrisestore/storefront-backend/internal/models"
	"github.com/sunrisestore/storefront-backend/pkg/affirm"
)

type CaptureService interface {
	AuthorizeAndCapture(ctx context.Context, req *models.AuthorizeCaptureRequest) (*models.AuthorizeCaptureResponse, error)
	CaptureOnly(ctx context.Context, req *models.CaptureOnlyRequest) (*models.CaptureOnlyResponse, error)
}

// ClientFactory resolves a provider client for an environment selector
// ("prod"/"live" vs anything else = sandbox). It returns an error when the
// selected environment's credentials are not configured.
type ClientFactory func(env string) (affirm.Client, error)

// CartClearer is the slice of the cart store the orchestrator needs after a
// confirmed capture.
type CartClearer interface {
	ClearCart(ctx context.Context, cartID string) error
}

// ConfirmationSender dispatches the order-confirmation mail. Failures must
// never surface to the buyer.
type ConfirmationSender interface {
	SendOrderConfirmation(ctx context.Context, to, orderID string, amount int64, currency string) error
}

type captureService struct {
	client     affirm.Client
	clientFor  ClientFactory
	defaultEnv string
	carts      CartClearer
	notifier   ConfirmationSender
}

func NewCaptureService(client affirm.Client, clientFor ClientFactory, defaultEnv string, carts CartClearer, notifier ConfirmationSender) CaptureService {
	return &captureService{
		client:     client,
		clientFor:  clientFor,
		defaultEnv: defaultEnv,
		carts:      carts,
		notifier:   notifier,
	}
}

// AuthorizeAndCapture implements CaptureService. The two provider calls run
// strictly in sequence; capture is never attempted unless authorization
// succeeded in this same invocation, and neither step is retried. A failed
// capture leaves the authorization standing for operator investigation.
func (s *captureService) AuthorizeAndCapture(ctx context.Context, req *models.AuthorizeCaptureRequest) (*models.AuthorizeCaptureResponse, error) {

	if req.CheckoutToken == "" || req.OrderID == "" {
		return nil, errors.ValidationError("Missing checkout_token or order_id")
	}

	if s.client == nil {
		return nil, errors.ConfigError("Payment provider credentials are not configured")
	}

	state := models.ChargeUnauthorized

	// A client disconnect must not abandon the sequence between authorize
	// and capture; that would strand an authorized, uncaptured charge.
	pctx := context.WithoutCancel(ctx)

	charge, err := s.client.AuthorizeCharge(pctx, req.CheckoutToken)
	if err != nil {

		if apiErr, ok := affirm.IsAPIError(err); ok {
			slog.Error("Charge authorization rejected",
				slog.String("orderId", req.OrderID),
				slog.Int("providerStatus", apiErr.StatusCode))

			return nil, errors.AuthorizationFailedError("Charge authorization failed", apiErr.StatusCode).
				WithDetail(apiErr.Detail()).
				WithError(err)
		}

		return nil, errors.InternalError("Failed to reach payment provider").WithError(err)
	}

	state = models.ChargeAuthorized

	params := &affirm.CaptureParams{
		OrderID:              req.OrderID,
		Amount:               req.AmountCents,
		ShippingCarrier:      req.ShippingCarrier,
		ShippingConfirmation: req.ShippingConfirmation,
	}

	capture, err := s.client.CaptureCharge(pctx, charge.ID, params)
	if err != nil {

		if apiErr, ok := affirm.IsAPIError(err); ok {
			slog.Error("Charge capture rejected",
				slog.String("orderId", req.OrderID),
				slog.String("chargeId", charge.ID),
				slog.String("state", string(state)),
				slog.Int("providerStatus", apiErr.StatusCode))

			return nil, errors.CaptureFailedError("Charge capture failed", apiErr.StatusCode).
				WithDetail(apiErr.Detail()).
				WithError(err)
		}

		return nil, errors.InternalError("Failed to reach payment provider").WithError(err)
	}

	state = models.ChargeCaptured

	slog.Info("Charge captured",
		slog.String("orderId", req.OrderID),
		slog.String("chargeId", charge.ID),
		slog.Int64("amount", capture.Amount),
		slog.String("currency", capture.Currency))

	s.finishOrder(pctx, req, capture)

	return &models.AuthorizeCaptureResponse{
		OK:       true,
		ChargeID: charge.ID,
		OrderID:  req.OrderID,
		Amount:   capture.Amount,
		Currency: capture.Currency,
		State:    state,
	}, nil
}

// finishOrder runs the best-effort follow-ups after a confirmed capture:
// clearing the buyer's cart and sending the confirmation mail. Neither may
// alter the orchestration result.
func (s *captureService) finishOrder(ctx context.Context, req *models.AuthorizeCaptureRequest, capture *affirm.CaptureResult) {

	if req.CartID != "" && s.carts != nil {
		if err := s.carts.ClearCart(ctx, req.CartID); err != nil {
			slog.Warn("Failed to clear cart after capture",
				slog.String("cartId", req.CartID),
				slog.String("orderId", req.OrderID),
				slog.String("error", err.Error()))
		}
	}

	if req.BuyerEmail != "" && s.notifier != nil {
		if err := s.notifier.SendOrderConfirmation(ctx, req.BuyerEmail, req.OrderID, capture.Amount, capture.Currency); err != nil {
			slog.Warn("Failed to send order confirmation",
				slog.String("orderId", req.OrderID),
				slog.String("error", err.Error()))
		}
	}
}

// CaptureOnly implements CaptureService. This is the single-phase path for a
// charge authorized through another channel; the caller picks the provider
// environment.
func (s *captureService) CaptureOnly(ctx context.Context, req *models.CaptureOnlyRequest) (*models.CaptureOnlyResponse, error) {

	if req.ChargeToken == "" {
		return nil, errors.MissingTokenError("Missing charge_token")
	}

	env := req.Environment
	if env == "" {
		env = s.defaultEnv
	}

	client, err := s.clientFor(env)
	if err != nil {
		slog.Error("Missing provider credentials for environment", slog.String("env", env))

		return nil, errors.ConfigError("Server configuration error").WithError(err)
	}

	result, err := client.CaptureCharge(context.WithoutCancel(ctx), req.ChargeToken, nil)
	if err != nil {

		if apiErr, ok := affirm.IsAPIError(err); ok {

			// Mask upstream detail on this legacy path: server-side faults
			// read as an outage, anything else as a bad token.
			detail := "Invalid charge token"
			if apiErr.StatusCode >= 500 {
				detail = "Service temporarily unavailable"
			}

			return nil, errors.CaptureFailedError("Failed to capture charge", apiErr.StatusCode).
				WithDetail(detail).
				WithError(err)
		}

		return nil, errors.InternalError("Unable to process capture request").WithError(err)
	}

	return &models.CaptureOnlyResponse{
		Success:  true,
		ChargeID: result.ID,
		Amount:   result.Amount,
		Currency: result.Currency,
	}, nil
}
