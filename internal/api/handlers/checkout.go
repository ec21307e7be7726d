package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sunrisestore/storefront-backend/internal/models"
	service "github.com/sunrisestore/storefront-backend/internal/services"
	"github.com/sunrisestore/storefront-backend/internal/utils"
	"github.com/sunrisestore/storefront-backend/internal/utils/response"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	cartService     service.CartService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService, cartService service.CartService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		cartService:     cartService,
		validator:       validator.New(),
	}
}

// CreateSession initiates a provider-hosted checkout from an explicit item
// list. The response is the flat shape the storefront's payment widget
// expects: checkout_token, redirect_url, order_id.
func (h *CheckoutHandler) CreateSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.CreateCheckoutSessionRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		session, err := h.checkoutService.CreateSession(r.Context(), &req)
		if err != nil {
			slog.Error("Failed to create checkout session", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Checkout session issued", slog.String("orderId", session.OrderID))
		response.WriteJson(w, http.StatusOK, session)
	}
}

// CheckoutCart snapshots a stored cart and feeds it into session initiation.
func (h *CheckoutHandler) CheckoutCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID := r.PathValue("id")
		if cartID == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errMissingCartID))
			return
		}

		snapshot, err := h.cartService.Snapshot(r.Context(), cartID)
		if err != nil {
			slog.Error("Failed to snapshot cart for checkout",
				slog.String("cartId", cartID),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		session, err := h.checkoutService.CreateSession(r.Context(), snapshot)
		if err != nil {
			slog.Error("Failed to create checkout session from cart",
				slog.String("cartId", cartID),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Cart checkout session issued",
			slog.String("cartId", cartID),
			slog.String("orderId", session.OrderID))
		response.WriteJson(w, http.StatusOK, session)
	}
}
