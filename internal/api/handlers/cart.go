package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sunrisestore/storefront-backend/internal/models"
	service "github.com/sunrisestore/storefront-backend/internal/services"
	"github.com/sunrisestore/storefront-backend/internal/utils"
	"github.com/sunrisestore/storefront-backend/internal/utils/response"
)

var errMissingCartID = errors.New("cart ID is required")

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

func (h *CartHandler) CreateCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cart, err := h.cartService.CreateCart(r.Context())
		if err != nil {
			slog.Error("Error during cart creation", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Cart created", slog.String("cartId", cart.ID))
		response.Success(w, http.StatusCreated, cart)
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID := r.PathValue("id")
		if cartID == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errMissingCartID))
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), cartID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID := r.PathValue("id")
		if cartID == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errMissingCartID))
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), cartID, &req)
		if err != nil {
			slog.Error("Failed to add item to cart",
				slog.String("cartId", cartID),
				slog.String("sku", req.SKU),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID := r.PathValue("id")
		if cartID == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errMissingCartID))
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), cartID, &req)
		if err != nil {
			slog.Error("Failed to update cart quantity",
				slog.String("cartId", cartID),
				slog.String("sku", req.SKU),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID := r.PathValue("id")
		sku := r.PathValue("sku")

		if cartID == "" || sku == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errors.New("cart ID and sku are required")))
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), cartID, sku)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cartID := r.PathValue("id")
		if cartID == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errMissingCartID))
			return
		}

		if err := h.cartService.ClearCart(r.Context(), cartID); err != nil {
			response.Error(w, err)
			return
		}

		slog.Info("Cart cleared", slog.String("cartId", cartID))
		response.Success(w, http.StatusOK, map[string]bool{"cleared": true})
	}
}
