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

type ContactHandler struct {
	notificationService service.NotificationService
	validator           *validator.Validate
}

func NewContactHandler(notificationService service.NotificationService) *ContactHandler {
	return &ContactHandler{notificationService: notificationService, validator: validator.New()}
}

func (h *ContactHandler) SubmitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.ContactRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		// Mail delivery is best-effort; a relay failure is an operator
		// problem, not the sender's.
		if err := h.notificationService.SendContactMessage(r.Context(), &req); err != nil {
			slog.Warn("Failed to relay contact message", slog.String("error", err.Error()))
		}

		response.Success(w, http.StatusOK, map[string]bool{"sent": true})
	}
}
