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

type CaptureHandler struct {
	captureService service.CaptureService
	validator      *validator.Validate
}

func NewCaptureHandler(captureService service.CaptureService) *CaptureHandler {
	return &CaptureHandler{captureService: captureService, validator: validator.New()}
}

// AuthorizeAndCapture runs the two-phase payment sequence for a buyer
// returning from the provider-hosted page. Provider failure statuses are
// passed through verbatim.
func (h *CaptureHandler) AuthorizeAndCapture() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.AuthorizeCaptureRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.captureService.AuthorizeAndCapture(r.Context(), &req)
		if err != nil {
			slog.Error("Authorize and capture failed",
				slog.String("orderId", req.OrderID),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, result)
	}
}

// CaptureOnly is the single-phase path for a charge token authorized through
// another channel.
func (h *CaptureHandler) CaptureOnly() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.CaptureOnlyRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.captureService.CaptureOnly(r.Context(), &req)
		if err != nil {
			slog.Error("Standalone capture failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, result)
	}
}
