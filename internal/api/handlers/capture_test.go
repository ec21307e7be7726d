package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sunrisestore/storefront-backend/internal/api/handlers"
	appErrors "github.com/sunrisestore/storefront-backend/internal/errors"
	"github.com/sunrisestore/storefront-backend/internal/models"
	"github.com/sunrisestore/storefront-backend/internal/testutils"
)

func TestAuthorizeAndCaptureHandler(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockCapture := new(mockCaptureService)
		handler := handlers.NewCaptureHandler(mockCapture)

		mockCapture.On("AuthorizeAndCapture", mock.Anything, mock.MatchedBy(func(r *models.AuthorizeCaptureRequest) bool {
			return r.CheckoutToken == "tok1" && r.OrderID == "SS-1" && r.AmountCents == nil
		})).Return(&models.AuthorizeCaptureResponse{
			OK:       true,
			ChargeID: "ch_1",
			OrderID:  "SS-1",
			Amount:   5000,
			Currency: "USD",
			State:    models.ChargeCaptured,
		}, nil).Once()

		body, _ := json.Marshal(map[string]any{"checkout_token": "tok1", "order_id": "SS-1"})
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/checkout/capture", bytes.NewReader(body), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.AuthorizeAndCapture().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["ok"])
		assert.Equal(t, "ch_1", resp["charge_id"])

		mockCapture.AssertExpectations(t)
	})

	t.Run("Failure - Missing Token Is 400 Without Service Call", func(t *testing.T) {
		mockCapture := new(mockCaptureService)
		handler := handlers.NewCaptureHandler(mockCapture)

		body, _ := json.Marshal(map[string]any{"order_id": "SS-1"})
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/checkout/capture", bytes.NewReader(body), nil)
		rr := httptest.NewRecorder()

		handler.AuthorizeAndCapture().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockCapture.AssertNotCalled(t, "AuthorizeAndCapture", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Authorization Decline Passes Provider Status Through", func(t *testing.T) {
		mockCapture := new(mockCaptureService)
		handler := handlers.NewCaptureHandler(mockCapture)

		authErr := appErrors.AuthorizationFailedError("Charge authorization failed", http.StatusPaymentRequired).
			WithDetail(`{"message":"declined"}`)
		mockCapture.On("AuthorizeAndCapture", mock.Anything, mock.Anything).Return(nil, authErr).Once()

		body, _ := json.Marshal(map[string]any{"checkout_token": "tok1", "order_id": "SS-1"})
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/checkout/capture", bytes.NewReader(body), nil)
		rr := httptest.NewRecorder()

		handler.AuthorizeAndCapture().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusPaymentRequired, rr.Code)
		assert.Contains(t, rr.Body.String(), "AUTHORIZATION_FAILED")
		assert.Contains(t, rr.Body.String(), "declined")
	})
}

func TestCaptureOnlyHandler(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		mockCapture := new(mockCaptureService)
		handler := handlers.NewCaptureHandler(mockCapture)

		mockCapture.On("CaptureOnly", mock.Anything, mock.MatchedBy(func(r *models.CaptureOnlyRequest) bool {
			return r.ChargeToken == "charge_tok" && r.Environment == "sandbox"
		})).Return(&models.CaptureOnlyResponse{Success: true, ChargeID: "ch_9", Amount: 1299, Currency: "USD"}, nil).Once()

		body, _ := json.Marshal(map[string]any{"charge_token": "charge_tok", "environment": "sandbox"})
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/charges/capture", bytes.NewReader(body), nil)
		rr := httptest.NewRecorder()

		handler.CaptureOnly().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp models.CaptureOnlyResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "ch_9", resp.ChargeID)
	})

	t.Run("Failure - Config Error Is 500", func(t *testing.T) {
		mockCapture := new(mockCaptureService)
		handler := handlers.NewCaptureHandler(mockCapture)

		mockCapture.On("CaptureOnly", mock.Anything, mock.Anything).
			Return(nil, appErrors.ConfigError("Server configuration error")).Once()

		body, _ := json.Marshal(map[string]any{"charge_token": "tok"})
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/charges/capture", bytes.NewReader(body), nil)
		rr := httptest.NewRecorder()

		handler.CaptureOnly().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "CONFIG_ERROR")
	})
}
