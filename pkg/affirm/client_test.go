package affirm_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunrisestore/storefront-backend/pkg/affirm"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) affirm.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := affirm.NewClient(affirm.Options{
		BaseURL:    server.URL,
		PublicKey:  "pub_key",
		PrivateKey: "priv_key",
	})
	require.NoError(t, err)

	return client
}

func TestNewClient(t *testing.T) {
	t.Run("Failure - Missing Credentials", func(t *testing.T) {
		_, err := affirm.NewClient(affirm.Options{BaseURL: "https://api.affirm.com", PublicKey: "pub"})
		assert.Error(t, err)
	})

	t.Run("Failure - Missing Base URL", func(t *testing.T) {
		_, err := affirm.NewClient(affirm.Options{PublicKey: "pub", PrivateKey: "priv"})
		assert.Error(t, err)
	})
}

func TestCreateCheckout(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		// Arrange
		var gotBody map[string]affirm.Checkout
		var gotAuth string

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v2/checkout", r.URL.Path)
			gotAuth = r.Header.Get("Authorization")

			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{
				"checkout_token": "tok_abc",
				"redirect_url":   "https://provider.example/checkout/tok_abc",
			})
		})

		payload := &affirm.Checkout{
			OrderID:  "ORD-1",
			Currency: "USD",
			Total:    5000,
			Items: []affirm.Item{
				{DisplayName: "Scooter", SKU: "A", UnitPrice: 2500, Qty: 2},
			},
		}

		// Act
		session, err := client.CreateCheckout(t.Context(), payload)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "tok_abc", session.CheckoutToken)
		assert.Equal(t, "https://provider.example/checkout/tok_abc", session.RedirectURL)

		expectedAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("pub_key:priv_key"))
		assert.Equal(t, expectedAuth, gotAuth)

		checkout := gotBody["checkout"]
		assert.Equal(t, "ORD-1", checkout.OrderID)
		assert.Equal(t, int64(5000), checkout.Total)
		require.Len(t, checkout.Items, 1)
		assert.Equal(t, int64(2500), checkout.Items[0].UnitPrice)
	})

	t.Run("Failure - Provider Rejection With JSON Body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusPaymentRequired)
			w.Write([]byte(`{"status_code":402,"type":"invalid_request","message":"checkout declined"}`))
		})

		_, err := client.CreateCheckout(t.Context(), &affirm.Checkout{OrderID: "ORD-2"})

		require.Error(t, err)
		apiErr, ok := affirm.IsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusPaymentRequired, apiErr.StatusCode)
		assert.JSONEq(t, `{"status_code":402,"type":"invalid_request","message":"checkout declined"}`, apiErr.Detail())
	})

	t.Run("Failure - Provider Rejection With Raw Body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream unavailable"))
		})

		_, err := client.CreateCheckout(t.Context(), &affirm.Checkout{OrderID: "ORD-3"})

		apiErr, ok := affirm.IsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		assert.Equal(t, "upstream unavailable", apiErr.Detail())
	})
}

func TestAuthorizeCharge(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		var gotBody map[string]string

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v2/charges", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			json.NewEncoder(w).Encode(map[string]any{
				"id": "abc123", "amount": 5000, "currency": "USD", "status": "authorized",
			})
		})

		charge, err := client.AuthorizeCharge(t.Context(), "tok_consumed")

		require.NoError(t, err)
		assert.Equal(t, "abc123", charge.ID)
		assert.Equal(t, int64(5000), charge.Amount)
		assert.Equal(t, "tok_consumed", gotBody["checkout_token"])
	})

	t.Run("Failure - Declined", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			w.Write([]byte(`{"message":"expired token"}`))
		})

		_, err := client.AuthorizeCharge(t.Context(), "tok_expired")

		apiErr, ok := affirm.IsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusPaymentRequired, apiErr.StatusCode)
	})
}

func TestCaptureCharge(t *testing.T) {

	t.Run("Success - Partial Capture Body", func(t *testing.T) {
		var gotBody map[string]any

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v2/charges/abc123/capture", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			json.NewEncoder(w).Encode(map[string]any{
				"id": "abc123", "amount": 5000, "currency": "USD", "type": "capture",
			})
		})

		amount := int64(5000)
		result, err := client.CaptureCharge(t.Context(), "abc123", &affirm.CaptureParams{
			OrderID:              "SS-1",
			Amount:               &amount,
			ShippingCarrier:      "UPS",
			ShippingConfirmation: "1Z999",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(5000), result.Amount)
		assert.Equal(t, "SS-1", gotBody["order_id"])
		assert.Equal(t, float64(5000), gotBody["amount"])
		assert.Equal(t, "UPS", gotBody["shipping_carrier"])
		assert.Equal(t, "1Z999", gotBody["shipping_confirmation"])
	})

	t.Run("Success - Full Capture Omits Amount", func(t *testing.T) {
		var gotBody map[string]any

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode(map[string]any{"id": "ch_1", "amount": 2499, "currency": "USD"})
		})

		_, err := client.CaptureCharge(t.Context(), "ch_1", &affirm.CaptureParams{OrderID: "SS-2"})

		require.NoError(t, err)
		assert.Equal(t, "SS-2", gotBody["order_id"])
		_, hasAmount := gotBody["amount"]
		assert.False(t, hasAmount)
	})

	t.Run("Charge ID Is Path-Escaped", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v2/charges/ch%2F..%2Fsneaky/capture", r.URL.RawPath)
			json.NewEncoder(w).Encode(map[string]any{"id": "x"})
		})

		_, err := client.CaptureCharge(t.Context(), "ch/../sneaky", nil)
		require.NoError(t, err)
	})
}
