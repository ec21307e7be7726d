package affirm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Client defines the calls this backend makes against the Affirm v2 API.
type Client interface {
	// CreateCheckout submits a checkout payload and returns the
	// provider-hosted session (token + redirect URL).
	CreateCheckout(ctx context.Context, payload *Checkout) (*CheckoutSession, error)
	// AuthorizeCharge exchanges a consumed checkout token for a charge.
	AuthorizeCharge(ctx context.Context, checkoutToken string) (*Charge, error)
	// CaptureCharge captures funds against an authorized charge, fully or
	// partially.
	CaptureCharge(ctx context.Context, chargeID string, params *CaptureParams) (*CaptureResult, error)
}

type Merchant struct {
	Name                      string `json:"name"`
	UserConfirmationURL       string `json:"user_confirmation_url"`
	UserCancelURL             string `json:"user_cancel_url"`
	UserConfirmationURLAction string `json:"user_confirmation_url_action"`
}

type Item struct {
	DisplayName  string `json:"display_name"`
	SKU          string `json:"sku"`
	UnitPrice    int64  `json:"unit_price"`
	Qty          int    `json:"qty"`
	ItemImageURL string `json:"item_image_url,omitempty"`
	ItemURL      string `json:"item_url,omitempty"`
}

type Name struct {
	First string `json:"first,omitempty"`
	Last  string `json:"last,omitempty"`
}

type Address struct {
	Line1   string `json:"line1,omitempty"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zipcode string `json:"zipcode,omitempty"`
	Country string `json:"country,omitempty"`
}

type Contact struct {
	Name    *Name    `json:"name,omitempty"`
	Address *Address `json:"address,omitempty"`
}

// Checkout is the provider checkout payload. Amounts are integer minor units.
type Checkout struct {
	Merchant       Merchant          `json:"merchant"`
	Items          []Item            `json:"items"`
	Shipping       *Contact          `json:"shipping,omitempty"`
	Billing        *Contact          `json:"billing,omitempty"`
	OrderID        string            `json:"order_id"`
	Currency       string            `json:"currency"`
	TaxAmount      int64             `json:"tax_amount"`
	ShippingAmount int64             `json:"shipping_amount"`
	Total          int64             `json:"total"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

type CheckoutSession struct {
	CheckoutToken string `json:"checkout_token"`
	RedirectURL   string `json:"redirect_url"`
}

type Charge struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type CaptureParams struct {
	OrderID string `json:"order_id"`
	// Amount enables partial capture; nil captures the full authorized
	// amount.
	Amount               *int64 `json:"amount,omitempty"`
	ShippingCarrier      string `json:"shipping_carrier,omitempty"`
	ShippingConfirmation string `json:"shipping_confirmation,omitempty"`
}

type CaptureResult struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Type     string `json:"type,omitempty"`
}

// APIError is a non-success response from the provider. The original status
// code and body are preserved so callers can pass them through for diagnosis
// rather than hiding upstream detail.
type APIError struct {
	StatusCode int
	Body       json.RawMessage
	Raw        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("affirm: provider returned status %d", e.StatusCode)
}

// Detail returns the structured provider body when it parsed as JSON, the
// truncated raw text otherwise.
func (e *APIError) Detail() string {
	if len(e.Body) > 0 {
		return string(e.Body)
	}

	return e.Raw
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError

	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

type Options struct {
	BaseURL    string
	PublicKey  string
	PrivateKey string
	HTTPClient *http.Client
}

type affirmClient struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
}

func NewClient(opts Options) (Client, error) {
	if opts.PublicKey == "" || opts.PrivateKey == "" {
		return nil, errors.New("affirm: missing public/private credential pair")
	}

	if opts.BaseURL == "" {
		return nil, errors.New("affirm: missing API base URL")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	credentials := opts.PublicKey + ":" + opts.PrivateKey

	return &affirmClient{
		baseURL:    opts.BaseURL,
		authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials)),
		httpClient: httpClient,
	}, nil
}

// CreateCheckout implements Client.
func (c *affirmClient) CreateCheckout(ctx context.Context, payload *Checkout) (*CheckoutSession, error) {

	var session CheckoutSession

	body := map[string]*Checkout{"checkout": payload}

	if err := c.post(ctx, "/api/v2/checkout", body, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

// AuthorizeCharge implements Client.
func (c *affirmClient) AuthorizeCharge(ctx context.Context, checkoutToken string) (*Charge, error) {

	var charge Charge

	body := map[string]string{"checkout_token": checkoutToken}

	if err := c.post(ctx, "/api/v2/charges", body, &charge); err != nil {
		return nil, err
	}

	return &charge, nil
}

// CaptureCharge implements Client.
func (c *affirmClient) CaptureCharge(ctx context.Context, chargeID string, params *CaptureParams) (*CaptureResult, error) {

	var result CaptureResult

	path := "/api/v2/charges/" + url.PathEscape(chargeID) + "/capture"

	var body any
	if params != nil {
		body = params
	}

	if err := c.post(ctx, path, body, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

const maxLoggedBody = 800

func (c *affirmClient) post(ctx context.Context, path string, body any, dest any) error {

	var reqBody io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("affirm: failed to encode request body: %w", err)
		}

		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("affirm: failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.authHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("affirm: request to %s failed: %w", path, err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("affirm: failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {

		apiErr := &APIError{StatusCode: resp.StatusCode}

		if json.Valid(respBody) {
			apiErr.Body = json.RawMessage(respBody)
		} else {
			apiErr.Raw = truncate(string(respBody), maxLoggedBody)
		}

		slog.Error("Affirm call rejected",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("body", truncate(string(respBody), maxLoggedBody)))

		return apiErr
	}

	if dest != nil {
		if err := json.Unmarshal(respBody, dest); err != nil {
			return fmt.Errorf("affirm: failed to parse response body: %w", err)
		}
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n]
}
