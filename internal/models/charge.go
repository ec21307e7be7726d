package models

// ChargeState tracks a charge through the two-phase payment sequence. The
// orchestrator only ever moves forward: Unauthorized -> Authorized ->
// Captured. A future auto-void on capture failure would hook in at
// ChargeAuthorized.
type ChargeState string

const (
	ChargeUnauthorized ChargeState = "unauthorized"
	ChargeAuthorized   ChargeState = "authorized"
	ChargeCaptured     ChargeState = "captured"
)

type AuthorizeCaptureRequest struct {
	CheckoutToken        string `json:"checkout_token" validate:"required"`
	OrderID              string `json:"order_id"       validate:"required"`
	AmountCents          *int64 `json:"amount_cents,omitempty"   validate:"omitempty,gt=0"`
	ShippingCarrier      string `json:"shipping_carrier,omitempty"`
	ShippingConfirmation string `json:"shipping_confirmation,omitempty"`
	// CartID, when present, identifies the buyer's cart to clear after a
	// confirmed capture.
	CartID string `json:"cart_id,omitempty"`
	// BuyerEmail, when present, receives the order confirmation mail.
	BuyerEmail string `json:"buyer_email,omitempty" validate:"omitempty,email"`
}

type AuthorizeCaptureResponse struct {
	OK       bool        `json:"ok"`
	ChargeID string      `json:"charge_id"`
	OrderID  string      `json:"order_id"`
	Amount   int64       `json:"amount"`
	Currency string      `json:"currency"`
	State    ChargeState `json:"state"`
}

type CaptureOnlyRequest struct {
	ChargeToken string `json:"charge_token" validate:"required"`
	Environment string `json:"environment,omitempty"`
}

type CaptureOnlyResponse struct {
	Success  bool   `json:"success"`
	ChargeID string `json:"charge_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}
