package models

import "math"

// CheckoutItem is one line item as submitted by the storefront. UnitPrice
// accepts either integer minor units (2500) or decimal major units (25.00);
// see MinorUnits.
type CheckoutItem struct {
	DisplayName  string  `json:"display_name"   validate:"required"`
	SKU          string  `json:"sku"            validate:"required"`
	UnitPrice    float64 `json:"unit_price"     validate:"required,gt=0"`
	Qty          int     `json:"qty"            validate:"required,min=1"`
	ItemImageURL string  `json:"item_image_url"`
	ItemURL      string  `json:"item_url"`
}

type MerchantInfo struct {
	Name                string `json:"name"`
	UserConfirmationURL string `json:"user_confirmation_url" validate:"omitempty,url"`
	UserCancelURL       string `json:"user_cancel_url"       validate:"omitempty,url"`
}

type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
	Country string `json:"country"`
}

type Name struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

type Contact struct {
	Name    *Name    `json:"name,omitempty"`
	Address *Address `json:"address,omitempty"`
}

type CreateCheckoutSessionRequest struct {
	Items          []CheckoutItem `json:"items"    validate:"required,min=1,dive"`
	Total          float64        `json:"total"    validate:"required,gt=0"`
	Currency       string         `json:"currency" validate:"omitempty,len=3"`
	TaxAmount      int64          `json:"tax_amount"      validate:"min=0"`
	ShippingAmount int64          `json:"shipping_amount" validate:"min=0"`
	Merchant       *MerchantInfo  `json:"merchant,omitempty"`
	Shipping       *Contact       `json:"shipping,omitempty"`
	Billing        *Contact       `json:"billing,omitempty"`
}

type CheckoutSessionResponse struct {
	CheckoutToken string `json:"checkout_token"`
	RedirectURL   string `json:"redirect_url"`
	OrderID       string `json:"order_id"`
}

// IsIntegral reports whether v carries no fractional part, i.e. the caller
// sent integer minor units.
func IsIntegral(v float64) bool {
	return v == math.Trunc(v)
}

// MinorUnits normalizes a price to integer minor units. An integral value is
// taken as minor units already; a fractional value is treated as major units
// and rounded to the nearest cent.
func MinorUnits(price float64) int64 {
	if IsIntegral(price) {
		return int64(price)
	}

	return int64(math.Round(price * 100))
}
