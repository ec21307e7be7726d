package models

import (
	"time"
)

// CartItem holds the unit price in major currency units (e.g. dollars), the
// way the storefront displays it. Normalization to minor units happens at
// checkout initiation.
type CartItem struct {
	SKU        string  `json:"sku"`
	Name       string  `json:"name"`
	Slug       string  `json:"slug"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
	ImageURL   string  `json:"image_url"`
	TotalPrice float64 `json:"total_price"`
}

type Cart struct {
	ID        string              `json:"id"`
	Items     map[string]CartItem `json:"items"`
	Total     float64             `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

type AddItemRequest struct {
	SKU       string  `json:"sku"        validate:"required"`
	Name      string  `json:"name"       validate:"required"`
	Slug      string  `json:"slug"`
	UnitPrice float64 `json:"unit_price" validate:"required,gt=0"`
	Quantity  int     `json:"quantity"   validate:"required,min=1"`
	ImageURL  string  `json:"image_url"`
}

type UpdateQuantityRequest struct {
	SKU      string `json:"sku"      validate:"required"`
	Quantity int    `json:"quantity" validate:"min=0"`
}
