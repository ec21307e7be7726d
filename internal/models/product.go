package models

type Product struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	SKU         string            `json:"sku"`
	Price       float64           `json:"price"`
	Image       string            `json:"image"`
	Gallery     []string          `json:"gallery,omitempty"`
	Category    string            `json:"category"`
	Description string            `json:"description"`
	Specs       map[string]string `json:"specs,omitempty"`
}
