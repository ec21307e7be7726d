package service

import "github.com/sunrisestore/storefront-backend/internal/models"

// Catalog is the seeded storefront inventory.
func Catalog() []models.Product {
	return []models.Product{
		{
			ID:          1,
			Name:        "Dawnrider 150 Scooter",
			Slug:        "dawnrider-150-scooter",
			SKU:         "SS-SCT-150",
			Price:       2499.00,
			Image:       "/images/dawnrider-150.jpg",
			Category:    "scooter",
			Description: "City commuter scooter with a 150cc engine and under-seat storage.",
			Specs: map[string]string{
				"engine":    "150cc single cylinder",
				"top_speed": "60 mph",
				"range":     "120 mi",
			},
		},
		{
			ID:          2,
			Name:        "Sunrise Cruiser 300",
			Slug:        "sunrise-cruiser-300",
			SKU:         "SS-MTC-300",
			Price:       4899.00,
			Image:       "/images/cruiser-300.jpg",
			Gallery:     []string{"/images/cruiser-300-side.jpg", "/images/cruiser-300-rear.jpg"},
			Category:    "motorcycle",
			Description: "Entry-level cruiser with relaxed ergonomics and a 300cc twin.",
			Specs: map[string]string{
				"engine":      "300cc parallel twin",
				"seat_height": "27.5 in",
			},
		},
		{
			ID:          3,
			Name:        "Meridian 50 Moped",
			Slug:        "meridian-50-moped",
			SKU:         "SS-SCT-050",
			Price:       1299.00,
			Image:       "/images/meridian-50.jpg",
			Category:    "scooter",
			Description: "Lightweight 50cc moped, no motorcycle license required in most states.",
		},
		{
			ID:          4,
			Name:        "Blacktop 650 Standard",
			Slug:        "blacktop-650-standard",
			SKU:         "SS-MTC-650",
			Price:       6999.00,
			Image:       "/images/blacktop-650.jpg",
			Category:    "motorcycle",
			Description: "Mid-weight standard with ABS and a 650cc twin for daily riding.",
			Specs: map[string]string{
				"engine": "650cc parallel twin",
				"abs":    "standard",
			},
		},
	}
}
