package service

import (
	"context"

	"github.com/sunrisestore/storefront-backend/internal/errors"
	"github.com/sunrisestore/storefront-backend/internal/models"
)

type ProductService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
}

// productService serves the seeded catalog. The storefront ships its catalog
// as static data; mutable state lives with the carts, not here.
type productService struct {
	products []models.Product
	bySlug   map[string]*models.Product
}

func NewProductService(products []models.Product) ProductService {

	s := &productService{
		products: products,
		bySlug:   make(map[string]*models.Product, len(products)),
	}

	for i := range s.products {
		s.bySlug[s.products[i].Slug] = &s.products[i]
	}

	return s
}

// ListProducts implements ProductService.
func (s *productService) ListProducts(_ context.Context) ([]models.Product, error) {
	return s.products, nil
}

// GetProductBySlug implements ProductService.
func (s *productService) GetProductBySlug(_ context.Context, slug string) (*models.Product, error) {

	product, ok := s.bySlug[slug]
	if !ok {
		return nil, errors.NotFoundError("Product not found")
	}

	return product, nil
}
