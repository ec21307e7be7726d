package service

import (
	"context"
	stderrors "errors"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sunrisestore/storefront-backend/internal/errors"
	"github.com/sunrisestore/storefront-backend/internal/models"
	repository "github.com/sunrisestore/storefront-backend/internal/repositories"
)

type CartService interface {
	CreateCart(ctx context.Context) (*models.Cart, error)
	GetCart(ctx context.Context, cartID string) (*models.Cart, error)
	AddItem(ctx context.Context, cartID string, req *models.AddItemRequest) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, cartID string, req *models.UpdateQuantityRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, cartID string, sku string) (*models.Cart, error)
	ClearCart(ctx context.Context, cartID string) error
	// Snapshot turns the cart into a checkout request: line items with
	// integer-cent prices and a total that equals their sum.
	Snapshot(ctx context.Context, cartID string) (*models.CreateCheckoutSessionRequest, error)
}

type cartService struct {
	repo repository.CartRepository
}

func NewCartService(repo repository.CartRepository) CartService {
	return &cartService{repo: repo}
}

// CreateCart implements CartService.
func (s *cartService) CreateCart(ctx context.Context) (*models.Cart, error) {

	cart := &models.Cart{
		ID:        uuid.NewString(),
		Items:     make(map[string]models.CartItem),
		Total:     0,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, errors.CacheError("Failed to create cart").WithError(err)
	}

	return cart, nil
}

// GetCart implements CartService.
func (s *cartService) GetCart(ctx context.Context, cartID string) (*models.Cart, error) {

	cart, err := s.repo.Get(ctx, cartID)
	if err != nil {

		if stderrors.Is(err, repository.ErrCartNotFound) {
			return nil, errors.NotFoundError("Cart not found").WithError(err)
		}

		return nil, errors.CacheError("Failed to fetch cart").WithError(err)
	}

	return cart, nil
}

// AddItem implements CartService. Adding an existing SKU replaces its line.
func (s *cartService) AddItem(ctx context.Context, cartID string, req *models.AddItemRequest) (*models.Cart, error) {

	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	item := models.CartItem{
		SKU:        req.SKU,
		Name:       req.Name,
		Slug:       req.Slug,
		UnitPrice:  req.UnitPrice,
		Quantity:   req.Quantity,
		ImageURL:   req.ImageURL,
		TotalPrice: float64(req.Quantity) * req.UnitPrice,
	}

	cart.Items[req.SKU] = item

	return s.saveCart(ctx, cart)
}

// UpdateQuantity implements CartService. Quantity zero removes the line.
func (s *cartService) UpdateQuantity(ctx context.Context, cartID string, req *models.UpdateQuantityRequest) (*models.Cart, error) {

	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	item, exists := cart.Items[req.SKU]
	if !exists {
		return nil, errors.BadRequestError("Item not found in the cart")
	}

	if req.Quantity == 0 {
		delete(cart.Items, req.SKU)
	} else {
		item.Quantity = req.Quantity
		item.TotalPrice = item.UnitPrice * float64(item.Quantity)
		cart.Items[req.SKU] = item
	}

	return s.saveCart(ctx, cart)
}

// RemoveItem implements CartService.
func (s *cartService) RemoveItem(ctx context.Context, cartID string, sku string) (*models.Cart, error) {

	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if _, exists := cart.Items[sku]; !exists {
		return nil, errors.BadRequestError("Item not found in the cart")
	}

	delete(cart.Items, sku)

	return s.saveCart(ctx, cart)
}

// ClearCart implements CartService.
func (s *cartService) ClearCart(ctx context.Context, cartID string) error {

	if err := s.repo.Delete(ctx, cartID); err != nil {
		return errors.CacheError("Failed to clear cart").WithError(err)
	}

	return nil
}

// Snapshot implements CartService. Cart prices are major units; the snapshot
// converts them to cents so the session initiator receives the integer form.
func (s *cartService) Snapshot(ctx context.Context, cartID string) (*models.CreateCheckoutSessionRequest, error) {

	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if len(cart.Items) == 0 {
		return nil, errors.ValidationError("Cart is empty")
	}

	skus := make([]string, 0, len(cart.Items))
	for sku := range cart.Items {
		skus = append(skus, sku)
	}

	sort.Strings(skus)

	items := make([]models.CheckoutItem, 0, len(skus))

	var totalCents int64

	for _, sku := range skus {

		item := cart.Items[sku]
		unitCents := int64(math.Round(item.UnitPrice * 100))
		totalCents += unitCents * int64(item.Quantity)

		itemURL := ""
		if item.Slug != "" {
			itemURL = "/products/" + item.Slug
		}

		items = append(items, models.CheckoutItem{
			DisplayName:  item.Name,
			SKU:          item.SKU,
			UnitPrice:    float64(unitCents),
			Qty:          item.Quantity,
			ItemImageURL: item.ImageURL,
			ItemURL:      itemURL,
		})
	}

	return &models.CreateCheckoutSessionRequest{
		Items: items,
		Total: float64(totalCents),
	}, nil
}

func (s *cartService) saveCart(ctx context.Context, cart *models.Cart) (*models.Cart, error) {

	cart.UpdatedAt = time.Now()
	cart.Total = calculateTotal(cart.Items)

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, errors.CacheError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

func calculateTotal(items map[string]models.CartItem) float64 {

	var totalPrice float64

	for _, item := range items {
		totalPrice += item.TotalPrice
	}

	return totalPrice
}
