package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/sunrisestore/storefront-backend/internal/models"
)

type mockCheckoutService struct {
	mock.Mock
}

func (m *mockCheckoutService) CreateSession(ctx context.Context, req *models.CreateCheckoutSessionRequest) (*models.CheckoutSessionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CheckoutSessionResponse), args.Error(1)
}

type mockCaptureService struct {
	mock.Mock
}

func (m *mockCaptureService) AuthorizeAndCapture(ctx context.Context, req *models.AuthorizeCaptureRequest) (*models.AuthorizeCaptureResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.AuthorizeCaptureResponse), args.Error(1)
}

func (m *mockCaptureService) CaptureOnly(ctx context.Context, req *models.CaptureOnlyRequest) (*models.CaptureOnlyResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CaptureOnlyResponse), args.Error(1)
}

type mockCartService struct {
	mock.Mock
}

func (m *mockCartService) CreateCart(ctx context.Context) (*models.Cart, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *mockCartService) GetCart(ctx context.Context, cartID string) (*models.Cart, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *mockCartService) AddItem(ctx context.Context, cartID string, req *models.AddItemRequest) (*models.Cart, error) {
	args := m.Called(ctx, cartID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *mockCartService) UpdateQuantity(ctx context.Context, cartID string, req *models.UpdateQuantityRequest) (*models.Cart, error) {
	args := m.Called(ctx, cartID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *mockCartService) RemoveItem(ctx context.Context, cartID string, sku string) (*models.Cart, error) {
	args := m.Called(ctx, cartID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *mockCartService) ClearCart(ctx context.Context, cartID string) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func (m *mockCartService) Snapshot(ctx context.Context, cartID string) (*models.CreateCheckoutSessionRequest, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CreateCheckoutSessionRequest), args.Error(1)
}

type mockNotificationService struct {
	mock.Mock
}

func (m *mockNotificationService) SendContactMessage(ctx context.Context, req *models.ContactRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *mockNotificationService) SendOrderConfirmation(ctx context.Context, to, orderID string, amount int64, currency string) error {
	args := m.Called(ctx, to, orderID, amount, currency)
	return args.Error(0)
}
