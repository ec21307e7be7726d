package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sunrisestore/storefront-backend/internal/config"
	"github.com/sunrisestore/storefront-backend/internal/errors"
	"github.com/sunrisestore/storefront-backend/internal/models"
	"github.com/sunrisestore/storefront-backend/pkg/affirm"
)

type CheckoutService interface {
	CreateSession(ctx context.Context, req *models.CreateCheckoutSessionRequest) (*models.CheckoutSessionResponse, error)
}

type checkoutService struct {
	client affirm.Client
	store  config.Store
}

// NewCheckoutService builds the session initiator. A nil client means the
// deployment is missing provider credentials; initiation then fails with a
// config error before any network call.
func NewCheckoutService(client affirm.Client, store config.Store) CheckoutService {
	return &checkoutService{client: client, store: store}
}

// CreateSession implements CheckoutService.
func (s *checkoutService) CreateSession(ctx context.Context, req *models.CreateCheckoutSessionRequest) (*models.CheckoutSessionResponse, error) {

	if len(req.Items) == 0 {
		return nil, errors.ValidationError("Items are required")
	}

	if !models.IsIntegral(req.Total) {
		return nil, errors.ValidationError("Total must be integer cents")
	}

	total := int64(req.Total)

	items := make([]affirm.Item, 0, len(req.Items))

	var itemSubtotal int64

	for _, it := range req.Items {

		unitPrice := models.MinorUnits(it.UnitPrice)
		itemSubtotal += unitPrice * int64(it.Qty)

		items = append(items, affirm.Item{
			DisplayName:  it.DisplayName,
			SKU:          it.SKU,
			UnitPrice:    unitPrice,
			Qty:          it.Qty,
			ItemImageURL: s.absoluteURL(it.ItemImageURL),
			ItemURL:      s.absoluteURL(it.ItemURL),
		})
	}

	if itemSubtotal+req.TaxAmount+req.ShippingAmount != total {
		return nil, errors.ValidationError("Total does not match the sum of item subtotals, tax and shipping").
			WithDetail(fmt.Sprintf("expected %d, got %d", itemSubtotal+req.TaxAmount+req.ShippingAmount, total))
	}

	if s.client == nil {
		return nil, errors.ConfigError("Payment provider credentials are not configured")
	}

	orderID := s.newOrderID()

	currency := req.Currency
	if currency == "" {
		currency = s.store.Currency
	}

	payload := &affirm.Checkout{
		Merchant:       s.merchantInfo(req.Merchant, orderID),
		Items:          items,
		Shipping:       providerContact(req.Shipping),
		Billing:        providerContact(req.Billing),
		OrderID:        orderID,
		Currency:       currency,
		TaxAmount:      req.TaxAmount,
		ShippingAmount: req.ShippingAmount,
		Total:          total,
		Metadata:       map[string]string{"platform": "sunrise-store", "order_id": orderID},
	}

	session, err := s.client.CreateCheckout(ctx, payload)
	if err != nil {

		if apiErr, ok := affirm.IsAPIError(err); ok {
			return nil, errors.ProviderRejectedError("Payment provider rejected the checkout", apiErr.StatusCode).
				WithDetail(apiErr.Detail()).
				WithError(err)
		}

		return nil, errors.InternalError("Failed to reach payment provider").WithError(err)
	}

	slog.Info("Checkout session created",
		slog.String("orderId", orderID),
		slog.Int64("total", total),
		slog.Int("items", len(items)))

	return &models.CheckoutSessionResponse{
		CheckoutToken: session.CheckoutToken,
		RedirectURL:   session.RedirectURL,
		OrderID:       orderID,
	}, nil
}

// newOrderID synthesizes the identifier for one checkout attempt. It is
// generated exactly once here and carried through the confirmation URL so the
// capture step reuses it instead of recomputing it.
func (s *checkoutService) newOrderID() string {
	return fmt.Sprintf("%s-%d-%s", s.store.OrderPrefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}

func (s *checkoutService) merchantInfo(m *models.MerchantInfo, orderID string) affirm.Merchant {

	merchant := affirm.Merchant{
		Name:                      s.store.Name,
		UserConfirmationURL:       fmt.Sprintf("%s/order-success?order_id=%s", s.store.SiteBaseURL, url.QueryEscape(orderID)),
		UserCancelURL:             s.store.SiteBaseURL + "/checkout-canceled",
		UserConfirmationURLAction: "GET",
	}

	if m == nil {
		return merchant
	}

	if m.Name != "" {
		merchant.Name = m.Name
	}

	if m.UserConfirmationURL != "" {
		merchant.UserConfirmationURL = m.UserConfirmationURL
	}

	if m.UserCancelURL != "" {
		merchant.UserCancelURL = m.UserCancelURL
	}

	return merchant
}

// providerContact maps a caller-supplied address block to the provider shape.
// The provider only serves US buyers, so an omitted block defaults to a
// US-country stub rather than nothing.
func providerContact(c *models.Contact) *affirm.Contact {

	if c == nil {
		return &affirm.Contact{Address: &affirm.Address{Country: "USA"}}
	}

	out := &affirm.Contact{}

	if c.Name != nil {
		out.Name = &affirm.Name{First: c.Name.First, Last: c.Name.Last}
	}

	if c.Address != nil {
		out.Address = &affirm.Address{
			Line1:   c.Address.Line1,
			Line2:   c.Address.Line2,
			City:    c.Address.City,
			State:   c.Address.State,
			Zipcode: c.Address.Zipcode,
			Country: c.Address.Country,
		}

		if out.Address.Country == "" {
			out.Address.Country = "USA"
		}
	} else {
		out.Address = &affirm.Address{Country: "USA"}
	}

	return out
}

// absoluteURL resolves a possibly-relative asset URL against the site base.
// An empty value falls back to the site root, matching what the storefront
// sends for items without a product page.
func (s *checkoutService) absoluteURL(raw string) string {

	if raw == "" {
		return s.store.SiteBaseURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return s.store.SiteBaseURL
	}

	if u.IsAbs() {
		return raw
	}

	base, err := url.Parse(s.store.SiteBaseURL)
	if err != nil {
		return raw
	}

	return base.ResolveReference(u).String()
}
