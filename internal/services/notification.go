package service

import (
	"context"
	"fmt"

	"github.com/sunrisestore/storefront-backend/internal/config"
	"github.com/sunrisestore/storefront-backend/internal/errors"
	"github.com/sunrisestore/storefront-backend/internal/models"
	"github.com/sunrisestore/storefront-backend/pkg/email"
)

type NotificationService interface {
	SendContactMessage(ctx context.Context, req *models.ContactRequest) error
	SendOrderConfirmation(ctx context.Context, to, orderID string, amount int64, currency string) error
}

type notificationService struct {
	emailService email.Service
	cfg          config.SendGrid
	storeName    string
}

func NewNotificationService(emailService email.Service, cfg config.SendGrid, storeName string) NotificationService {
	return &notificationService{emailService: emailService, cfg: cfg, storeName: storeName}
}

// SendContactMessage implements NotificationService. Contact-form messages
// are relayed to the store inbox.
func (n *notificationService) SendContactMessage(ctx context.Context, req *models.ContactRequest) error {

	subject := req.Subject
	if subject == "" {
		subject = "New contact form message"
	}

	content := fmt.Sprintf("From: %s <%s>\nPhone: %s\n\n%s", req.Name, req.Email, req.Phone, req.Message)

	notification := &models.EmailNotification{
		To:      n.cfg.ContactInbox,
		Subject: fmt.Sprintf("[%s] %s", n.storeName, subject),
		Content: content,
	}

	if err := n.emailService.Send(ctx, notification); err != nil {
		return errors.InternalError("Failed to send contact message").WithError(err)
	}

	return nil
}

// SendOrderConfirmation implements NotificationService.
func (n *notificationService) SendOrderConfirmation(ctx context.Context, to, orderID string, amount int64, currency string) error {

	notification := &models.EmailNotification{
		To:      to,
		Subject: fmt.Sprintf("%s order %s confirmed", n.storeName, orderID),
		Content: fmt.Sprintf("Thanks for your purchase! Order %s was charged %d.%02d %s.", orderID, amount/100, amount%100, currency),
	}

	return n.emailService.Send(ctx, notification)
}
