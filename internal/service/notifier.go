package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/libsys/backend/internal/model"
)

// The channel notifiers only log the delivery; real transports live behind
// the same interface.

type EmailNotifier struct {
	log *zap.Logger
}

func NewEmailNotifier(log *zap.Logger) *EmailNotifier {
	return &EmailNotifier{log: log.Named("email")}
}

func (e *EmailNotifier) Send(_ context.Context, n model.Notification) error {
	e.log.Info("notification email sent",
		zap.Int64("notification_id", n.ID),
		zap.Any("user_id", n.UserID),
		zap.Any("loan_id", n.LoanID),
		zap.String("subject", n.Subject),
	)
	return nil
}

type WebhookNotifier struct {
	log *zap.Logger
}

func NewWebhookNotifier(log *zap.Logger) *WebhookNotifier {
	return &WebhookNotifier{log: log.Named("webhook")}
}

func (w *WebhookNotifier) Send(_ context.Context, n model.Notification) error {
	w.log.Info("notification webhook sent",
		zap.Int64("notification_id", n.ID),
		zap.Any("user_id", n.UserID),
		zap.Any("loan_id", n.LoanID),
		zap.String("subject", n.Subject),
	)
	return nil
}
