package service

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/libsys/backend/internal/errs"
	"github.com/libsys/backend/internal/model"
	"github.com/libsys/backend/internal/repository"
)

type NotificationConfig struct {
	DueSoonDays int
	MaxPerRun   int
}

// NotificationService scans circulation for loans needing due-soon/overdue
// alerts and emits them at most once per (loan, type, channel), using the
// notifications table as the idempotency ledger.
type NotificationService struct {
	repo      repository.Repository
	notifiers map[model.NotificationChannel]Notifier
	cfg       NotificationConfig
	log       *zap.Logger
	now       func() time.Time
}

type NotificationOption func(*NotificationService)

func WithNotificationNow(now func() time.Time) NotificationOption {
	return func(s *NotificationService) {
		s.now = now
	}
}

func WithNotifiers(notifiers map[model.NotificationChannel]Notifier) NotificationOption {
	return func(s *NotificationService) {
		s.notifiers = notifiers
	}
}

func NewNotificationService(repo repository.Repository, cfg NotificationConfig, log *zap.Logger, ops ...NotificationOption) *NotificationService {
	log = log.Named("notifications")
	s := &NotificationService{
		repo: repo,
		notifiers: map[model.NotificationChannel]Notifier{
			model.ChannelEmail:   NewEmailNotifier(log),
			model.ChannelWebhook: NewWebhookNotifier(log),
		},
		cfg: cfg,
		log: log,
		now: time.Now,
	}
	for _, op := range ops {
		op(s)
	}
	return s
}

func (s *NotificationService) Dispatch(ctx context.Context, channels []string, limit int) (model.DispatchResult, error) {
	chs := s.normalizeChannels(channels)
	if limit <= 0 {
		limit = s.cfg.MaxPerRun
	}
	now := s.now().UTC()
	until := now.Add(time.Duration(s.cfg.DueSoonDays) * 24 * time.Hour)

	var dueSoon, overdue []model.LoanWithRefs
	gg, gctx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		var err error
		dueSoon, err = s.repo.ListDueSoon(gctx, now, until, limit)
		return err
	})
	gg.Go(func() error {
		var err error
		overdue, err = s.repo.ListOverdue(gctx, now, limit)
		return err
	})
	if err := gg.Wait(); err != nil {
		return model.DispatchResult{}, err
	}

	dueSoonSent, err := s.dispatchForLoans(ctx, dueSoon, model.NotificationDueSoon, chs, now)
	if err != nil {
		return model.DispatchResult{}, err
	}
	overdueSent, err := s.dispatchForLoans(ctx, overdue, model.NotificationOverdue, chs, now)
	if err != nil {
		return model.DispatchResult{}, err
	}

	return model.DispatchResult{
		DueSoonSent: dueSoonSent,
		OverdueSent: overdueSent,
		TotalSent:   dueSoonSent + overdueSent,
	}, nil
}

func (s *NotificationService) dispatchForLoans(ctx context.Context, loans []model.LoanWithRefs, typ model.NotificationType, channels []model.NotificationChannel, now time.Time) (int, error) {
	sent := 0
	for _, loan := range loans {
		for _, channel := range channels {
			exists, err := s.repo.NotificationExists(ctx, loan.ID, typ, channel)
			if err != nil {
				return sent, err
			}
			if exists {
				continue
			}

			subject, payload := composePayload(typ, loan, now)
			userID, loanID := loan.UserID, loan.ID
			n, err := s.repo.CreateNotification(ctx, model.Notification{
				UserID:  &userID,
				LoanID:  &loanID,
				Channel: channel,
				Type:    typ,
				Status:  model.NotificationPending,
				Subject: subject,
				Payload: payload,
			})
			if err != nil {
				if errors.Is(err, errs.ErrNotificationExists) {
					continue
				}
				return sent, err
			}

			// a failed send is recorded and skipped, never fatal to the batch
			if err := s.notifiers[channel].Send(ctx, n); err != nil {
				s.log.Error("notification send failed",
					zap.Int64("notification_id", n.ID),
					zap.String("channel", string(channel)),
					zap.Error(err))
				if mErr := s.repo.MarkNotificationFailed(ctx, n.ID, err.Error()); mErr != nil {
					return sent, mErr
				}
				continue
			}
			if err := s.repo.MarkNotificationSent(ctx, n.ID, s.now().UTC()); err != nil {
				return sent, err
			}
			sent++
		}
	}
	return sent, nil
}

func composePayload(typ model.NotificationType, loan model.LoanWithRefs, now time.Time) (string, model.JSONMap) {
	expected := loan.ExpectedReturnDate.UTC()
	payload := model.JSONMap{
		"type":               string(typ),
		"userId":             loan.UserID,
		"userEmail":          loan.UserEmail,
		"bookId":             loan.BookID,
		"bookTitle":          loan.BookTitle,
		"expectedReturnDate": expected.Format(time.RFC3339),
	}
	if typ == model.NotificationDueSoon {
		daysLeft := int(expected.Sub(now) / (24 * time.Hour))
		if daysLeft < 0 {
			daysLeft = 0
		}
		payload["daysLeft"] = daysLeft
		return "Loan due soon", payload
	}
	daysOverdue := int(now.Sub(expected) / (24 * time.Hour))
	if daysOverdue < 0 {
		daysOverdue = 0
	}
	payload["daysOverdue"] = daysOverdue
	return "Loan overdue", payload
}

func (s *NotificationService) normalizeChannels(channels []string) []model.NotificationChannel {
	if len(channels) == 0 {
		return []model.NotificationChannel{model.ChannelEmail, model.ChannelWebhook}
	}
	normalized := make([]model.NotificationChannel, 0, len(channels))
	for _, raw := range channels {
		ch := model.NotificationChannel(strings.ToLower(strings.TrimSpace(raw)))
		if _, ok := s.notifiers[ch]; ok {
			normalized = append(normalized, ch)
		}
	}
	return normalized
}

// RunScheduler dispatches on a fixed interval until ctx is cancelled.
func (s *NotificationService) RunScheduler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	s.log.Info("scheduler started", zap.Duration("interval", interval))
	for {
		select {
		case <-ticker.C:
			res, err := s.Dispatch(ctx, nil, 0)
			if err != nil {
				s.log.Error("scheduled dispatch", zap.Error(err))
				continue
			}
			s.log.Info("dispatch completed",
				zap.Int("due_soon_sent", res.DueSoonSent),
				zap.Int("overdue_sent", res.OverdueSent))
		case <-ctx.Done():
			return
		}
	}
}
