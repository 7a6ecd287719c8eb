package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/libsys/backend/internal/errs"
	"github.com/libsys/backend/internal/model"
)

func (r *repository) NotificationExists(ctx context.Context, loanID int, typ model.NotificationType, channel model.NotificationChannel) (bool, error) {
	q := `
select exists(
	select 1 from notifications
	where loan_id = $1 and notification_type = $2 and channel = $3
)`
	var exists bool
	if err := sqlx.GetContext(ctx, r.ext(ctx), &exists, q, loanID, typ, channel); err != nil {
		return false, errors.Wrap(err, "check notification")
	}
	return exists, nil
}

func (r *repository) CreateNotification(ctx context.Context, n model.Notification) (model.Notification, error) {
	query, args, err := qb.Insert(notificationsTableName).
		Columns("user_id", "loan_id", "channel", "notification_type", "status", "subject", "payload").
		Values(n.UserID, n.LoanID, n.Channel, n.Type, n.Status, n.Subject, n.Payload).
		Suffix("returning id, created_at").
		ToSql()
	if err != nil {
		return model.Notification{}, err
	}

	row := r.ext(ctx).QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&n.ID, &n.CreatedAt); err != nil {
		// a concurrent dispatcher run claimed the same (loan, type, channel)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.Notification{}, errs.ErrNotificationExists
		}
		return model.Notification{}, errors.Wrap(err, "insert notification")
	}
	return n, nil
}

func (r *repository) MarkNotificationSent(ctx context.Context, id int64, at time.Time) error {
	query, args, err := qb.Update(notificationsTableName).
		Set("status", model.NotificationSent).
		Set("sent_at", at).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.ext(ctx).ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "mark notification sent")
	}
	return nil
}

func (r *repository) MarkNotificationFailed(ctx context.Context, id int64, sendErr string) error {
	query, args, err := qb.Update(notificationsTableName).
		Set("status", model.NotificationFailed).
		Set("error", sendErr).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.ext(ctx).ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "mark notification failed")
	}
	return nil
}
