package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/libsys/backend/internal/model"
	"github.com/libsys/backend/pkg/postgres"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go -package=mocks

type Repository interface {
	// books
	GetBook(ctx context.Context, id int) (model.Book, error)
	GetBookForUpdate(ctx context.Context, id int) (model.Book, error)
	AddAvailableCopies(ctx context.Context, bookID, delta int) error
	ListBooks(ctx context.Context, q model.BookQuery) (model.ListBooks, error)

	// users
	GetUser(ctx context.Context, id int) (model.User, error)

	// loans
	GetLoanForUpdate(ctx context.Context, id int) (model.Loan, error)
	CreateLoan(ctx context.Context, loan model.Loan) (model.Loan, error)
	UpdateLoanReturn(ctx context.Context, loan model.Loan) error
	UpdateLoanExpectedReturn(ctx context.Context, loanID int, expected time.Time) error
	CountActiveLoans(ctx context.Context, userID int) (int, error)
	HasOverdueLoans(ctx context.Context, userID int, now time.Time) (bool, error)
	ListLoans(ctx context.Context, filter model.LoanFilter, now time.Time) (model.ListLoans, error)
	ListDueSoon(ctx context.Context, from, until time.Time, limit int) ([]model.LoanWithRefs, error)
	ListOverdue(ctx context.Context, now time.Time, limit int) ([]model.LoanWithRefs, error)

	// notifications
	NotificationExists(ctx context.Context, loanID int, typ model.NotificationType, channel model.NotificationChannel) (bool, error)
	CreateNotification(ctx context.Context, n model.Notification) (model.Notification, error)
	MarkNotificationSent(ctx context.Context, id int64, at time.Time) error
	MarkNotificationFailed(ctx context.Context, id int64, sendErr string) error

	// audit
	CreateAuditRecord(ctx context.Context, rec model.AuditRecord) error

	// analytics
	DashboardSummary(ctx context.Context, now time.Time, limit int) (model.DashboardSummary, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) *repository {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}
}

const (
	booksTableName         = `books`
	usersTableName         = `users`
	loansTableName         = `loans`
	notificationsTableName = `notifications`
	auditTableName         = `audit_logs`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// normalizePaging clamps listing parameters: listings are never unbounded.
func normalizePaging(page, size int) (int, int) {
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	return page, size
}

// ext joins the ambient transaction when the context carries one.
func (r *repository) ext(ctx context.Context) sqlx.ExtContext {
	return postgres.DB(ctx, r.db)
}
