package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/libsys/backend/internal/errs"
	"github.com/libsys/backend/internal/model"
	"github.com/libsys/backend/internal/repository"
	"github.com/libsys/backend/pkg/kafka"
)

type CirculationConfig struct {
	LoanDurationDays int
	MaxActiveLoans   int
	DailyFine        decimal.Decimal
}

type Service struct {
	repo  repository.Repository
	tx    TxManager
	cache CatalogCache
	queue Enqueuer
	cfg   CirculationConfig
	log   *zap.Logger
	now   func() time.Time
}

type Option func(*Service)

// WithNow overrides the clock used for due dates and fines.
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo repository.Repository, tx TxManager, cache CatalogCache, queue Enqueuer, cfg CirculationConfig, log *zap.Logger, ops ...Option) *Service {
	s := &Service{
		repo:  repo,
		tx:    tx,
		cache: cache,
		queue: queue,
		cfg:   cfg,
		log:   log.Named("circulation"),
		now:   time.Now,
	}
	for _, op := range ops {
		op(s)
	}
	return s
}

func (s *Service) loanDuration() time.Duration {
	return time.Duration(s.cfg.LoanDurationDays) * 24 * time.Hour
}

// CreateLoan runs the cheap, lock-free validations first and only then locks
// the contended book row; the lock is held just long enough to re-check the
// copy count and apply the loan insert + decrement atomically.
func (s *Service) CreateLoan(ctx context.Context, userID, bookID int) (model.Loan, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return model.Loan{}, err
	}
	if !user.IsActive {
		return model.Loan{}, errs.ErrUserInactive
	}

	active, err := s.repo.CountActiveLoans(ctx, userID)
	if err != nil {
		return model.Loan{}, err
	}
	if active >= s.cfg.MaxActiveLoans {
		return model.Loan{}, errs.ErrLoanLimit
	}

	now := s.now().UTC()
	overdue, err := s.repo.HasOverdueLoans(ctx, userID, now)
	if err != nil {
		return model.Loan{}, err
	}
	if overdue {
		return model.Loan{}, errs.ErrOutstandingOverdue
	}

	var loan model.Loan
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		book, err := s.repo.GetBookForUpdate(ctx, bookID)
		if err != nil {
			return err
		}
		if book.AvailableCopies < 1 {
			return errs.ErrOutOfStock
		}
		loan, err = s.repo.CreateLoan(ctx, model.Loan{
			UserID:             userID,
			BookID:             bookID,
			LoanDate:           now,
			ExpectedReturnDate: now.Add(s.loanDuration()),
			Status:             model.LoanStatusActive,
			FineAmount:         decimal.Zero,
		})
		if err != nil {
			return err
		}
		return s.repo.AddAvailableCopies(ctx, bookID, -1)
	})
	if err != nil {
		return model.Loan{}, err
	}

	s.invalidateCatalog(ctx)
	s.publishEvent(userID, model.ActionLoanCreated, loan, nil)
	return loan, nil
}

// ReturnLoan locks the loan row first, then the book row. Creation locks the
// book only, so the fixed Loan->Book order cannot invert against it.
func (s *Service) ReturnLoan(ctx context.Context, loanID, actingUserID int) (model.ReturnLoanResponse, error) {
	var (
		loan        model.Loan
		daysOverdue int
		fine        = decimal.Zero
	)
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		var err error
		loan, err = s.repo.GetLoanForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.Status == model.LoanStatusReturned {
			return errs.ErrAlreadyReturned
		}
		if loan.UserID != actingUserID {
			return errs.ErrForbidden
		}

		// the book may have been deleted; the return still goes through,
		// only the copy-count increment is skipped
		haveBook := true
		if _, err := s.repo.GetBookForUpdate(ctx, loan.BookID); err != nil {
			if !errors.Is(err, errs.ErrBookNotFound) {
				return err
			}
			haveBook = false
		}

		// the clock is read only after both locks are held, so time spent
		// waiting on a contended row still counts toward the fine
		now := s.now().UTC()
		expected := loan.ExpectedReturnDate.UTC()
		if now.After(expected) {
			daysOverdue = int(now.Sub(expected) / (24 * time.Hour))
		}
		if daysOverdue > 0 {
			fine = s.cfg.DailyFine.Mul(decimal.NewFromInt(int64(daysOverdue)))
		}

		loan.ReturnDate = &now
		loan.Status = model.LoanStatusReturned
		loan.FineAmount = fine
		if err := s.repo.UpdateLoanReturn(ctx, loan); err != nil {
			return err
		}
		if haveBook {
			return s.repo.AddAvailableCopies(ctx, loan.BookID, 1)
		}
		return nil
	})
	if err != nil {
		return model.ReturnLoanResponse{}, err
	}

	s.invalidateCatalog(ctx)
	s.publishEvent(actingUserID, model.ActionLoanReturned, loan, model.JSONMap{
		"daysOverdue": daysOverdue,
		"fine":        fine.StringFixed(2),
	})

	return model.ReturnLoanResponse{
		Message:     "book returned",
		LoanID:      loan.ID,
		FineAmount:  "R$ " + fine.StringFixed(2),
		DaysOverdue: daysOverdue,
	}, nil
}

// ExtendLoan pushes the due date one loan period past its current value, not
// past "now"; a loan already over its due date cannot be extended.
func (s *Service) ExtendLoan(ctx context.Context, loanID, actingUserID int) (model.Loan, error) {
	now := s.now().UTC()
	var loan model.Loan
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		var err error
		loan, err = s.repo.GetLoanForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.Status == model.LoanStatusReturned {
			return errs.ErrAlreadyReturned
		}
		if loan.UserID != actingUserID {
			return errs.ErrForbidden
		}
		if now.After(loan.ExpectedReturnDate) {
			return errs.ErrRenewOverdue
		}
		loan.ExpectedReturnDate = loan.ExpectedReturnDate.Add(s.loanDuration())
		return s.repo.UpdateLoanExpectedReturn(ctx, loan.ID, loan.ExpectedReturnDate)
	})
	if err != nil {
		return model.Loan{}, err
	}

	s.publishEvent(actingUserID, model.ActionLoanExtended, loan, nil)
	return loan, nil
}

func (s *Service) ListLoans(ctx context.Context, filter model.LoanFilter) (model.ListLoans, error) {
	now := s.now().UTC()
	list, err := s.repo.ListLoans(ctx, filter, now)
	if err != nil {
		return model.ListLoans{}, err
	}
	for i := range list.Items {
		list.Items[i].Status = list.Items[i].EffectiveStatus(now)
	}
	return list, nil
}

func (s *Service) ListBooks(ctx context.Context, q model.BookQuery) (model.ListBooks, error) {
	if list, ok := s.cache.GetListing(ctx, q); ok {
		return list, nil
	}
	list, err := s.repo.ListBooks(ctx, q)
	if err != nil {
		return model.ListBooks{}, err
	}
	s.cache.SetListing(ctx, q, list)
	return list, nil
}

func (s *Service) invalidateCatalog(ctx context.Context) {
	if err := s.cache.InvalidateCatalog(ctx); err != nil {
		s.log.Warn("invalidate catalog", zap.Error(err))
	}
}

// publishEvent is fire-and-forget: the circulation result is already
// committed, an enqueue failure only loses the audit trail entry.
func (s *Service) publishEvent(actorID int, action string, loan model.Loan, meta model.JSONMap) {
	ev := model.CirculationEvent{
		EventID:     uuid.NewString(),
		Action:      action,
		ActorUserID: actorID,
		LoanID:      loan.ID,
		BookID:      loan.BookID,
		OccurredAt:  s.now().UTC(),
		Metadata:    meta,
	}
	if err := s.queue.Enqueue(kafka.LoanEventsTopic, ev); err != nil {
		s.log.Error("enqueue event", zap.String("action", action), zap.Error(err))
	}
}
