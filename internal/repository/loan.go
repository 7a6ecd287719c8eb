package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/libsys/backend/internal/errs"
	"github.com/libsys/backend/internal/model"
)

var loanColumns = []string{
	"id", "user_id", "book_id", "loan_date", "expected_return_date",
	"return_date", "status", "fine_amount",
}

// GetLoanForUpdate locks the loan row. Return and extension both lock the
// loan before touching the book, keeping lock order fixed across operations.
func (r *repository) GetLoanForUpdate(ctx context.Context, id int) (model.Loan, error) {
	query, args, err := qb.Select(loanColumns...).
		From(loansTableName).
		Where(sq.Eq{"id": id}).
		Suffix("for update").
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}

	var loan model.Loan
	if err := sqlx.GetContext(ctx, r.ext(ctx), &loan, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errs.ErrLoanNotFound
		}
		return model.Loan{}, errors.Wrap(err, "get loan for update")
	}
	return loan, nil
}

func (r *repository) CreateLoan(ctx context.Context, loan model.Loan) (model.Loan, error) {
	query, args, err := qb.Insert(loansTableName).
		Columns("user_id", "book_id", "loan_date", "expected_return_date", "status", "fine_amount").
		Values(loan.UserID, loan.BookID, loan.LoanDate, loan.ExpectedReturnDate, loan.Status, loan.FineAmount).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}

	var created model.Loan
	if err := sqlx.GetContext(ctx, r.ext(ctx), &created, query, args...); err != nil {
		r.log.Error("CreateLoan", zap.String("q", query), zap.Any("args", args))
		return model.Loan{}, errors.Wrap(err, "insert loan")
	}
	return created, nil
}

func (r *repository) UpdateLoanReturn(ctx context.Context, loan model.Loan) error {
	query, args, err := qb.Update(loansTableName).
		Set("return_date", loan.ReturnDate).
		Set("status", loan.Status).
		Set("fine_amount", loan.FineAmount).
		Where(sq.Eq{"id": loan.ID}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.ext(ctx).ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "update loan return")
	}
	return nil
}

func (r *repository) UpdateLoanExpectedReturn(ctx context.Context, loanID int, expected time.Time) error {
	query, args, err := qb.Update(loansTableName).
		Set("expected_return_date", expected).
		Where(sq.Eq{"id": loanID}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.ext(ctx).ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "update expected_return_date")
	}
	return nil
}

func (r *repository) CountActiveLoans(ctx context.Context, userID int) (int, error) {
	q := `
select count(*) from loans
where user_id = $1 and status in ('ACTIVE', 'OVERDUE')`
	var count int
	if err := sqlx.GetContext(ctx, r.ext(ctx), &count, q, userID); err != nil {
		return 0, errors.Wrap(err, "count active loans")
	}
	return count, nil
}

func (r *repository) HasOverdueLoans(ctx context.Context, userID int, now time.Time) (bool, error) {
	q := `
select exists(
	select 1 from loans
	where user_id = $1 and status = 'ACTIVE' and expected_return_date < $2
)`
	var exists bool
	if err := sqlx.GetContext(ctx, r.ext(ctx), &exists, q, userID, now); err != nil {
		return false, errors.Wrap(err, "check overdue loans")
	}
	return exists, nil
}

func (r *repository) ListLoans(ctx context.Context, filter model.LoanFilter, now time.Time) (model.ListLoans, error) {
	page, size := normalizePaging(filter.Page, filter.Size)
	q := qb.Select(loanColumns...).
		From(loansTableName).
		OrderBy("id").
		Limit(uint64(size)).
		Offset(uint64((page - 1) * size))

	if filter.UserID != 0 {
		q = q.Where(sq.Eq{"user_id": filter.UserID})
	}
	switch filter.Status {
	case "":
	case model.LoanStatusOverdue:
		// derived status: overdue rows are stored as ACTIVE
		q = q.Where(sq.Eq{"status": model.LoanStatusActive}).
			Where(sq.Lt{"expected_return_date": now})
	default:
		q = q.Where(sq.Eq{"status": filter.Status})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.ListLoans{}, err
	}

	var loans []model.Loan
	if err := sqlx.SelectContext(ctx, r.ext(ctx), &loans, query, args...); err != nil {
		return model.ListLoans{}, errors.Wrap(err, "list loans")
	}

	return model.ListLoans{
		Paging: model.Paging{
			Page:          page,
			PageSize:      size,
			TotalElements: len(loans),
		},
		Items: loans,
	}, nil
}

func (r *repository) ListDueSoon(ctx context.Context, from, until time.Time, limit int) ([]model.LoanWithRefs, error) {
	return r.listWithRefs(ctx, sq.And{
		sq.GtOrEq{"l.expected_return_date": from},
		sq.LtOrEq{"l.expected_return_date": until},
	}, limit)
}

func (r *repository) ListOverdue(ctx context.Context, now time.Time, limit int) ([]model.LoanWithRefs, error) {
	return r.listWithRefs(ctx, sq.Lt{"l.expected_return_date": now}, limit)
}

func (r *repository) listWithRefs(ctx context.Context, pred sq.Sqlizer, limit int) ([]model.LoanWithRefs, error) {
	query, args, err := qb.Select(
		"l.id", "l.user_id", "l.book_id", "l.loan_date", "l.expected_return_date",
		"l.return_date", "l.status", "l.fine_amount",
		"u.name as user_name", "u.email as user_email", "b.title as book_title").
		From(loansTableName + " l").
		Join(fmt.Sprintf("%s u on u.id = l.user_id", usersTableName)).
		Join(fmt.Sprintf("%s b on b.id = l.book_id", booksTableName)).
		Where(sq.Eq{"l.status": model.LoanStatusActive}).
		Where(pred).
		OrderBy("l.expected_return_date").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	var loans []model.LoanWithRefs
	if err := sqlx.SelectContext(ctx, r.ext(ctx), &loans, query, args...); err != nil {
		return nil, errors.Wrap(err, "list loans with refs")
	}
	return loans, nil
}
