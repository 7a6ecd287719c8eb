package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/libsys/backend/internal/model"
)

// DashboardSummary collects the dashboard indicators in one round of reads.
// Counts follow the derived-overdue definition used everywhere else: an
// overdue loan is an ACTIVE row past its due date.
func (r *repository) DashboardSummary(ctx context.Context, now time.Time, limit int) (model.DashboardSummary, error) {
	var s model.DashboardSummary

	counts := []struct {
		dst   *int
		query string
		args  []any
	}{
		{&s.TotalBooks, `select count(*) from books`, nil},
		{&s.TotalUsers, `select count(*) from users`, nil},
		{&s.ActiveLoans, `select count(*) from loans where status = 'ACTIVE'`, nil},
		{&s.OverdueLoans, `select count(*) from loans where status = 'ACTIVE' and expected_return_date < $1`, []any{now}},
	}
	for _, c := range counts {
		if err := sqlx.GetContext(ctx, r.ext(ctx), c.dst, c.query, c.args...); err != nil {
			return model.DashboardSummary{}, errors.Wrap(err, "dashboard count")
		}
	}

	var fines decimal.Decimal
	if err := sqlx.GetContext(ctx, r.ext(ctx), &fines,
		`select coalesce(sum(fine_amount), 0) from loans`); err != nil {
		return model.DashboardSummary{}, errors.Wrap(err, "dashboard fines")
	}
	s.TotalFines = fines

	recentQuery, recentArgs, err := qb.Select(bookColumns...).
		From(booksTableName).
		OrderBy("id desc").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return model.DashboardSummary{}, err
	}
	if err := sqlx.SelectContext(ctx, r.ext(ctx), &s.RecentBooks, recentQuery, recentArgs...); err != nil {
		return model.DashboardSummary{}, errors.Wrap(err, "dashboard recent books")
	}

	topQuery, topArgs, err := qb.Select("b.id as book_id", "b.title", "b.author", "count(l.id) as loan_count").
		From(booksTableName+" b").
		Join(fmt.Sprintf("%s l on l.book_id = b.id", loansTableName)).
		GroupBy("b.id", "b.title", "b.author").
		OrderBy("count(l.id) desc").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return model.DashboardSummary{}, err
	}
	if err := sqlx.SelectContext(ctx, r.ext(ctx), &s.MostBorrowed, topQuery, topArgs...); err != nil {
		return model.DashboardSummary{}, errors.Wrap(err, "dashboard most borrowed")
	}

	return s, nil
}
