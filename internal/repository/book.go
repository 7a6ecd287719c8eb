package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/libsys/backend/internal/errs"
	"github.com/libsys/backend/internal/model"
)

var bookColumns = []string{"id", "title", "author", "isbn", "total_copies", "available_copies"}

func (r *repository) GetBook(ctx context.Context, id int) (model.Book, error) {
	return r.getBook(ctx, id, false)
}

// GetBookForUpdate acquires the exclusive row lock on the book; the lock is
// held until the ambient transaction commits or rolls back.
func (r *repository) GetBookForUpdate(ctx context.Context, id int) (model.Book, error) {
	return r.getBook(ctx, id, true)
}

func (r *repository) getBook(ctx context.Context, id int, forUpdate bool) (model.Book, error) {
	q := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id})
	if forUpdate {
		q = q.Suffix("for update")
	}
	query, args, err := q.ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := sqlx.GetContext(ctx, r.ext(ctx), &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrBookNotFound
		}
		return model.Book{}, errors.Wrap(err, "get book")
	}
	return book, nil
}

// AddAvailableCopies shifts the copy count; callers hold the row lock.
func (r *repository) AddAvailableCopies(ctx context.Context, bookID, delta int) error {
	q := `
update books
	set available_copies = available_copies + $2
where id = $1`
	res, err := r.ext(ctx).ExecContext(ctx, q, bookID, delta)
	if err != nil {
		return errors.Wrap(err, "update available_copies")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.ErrBookNotFound
	}
	return nil
}

func (r *repository) ListBooks(ctx context.Context, bq model.BookQuery) (model.ListBooks, error) {
	page, size := normalizePaging(bq.Page, bq.Size)
	q := qb.Select(bookColumns...).
		From(booksTableName).
		OrderBy("id").
		Limit(uint64(size)).
		Offset(uint64((page - 1) * size))

	if bq.Title != "" {
		q = q.Where(sq.ILike{"title": "%" + bq.Title + "%"})
	}
	if bq.Author != "" {
		q = q.Where(sq.ILike{"author": "%" + bq.Author + "%"})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.ListBooks{}, err
	}

	var books []model.Book
	if err := sqlx.SelectContext(ctx, r.ext(ctx), &books, query, args...); err != nil {
		return model.ListBooks{}, errors.Wrap(err, "list books")
	}

	return model.ListBooks{
		Paging: model.Paging{
			Page:          page,
			PageSize:      size,
			TotalElements: len(books),
		},
		Items: books,
	}, nil
}
