package service

import (
	"context"

	"github.com/libsys/backend/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=deps.go -destination=mocks/mock.go -package=mocks

// TxManager runs fn inside a storage transaction; repository calls made with
// the derived context join it. fn error means rollback.
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type CatalogCache interface {
	GetListing(ctx context.Context, q model.BookQuery) (model.ListBooks, bool)
	SetListing(ctx context.Context, q model.BookQuery, list model.ListBooks)
	InvalidateCatalog(ctx context.Context) error
}

type Enqueuer interface {
	Enqueue(topic string, v any) error
}

type Notifier interface {
	Send(ctx context.Context, n model.Notification) error
}
