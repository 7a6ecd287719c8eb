package handler

import (
	"context"

	"github.com/libsys/backend/internal/model"
	"github.com/libsys/backend/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go -package=mocks

type CirculationService interface {
	CreateLoan(ctx context.Context, userID, bookID int) (model.Loan, error)
	ReturnLoan(ctx context.Context, loanID, actingUserID int) (model.ReturnLoanResponse, error)
	ExtendLoan(ctx context.Context, loanID, actingUserID int) (model.Loan, error)
	ListLoans(ctx context.Context, filter model.LoanFilter) (model.ListLoans, error)
	ListBooks(ctx context.Context, q model.BookQuery) (model.ListBooks, error)
	DashboardSummary(ctx context.Context) (model.DashboardSummary, error)
}

type NotificationService interface {
	Dispatch(ctx context.Context, channels []string, limit int) (model.DispatchResult, error)
}

var _ CirculationService = (*service.Service)(nil)
var _ NotificationService = (*service.NotificationService)(nil)
