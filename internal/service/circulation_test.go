package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/libsys/backend/internal/errs"
	"github.com/libsys/backend/internal/model"
	"github.com/libsys/backend/internal/service"

	repo_mocks "github.com/libsys/backend/internal/repository/mocks"
	service_mocks "github.com/libsys/backend/internal/service/mocks"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type circMocks struct {
	repo  *repo_mocks.MockRepository
	tx    *service_mocks.MockTxManager
	cache *service_mocks.MockCatalogCache
	queue *service_mocks.MockEnqueuer
}

func newTestService(t *testing.T) (*service.Service, circMocks) {
	t.Helper()
	c := gomock.NewController(t)
	m := circMocks{
		repo:  repo_mocks.NewMockRepository(c),
		tx:    service_mocks.NewMockTxManager(c),
		cache: service_mocks.NewMockCatalogCache(c),
		queue: service_mocks.NewMockEnqueuer(c),
	}
	svc := service.NewService(m.repo, m.tx, m.cache, m.queue,
		service.CirculationConfig{
			LoanDurationDays: 14,
			MaxActiveLoans:   3,
			DailyFine:        decimal.RequireFromString("2.00"),
		},
		zap.NewExample().Named("test"),
		service.WithNow(func() time.Time { return testNow }),
	)
	return svc, m
}

// expectTx makes the transaction mock run the callback against the same ctx,
// the way the real manager does with an open tx in the context.
func expectTx(m circMocks) {
	m.tx.EXPECT().
		Transaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func TestService_CreateLoan(t *testing.T) {
	t.Parallel()

	const (
		userID = 10
		bookID = 42
	)
	activeUser := model.User{ID: userID, Name: "Lena", IsActive: true}

	tests := []struct {
		name         string
		mockBehavior func(m circMocks)
		wantErr      error
	}{
		{
			name: "ok",
			mockBehavior: func(m circMocks) {
				m.repo.EXPECT().GetUser(gomock.Any(), userID).Return(activeUser, nil)
				m.repo.EXPECT().CountActiveLoans(gomock.Any(), userID).Return(1, nil)
				m.repo.EXPECT().HasOverdueLoans(gomock.Any(), userID, testNow).Return(false, nil)
				expectTx(m)
				m.repo.EXPECT().GetBookForUpdate(gomock.Any(), bookID).
					Return(model.Book{ID: bookID, AvailableCopies: 2}, nil)
				m.repo.EXPECT().CreateLoan(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, loan model.Loan) (model.Loan, error) {
						require.Equal(t, userID, loan.UserID)
						require.Equal(t, model.LoanStatusActive, loan.Status)
						require.Equal(t, testNow.Add(14*24*time.Hour), loan.ExpectedReturnDate)
						loan.ID = 7
						return loan, nil
					})
				m.repo.EXPECT().AddAvailableCopies(gomock.Any(), bookID, -1).Return(nil)
				m.cache.EXPECT().InvalidateCatalog(gomock.Any()).Return(nil)
				m.queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "user not found",
			mockBehavior: func(m circMocks) {
				m.repo.EXPECT().GetUser(gomock.Any(), userID).Return(model.User{}, errs.ErrUserNotFound)
			},
			wantErr: errs.ErrUserNotFound,
		},
		{
			name: "inactive user",
			mockBehavior: func(m circMocks) {
				m.repo.EXPECT().GetUser(gomock.Any(), userID).
					Return(model.User{ID: userID, IsActive: false}, nil)
			},
			wantErr: errs.ErrUserInactive,
		},
		{
			name: "loan limit reached",
			mockBehavior: func(m circMocks) {
				m.repo.EXPECT().GetUser(gomock.Any(), userID).Return(activeUser, nil)
				m.repo.EXPECT().CountActiveLoans(gomock.Any(), userID).Return(3, nil)
			},
			wantErr: errs.ErrLoanLimit,
		},
		{
			// the book row must stay untouched: no lock is taken for a
			// request that fails the overdue check
			name: "outstanding overdue",
			mockBehavior: func(m circMocks) {
				m.repo.EXPECT().GetUser(gomock.Any(), userID).Return(activeUser, nil)
				m.repo.EXPECT().CountActiveLoans(gomock.Any(), userID).Return(0, nil)
				m.repo.EXPECT().HasOverdueLoans(gomock.Any(), userID, testNow).Return(true, nil)
			},
			wantErr: errs.ErrOutstandingOverdue,
		},
		{
			name: "out of stock",
			mockBehavior: func(m circMocks) {
				m.repo.EXPECT().GetUser(gomock.Any(), userID).Return(activeUser, nil)
				m.repo.EXPECT().CountActiveLoans(gomock.Any(), userID).Return(0, nil)
				m.repo.EXPECT().HasOverdueLoans(gomock.Any(), userID, testNow).Return(false, nil)
				expectTx(m)
				m.repo.EXPECT().GetBookForUpdate(gomock.Any(), bookID).
					Return(model.Book{ID: bookID, AvailableCopies: 0}, nil)
			},
			wantErr: errs.ErrOutOfStock,
		},
		{
			// rollback path: no cache purge, no event
			name: "insert fails",
			mockBehavior: func(m circMocks) {
				m.repo.EXPECT().GetUser(gomock.Any(), userID).Return(activeUser, nil)
				m.repo.EXPECT().CountActiveLoans(gomock.Any(), userID).Return(0, nil)
				m.repo.EXPECT().HasOverdueLoans(gomock.Any(), userID, testNow).Return(false, nil)
				expectTx(m)
				m.repo.EXPECT().GetBookForUpdate(gomock.Any(), bookID).
					Return(model.Book{ID: bookID, AvailableCopies: 1}, nil)
				m.repo.EXPECT().CreateLoan(gomock.Any(), gomock.Any()).
					Return(model.Loan{}, errors.New("db internal"))
			},
			wantErr: errors.New("db internal"),
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, m := newTestService(t)
			tt.mockBehavior(m)

			loan, err := svc.CreateLoan(context.Background(), userID, bookID)
			if tt.wantErr != nil {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.wantErr.Error())
				return
			}
			require.NoError(t, err)
			require.Equal(t, 7, loan.ID)
			require.Equal(t, model.LoanStatusActive, loan.Status)
		})
	}
}

func TestService_ReturnLoan(t *testing.T) {
	t.Parallel()

	const (
		loanID = 7
		userID = 10
		bookID = 42
	)

	activeLoan := func(expected time.Time) model.Loan {
		return model.Loan{
			ID:                 loanID,
			UserID:             userID,
			BookID:             bookID,
			LoanDate:           expected.Add(-14 * 24 * time.Hour),
			ExpectedReturnDate: expected,
			Status:             model.LoanStatusActive,
			FineAmount:         decimal.Zero,
		}
	}

	tests := []struct {
		name         string
		actingUserID int
		mockBehavior func(m circMocks)
		want         model.ReturnLoanResponse
		wantErr      error
	}{
		{
			name:         "on time, no fine",
			actingUserID: userID,
			mockBehavior: func(m circMocks) {
				expectTx(m)
				m.repo.EXPECT().GetLoanForUpdate(gomock.Any(), loanID).
					Return(activeLoan(testNow.Add(24*time.Hour)), nil)
				m.repo.EXPECT().GetBookForUpdate(gomock.Any(), bookID).
					Return(model.Book{ID: bookID}, nil)
				m.repo.EXPECT().UpdateLoanReturn(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, loan model.Loan) error {
						require.Equal(t, model.LoanStatusReturned, loan.Status)
						require.NotNil(t, loan.ReturnDate)
						require.True(t, loan.FineAmount.IsZero())
						return nil
					})
				m.repo.EXPECT().AddAvailableCopies(gomock.Any(), bookID, 1).Return(nil)
				m.cache.EXPECT().InvalidateCatalog(gomock.Any()).Return(nil)
				m.queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil)
			},
			want: model.ReturnLoanResponse{
				Message:     "book returned",
				LoanID:      loanID,
				FineAmount:  "R$ 0.00",
				DaysOverdue: 0,
			},
		},
		{
			name:         "five days overdue",
			actingUserID: userID,
			mockBehavior: func(m circMocks) {
				expectTx(m)
				m.repo.EXPECT().GetLoanForUpdate(gomock.Any(), loanID).
					Return(activeLoan(testNow.Add(-5*24*time.Hour)), nil)
				m.repo.EXPECT().GetBookForUpdate(gomock.Any(), bookID).
					Return(model.Book{ID: bookID}, nil)
				m.repo.EXPECT().UpdateLoanReturn(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, loan model.Loan) error {
						require.Equal(t, "10.00", loan.FineAmount.StringFixed(2))
						return nil
					})
				m.repo.EXPECT().AddAvailableCopies(gomock.Any(), bookID, 1).Return(nil)
				m.cache.EXPECT().InvalidateCatalog(gomock.Any()).Return(nil)
				m.queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil)
			},
			want: model.ReturnLoanResponse{
				Message:     "book returned",
				LoanID:      loanID,
				FineAmount:  "R$ 10.00",
				DaysOverdue: 5,
			},
		},
		{
			// 36h late counts as one full day
			name:         "partial day overdue",
			actingUserID: userID,
			mockBehavior: func(m circMocks) {
				expectTx(m)
				m.repo.EXPECT().GetLoanForUpdate(gomock.Any(), loanID).
					Return(activeLoan(testNow.Add(-36*time.Hour)), nil)
				m.repo.EXPECT().GetBookForUpdate(gomock.Any(), bookID).
					Return(model.Book{ID: bookID}, nil)
				m.repo.EXPECT().UpdateLoanReturn(gomock.Any(), gomock.Any()).Return(nil)
				m.repo.EXPECT().AddAvailableCopies(gomock.Any(), bookID, 1).Return(nil)
				m.cache.EXPECT().InvalidateCatalog(gomock.Any()).Return(nil)
				m.queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil)
			},
			want: model.ReturnLoanResponse{
				Message:     "book returned",
				LoanID:      loanID,
				FineAmount:  "R$ 2.00",
				DaysOverdue: 1,
			},
		},
		{
			// second return is rejected before the ownership check and
			// must not touch the copy count
			name:         "already returned",
			actingUserID: 99,
			mockBehavior: func(m circMocks) {
				expectTx(m)
				returned := activeLoan(testNow.Add(24 * time.Hour))
				returned.Status = model.LoanStatusReturned
				m.repo.EXPECT().GetLoanForUpdate(gomock.Any(), loanID).Return(returned, nil)
			},
			wantErr: errs.ErrAlreadyReturned,
		},
		{
			name:         "loan belongs to another user",
			actingUserID: 99,
			mockBehavior: func(m circMocks) {
				expectTx(m)
				m.repo.EXPECT().GetLoanForUpdate(gomock.Any(), loanID).
					Return(activeLoan(testNow.Add(24*time.Hour)), nil)
			},
			wantErr: errs.ErrForbidden,
		},
		{
			name:         "book deleted, return still succeeds",
			actingUserID: userID,
			mockBehavior: func(m circMocks) {
				expectTx(m)
				m.repo.EXPECT().GetLoanForUpdate(gomock.Any(), loanID).
					Return(activeLoan(testNow.Add(24*time.Hour)), nil)
				m.repo.EXPECT().GetBookForUpdate(gomock.Any(), bookID).
					Return(model.Book{}, errs.ErrBookNotFound)
				m.repo.EXPECT().UpdateLoanReturn(gomock.Any(), gomock.Any()).Return(nil)
				m.cache.EXPECT().InvalidateCatalog(gomock.Any()).Return(nil)
				m.queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil)
			},
			want: model.ReturnLoanResponse{
				Message:     "book returned",
				LoanID:      loanID,
				FineAmount:  "R$ 0.00",
				DaysOverdue: 0,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, m := newTestService(t)
			tt.mockBehavior(m)

			resp, err := svc.ReturnLoan(context.Background(), loanID, tt.actingUserID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, resp)
		})
	}
}

// The return timestamp must be read after both row locks are acquired: a
// return that spends time blocked on a contended book row is fined for that
// wait, not for the moment the request arrived.
func TestService_ReturnLoan_FineIncludesLockWait(t *testing.T) {
	t.Parallel()
	const (
		loanID = 7
		userID = 10
		bookID = 42
	)

	c := gomock.NewController(t)
	m := circMocks{
		repo:  repo_mocks.NewMockRepository(c),
		tx:    service_mocks.NewMockTxManager(c),
		cache: service_mocks.NewMockCatalogCache(c),
		queue: service_mocks.NewMockEnqueuer(c),
	}
	current := testNow
	svc := service.NewService(m.repo, m.tx, m.cache, m.queue,
		service.CirculationConfig{
			LoanDurationDays: 14,
			MaxActiveLoans:   3,
			DailyFine:        decimal.RequireFromString("2.00"),
		},
		zap.NewExample().Named("test"),
		service.WithNow(func() time.Time { return current }),
	)

	expectTx(m)
	m.repo.EXPECT().GetLoanForUpdate(gomock.Any(), loanID).
		Return(model.Loan{
			ID:                 loanID,
			UserID:             userID,
			BookID:             bookID,
			ExpectedReturnDate: testNow,
			Status:             model.LoanStatusActive,
			FineAmount:         decimal.Zero,
		}, nil)
	m.repo.EXPECT().GetBookForUpdate(gomock.Any(), bookID).
		DoAndReturn(func(context.Context, int) (model.Book, error) {
			// the book lock was contended; three days pass before it is granted
			current = current.Add(3 * 24 * time.Hour)
			return model.Book{ID: bookID}, nil
		})
	m.repo.EXPECT().UpdateLoanReturn(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, loan model.Loan) error {
			require.Equal(t, "6.00", loan.FineAmount.StringFixed(2))
			return nil
		})
	m.repo.EXPECT().AddAvailableCopies(gomock.Any(), bookID, 1).Return(nil)
	m.cache.EXPECT().InvalidateCatalog(gomock.Any()).Return(nil)
	m.queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil)

	resp, err := svc.ReturnLoan(context.Background(), loanID, userID)
	require.NoError(t, err)
	require.Equal(t, 3, resp.DaysOverdue)
	require.Equal(t, "R$ 6.00", resp.FineAmount)
}

func TestService_DashboardSummary(t *testing.T) {
	t.Parallel()
	svc, m := newTestService(t)

	want := model.DashboardSummary{
		TotalBooks:   120,
		TotalUsers:   40,
		ActiveLoans:  9,
		OverdueLoans: 2,
		TotalFines:   decimal.NewFromInt(42),
		RecentBooks:  []model.Book{{ID: 120, Title: "Latest"}},
		MostBorrowed: []model.MostBorrowedBook{{BookID: 1, Title: "Popular", LoanCount: 17}},
	}
	m.repo.EXPECT().DashboardSummary(gomock.Any(), testNow, 5).Return(want, nil)

	got, err := svc.DashboardSummary(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestService_ExtendLoan(t *testing.T) {
	t.Parallel()

	const (
		loanID = 7
		userID = 10
	)

	tests := []struct {
		name         string
		actingUserID int
		mockBehavior func(m circMocks)
		wantExpected time.Time
		wantErr      error
	}{
		{
			name:         "ok",
			actingUserID: userID,
			mockBehavior: func(m circMocks) {
				expectTx(m)
				expected := testNow.Add(2 * 24 * time.Hour)
				m.repo.EXPECT().GetLoanForUpdate(gomock.Any(), loanID).
					Return(model.Loan{
						ID:                 loanID,
						UserID:             userID,
						ExpectedReturnDate: expected,
						Status:             model.LoanStatusActive,
					}, nil)
				m.repo.EXPECT().
					UpdateLoanExpectedReturn(gomock.Any(), loanID, expected.Add(14*24*time.Hour)).
					Return(nil)
				m.queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantExpected: testNow.Add(16 * 24 * time.Hour),
		},
		{
			name:         "overdue loan cannot be renewed",
			actingUserID: userID,
			mockBehavior: func(m circMocks) {
				expectTx(m)
				m.repo.EXPECT().GetLoanForUpdate(gomock.Any(), loanID).
					Return(model.Loan{
						ID:                 loanID,
						UserID:             userID,
						ExpectedReturnDate: testNow.Add(-time.Hour),
						Status:             model.LoanStatusActive,
					}, nil)
			},
			wantErr: errs.ErrRenewOverdue,
		},
		{
			name:         "already returned",
			actingUserID: userID,
			mockBehavior: func(m circMocks) {
				expectTx(m)
				m.repo.EXPECT().GetLoanForUpdate(gomock.Any(), loanID).
					Return(model.Loan{ID: loanID, UserID: userID, Status: model.LoanStatusReturned}, nil)
			},
			wantErr: errs.ErrAlreadyReturned,
		},
		{
			name:         "loan belongs to another user",
			actingUserID: 99,
			mockBehavior: func(m circMocks) {
				expectTx(m)
				m.repo.EXPECT().GetLoanForUpdate(gomock.Any(), loanID).
					Return(model.Loan{
						ID:                 loanID,
						UserID:             userID,
						ExpectedReturnDate: testNow.Add(24 * time.Hour),
						Status:             model.LoanStatusActive,
					}, nil)
			},
			wantErr: errs.ErrForbidden,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, m := newTestService(t)
			tt.mockBehavior(m)

			loan, err := svc.ExtendLoan(context.Background(), loanID, tt.actingUserID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantExpected, loan.ExpectedReturnDate)
		})
	}
}

func TestService_ListBooks(t *testing.T) {
	t.Parallel()

	q := model.BookQuery{Title: "go", Page: 0, Size: 10}
	listing := model.ListBooks{
		Paging: model.Paging{Page: 0, PageSize: 10, TotalElements: 1},
		Items:  []model.Book{{ID: 1, Title: "The Go Programming Language", AvailableCopies: 3}},
	}

	t.Run("cache hit skips repository", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		m.cache.EXPECT().GetListing(gomock.Any(), q).Return(listing, true)

		got, err := svc.ListBooks(context.Background(), q)
		require.NoError(t, err)
		require.Equal(t, listing, got)
	})

	t.Run("cache miss populates cache", func(t *testing.T) {
		t.Parallel()
		svc, m := newTestService(t)
		m.cache.EXPECT().GetListing(gomock.Any(), q).Return(model.ListBooks{}, false)
		m.repo.EXPECT().ListBooks(gomock.Any(), q).Return(listing, nil)
		m.cache.EXPECT().SetListing(gomock.Any(), q, listing)

		got, err := svc.ListBooks(context.Background(), q)
		require.NoError(t, err)
		require.Equal(t, listing, got)
	})
}

func TestService_ListLoans(t *testing.T) {
	t.Parallel()
	svc, m := newTestService(t)

	filter := model.LoanFilter{UserID: 10}
	m.repo.EXPECT().ListLoans(gomock.Any(), filter, testNow).Return(model.ListLoans{
		Paging: model.Paging{TotalElements: 2},
		Items: []model.Loan{
			{ID: 1, Status: model.LoanStatusActive, ExpectedReturnDate: testNow.Add(24 * time.Hour)},
			{ID: 2, Status: model.LoanStatusActive, ExpectedReturnDate: testNow.Add(-24 * time.Hour)},
		},
	}, nil)

	list, err := svc.ListLoans(context.Background(), filter)
	require.NoError(t, err)
	require.Equal(t, model.LoanStatusActive, list.Items[0].Status)
	require.Equal(t, model.LoanStatusOverdue, list.Items[1].Status)
}
