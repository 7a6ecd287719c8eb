package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/libsys/backend/internal/model"
)

func TestLoan_EffectiveStatus(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		loan model.Loan
		want model.LoanStatus
	}{
		{
			name: "active before due date",
			loan: model.Loan{Status: model.LoanStatusActive, ExpectedReturnDate: now.Add(time.Hour)},
			want: model.LoanStatusActive,
		},
		{
			name: "active exactly at due date",
			loan: model.Loan{Status: model.LoanStatusActive, ExpectedReturnDate: now},
			want: model.LoanStatusActive,
		},
		{
			name: "active past due date",
			loan: model.Loan{Status: model.LoanStatusActive, ExpectedReturnDate: now.Add(-time.Minute)},
			want: model.LoanStatusOverdue,
		},
		{
			name: "returned stays returned even past due date",
			loan: model.Loan{Status: model.LoanStatusReturned, ExpectedReturnDate: now.Add(-time.Hour)},
			want: model.LoanStatusReturned,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.loan.EffectiveStatus(now))
		})
	}
}

func TestJSONMap_Scan(t *testing.T) {
	t.Parallel()

	var m model.JSONMap
	require.NoError(t, m.Scan([]byte(`{"daysOverdue":3}`)))
	require.Equal(t, float64(3), m["daysOverdue"])

	require.NoError(t, m.Scan(nil))
	require.Nil(t, m)

	require.Error(t, m.Scan(42))
}
