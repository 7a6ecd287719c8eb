package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePaging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name               string
		page, size         int
		wantPage, wantSize int
	}{
		{name: "defaults apply when omitted", page: 0, size: 0, wantPage: 1, wantSize: 10},
		{name: "explicit values kept", page: 2, size: 20, wantPage: 2, wantSize: 20},
		{name: "negative size falls back", page: 1, size: -5, wantPage: 1, wantSize: 10},
		{name: "oversized page capped to default", page: 3, size: 1000, wantPage: 3, wantSize: 10},
		{name: "negative page starts at first", page: -1, size: 50, wantPage: 1, wantSize: 50},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			page, size := normalizePaging(tt.page, tt.size)
			require.Equal(t, tt.wantPage, page)
			require.Equal(t, tt.wantSize, size)
		})
	}
}
