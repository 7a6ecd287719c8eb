package service

import (
	"context"

	"github.com/libsys/backend/internal/model"
)

// dashboardTopN bounds the recent/most-borrowed lists on the dashboard.
const dashboardTopN = 5

func (s *Service) DashboardSummary(ctx context.Context) (model.DashboardSummary, error) {
	return s.repo.DashboardSummary(ctx, s.now().UTC(), dashboardTopN)
}
