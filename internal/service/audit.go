package service

import (
	"context"
	"fmt"

	"github.com/libsys/backend/internal/model"
)

// RecordEvent persists a consumed circulation event into the audit log.
func (s *Service) RecordEvent(ctx context.Context, ev model.CirculationEvent) error {
	actor := ev.ActorUserID
	loanID := ev.LoanID
	return s.repo.CreateAuditRecord(ctx, model.AuditRecord{
		ActorUserID: &actor,
		Action:      ev.Action,
		EntityType:  "loan",
		EntityID:    &loanID,
		Level:       "info",
		Message:     fmt.Sprintf("%s book=%d", ev.Action, ev.BookID),
		Metadata:    ev.Metadata,
	})
}
