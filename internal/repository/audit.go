package repository

import (
	"context"

	"github.com/pkg/errors"

	"github.com/libsys/backend/internal/model"
)

func (r *repository) CreateAuditRecord(ctx context.Context, rec model.AuditRecord) error {
	query, args, err := qb.Insert(auditTableName).
		Columns("actor_user_id", "action", "entity_type", "entity_id", "level", "message", "metadata").
		Values(rec.ActorUserID, rec.Action, rec.EntityType, rec.EntityID, rec.Level, rec.Message, rec.Metadata).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.ext(ctx).ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "insert audit record")
	}
	return nil
}
