package repositories

import (
	"context"

	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
)

type AuditLogRepository interface {
	Create(ctx context.Context, logEntry *models.AuditLog) error
}

type auditLogRepo struct {
	db DB
}

func NewAuditLogRepository(db DB) AuditLogRepository {
	return &auditLogRepo{db: db}
}

func (r *auditLogRepo) Create(ctx context.Context, logEntry *models.AuditLog) error {
	q := `
        INSERT INTO audit_logs (
            id, tenant_id, user_id, action, target_id, target_type, details, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
    `
	_, err := Conn(ctx, r.db).Exec(ctx, q,
		logEntry.ID,
		logEntry.TenantID,
		logEntry.UserID,
		logEntry.Action,
		logEntry.TargetID,
		logEntry.TargetType,
		logEntry.Details,
	)
	return err
}
