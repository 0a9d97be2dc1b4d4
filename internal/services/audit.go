package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/vishnuvarthan48/biomedical-cms/internal/metrics"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/repositories"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

// AuditRecorder writes audit_logs rows after a mutation has committed. A
// failed write is logged and swallowed; the mutation already happened.
type AuditRecorder struct {
	repo repositories.AuditLogRepository
}

func NewAuditRecorder(repo repositories.AuditLogRepository) *AuditRecorder {
	return &AuditRecorder{repo: repo}
}

func (a *AuditRecorder) Record(
	ctx context.Context,
	caller models.Caller,
	action models.AuditAction,
	targetType models.AuditTargetType,
	targetID any,
	details any,
) {
	metrics.RecordMutationsTotal.WithLabelValues(string(targetType), string(action)).Inc()
	if a == nil || a.repo == nil {
		return
	}

	var detailsJSON json.RawMessage
	if details != nil {
		detailsJSON, _ = json.Marshal(details)
	}
	err := a.repo.Create(ctx, &models.AuditLog{
		ID:         uuid.New(),
		TenantID:   caller.TenantID,
		UserID:     caller.UserID,
		Action:     action,
		TargetID:   fmt.Sprint(targetID),
		TargetType: targetType,
		Details:    detailsJSON,
	})
	if err != nil {
		utils.Logger.WithError(err).
			WithField("target_type", targetType).
			WithField("target_id", targetID).
			Warn("Failed to write audit log")
	}
}
