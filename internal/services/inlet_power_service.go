package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vishnuvarthan48/biomedical-cms/internal/constants"
	"github.com/vishnuvarthan48/biomedical-cms/internal/dtos"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/repositories"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

const inletPowerNotFound = "Inlet power not found with ID: %v"

type InletPowerService struct {
	repo    repositories.InletPowerRepository
	manager *ScopedRecordManager[*models.InletPower, int64]
}

func NewInletPowerService(repo repositories.InletPowerRepository, tx repositories.TxRunner, audit *AuditRecorder) *InletPowerService {
	kind := RecordKind[*models.InletPower, int64]{
		Label:         "inlet power",
		TargetType:    models.TargetInletPower,
		DuplicateCode: constants.DupInletPowerCode,
		Repo:          repo,
		DedupKey:      func(p *models.InletPower) string { return normKey(p.Code) },
		DuplicateMessage: func(p *models.InletPower) string {
			return fmt.Sprintf("Inlet power code '%s' already exists", p.Code)
		},
	}
	return &InletPowerService{repo: repo, manager: NewScopedRecordManager(kind, tx, audit)}
}

// Codes are stored upper-cased: "ac" and "AC" are the same inlet power.
func normCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *InletPowerService) Create(ctx context.Context, caller models.Caller, req dtos.CreateInletPowerRequest) (*models.InletPower, error) {
	return s.manager.Create(ctx, caller, &models.InletPower{
		Code:      normCode(req.Code),
		Name:      strings.TrimSpace(req.Name),
		SortOrder: utils.Val(req.SortOrder),
		Tracked: models.Tracked{
			TenantID: caller.TenantID,
			Status:   models.InitialStatus(req.IsActive),
		},
	})
}

func (s *InletPowerService) Update(ctx context.Context, caller models.Caller, req dtos.UpdateInletPowerRequest) (*models.InletPower, error) {
	return s.manager.Update(ctx, caller, req.ID, func(p *models.InletPower) error {
		p.Code = normCode(req.Code)
		p.Name = strings.TrimSpace(req.Name)
		if req.SortOrder != nil {
			p.SortOrder = *req.SortOrder
		}
		return nil
	})
}

func (s *InletPowerService) Delete(ctx context.Context, caller models.Caller, id int64) error {
	return s.manager.Delete(ctx, caller, id)
}

func (s *InletPowerService) ToggleStatus(ctx context.Context, caller models.Caller, req dtos.ToggleStatusRequest) (*models.InletPower, error) {
	return s.manager.ToggleStatus(ctx, caller, req.ID, req.IsActive)
}

func (s *InletPowerService) GetAll(ctx context.Context, caller models.Caller, expand bool) (any, error) {
	if expand {
		list, err := s.repo.ListExpanded(ctx, caller.TenantID)
		if err != nil {
			return nil, utils.InternalError("Failed to list inlet power", err)
		}
		return list, nil
	}
	return s.list(ctx, caller, repositories.ListVisible)
}

func (s *InletPowerService) GetAllActive(ctx context.Context, caller models.Caller) ([]*models.InletPower, error) {
	return s.list(ctx, caller, repositories.ListActive)
}

func (s *InletPowerService) list(ctx context.Context, caller models.Caller, filter repositories.ListFilter) ([]*models.InletPower, error) {
	list, err := s.repo.List(ctx, caller.TenantID, filter)
	if err != nil {
		return nil, utils.InternalError("Failed to list inlet power", err)
	}
	return list, nil
}

func (s *InletPowerService) GetByID(ctx context.Context, caller models.Caller, id int64) (*models.InletPower, error) {
	return s.manager.Get(ctx, caller, id)
}
