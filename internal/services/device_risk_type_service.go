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

type DeviceRiskTypeService struct {
	repo    repositories.DeviceRiskTypeRepository
	manager *ScopedRecordManager[*models.DeviceRiskType, int64]
}

func NewDeviceRiskTypeService(repo repositories.DeviceRiskTypeRepository, tx repositories.TxRunner, audit *AuditRecorder) *DeviceRiskTypeService {
	kind := RecordKind[*models.DeviceRiskType, int64]{
		Label:         "device risk type",
		TargetType:    models.TargetDeviceRiskType,
		DuplicateCode: constants.DupRiskTypeCode,
		Repo:          repo,
		DedupKey:      func(d *models.DeviceRiskType) string { return normKey(d.Code) },
		DuplicateMessage: func(d *models.DeviceRiskType) string {
			return fmt.Sprintf("Device risk type code '%s' already exists", d.Code)
		},
	}
	return &DeviceRiskTypeService{repo: repo, manager: NewScopedRecordManager(kind, tx, audit)}
}

func (s *DeviceRiskTypeService) Create(ctx context.Context, caller models.Caller, req dtos.CreateDeviceRiskTypeRequest) (*models.DeviceRiskType, error) {
	return s.manager.Create(ctx, caller, &models.DeviceRiskType{
		Code:        normCode(req.Code),
		Name:        strings.TrimSpace(req.Name),
		Description: utils.TrimPtr(req.Description),
		SortOrder:   utils.Val(req.SortOrder),
		Tracked: models.Tracked{
			TenantID: caller.TenantID,
			Status:   models.InitialStatus(req.IsActive),
		},
	})
}

func (s *DeviceRiskTypeService) Update(ctx context.Context, caller models.Caller, req dtos.UpdateDeviceRiskTypeRequest) (*models.DeviceRiskType, error) {
	return s.manager.Update(ctx, caller, req.ID, func(d *models.DeviceRiskType) error {
		d.Code = normCode(req.Code)
		d.Name = strings.TrimSpace(req.Name)
		d.Description = utils.TrimPtr(req.Description)
		if req.SortOrder != nil {
			d.SortOrder = *req.SortOrder
		}
		return nil
	})
}

func (s *DeviceRiskTypeService) Delete(ctx context.Context, caller models.Caller, id int64) error {
	return s.manager.Delete(ctx, caller, id)
}

func (s *DeviceRiskTypeService) ToggleStatus(ctx context.Context, caller models.Caller, req dtos.ToggleStatusRequest) (*models.DeviceRiskType, error) {
	return s.manager.ToggleStatus(ctx, caller, req.ID, req.IsActive)
}

func (s *DeviceRiskTypeService) GetAll(ctx context.Context, caller models.Caller, activeOnly bool) ([]*models.DeviceRiskType, error) {
	filter := repositories.ListVisible
	if activeOnly {
		filter = repositories.ListActive
	}
	list, err := s.repo.List(ctx, caller.TenantID, filter)
	if err != nil {
		return nil, utils.InternalError("Failed to list device risk types", err)
	}
	return list, nil
}

func (s *DeviceRiskTypeService) GetByID(ctx context.Context, caller models.Caller, id int64) (*models.DeviceRiskType, error) {
	return s.manager.Get(ctx, caller, id)
}
