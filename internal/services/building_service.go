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

type BuildingService struct {
	repo    repositories.BuildingRepository
	manager *ScopedRecordManager[*models.Building, int64]
}

func NewBuildingService(
	repo repositories.BuildingRepository,
	tx repositories.TxRunner,
	audit *AuditRecorder,
) *BuildingService {
	msgs := defaultMessages("building")
	msgs.UpdateDeleted = "Cannot update a DELETED building. Restore it first."
	msgs.ToggleToDeleted = "Use DELETE /delete/{id} to soft-delete. Toggle only supports ACTIVE/INACTIVE."

	kind := RecordKind[*models.Building, int64]{
		Label:         "building",
		TargetType:    models.TargetBuilding,
		DuplicateCode: constants.DupBuildingCode,
		Messages:      msgs,
		Repo:          repo,
		DedupKey: func(b *models.Building) string {
			return fmt.Sprintf("%d|%s", b.OrgID, normKey(utils.Val(b.BuildingCode)))
		},
		DuplicateMessage: func(b *models.Building) string {
			return fmt.Sprintf("Building code '%s' already exists in this organization", utils.Val(b.BuildingCode))
		},
	}
	return &BuildingService{repo: repo, manager: NewScopedRecordManager(kind, tx, audit)}
}

func (s *BuildingService) Create(ctx context.Context, caller models.Caller, req dtos.CreateBuildingRequest) (*models.Building, error) {
	b := &models.Building{
		OrgID:        req.OrgID,
		BuildingName: strings.TrimSpace(req.BuildingName),
		BuildingCode: utils.TrimPtr(req.BuildingCode),
		Description:  utils.TrimPtr(req.Description),
		Tracked: models.Tracked{
			TenantID: caller.TenantID,
			Status:   models.InitialStatus(req.IsActive),
		},
	}
	return s.manager.Create(ctx, caller, b)
}

func (s *BuildingService) Update(ctx context.Context, caller models.Caller, req dtos.UpdateBuildingRequest) (*models.Building, error) {
	return s.manager.Update(ctx, caller, req.BuildingID, func(b *models.Building) error {
		b.OrgID = req.OrgID
		b.BuildingName = strings.TrimSpace(req.BuildingName)
		b.BuildingCode = utils.TrimPtr(req.BuildingCode)
		b.Description = utils.TrimPtr(req.Description)
		return nil
	})
}

func (s *BuildingService) Delete(ctx context.Context, caller models.Caller, id int64) error {
	return s.manager.Delete(ctx, caller, id)
}

func (s *BuildingService) ToggleStatus(ctx context.Context, caller models.Caller, req dtos.ToggleStatusRequest) (*models.Building, error) {
	return s.manager.ToggleStatus(ctx, caller, req.ID, req.IsActive)
}

// GetAll lists the org's non-deleted buildings, by name.
func (s *BuildingService) GetAll(ctx context.Context, caller models.Caller, orgID int64, expand bool, page repositories.PageRequest) (any, error) {
	if err := CheckOrgAccess(caller, &orgID); err != nil {
		return nil, err
	}
	if expand {
		res, err := s.repo.ListExpanded(ctx, caller.TenantID, orgID, page)
		if err != nil {
			return nil, utils.InternalError("Failed to list buildings", err)
		}
		return dtos.NewPageResponse(res.Items, res.Total, page.Page, page.Size), nil
	}
	return s.list(ctx, caller, orgID, repositories.ListVisible, page)
}

func (s *BuildingService) GetAllActive(ctx context.Context, caller models.Caller, orgID int64, page repositories.PageRequest) (any, error) {
	if err := CheckOrgAccess(caller, &orgID); err != nil {
		return nil, err
	}
	return s.list(ctx, caller, orgID, repositories.ListActive, page)
}

func (s *BuildingService) list(ctx context.Context, caller models.Caller, orgID int64, filter repositories.ListFilter, page repositories.PageRequest) (any, error) {
	res, err := s.repo.List(ctx, caller.TenantID, orgID, filter, page)
	if err != nil {
		return nil, utils.InternalError("Failed to list buildings", err)
	}
	return dtos.NewPageResponse(res.Items, res.Total, page.Page, page.Size), nil
}

// GetByID returns the building in any status, DELETED included.
func (s *BuildingService) GetByID(ctx context.Context, caller models.Caller, id int64, expand bool) (any, error) {
	b, err := s.manager.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !expand {
		return b, nil
	}
	e, err := s.repo.GetExpandedByID(ctx, caller.TenantID, id)
	if err != nil {
		return nil, utils.InternalError("Failed to load building", err)
	}
	if e == nil {
		return nil, s.manager.notFoundError(id)
	}
	return e, nil
}
