package services

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/vishnuvarthan48/biomedical-cms/internal/constants"
	"github.com/vishnuvarthan48/biomedical-cms/internal/dtos"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/repositories"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

const buildingNotFound = "Building not found: %v"

type FloorService struct {
	repo         repositories.FloorRepository
	buildingRepo repositories.BuildingRepository
	manager      *ScopedRecordManager[*models.Floor, int64]
}

func NewFloorService(
	repo repositories.FloorRepository,
	buildingRepo repositories.BuildingRepository,
	tx repositories.TxRunner,
	audit *AuditRecorder,
) *FloorService {
	msgs := defaultMessages("floor")
	msgs.NotFound = "Floor not found: %v"

	kind := RecordKind[*models.Floor, int64]{
		Label:         "floor",
		TargetType:    models.TargetFloor,
		DuplicateCode: constants.DupFloorNo,
		Messages:      msgs,
		Repo:          repo,
		DedupKey: func(f *models.Floor) string {
			return fmt.Sprintf("%d|%d", f.BuildingID, f.FloorNo)
		},
		DuplicateMessage: func(f *models.Floor) string {
			return fmt.Sprintf("Floor number %d already exists in this building", f.FloorNo)
		},
		ParentKey: func(f *models.Floor) any { return f.BuildingID },
		CheckParent: func(ctx context.Context, f *models.Floor) error {
			_, err := requireParent[*models.Building](ctx, buildingRepo, f.TenantID, f.BuildingID, buildingNotFound, "floor", "building")
			return err
		},
	}
	return &FloorService{repo: repo, buildingRepo: buildingRepo, manager: NewScopedRecordManager(kind, tx, audit)}
}

func (s *FloorService) newFloor(caller models.Caller, req dtos.CreateFloorRequest) *models.Floor {
	return &models.Floor{
		OrgID:       req.OrgID,
		BuildingID:  req.BuildingID,
		FloorNo:     utils.Val(req.FloorNo),
		FloorName:   utils.TrimPtr(req.FloorName),
		Description: utils.TrimPtr(req.Description),
		Tracked: models.Tracked{
			TenantID: caller.TenantID,
			Status:   models.InitialStatus(req.IsActive),
		},
	}
}

func (s *FloorService) Create(ctx context.Context, caller models.Caller, req dtos.CreateFloorRequest) (*models.Floor, error) {
	return s.manager.Create(ctx, caller, s.newFloor(caller, req))
}

// CreateBulk stores every floor or none.
func (s *FloorService) CreateBulk(ctx context.Context, caller models.Caller, req dtos.BulkCreateFloorsRequest) ([]*models.Floor, error) {
	floors := lo.Map(req.Floors, func(r dtos.CreateFloorRequest, _ int) *models.Floor {
		return s.newFloor(caller, r)
	})
	return s.manager.CreateMany(ctx, caller, floors)
}

func (s *FloorService) Update(ctx context.Context, caller models.Caller, req dtos.UpdateFloorRequest) (*models.Floor, error) {
	return s.manager.Update(ctx, caller, req.FloorID, func(f *models.Floor) error {
		f.OrgID = req.OrgID
		f.BuildingID = req.BuildingID
		f.FloorNo = utils.Val(req.FloorNo)
		f.FloorName = utils.TrimPtr(req.FloorName)
		f.Description = utils.TrimPtr(req.Description)
		return nil
	})
}

func (s *FloorService) Delete(ctx context.Context, caller models.Caller, id int64) error {
	return s.manager.Delete(ctx, caller, id)
}

func (s *FloorService) ToggleStatus(ctx context.Context, caller models.Caller, req dtos.ToggleStatusRequest) (*models.Floor, error) {
	return s.manager.ToggleStatus(ctx, caller, req.ID, req.IsActive)
}

func (s *FloorService) GetAll(ctx context.Context, caller models.Caller, buildingID int64, expand bool, page repositories.PageRequest) (any, error) {
	if err := guardParentOrg[*models.Building](ctx, s.buildingRepo, caller, buildingID, buildingNotFound); err != nil {
		return nil, err
	}
	if expand {
		res, err := s.repo.ListExpandedByBuilding(ctx, caller.TenantID, buildingID, page)
		if err != nil {
			return nil, utils.InternalError("Failed to list floors", err)
		}
		return dtos.NewPageResponse(res.Items, res.Total, page.Page, page.Size), nil
	}
	return s.list(ctx, caller, buildingID, repositories.ListVisible, page)
}

func (s *FloorService) GetAllActive(ctx context.Context, caller models.Caller, buildingID int64, page repositories.PageRequest) (any, error) {
	if err := guardParentOrg[*models.Building](ctx, s.buildingRepo, caller, buildingID, buildingNotFound); err != nil {
		return nil, err
	}
	return s.list(ctx, caller, buildingID, repositories.ListActive, page)
}

func (s *FloorService) list(ctx context.Context, caller models.Caller, buildingID int64, filter repositories.ListFilter, page repositories.PageRequest) (any, error) {
	res, err := s.repo.ListByBuilding(ctx, caller.TenantID, buildingID, filter, page)
	if err != nil {
		return nil, utils.InternalError("Failed to list floors", err)
	}
	return dtos.NewPageResponse(res.Items, res.Total, page.Page, page.Size), nil
}

func (s *FloorService) GetByID(ctx context.Context, caller models.Caller, id int64, expand bool) (any, error) {
	f, err := s.manager.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !expand {
		return f, nil
	}
	e, err := s.repo.GetExpandedByID(ctx, caller.TenantID, id)
	if err != nil {
		return nil, utils.InternalError("Failed to load floor", err)
	}
	if e == nil {
		return nil, s.manager.notFoundError(id)
	}
	return e, nil
}
