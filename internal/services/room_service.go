package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/vishnuvarthan48/biomedical-cms/internal/constants"
	"github.com/vishnuvarthan48/biomedical-cms/internal/dtos"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/repositories"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

const floorNotFound = "Floor not found: %v"

type RoomService struct {
	repo      repositories.RoomRepository
	floorRepo repositories.FloorRepository
	manager   *ScopedRecordManager[*models.Room, int64]
}

func NewRoomService(
	repo repositories.RoomRepository,
	floorRepo repositories.FloorRepository,
	tx repositories.TxRunner,
	audit *AuditRecorder,
) *RoomService {
	msgs := defaultMessages("room")
	msgs.NotFound = "Room not found: %v"

	kind := RecordKind[*models.Room, int64]{
		Label:         "room",
		TargetType:    models.TargetRoom,
		DuplicateCode: constants.DupRoomNo,
		Messages:      msgs,
		Repo:          repo,
		DedupKey: func(r *models.Room) string {
			return fmt.Sprintf("%d|%s", r.FloorID, normKey(r.RoomNo))
		},
		DuplicateMessage: func(r *models.Room) string {
			return fmt.Sprintf("Room number '%s' already exists on this floor", r.RoomNo)
		},
		ParentKey: func(r *models.Room) any { return r.FloorID },
		CheckParent: func(ctx context.Context, r *models.Room) error {
			_, err := requireParent[*models.Floor](ctx, floorRepo, r.TenantID, r.FloorID, floorNotFound, "room", "floor")
			return err
		},
	}
	return &RoomService{repo: repo, floorRepo: floorRepo, manager: NewScopedRecordManager(kind, tx, audit)}
}

func (s *RoomService) newRoom(caller models.Caller, req dtos.CreateRoomRequest) *models.Room {
	return &models.Room{
		OrgID:       req.OrgID,
		FloorID:     req.FloorID,
		RoomNo:      strings.TrimSpace(req.RoomNo),
		RoomName:    utils.TrimPtr(req.RoomName),
		RoomTypeID:  req.RoomTypeID,
		Description: utils.TrimPtr(req.Description),
		Tracked: models.Tracked{
			TenantID: caller.TenantID,
			Status:   models.InitialStatus(req.IsActive),
		},
	}
}

func (s *RoomService) Create(ctx context.Context, caller models.Caller, req dtos.CreateRoomRequest) (*models.Room, error) {
	return s.manager.Create(ctx, caller, s.newRoom(caller, req))
}

func (s *RoomService) CreateBulk(ctx context.Context, caller models.Caller, req dtos.BulkCreateRoomsRequest) ([]*models.Room, error) {
	rooms := lo.Map(req.Rooms, func(r dtos.CreateRoomRequest, _ int) *models.Room {
		return s.newRoom(caller, r)
	})
	return s.manager.CreateMany(ctx, caller, rooms)
}

func (s *RoomService) Update(ctx context.Context, caller models.Caller, req dtos.UpdateRoomRequest) (*models.Room, error) {
	return s.manager.Update(ctx, caller, req.RoomID, func(r *models.Room) error {
		r.OrgID = req.OrgID
		r.FloorID = req.FloorID
		r.RoomNo = strings.TrimSpace(req.RoomNo)
		r.RoomName = utils.TrimPtr(req.RoomName)
		r.RoomTypeID = req.RoomTypeID
		r.Description = utils.TrimPtr(req.Description)
		return nil
	})
}

func (s *RoomService) Delete(ctx context.Context, caller models.Caller, id int64) error {
	return s.manager.Delete(ctx, caller, id)
}

func (s *RoomService) ToggleStatus(ctx context.Context, caller models.Caller, req dtos.ToggleStatusRequest) (*models.Room, error) {
	return s.manager.ToggleStatus(ctx, caller, req.ID, req.IsActive)
}

func (s *RoomService) GetAll(ctx context.Context, caller models.Caller, floorID int64, expand bool, page repositories.PageRequest) (any, error) {
	if err := guardParentOrg[*models.Floor](ctx, s.floorRepo, caller, floorID, floorNotFound); err != nil {
		return nil, err
	}
	if expand {
		res, err := s.repo.ListExpandedByFloor(ctx, caller.TenantID, floorID, page)
		if err != nil {
			return nil, utils.InternalError("Failed to list rooms", err)
		}
		return dtos.NewPageResponse(res.Items, res.Total, page.Page, page.Size), nil
	}
	return s.list(ctx, caller, floorID, repositories.ListVisible, page)
}

func (s *RoomService) GetAllActive(ctx context.Context, caller models.Caller, floorID int64, page repositories.PageRequest) (any, error) {
	if err := guardParentOrg[*models.Floor](ctx, s.floorRepo, caller, floorID, floorNotFound); err != nil {
		return nil, err
	}
	return s.list(ctx, caller, floorID, repositories.ListActive, page)
}

func (s *RoomService) list(ctx context.Context, caller models.Caller, floorID int64, filter repositories.ListFilter, page repositories.PageRequest) (any, error) {
	res, err := s.repo.ListByFloor(ctx, caller.TenantID, floorID, filter, page)
	if err != nil {
		return nil, utils.InternalError("Failed to list rooms", err)
	}
	return dtos.NewPageResponse(res.Items, res.Total, page.Page, page.Size), nil
}

func (s *RoomService) GetByID(ctx context.Context, caller models.Caller, id int64, expand bool) (any, error) {
	r, err := s.manager.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !expand {
		return r, nil
	}
	e, err := s.repo.GetExpandedByID(ctx, caller.TenantID, id)
	if err != nil {
		return nil, utils.InternalError("Failed to load room", err)
	}
	if e == nil {
		return nil, s.manager.notFoundError(id)
	}
	return e, nil
}
