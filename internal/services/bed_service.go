package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/vishnuvarthan48/biomedical-cms/internal/constants"
	"github.com/vishnuvarthan48/biomedical-cms/internal/dtos"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/repositories"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

const roomNotFound = "Room not found: %v"

type BedService struct {
	repo     repositories.BedRepository
	roomRepo repositories.RoomRepository
	tx       repositories.TxRunner
	manager  *ScopedRecordManager[*models.Bed, int64]
}

func NewBedService(
	repo repositories.BedRepository,
	roomRepo repositories.RoomRepository,
	tx repositories.TxRunner,
	audit *AuditRecorder,
) *BedService {
	msgs := defaultMessages("bed")
	msgs.NotFound = "Bed not found: %v"

	kind := RecordKind[*models.Bed, int64]{
		Label:         "bed",
		TargetType:    models.TargetBed,
		DuplicateCode: constants.DupBedNo,
		Messages:      msgs,
		Repo:          repo,
		DedupKey: func(b *models.Bed) string {
			return fmt.Sprintf("%d|%s", b.RoomID, normKey(b.BedNo))
		},
		DuplicateMessage: func(b *models.Bed) string {
			return fmt.Sprintf("Bed number '%s' already exists in this room", b.BedNo)
		},
		ParentKey: func(b *models.Bed) any { return b.RoomID },
		CheckParent: func(ctx context.Context, b *models.Bed) error {
			_, err := requireParent[*models.Room](ctx, roomRepo, b.TenantID, b.RoomID, roomNotFound, "bed", "room")
			return err
		},
	}
	return &BedService{repo: repo, roomRepo: roomRepo, tx: tx, manager: NewScopedRecordManager(kind, tx, audit)}
}

func (s *BedService) newBed(caller models.Caller, req dtos.CreateBedRequest) *models.Bed {
	return &models.Bed{
		OrgID:   req.OrgID,
		RoomID:  req.RoomID,
		BedNo:   strings.TrimSpace(req.BedNo),
		BedCode: utils.TrimPtr(req.BedCode),
		Tracked: models.Tracked{
			TenantID: caller.TenantID,
			Status:   models.InitialStatus(req.IsActive),
		},
	}
}

func (s *BedService) Create(ctx context.Context, caller models.Caller, req dtos.CreateBedRequest) (*models.Bed, error) {
	return s.manager.Create(ctx, caller, s.newBed(caller, req))
}

func (s *BedService) CreateBulk(ctx context.Context, caller models.Caller, req dtos.BulkCreateBedsRequest) ([]*models.Bed, error) {
	beds := lo.Map(req.Beds, func(r dtos.CreateBedRequest, _ int) *models.Bed {
		return s.newBed(caller, r)
	})
	return s.manager.CreateMany(ctx, caller, beds)
}

// AutoGenerate appends req.Count beds to the room. Numbering continues
// from the number of live beds: with 3 beds present and prefix "ER-B" the
// next bed is bedNo "4", bedCode "ER-B4".
func (s *BedService) AutoGenerate(ctx context.Context, caller models.Caller, req dtos.AutoGenerateBedsRequest) ([]*models.Bed, error) {
	var out []*models.Bed
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		existing, err := s.repo.CountVisibleInRoom(ctx, caller.TenantID, req.RoomID)
		if err != nil {
			return utils.InternalError("Failed to count beds", err)
		}
		prefix := strings.TrimSpace(utils.Val(req.Prefix))

		beds := lo.Times(req.Count, func(i int) *models.Bed {
			seq := strconv.Itoa(existing + i + 1)
			return &models.Bed{
				OrgID:   req.OrgID,
				RoomID:  req.RoomID,
				BedNo:   seq,
				BedCode: utils.Ptr(prefix + seq),
				Tracked: models.Tracked{TenantID: caller.TenantID, Status: models.StatusActive},
			}
		})
		out, err = s.manager.CreateMany(ctx, caller, beds)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BedService) Update(ctx context.Context, caller models.Caller, req dtos.UpdateBedRequest) (*models.Bed, error) {
	return s.manager.Update(ctx, caller, req.BedID, func(b *models.Bed) error {
		b.OrgID = req.OrgID
		b.RoomID = req.RoomID
		b.BedNo = strings.TrimSpace(req.BedNo)
		b.BedCode = utils.TrimPtr(req.BedCode)
		return nil
	})
}

func (s *BedService) Delete(ctx context.Context, caller models.Caller, id int64) error {
	return s.manager.Delete(ctx, caller, id)
}

func (s *BedService) ToggleStatus(ctx context.Context, caller models.Caller, req dtos.ToggleStatusRequest) (*models.Bed, error) {
	return s.manager.ToggleStatus(ctx, caller, req.ID, req.IsActive)
}

func (s *BedService) GetAll(ctx context.Context, caller models.Caller, roomID int64, expand bool, page repositories.PageRequest) (any, error) {
	if err := guardParentOrg[*models.Room](ctx, s.roomRepo, caller, roomID, roomNotFound); err != nil {
		return nil, err
	}
	if expand {
		res, err := s.repo.ListExpandedByRoom(ctx, caller.TenantID, roomID, page)
		if err != nil {
			return nil, utils.InternalError("Failed to list beds", err)
		}
		return dtos.NewPageResponse(res.Items, res.Total, page.Page, page.Size), nil
	}
	return s.list(ctx, caller, roomID, repositories.ListVisible, page)
}

func (s *BedService) GetAllActive(ctx context.Context, caller models.Caller, roomID int64, page repositories.PageRequest) (any, error) {
	if err := guardParentOrg[*models.Room](ctx, s.roomRepo, caller, roomID, roomNotFound); err != nil {
		return nil, err
	}
	return s.list(ctx, caller, roomID, repositories.ListActive, page)
}

func (s *BedService) list(ctx context.Context, caller models.Caller, roomID int64, filter repositories.ListFilter, page repositories.PageRequest) (any, error) {
	res, err := s.repo.ListByRoom(ctx, caller.TenantID, roomID, filter, page)
	if err != nil {
		return nil, utils.InternalError("Failed to list beds", err)
	}
	return dtos.NewPageResponse(res.Items, res.Total, page.Page, page.Size), nil
}

func (s *BedService) GetByID(ctx context.Context, caller models.Caller, id int64, expand bool) (any, error) {
	b, err := s.manager.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !expand {
		return b, nil
	}
	e, err := s.repo.GetExpandedByID(ctx, caller.TenantID, id)
	if err != nil {
		return nil, utils.InternalError("Failed to load bed", err)
	}
	if e == nil {
		return nil, s.manager.notFoundError(id)
	}
	return e, nil
}
