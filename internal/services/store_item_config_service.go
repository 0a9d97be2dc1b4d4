package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/vishnuvarthan48/biomedical-cms/internal/constants"
	"github.com/vishnuvarthan48/biomedical-cms/internal/dtos"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/repositories"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

const (
	configNotFound  = "Configuration not found"
	configDuplicate = "Configuration already exists for this store-item combination"
)

// StoreItemConfigService manages per-store reorder settings. Records are
// scoped to the caller's hospital; a config of another hospital reads as
// not found.
type StoreItemConfigService struct {
	repo    repositories.StoreItemConfigRepository
	manager *ScopedRecordManager[*models.StoreItemConfig, uuid.UUID]
}

func NewStoreItemConfigService(repo repositories.StoreItemConfigRepository, tx repositories.TxRunner, audit *AuditRecorder) *StoreItemConfigService {
	kind := RecordKind[*models.StoreItemConfig, uuid.UUID]{
		Label:         "configuration",
		TargetType:    models.TargetStoreItemConfig,
		DuplicateCode: constants.DupStoreItemConfig,
		Messages: Messages{
			NotFound:        configNotFound,
			UpdateDeleted:   "Cannot update a DELETED configuration",
			AlreadyDeleted:  "Configuration is already deleted",
			ToggleDeleted:   "Cannot toggle status of a DELETED configuration",
			ToggleToDeleted: "Use DELETE endpoint to soft-delete",
		},
		Repo: repo,
		DedupKey: func(c *models.StoreItemConfig) string {
			return c.HospitalID.String() + "|" + c.StoreID.String() + "|" + c.ItemID.String()
		},
		DuplicateMessage: func(*models.StoreItemConfig) string { return configDuplicate },
		CheckParent: func(ctx context.Context, c *models.StoreItemConfig) error {
			store, err := repo.GetStore(ctx, c.HospitalID, c.StoreID)
			if err != nil {
				return utils.InternalError("Failed to load store", err)
			}
			if store == nil || store.Status.IsDeleted() {
				return utils.NotFoundError("Store not found")
			}
			item, err := repo.GetItem(ctx, c.ItemID)
			if err != nil {
				return utils.InternalError("Failed to load item", err)
			}
			if item == nil || item.Status != models.ItemStatusActive {
				return utils.NotFoundError("Item not found")
			}
			return nil
		},
		Access: func(caller models.Caller, c *models.StoreItemConfig) error {
			if c.HospitalID != caller.HospitalID {
				return utils.NotFoundError(configNotFound)
			}
			return nil
		},
	}
	return &StoreItemConfigService{repo: repo, manager: NewScopedRecordManager(kind, tx, audit)}
}

func requireHospital(caller models.Caller) error {
	if caller.HospitalID == uuid.Nil {
		return utils.ForbiddenError("No hospital selected for this session")
	}
	return nil
}

func (s *StoreItemConfigService) Create(ctx context.Context, caller models.Caller, req dtos.CreateStoreItemConfigRequest) (*models.StoreItemConfig, error) {
	if err := requireHospital(caller); err != nil {
		return nil, err
	}
	c := &models.StoreItemConfig{
		HospitalID:      caller.HospitalID,
		StoreID:         req.StoreID,
		ItemID:          req.ItemID,
		RackNumber:      utils.TrimPtr(req.RackNumber),
		ShelfNumber:     utils.TrimPtr(req.ShelfNumber),
		BinLocation:     utils.TrimPtr(req.BinLocation),
		ReorderLevel:    models.DefaultReorderLevel,
		MinOrderQty:     models.DefaultMinOrderQty,
		ReorderTimeDays: models.DefaultReorderTimeDays,
		Remarks:         utils.TrimPtr(req.Remarks),
		Tracked: models.Tracked{
			TenantID: caller.TenantID,
			Status:   models.InitialStatus(req.IsActive),
		},
	}
	if req.ReorderLevel != nil {
		c.ReorderLevel = *req.ReorderLevel
	}
	if req.MinOrderQty != nil {
		c.MinOrderQty = *req.MinOrderQty
	}
	if req.ReorderTimeDays != nil {
		c.ReorderTimeDays = *req.ReorderTimeDays
	}
	return s.manager.Create(ctx, caller, c)
}

// Update applies only the fields present in req.
func (s *StoreItemConfigService) Update(ctx context.Context, caller models.Caller, id uuid.UUID, req dtos.UpdateStoreItemConfigRequest) (*models.StoreItemConfig, error) {
	return s.manager.Update(ctx, caller, id, func(c *models.StoreItemConfig) error {
		if req.RackNumber != nil {
			c.RackNumber = utils.TrimPtr(req.RackNumber)
		}
		if req.ShelfNumber != nil {
			c.ShelfNumber = utils.TrimPtr(req.ShelfNumber)
		}
		if req.BinLocation != nil {
			c.BinLocation = utils.TrimPtr(req.BinLocation)
		}
		if req.ReorderLevel != nil {
			c.ReorderLevel = *req.ReorderLevel
		}
		if req.MinOrderQty != nil {
			c.MinOrderQty = *req.MinOrderQty
		}
		if req.ReorderTimeDays != nil {
			c.ReorderTimeDays = *req.ReorderTimeDays
		}
		if req.Remarks != nil {
			c.Remarks = utils.TrimPtr(req.Remarks)
		}
		return nil
	})
}

func (s *StoreItemConfigService) Delete(ctx context.Context, caller models.Caller, id uuid.UUID) error {
	return s.manager.Delete(ctx, caller, id)
}

func (s *StoreItemConfigService) ToggleStatus(ctx context.Context, caller models.Caller, id uuid.UUID, target string) (*models.StoreItemConfig, error) {
	return s.manager.ToggleStatus(ctx, caller, id, target)
}

func (s *StoreItemConfigService) GetByID(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.StoreItemConfig, error) {
	return s.manager.Get(ctx, caller, id)
}

func (s *StoreItemConfigService) GetByStore(ctx context.Context, caller models.Caller, storeID uuid.UUID) ([]*models.StoreItemConfig, error) {
	if err := requireHospital(caller); err != nil {
		return nil, err
	}
	list, err := s.repo.ListByStore(ctx, caller.TenantID, caller.HospitalID, storeID)
	if err != nil {
		return nil, utils.InternalError("Failed to list configurations", err)
	}
	return list, nil
}

// LowStock lists the ACTIVE configs of the store whose item stock is at or
// below the reorder level, lowest stock first.
func (s *StoreItemConfigService) LowStock(ctx context.Context, caller models.Caller, storeID uuid.UUID) ([]*models.StoreItemConfig, error) {
	if err := requireHospital(caller); err != nil {
		return nil, err
	}
	list, err := s.repo.ListLowStock(ctx, caller.TenantID, caller.HospitalID, storeID)
	if err != nil {
		return nil, utils.InternalError("Failed to list low-stock items", err)
	}
	return list, nil
}
