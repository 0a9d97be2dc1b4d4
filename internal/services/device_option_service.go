package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vishnuvarthan48/biomedical-cms/internal/constants"
	"github.com/vishnuvarthan48/biomedical-cms/internal/dtos"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/repositories"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

// optionSpec is what differs between the inlet-power child tables.
type optionSpec[T models.DeviceOption] struct {
	label      string
	target     models.AuditTargetType
	dupCode    string
	naturalKey func(T) string
	dupMessage func(T) string
}

/*
newOptionManager wires the rules every inlet-power child shares:

  - the natural key is unique per inlet power
  - the inlet power must exist and not be DELETED
  - saving a default clears the flag on its siblings
*/
func newOptionManager[T models.DeviceOption](
	spec optionSpec[T],
	repo repositories.DeviceOptionRepository[T],
	inletRepo repositories.InletPowerRepository,
	tx repositories.TxRunner,
	audit *AuditRecorder,
) *ScopedRecordManager[T, int64] {
	kind := RecordKind[T, int64]{
		Label:         spec.label,
		TargetType:    spec.target,
		DuplicateCode: spec.dupCode,
		Repo:          repo,
		DedupKey: func(o T) string {
			return fmt.Sprintf("%d|%s", o.GetInletPowerID(), normKey(spec.naturalKey(o)))
		},
		DuplicateMessage: spec.dupMessage,
		ParentKey:        func(o T) any { return o.GetInletPowerID() },
		CheckParent: func(ctx context.Context, o T) error {
			_, err := requireParent[*models.InletPower](ctx, inletRepo, o.GetTenantID(), o.GetInletPowerID(),
				inletPowerNotFound, spec.label, "inlet power")
			return err
		},
		AfterSave: func(ctx context.Context, o T) error {
			if !o.IsDefaultOption() {
				return nil
			}
			return repo.ClearOtherDefaults(ctx, o.GetTenantID(), o.GetInletPowerID(), o.GetID())
		},
	}
	return NewScopedRecordManager(kind, tx, audit)
}

func listOptions[T models.DeviceOption](
	ctx context.Context,
	repo repositories.DeviceOptionRepository[T],
	caller models.Caller,
	inletPowerID *int64,
	filter repositories.ListFilter,
	label string,
) ([]T, error) {
	list, err := repo.ListByInletPower(ctx, caller.TenantID, inletPowerID, filter)
	if err != nil {
		return nil, utils.InternalError(fmt.Sprintf("Failed to list %s options", label), err)
	}
	return list, nil
}

/* ------------------------------------------------------------------
   Voltage
------------------------------------------------------------------ */

type VoltageOptionService struct {
	repo    repositories.VoltageOptionRepository
	manager *ScopedRecordManager[*models.VoltageOption, int64]
}

func NewVoltageOptionService(
	repo repositories.VoltageOptionRepository,
	inletRepo repositories.InletPowerRepository,
	tx repositories.TxRunner,
	audit *AuditRecorder,
) *VoltageOptionService {
	spec := optionSpec[*models.VoltageOption]{
		label:      "voltage",
		target:     models.TargetVoltageOption,
		dupCode:    constants.DupVoltageOption,
		naturalKey: func(v *models.VoltageOption) string { return v.DisplayLabel },
		dupMessage: func(v *models.VoltageOption) string {
			return fmt.Sprintf("Voltage option '%s' already exists for this inlet power", v.DisplayLabel)
		},
	}
	return &VoltageOptionService{repo: repo, manager: newOptionManager(spec, repo, inletRepo, tx, audit)}
}

func (s *VoltageOptionService) Create(ctx context.Context, caller models.Caller, req dtos.CreateVoltageOptionRequest) (*models.VoltageOption, error) {
	return s.manager.Create(ctx, caller, &models.VoltageOption{
		InletPowerID: req.InletPowerID,
		DisplayLabel: strings.TrimSpace(req.DisplayLabel),
		VoltageV:     req.VoltageV,
		FrequencyHz:  req.FrequencyHz,
		IsDefault:    utils.Val(req.IsDefault),
		SortOrder:    utils.Val(req.SortOrder),
		Tracked: models.Tracked{
			TenantID: caller.TenantID,
			Status:   models.InitialStatus(req.IsActive),
		},
	})
}

func (s *VoltageOptionService) Update(ctx context.Context, caller models.Caller, req dtos.UpdateVoltageOptionRequest) (*models.VoltageOption, error) {
	return s.manager.Update(ctx, caller, req.ID, func(v *models.VoltageOption) error {
		v.InletPowerID = req.InletPowerID
		v.DisplayLabel = strings.TrimSpace(req.DisplayLabel)
		v.VoltageV = req.VoltageV
		v.FrequencyHz = req.FrequencyHz
		if req.IsDefault != nil {
			v.IsDefault = *req.IsDefault
		}
		if req.SortOrder != nil {
			v.SortOrder = *req.SortOrder
		}
		return nil
	})
}

func (s *VoltageOptionService) Delete(ctx context.Context, caller models.Caller, id int64) error {
	return s.manager.Delete(ctx, caller, id)
}

func (s *VoltageOptionService) ToggleStatus(ctx context.Context, caller models.Caller, req dtos.ToggleStatusRequest) (*models.VoltageOption, error) {
	return s.manager.ToggleStatus(ctx, caller, req.ID, req.IsActive)
}

func (s *VoltageOptionService) GetAll(ctx context.Context, caller models.Caller, inletPowerID *int64, activeOnly bool) ([]*models.VoltageOption, error) {
	filter := repositories.ListVisible
	if activeOnly {
		filter = repositories.ListActive
	}
	return listOptions(ctx, s.repo, caller, inletPowerID, filter, "voltage")
}

func (s *VoltageOptionService) GetByID(ctx context.Context, caller models.Caller, id int64) (*models.VoltageOption, error) {
	return s.manager.Get(ctx, caller, id)
}

/* ------------------------------------------------------------------
   Equipment class / type
------------------------------------------------------------------ */

// EquipmentOptionService serves one of the two equipment tables. They
// differ only in labels and column widths.
type EquipmentOptionService struct {
	repo    repositories.EquipmentOptionRepository
	manager *ScopedRecordManager[*models.EquipmentOption, int64]
	label   string
	maxCode int
	maxName int
}

func NewEquipmentClassService(
	repo repositories.EquipmentOptionRepository,
	inletRepo repositories.InletPowerRepository,
	tx repositories.TxRunner,
	audit *AuditRecorder,
) *EquipmentOptionService {
	return newEquipmentOptionService("equipment class", models.TargetEquipmentClass, constants.DupEquipmentClass,
		30, 60, repo, inletRepo, tx, audit)
}

func NewEquipmentTypeService(
	repo repositories.EquipmentOptionRepository,
	inletRepo repositories.InletPowerRepository,
	tx repositories.TxRunner,
	audit *AuditRecorder,
) *EquipmentOptionService {
	return newEquipmentOptionService("equipment type", models.TargetEquipmentType, constants.DupEquipmentType,
		10, 30, repo, inletRepo, tx, audit)
}

func newEquipmentOptionService(
	label string,
	target models.AuditTargetType,
	dupCode string,
	maxCode, maxName int,
	repo repositories.EquipmentOptionRepository,
	inletRepo repositories.InletPowerRepository,
	tx repositories.TxRunner,
	audit *AuditRecorder,
) *EquipmentOptionService {
	spec := optionSpec[*models.EquipmentOption]{
		label:      label,
		target:     target,
		dupCode:    dupCode,
		naturalKey: func(e *models.EquipmentOption) string { return e.Code },
		dupMessage: func(e *models.EquipmentOption) string {
			return fmt.Sprintf("Equipment class/type '%s' already exists for this inlet power", e.Code)
		},
	}
	return &EquipmentOptionService{
		repo:    repo,
		manager: newOptionManager(spec, repo, inletRepo, tx, audit),
		label:   label,
		maxCode: maxCode,
		maxName: maxName,
	}
}

func (s *EquipmentOptionService) checkWidths(code, name string) error {
	fields := map[string]string{}
	if utf8.RuneCountInString(code) > s.maxCode {
		fields["code"] = fmt.Sprintf("code must be at most %d characters", s.maxCode)
	}
	if utf8.RuneCountInString(name) > s.maxName {
		fields["name"] = fmt.Sprintf("name must be at most %d characters", s.maxName)
	}
	if len(fields) > 0 {
		return utils.ValidationError(fields)
	}
	return nil
}

func (s *EquipmentOptionService) Create(ctx context.Context, caller models.Caller, req dtos.CreateEquipmentOptionRequest) (*models.EquipmentOption, error) {
	code, name := normCode(req.Code), strings.TrimSpace(req.Name)
	if err := s.checkWidths(code, name); err != nil {
		return nil, err
	}
	return s.manager.Create(ctx, caller, &models.EquipmentOption{
		InletPowerID: req.InletPowerID,
		Code:         code,
		Name:         name,
		IsDefault:    utils.Val(req.IsDefault),
		SortOrder:    utils.Val(req.SortOrder),
		Tracked: models.Tracked{
			TenantID: caller.TenantID,
			Status:   models.InitialStatus(req.IsActive),
		},
	})
}

func (s *EquipmentOptionService) Update(ctx context.Context, caller models.Caller, req dtos.UpdateEquipmentOptionRequest) (*models.EquipmentOption, error) {
	code, name := normCode(req.Code), strings.TrimSpace(req.Name)
	if err := s.checkWidths(code, name); err != nil {
		return nil, err
	}
	return s.manager.Update(ctx, caller, req.ID, func(e *models.EquipmentOption) error {
		e.InletPowerID = req.InletPowerID
		e.Code = code
		e.Name = name
		if req.IsDefault != nil {
			e.IsDefault = *req.IsDefault
		}
		if req.SortOrder != nil {
			e.SortOrder = *req.SortOrder
		}
		return nil
	})
}

func (s *EquipmentOptionService) Delete(ctx context.Context, caller models.Caller, id int64) error {
	return s.manager.Delete(ctx, caller, id)
}

func (s *EquipmentOptionService) ToggleStatus(ctx context.Context, caller models.Caller, req dtos.ToggleStatusRequest) (*models.EquipmentOption, error) {
	return s.manager.ToggleStatus(ctx, caller, req.ID, req.IsActive)
}

func (s *EquipmentOptionService) GetAll(ctx context.Context, caller models.Caller, inletPowerID *int64, activeOnly bool) ([]*models.EquipmentOption, error) {
	filter := repositories.ListVisible
	if activeOnly {
		filter = repositories.ListActive
	}
	return listOptions(ctx, s.repo, caller, inletPowerID, filter, s.label)
}

func (s *EquipmentOptionService) GetByID(ctx context.Context, caller models.Caller, id int64) (*models.EquipmentOption, error) {
	return s.manager.Get(ctx, caller, id)
}
