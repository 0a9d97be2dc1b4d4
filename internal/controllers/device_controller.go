package controllers

import (
	"context"
	"net/http"

	"github.com/vishnuvarthan48/biomedical-cms/internal/dtos"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
)

// ----- Inlet power -----

type InletPowerService interface {
	recordService[dtos.CreateInletPowerRequest, dtos.UpdateInletPowerRequest, *models.InletPower]
	GetAll(ctx context.Context, caller models.Caller, expand bool) (any, error)
	GetAllActive(ctx context.Context, caller models.Caller) ([]*models.InletPower, error)
	GetByID(ctx context.Context, caller models.Caller, id int64) (*models.InletPower, error)
}

type InletPowerController struct {
	mutationHandlers[dtos.CreateInletPowerRequest, dtos.UpdateInletPowerRequest, *models.InletPower]
	svc InletPowerService
}

func NewInletPowerController(svc InletPowerService) *InletPowerController {
	return &InletPowerController{
		mutationHandlers: mutationHandlers[dtos.CreateInletPowerRequest, dtos.UpdateInletPowerRequest, *models.InletPower]{
			svc: svc,
			msg: mutationMessages{
				Created: "Inlet power created",
				Updated: "Inlet power updated",
				Deleted: "Inlet power soft-deleted",
				Toggled: "Inlet power status toggled",
			},
		},
		svc: svc,
	}
}

// GET /api/device/inlet-power/get-all?expand=
func (c *InletPowerController) GetAllHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	expand, ok := boolParam(w, r, "expand", false)
	if !ok {
		return
	}
	res, err := c.svc.GetAll(r.Context(), caller, expand)
	reply(w, r, http.StatusOK, "Inlet power list fetched", res, err)
}

// GET /api/device/inlet-power/get-all-active
func (c *InletPowerController) GetAllActiveHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	res, err := c.svc.GetAllActive(r.Context(), caller)
	reply(w, r, http.StatusOK, "Active inlet power list fetched", res, err)
}

// GET /api/device/inlet-power/get/{id}
func (c *InletPowerController) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}
	res, err := c.svc.GetByID(r.Context(), caller, id)
	reply(w, r, http.StatusOK, "Inlet power fetched", res, err)
}

// ----- Options keyed by inlet power (voltage, equipment class/type) -----

type optionService[C, U, T any] interface {
	recordService[C, U, T]
	GetAll(ctx context.Context, caller models.Caller, inletPowerID *int64, activeOnly bool) ([]T, error)
	GetByID(ctx context.Context, caller models.Caller, id int64) (T, error)
}

// DeviceOptionController serves the dropdowns that hang off an inlet power.
type DeviceOptionController[C, U, T any] struct {
	mutationHandlers[C, U, T]
	svc optionService[C, U, T]
	msg listMessages
}

func newDeviceOptionController[C, U, T any](svc optionService[C, U, T], mm mutationMessages, lm listMessages) *DeviceOptionController[C, U, T] {
	return &DeviceOptionController[C, U, T]{
		mutationHandlers: mutationHandlers[C, U, T]{svc: svc, msg: mm},
		svc:              svc,
		msg:              lm,
	}
}

type (
	VoltageOptionController   = DeviceOptionController[dtos.CreateVoltageOptionRequest, dtos.UpdateVoltageOptionRequest, *models.VoltageOption]
	EquipmentOptionController = DeviceOptionController[dtos.CreateEquipmentOptionRequest, dtos.UpdateEquipmentOptionRequest, *models.EquipmentOption]
)

func NewVoltageOptionController(
	svc optionService[dtos.CreateVoltageOptionRequest, dtos.UpdateVoltageOptionRequest, *models.VoltageOption],
) *VoltageOptionController {
	return newDeviceOptionController(svc,
		mutationMessages{
			Created: "Voltage option created",
			Updated: "Voltage option updated",
			Deleted: "Voltage option soft-deleted",
			Toggled: "Voltage option status toggled",
		},
		listMessages{"Voltage options fetched", "Active voltage options fetched", "Voltage option fetched"},
	)
}

func NewEquipmentClassController(
	svc optionService[dtos.CreateEquipmentOptionRequest, dtos.UpdateEquipmentOptionRequest, *models.EquipmentOption],
) *EquipmentOptionController {
	return newDeviceOptionController(svc,
		mutationMessages{
			Created: "Equipment class created",
			Updated: "Equipment class updated",
			Deleted: "Equipment class soft-deleted",
			Toggled: "Equipment class status toggled",
		},
		listMessages{"Equipment classes fetched", "Active equipment classes fetched", "Equipment class fetched"},
	)
}

func NewEquipmentTypeController(
	svc optionService[dtos.CreateEquipmentOptionRequest, dtos.UpdateEquipmentOptionRequest, *models.EquipmentOption],
) *EquipmentOptionController {
	return newDeviceOptionController(svc,
		mutationMessages{
			Created: "Equipment type created",
			Updated: "Equipment type updated",
			Deleted: "Equipment type soft-deleted",
			Toggled: "Equipment type status toggled",
		},
		listMessages{"Equipment types fetched", "Active equipment types fetched", "Equipment type fetched"},
	)
}

// GET .../get-all?inletPowerId=
func (c *DeviceOptionController[C, U, T]) GetAllHandler(w http.ResponseWriter, r *http.Request) {
	c.list(w, r, false, c.msg.All)
}

// GET .../get-all-active?inletPowerId=
func (c *DeviceOptionController[C, U, T]) GetAllActiveHandler(w http.ResponseWriter, r *http.Request) {
	c.list(w, r, true, c.msg.Active)
}

func (c *DeviceOptionController[C, U, T]) list(w http.ResponseWriter, r *http.Request, activeOnly bool, message string) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	inletPowerID, ok := optionalInt64(w, r, "inletPowerId")
	if !ok {
		return
	}
	res, err := c.svc.GetAll(r.Context(), caller, inletPowerID, activeOnly)
	reply(w, r, http.StatusOK, message, res, err)
}

// GET .../get/{id}
func (c *DeviceOptionController[C, U, T]) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}
	res, err := c.svc.GetByID(r.Context(), caller, id)
	reply(w, r, http.StatusOK, c.msg.Fetched, res, err)
}

// ----- Device risk type -----

type DeviceRiskTypeService interface {
	recordService[dtos.CreateDeviceRiskTypeRequest, dtos.UpdateDeviceRiskTypeRequest, *models.DeviceRiskType]
	GetAll(ctx context.Context, caller models.Caller, activeOnly bool) ([]*models.DeviceRiskType, error)
	GetByID(ctx context.Context, caller models.Caller, id int64) (*models.DeviceRiskType, error)
}

type DeviceRiskTypeController struct {
	mutationHandlers[dtos.CreateDeviceRiskTypeRequest, dtos.UpdateDeviceRiskTypeRequest, *models.DeviceRiskType]
	svc DeviceRiskTypeService
}

func NewDeviceRiskTypeController(svc DeviceRiskTypeService) *DeviceRiskTypeController {
	return &DeviceRiskTypeController{
		mutationHandlers: mutationHandlers[dtos.CreateDeviceRiskTypeRequest, dtos.UpdateDeviceRiskTypeRequest, *models.DeviceRiskType]{
			svc: svc,
			msg: mutationMessages{
				Created: "Device risk type created",
				Updated: "Device risk type updated",
				Deleted: "Device risk type soft-deleted",
				Toggled: "Device risk type status toggled",
			},
		},
		svc: svc,
	}
}

// GET /api/device/risk-type/get-all
func (c *DeviceRiskTypeController) GetAllHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	res, err := c.svc.GetAll(r.Context(), caller, false)
	reply(w, r, http.StatusOK, "Device risk types fetched", res, err)
}

// GET /api/device/risk-type/get-all-active
func (c *DeviceRiskTypeController) GetAllActiveHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	res, err := c.svc.GetAll(r.Context(), caller, true)
	reply(w, r, http.StatusOK, "Active device risk types fetched", res, err)
}

// GET /api/device/risk-type/get/{id}
func (c *DeviceRiskTypeController) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}
	res, err := c.svc.GetByID(r.Context(), caller, id)
	reply(w, r, http.StatusOK, "Device risk type fetched", res, err)
}
