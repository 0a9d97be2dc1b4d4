package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishnuvarthan48/biomedical-cms/internal/constants"
	"github.com/vishnuvarthan48/biomedical-cms/internal/dtos"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

func newVoltageFixture(t *testing.T) (*VoltageOptionService, *fakeVoltageRepo, *models.InletPower) {
	t.Helper()
	inlets := newFakeInletRepo()
	inletSvc := NewInletPowerService(inlets, noopTx{}, nil)
	ac, err := inletSvc.Create(context.Background(), platformCaller, dtos.CreateInletPowerRequest{Code: " ac ", Name: "Mains AC"})
	require.NoError(t, err)

	volts := newFakeVoltageRepo()
	return NewVoltageOptionService(volts, inlets, noopTx{}, nil), volts, ac
}

func TestInletPowerCodeIsUpperCasedAndUnique(t *testing.T) {
	ctx := context.Background()
	svc := NewInletPowerService(newFakeInletRepo(), noopTx{}, nil)

	p, err := svc.Create(ctx, platformCaller, dtos.CreateInletPowerRequest{Code: " dc ", Name: "Battery"})
	require.NoError(t, err)
	assert.Equal(t, "DC", p.Code)

	_, err = svc.Create(ctx, platformCaller, dtos.CreateInletPowerRequest{Code: "Dc", Name: "Other"})
	appErr := requireAppError(t, err, http.StatusConflict, constants.DupInletPowerCode)
	assert.Equal(t, "Inlet power code 'DC' already exists", appErr.Message)

	_, err = svc.GetByID(ctx, platformCaller, 42)
	appErr = requireAppError(t, err, http.StatusNotFound, utils.ErrCodeNotFound)
	assert.Equal(t, "Inlet power not found with ID: 42", appErr.Message)
}

func TestVoltageDefaultIsExclusivePerInletPower(t *testing.T) {
	ctx := context.Background()
	svc, repo, ac := newVoltageFixture(t)

	v230, err := svc.Create(ctx, platformCaller, dtos.CreateVoltageOptionRequest{
		InletPowerID: ac.ID, DisplayLabel: "230V", IsDefault: utils.Ptr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{v230.ID}, repo.defaults(ac.ID))

	v110, err := svc.Create(ctx, platformCaller, dtos.CreateVoltageOptionRequest{
		InletPowerID: ac.ID, DisplayLabel: "110V", IsDefault: utils.Ptr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{v110.ID}, repo.defaults(ac.ID))

	// an update without isDefault leaves the flag alone
	_, err = svc.Update(ctx, platformCaller, dtos.UpdateVoltageOptionRequest{
		ID: v110.ID, InletPowerID: ac.ID, DisplayLabel: "110 V",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{v110.ID}, repo.defaults(ac.ID))

	_, err = svc.Update(ctx, platformCaller, dtos.UpdateVoltageOptionRequest{
		ID: v230.ID, InletPowerID: ac.ID, DisplayLabel: "230V", IsDefault: utils.Ptr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{v230.ID}, repo.defaults(ac.ID))
}

func TestVoltageLabelUniquePerInletPower(t *testing.T) {
	ctx := context.Background()
	svc, _, ac := newVoltageFixture(t)

	_, err := svc.Create(ctx, platformCaller, dtos.CreateVoltageOptionRequest{InletPowerID: ac.ID, DisplayLabel: "230V"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, platformCaller, dtos.CreateVoltageOptionRequest{InletPowerID: ac.ID, DisplayLabel: " 230v"})
	appErr := requireAppError(t, err, http.StatusConflict, constants.DupVoltageOption)
	assert.Equal(t, "Voltage option '230v' already exists for this inlet power", appErr.Message)

	_, err = svc.Create(ctx, platformCaller, dtos.CreateVoltageOptionRequest{InletPowerID: 404, DisplayLabel: "12V"})
	appErr = requireAppError(t, err, http.StatusNotFound, utils.ErrCodeNotFound)
	assert.Equal(t, "Inlet power not found with ID: 404", appErr.Message)
}

func TestVoltageRejectsDeletedInletPower(t *testing.T) {
	ctx := context.Background()
	inlets := newFakeInletRepo()
	inlets.put(&models.InletPower{ID: 3, Code: "OLD", Tracked: models.Tracked{TenantID: 1, Status: models.StatusDeleted}})
	svc := NewVoltageOptionService(newFakeVoltageRepo(), inlets, noopTx{}, nil)

	_, err := svc.Create(ctx, platformCaller, dtos.CreateVoltageOptionRequest{InletPowerID: 3, DisplayLabel: "12V"})
	appErr := requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeInvalidStatus)
	assert.Equal(t, "Cannot add voltage to a DELETED inlet power.", appErr.Message)
}

func TestEquipmentTypeColumnWidths(t *testing.T) {
	svc := NewEquipmentTypeService(nil, nil, noopTx{}, nil)

	_, err := svc.Create(context.Background(), platformCaller, dtos.CreateEquipmentOptionRequest{
		InletPowerID: 1,
		Code:         "TOO-LONG-CODE",
		Name:         strings.Repeat("n", 31),
	})
	appErr := requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeValidation)
	assert.Equal(t, map[string]string{
		"code": "code must be at most 10 characters",
		"name": "name must be at most 30 characters",
	}, appErr.FieldErrors)
}

func TestDeviceRiskTypeToggleToDeleted(t *testing.T) {
	ctx := context.Background()
	svc := NewDeviceRiskTypeService(newFakeRiskTypeRepo(), noopTx{}, nil)

	rt, err := svc.Create(ctx, platformCaller, dtos.CreateDeviceRiskTypeRequest{Code: "high", Name: "High risk"})
	require.NoError(t, err)
	assert.Equal(t, "HIGH", rt.Code)

	_, err = svc.ToggleStatus(ctx, platformCaller, dtos.ToggleStatusRequest{ID: rt.ID, IsActive: "deleted"})
	appErr := requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeInvalidStatus)
	assert.Equal(t, "Use DELETE endpoint to soft-delete.", appErr.Message)
}

func TestInletPowerUpdateRejectsTakenCode(t *testing.T) {
	ctx := context.Background()
	svc := NewInletPowerService(newFakeInletRepo(), noopTx{}, nil)

	_, err := svc.Create(ctx, platformCaller, dtos.CreateInletPowerRequest{Code: "AC", Name: "Mains"})
	require.NoError(t, err)
	dc, err := svc.Create(ctx, platformCaller, dtos.CreateInletPowerRequest{Code: "DC", Name: "Battery"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, platformCaller, dtos.UpdateInletPowerRequest{ID: dc.ID, Code: " ac", Name: "Battery"})
	appErr := requireAppError(t, err, http.StatusConflict, constants.DupInletPowerCode)
	assert.Equal(t, "Inlet power code 'AC' already exists", appErr.Message)

	upd, err := svc.Update(ctx, platformCaller, dtos.UpdateInletPowerRequest{ID: dc.ID, Code: "dc", Name: "Battery pack"})
	require.NoError(t, err)
	assert.Equal(t, "DC", upd.Code)
	assert.Equal(t, "Battery pack", upd.Name)
}
