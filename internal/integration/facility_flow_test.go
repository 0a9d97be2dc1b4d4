//go:build integration

package integration

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishnuvarthan48/biomedical-cms/internal/constants"
	"github.com/vishnuvarthan48/biomedical-cms/internal/dtos"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/repositories"
	"github.com/vishnuvarthan48/biomedical-cms/internal/services"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

func requireAppError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected *utils.AppError, got %v", err)
	assert.Equal(t, status, appErr.StatusCode)
	assert.Equal(t, code, appErr.Code)
}

func TestFacilityHierarchyFlow(t *testing.T) {
	ctx := context.Background()
	caller := models.Caller{TenantID: newTenantID(), OrgID: models.PlatformOrgID, UserID: 9}
	const orgID = 11

	buildingRepo := repositories.NewBuildingRepository(pool)
	floorRepo := repositories.NewFloorRepository(pool)
	roomRepo := repositories.NewRoomRepository(pool)
	bedRepo := repositories.NewBedRepository(pool)

	buildings := services.NewBuildingService(buildingRepo, tx, audit)
	floors := services.NewFloorService(floorRepo, buildingRepo, tx, audit)
	rooms := services.NewRoomService(roomRepo, floorRepo, tx, audit)
	beds := services.NewBedService(bedRepo, roomRepo, tx, audit)

	b, err := buildings.Create(ctx, caller, dtos.CreateBuildingRequest{
		OrgID: orgID, BuildingName: "Main Block", BuildingCode: utils.Ptr("MB-1"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, b.Status)
	assert.EqualValues(t, 1, b.RowVersion)

	_, err = buildings.Create(ctx, caller, dtos.CreateBuildingRequest{
		OrgID: orgID, BuildingName: "Shadow", BuildingCode: utils.Ptr("  mb-1 "),
	})
	requireAppError(t, err, http.StatusConflict, constants.DupBuildingCode)

	f, err := floors.Create(ctx, caller, dtos.CreateFloorRequest{OrgID: orgID, BuildingID: b.ID, FloorNo: utils.Ptr(2)})
	require.NoError(t, err)

	rm, err := rooms.Create(ctx, caller, dtos.CreateRoomRequest{OrgID: orgID, FloorID: f.ID, RoomNo: "ICU-201"})
	require.NoError(t, err)

	first, err := beds.AutoGenerate(ctx, caller, dtos.AutoGenerateBedsRequest{OrgID: orgID, RoomID: rm.ID, Count: 3, Prefix: utils.Ptr("ICU-")})
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, "ICU-1", utils.Val(first[0].BedCode))

	more, err := beds.AutoGenerate(ctx, caller, dtos.AutoGenerateBedsRequest{OrgID: orgID, RoomID: rm.ID, Count: 2})
	require.NoError(t, err)
	assert.Equal(t, "4", more[0].BedNo)
	assert.Equal(t, "5", more[1].BedNo)

	res, err := beds.GetAll(ctx, caller, rm.ID, false, repositories.PageRequest{Page: 0, Size: constants.BedPageSize})
	require.NoError(t, err)
	page := res.(dtos.PageResponse[*models.Bed])
	assert.EqualValues(t, 5, page.TotalElements)

	// Soft delete frees the natural key.
	require.NoError(t, beds.Delete(ctx, caller, first[0].ID))
	_, err = beds.Create(ctx, caller, dtos.CreateBedRequest{OrgID: orgID, RoomID: rm.ID, BedNo: "1"})
	require.NoError(t, err)

	_, err = beds.ToggleStatus(ctx, caller, dtos.ToggleStatusRequest{ID: more[0].ID, IsActive: "DELETED"})
	requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeInvalidStatus)

	toggled, err := beds.ToggleStatus(ctx, caller, dtos.ToggleStatusRequest{ID: more[0].ID, IsActive: "INACTIVE"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, toggled.Status)
	assert.EqualValues(t, 2, toggled.RowVersion)

	var audits int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM audit_logs WHERE tenant_id=$1`, caller.TenantID).Scan(&audits))
	assert.GreaterOrEqual(t, audits, 5)

	// Another org's caller cannot reach the building.
	outsider := caller
	outsider.OrgID = orgID + 1
	_, err = buildings.GetByID(ctx, outsider, b.ID, false)
	requireAppError(t, err, http.StatusForbidden, utils.ErrCodeForbidden)
}

func TestFacilityFieldsAtMaxLength(t *testing.T) {
	ctx := context.Background()
	caller := models.Caller{TenantID: newTenantID(), OrgID: models.PlatformOrgID, UserID: 9}
	const orgID = 12

	buildingRepo := repositories.NewBuildingRepository(pool)
	floorRepo := repositories.NewFloorRepository(pool)
	roomRepo := repositories.NewRoomRepository(pool)

	buildings := services.NewBuildingService(buildingRepo, tx, audit)
	floors := services.NewFloorService(floorRepo, buildingRepo, tx, audit)
	rooms := services.NewRoomService(roomRepo, floorRepo, tx, audit)
	beds := services.NewBedService(repositories.NewBedRepository(pool), roomRepo, tx, audit)

	code := strings.Repeat("B", 50)
	b, err := buildings.Create(ctx, caller, dtos.CreateBuildingRequest{
		OrgID: orgID, BuildingName: "Long Code Block", BuildingCode: utils.Ptr(code),
	})
	require.NoError(t, err)
	assert.Equal(t, code, utils.Val(b.BuildingCode))

	f, err := floors.Create(ctx, caller, dtos.CreateFloorRequest{OrgID: orgID, BuildingID: b.ID, FloorNo: utils.Ptr(1)})
	require.NoError(t, err)

	rm, err := rooms.Create(ctx, caller, dtos.CreateRoomRequest{OrgID: orgID, FloorID: f.ID, RoomNo: strings.Repeat("R", 50)})
	require.NoError(t, err)

	bed, err := beds.Create(ctx, caller, dtos.CreateBedRequest{
		OrgID: orgID, RoomID: rm.ID, BedNo: strings.Repeat("N", 50), BedCode: utils.Ptr(strings.Repeat("C", 80)),
	})
	require.NoError(t, err)
	assert.Len(t, utils.Val(bed.BedCode), 80)
}
