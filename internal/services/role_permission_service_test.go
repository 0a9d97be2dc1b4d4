package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishnuvarthan48/biomedical-cms/internal/constants"
	"github.com/vishnuvarthan48/biomedical-cms/internal/dtos"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

func newPermissionFixture() (*RolePermissionService, *fakePermissionRepo, *fakeCatalog) {
	repo := &fakePermissionRepo{}
	catalog := &fakeCatalog{
		role: &models.Role{ID: 4, Name: "Biomedical Engineer", Code: "BME", Scope: "HOSPITAL"},
		resources: []*models.PermissionResource{
			{ID: 1, ResourceKey: "facility", ResourceName: "Facility", HasChildren: true},
			{ID: 2, ResourceKey: "facility.building", ResourceName: "Buildings", ParentID: lo.ToPtr(int64(1))},
			{ID: 3, ResourceKey: "facility.bed", ResourceName: "Beds", ParentID: lo.ToPtr(int64(1))},
		},
		actions: []*models.PermissionAction{
			{ID: 10, ActionKey: "VIEW", ActionName: "View"},
			{ID: 11, ActionKey: "EDIT", ActionName: "Edit"},
		},
		mapping: []models.ResourceAction{
			{ResourceID: 2, ActionID: 10},
			{ResourceID: 2, ActionID: 11},
			{ResourceID: 3, ActionID: 10},
		},
	}
	return NewRolePermissionService(repo, catalog, noopTx{}, nil), repo, catalog
}

func TestRolePermissionCreateRejectsExistingTriple(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newPermissionFixture()

	p, err := svc.Create(ctx, platformCaller, dtos.CreateRolePermissionRequest{RoleID: 4, ResourceID: 2, ActionID: 10})
	require.NoError(t, err)
	assert.True(t, p.IsAllowed)
	assert.Equal(t, platformCaller.UserID, *p.GrantedBy)

	_, err = svc.Create(ctx, platformCaller, dtos.CreateRolePermissionRequest{RoleID: 4, ResourceID: 2, ActionID: 10})
	appErr := requireAppError(t, err, http.StatusConflict, constants.DupRoleResourceAction)
	assert.Equal(t, "Permission already exists for this role-resource-action combination", appErr.Message)
}

func TestRolePermissionUpdateChecksTripleOnlyWhenChanged(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newPermissionFixture()

	a, err := svc.Create(ctx, platformCaller, dtos.CreateRolePermissionRequest{RoleID: 4, ResourceID: 2, ActionID: 10})
	require.NoError(t, err)
	_, err = svc.Create(ctx, platformCaller, dtos.CreateRolePermissionRequest{RoleID: 4, ResourceID: 2, ActionID: 11})
	require.NoError(t, err)

	upd, err := svc.Update(ctx, platformCaller, dtos.UpdateRolePermissionRequest{
		ID: a.ID, RoleID: 4, ResourceID: 2, ActionID: 10, IsAllowed: utils.Ptr(false),
	})
	require.NoError(t, err)
	assert.False(t, upd.IsAllowed)

	_, err = svc.Update(ctx, platformCaller, dtos.UpdateRolePermissionRequest{ID: a.ID, RoleID: 4, ResourceID: 2, ActionID: 11})
	requireAppError(t, err, http.StatusConflict, constants.DupRoleResourceAction)
}

func TestRolePermissionDeleteIsHardAndTenantScoped(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newPermissionFixture()

	p, err := svc.Create(ctx, platformCaller, dtos.CreateRolePermissionRequest{RoleID: 4, ResourceID: 2, ActionID: 10})
	require.NoError(t, err)

	err = svc.Delete(ctx, models.Caller{TenantID: 2}, p.ID)
	appErr := requireAppError(t, err, http.StatusNotFound, utils.ErrCodeNotFound)
	assert.Equal(t, "Permission not found", appErr.Message)

	require.NoError(t, svc.Delete(ctx, platformCaller, p.ID))
	assert.Empty(t, repo.rows)
}

func TestBulkSaveStoresOnlyAllowedEntries(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newPermissionFixture()

	// a stale grant of the role is replaced
	_, err := svc.Create(ctx, platformCaller, dtos.CreateRolePermissionRequest{RoleID: 4, ResourceID: 99, ActionID: 99})
	require.NoError(t, err)
	// other roles are untouched
	_, err = svc.Create(ctx, platformCaller, dtos.CreateRolePermissionRequest{RoleID: 5, ResourceID: 2, ActionID: 10})
	require.NoError(t, err)

	entries := lo.Times(10, func(i int) dtos.PermissionEntry {
		return dtos.PermissionEntry{ResourceID: int64(100 + i), ActionID: 10, IsAllowed: utils.Ptr(i != 3)}
	})
	res, err := svc.BulkSave(ctx, platformCaller, dtos.BulkSaveRolePermissionsRequest{RoleID: 4, Permissions: entries})
	require.NoError(t, err)

	assert.Equal(t, &dtos.BulkSaveRolePermissionsResponse{RoleID: 4, PermissionsCount: 9}, res)
	assert.Len(t, repo.forRole(4), 9)
	assert.Len(t, repo.forRole(5), 1)
	assert.False(t, lo.ContainsBy(repo.forRole(4), func(p *models.RolePermission) bool { return p.ResourceID == 103 }))
}

func TestBulkSaveCollapsesRepeatedEntries(t *testing.T) {
	svc, repo, _ := newPermissionFixture()
	yes := utils.Ptr(true)

	res, err := svc.BulkSave(context.Background(), platformCaller, dtos.BulkSaveRolePermissionsRequest{
		RoleID: 4,
		Permissions: []dtos.PermissionEntry{
			{ResourceID: 2, ActionID: 10, IsAllowed: yes},
			{ResourceID: 2, ActionID: 10, IsAllowed: yes},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.PermissionsCount)
	assert.Len(t, repo.forRole(4), 1)
}

func TestMatrixCoversEveryResource(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newPermissionFixture()

	granted, err := svc.Create(ctx, platformCaller, dtos.CreateRolePermissionRequest{RoleID: 4, ResourceID: 2, ActionID: 11})
	require.NoError(t, err)

	m, err := svc.Matrix(ctx, platformCaller, 4)
	require.NoError(t, err)

	assert.Equal(t, "BME", m.RoleCode)
	assert.Equal(t, 1, m.TotalPermissions)
	require.Len(t, m.ResourceGroups, 3)

	parent := m.ResourceGroups[0]
	assert.True(t, parent.IsParent)
	assert.Empty(t, parent.Actions)

	buildings := m.ResourceGroups[1]
	assert.False(t, buildings.IsParent)
	require.Len(t, buildings.Actions, 2)
	assert.Equal(t, dtos.MatrixAction{ActionID: 10, ActionKey: "VIEW", ActionName: "View"}, buildings.Actions[0])
	assert.True(t, buildings.Actions[1].IsAllowed)
	assert.Equal(t, granted.ID, *buildings.Actions[1].PermissionID)

	beds := m.ResourceGroups[2]
	require.Len(t, beds.Actions, 1)
	assert.False(t, beds.Actions[0].IsAllowed)
	assert.Nil(t, beds.Actions[0].PermissionID)
}

func TestMatrixUnknownRole(t *testing.T) {
	svc, _, _ := newPermissionFixture()
	_, err := svc.Matrix(context.Background(), platformCaller, 77)
	appErr := requireAppError(t, err, http.StatusNotFound, utils.ErrCodeNotFound)
	assert.Equal(t, "Role not found with ID: 77", appErr.Message)
}
