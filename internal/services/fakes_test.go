package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/require"

	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/repositories"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

type noopTx struct{}

func (noopTx) WithTx(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }

/* ------------------------------------------------------------------
   memStore: an in-memory ScopedRepository keyed like the SQL one
------------------------------------------------------------------ */

type memStore[T models.ScopedRecord[ID], ID comparable] struct {
	mu     sync.Mutex
	rows   map[ID]T
	clone  func(T) T
	assign func(T)
	key    func(T) string // "" never collides
}

func newMemStore[T models.ScopedRecord[ID], ID comparable](clone func(T) T, assign func(T), key func(T) string) *memStore[T, ID] {
	return &memStore[T, ID]{rows: map[ID]T{}, clone: clone, assign: assign, key: key}
}

func cloneOf[T any](p *T) *T {
	c := *p
	return &c
}

func seqIDs[T any](set func(T, int64)) func(T) {
	var next int64
	var mu sync.Mutex
	return func(rec T) {
		mu.Lock()
		defer mu.Unlock()
		next++
		set(rec, next)
	}
}

func lowerTrim(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (m *memStore[T, ID]) Create(_ context.Context, rec T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assign(rec)
	rec.SetRowVersion(1)
	m.rows[rec.GetID()] = m.clone(rec)
	return nil
}

func (m *memStore[T, ID]) GetByID(_ context.Context, tenantID int64, id ID) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	r, ok := m.rows[id]
	if !ok || r.GetTenantID() != tenantID {
		return zero, nil
	}
	return m.clone(r), nil
}

func (m *memStore[T, ID]) UpdateWithRetry(ctx context.Context, tenantID int64, id ID, mutate func(T) error) error {
	cur, _ := m.GetByID(ctx, tenantID, id)
	var zero T
	if cur == zero {
		return pgx.ErrNoRows
	}
	if err := mutate(cur); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur.SetRowVersion(cur.GetRowVersion() + 1)
	m.rows[id] = m.clone(cur)
	return nil
}

func (m *memStore[T, ID]) HasDuplicate(_ context.Context, rec T) (bool, error) {
	k := m.key(rec)
	if k == "" {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.rows {
		if id != rec.GetID() && r.GetTenantID() == rec.GetTenantID() && !r.GetStatus().IsDeleted() && m.key(r) == k {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore[T, ID]) all() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, m.clone(r))
	}
	return out
}

// put seeds a row as-is.
func (m *memStore[T, ID]) put(rec T) T {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[rec.GetID()] = m.clone(rec)
	return rec
}

/* ------------------------------------------------------------------
   Per-kind fakes. The embedded interfaces sit one level deeper than
   memStore so only the list methods fall through to them (and panic
   if a test reaches one).
------------------------------------------------------------------ */

type buildingLists struct {
	repositories.BuildingRepository
}

type fakeBuildingRepo struct {
	*memStore[*models.Building, int64]
	buildingLists
}

func newFakeBuildingRepo() *fakeBuildingRepo {
	return &fakeBuildingRepo{memStore: newMemStore[*models.Building, int64](
		cloneOf[models.Building],
		seqIDs(func(b *models.Building, id int64) { b.ID = id }),
		func(b *models.Building) string {
			code := lowerTrim(utils.Val(b.BuildingCode))
			if code == "" {
				return ""
			}
			return fmt.Sprintf("%d|%s", b.OrgID, code)
		},
	)}
}

type roomLists struct{ repositories.RoomRepository }

type fakeRoomRepo struct {
	*memStore[*models.Room, int64]
	roomLists
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{memStore: newMemStore[*models.Room, int64](
		cloneOf[models.Room],
		seqIDs(func(r *models.Room, id int64) { r.ID = id }),
		func(r *models.Room) string { return fmt.Sprintf("%d|%s", r.FloorID, lowerTrim(r.RoomNo)) },
	)}
}

type bedLists struct{ repositories.BedRepository }

type fakeBedRepo struct {
	*memStore[*models.Bed, int64]
	bedLists
}

func newFakeBedRepo() *fakeBedRepo {
	return &fakeBedRepo{memStore: newMemStore[*models.Bed, int64](
		cloneOf[models.Bed],
		seqIDs(func(b *models.Bed, id int64) { b.ID = id }),
		func(b *models.Bed) string { return fmt.Sprintf("%d|%s", b.RoomID, lowerTrim(b.BedNo)) },
	)}
}

func (f *fakeBedRepo) CountVisibleInRoom(_ context.Context, tenantID, roomID int64) (int, error) {
	n := 0
	for _, b := range f.all() {
		if b.TenantID == tenantID && b.RoomID == roomID && !b.Status.IsDeleted() {
			n++
		}
	}
	return n, nil
}

type inletLists struct {
	repositories.InletPowerRepository
}

type fakeInletRepo struct {
	*memStore[*models.InletPower, int64]
	inletLists
}

func newFakeInletRepo() *fakeInletRepo {
	return &fakeInletRepo{memStore: newMemStore[*models.InletPower, int64](
		cloneOf[models.InletPower],
		seqIDs(func(p *models.InletPower, id int64) { p.ID = id }),
		func(p *models.InletPower) string { return lowerTrim(p.Code) },
	)}
}

type voltageLists struct {
	repositories.VoltageOptionRepository
}

type fakeVoltageRepo struct {
	*memStore[*models.VoltageOption, int64]
	voltageLists
}

func newFakeVoltageRepo() *fakeVoltageRepo {
	return &fakeVoltageRepo{memStore: newMemStore[*models.VoltageOption, int64](
		cloneOf[models.VoltageOption],
		seqIDs(func(v *models.VoltageOption, id int64) { v.ID = id }),
		func(v *models.VoltageOption) string {
			return fmt.Sprintf("%d|%s", v.InletPowerID, lowerTrim(v.DisplayLabel))
		},
	)}
}

func (f *fakeVoltageRepo) ClearOtherDefaults(_ context.Context, tenantID, inletPowerID, keepID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, v := range f.rows {
		if v.TenantID == tenantID && v.InletPowerID == inletPowerID && id != keepID {
			v.IsDefault = false
		}
	}
	return nil
}

func (f *fakeVoltageRepo) defaults(inletPowerID int64) []int64 {
	var ids []int64
	for _, v := range f.all() {
		if v.InletPowerID == inletPowerID && v.IsDefault {
			ids = append(ids, v.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type riskTypeLists struct {
	repositories.DeviceRiskTypeRepository
}

type fakeRiskTypeRepo struct {
	*memStore[*models.DeviceRiskType, int64]
	riskTypeLists
}

func newFakeRiskTypeRepo() *fakeRiskTypeRepo {
	return &fakeRiskTypeRepo{memStore: newMemStore[*models.DeviceRiskType, int64](
		cloneOf[models.DeviceRiskType],
		seqIDs(func(d *models.DeviceRiskType, id int64) { d.ID = id }),
		func(d *models.DeviceRiskType) string { return lowerTrim(d.Code) },
	)}
}

type storeItemLists struct {
	repositories.StoreItemConfigRepository
}

type fakeStoreItemRepo struct {
	*memStore[*models.StoreItemConfig, uuid.UUID]
	storeItemLists
	stores map[uuid.UUID]*models.BiomedicalStore
	items  map[uuid.UUID]*models.ItemMaster
	counts []repositories.LowStockCount
}

func newFakeStoreItemRepo() *fakeStoreItemRepo {
	return &fakeStoreItemRepo{
		memStore: newMemStore[*models.StoreItemConfig, uuid.UUID](
			cloneOf[models.StoreItemConfig],
			func(c *models.StoreItemConfig) { c.ID = uuid.New() },
			func(c *models.StoreItemConfig) string {
				return c.HospitalID.String() + "|" + c.StoreID.String() + "|" + c.ItemID.String()
			},
		),
		stores: map[uuid.UUID]*models.BiomedicalStore{},
		items:  map[uuid.UUID]*models.ItemMaster{},
	}
}

func (f *fakeStoreItemRepo) GetStore(_ context.Context, hospitalID, storeID uuid.UUID) (*models.BiomedicalStore, error) {
	s, ok := f.stores[storeID]
	if !ok || s.HospitalID != hospitalID {
		return nil, nil
	}
	return s, nil
}

func (f *fakeStoreItemRepo) GetItem(_ context.Context, itemID uuid.UUID) (*models.ItemMaster, error) {
	return f.items[itemID], nil
}

func (f *fakeStoreItemRepo) CountLowStock(context.Context) ([]repositories.LowStockCount, error) {
	return f.counts, nil
}

/* ------------------------------------------------------------------
   Role permissions
------------------------------------------------------------------ */

type fakePermissionRepo struct {
	repositories.RolePermissionRepository
	rows   []*models.RolePermission
	nextID int64
}

func (f *fakePermissionRepo) Create(_ context.Context, p *models.RolePermission) error {
	for _, r := range f.rows {
		if r.TenantID == p.TenantID && r.RoleID == p.RoleID && r.ResourceID == p.ResourceID && r.ActionID == p.ActionID {
			return errors.New("fake: unique violation")
		}
	}
	f.nextID++
	p.ID = f.nextID
	c := *p
	f.rows = append(f.rows, &c)
	return nil
}

func (f *fakePermissionRepo) CreateMany(ctx context.Context, list []*models.RolePermission) error {
	for _, p := range list {
		if err := f.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakePermissionRepo) GetByID(_ context.Context, tenantID, id int64) (*models.RolePermission, error) {
	for _, r := range f.rows {
		if r.TenantID == tenantID && r.ID == id {
			c := *r
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakePermissionRepo) ExistsTriple(_ context.Context, tenantID, roleID, resourceID, actionID, excludeID int64) (bool, error) {
	for _, r := range f.rows {
		if r.TenantID == tenantID && r.RoleID == roleID && r.ResourceID == resourceID && r.ActionID == actionID && r.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePermissionRepo) Update(_ context.Context, p *models.RolePermission) error {
	for i, r := range f.rows {
		if r.TenantID == p.TenantID && r.ID == p.ID {
			c := *p
			f.rows[i] = &c
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakePermissionRepo) Delete(_ context.Context, tenantID, id int64) error {
	for i, r := range f.rows {
		if r.TenantID == tenantID && r.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakePermissionRepo) DeleteByRole(_ context.Context, tenantID, roleID int64) (int64, error) {
	var kept []*models.RolePermission
	var n int64
	for _, r := range f.rows {
		if r.TenantID == tenantID && r.RoleID == roleID {
			n++
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return n, nil
}

func (f *fakePermissionRepo) ListExpandedByRole(_ context.Context, tenantID, roleID int64) ([]*models.RolePermissionExpanded, error) {
	var out []*models.RolePermissionExpanded
	for _, r := range f.rows {
		if r.TenantID == tenantID && r.RoleID == roleID {
			out = append(out, &models.RolePermissionExpanded{RolePermission: *r})
		}
	}
	return out, nil
}

func (f *fakePermissionRepo) forRole(roleID int64) []*models.RolePermission {
	var out []*models.RolePermission
	for _, r := range f.rows {
		if r.RoleID == roleID {
			out = append(out, r)
		}
	}
	return out
}

type fakeCatalog struct {
	role      *models.Role
	resources []*models.PermissionResource
	actions   []*models.PermissionAction
	mapping   []models.ResourceAction
}

func (f *fakeCatalog) GetRole(_ context.Context, _ int64, roleID int64) (*models.Role, error) {
	if f.role == nil || f.role.ID != roleID {
		return nil, nil
	}
	return f.role, nil
}

func (f *fakeCatalog) ListResources(context.Context) ([]*models.PermissionResource, error) {
	return f.resources, nil
}

func (f *fakeCatalog) ListActions(context.Context) ([]*models.PermissionAction, error) {
	return f.actions, nil
}

func (f *fakeCatalog) ListResourceActions(context.Context) ([]models.ResourceAction, error) {
	return f.mapping, nil
}

/* ------------------------------------------------------------------
   Audit + assertions
------------------------------------------------------------------ */

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*models.AuditLog
}

func (f *fakeAuditRepo) Create(_ context.Context, l *models.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, l)
	return nil
}

func (f *fakeAuditRepo) actions() []models.AuditAction {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.AuditAction, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.Action)
	}
	return out
}

func requireAppError(t *testing.T, err error, status int, code string) *utils.AppError {
	t.Helper()
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected *AppError, got %v", err)
	require.Equal(t, status, appErr.StatusCode, appErr.Message)
	require.Equal(t, code, appErr.Code)
	return appErr
}

var (
	platformCaller = models.Caller{TenantID: 1, OrgID: models.PlatformOrgID, UserID: 10}
	orgCaller      = models.Caller{TenantID: 1, OrgID: 7, UserID: 11}
)
