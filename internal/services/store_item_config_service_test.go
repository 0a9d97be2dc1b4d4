package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishnuvarthan48/biomedical-cms/internal/constants"
	"github.com/vishnuvarthan48/biomedical-cms/internal/dtos"
	"github.com/vishnuvarthan48/biomedical-cms/internal/metrics"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/repositories"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

type storeItemFixture struct {
	svc     *StoreItemConfigService
	repo    *fakeStoreItemRepo
	caller  models.Caller
	store   uuid.UUID
	closed  uuid.UUID
	item    uuid.UUID
	retired uuid.UUID
}

func newStoreItemFixture() storeItemFixture {
	f := storeItemFixture{
		repo:    newFakeStoreItemRepo(),
		caller:  models.Caller{TenantID: 1, UserID: 10, HospitalID: uuid.New()},
		store:   uuid.New(),
		closed:  uuid.New(),
		item:    uuid.New(),
		retired: uuid.New(),
	}
	f.repo.stores[f.store] = &models.BiomedicalStore{ID: f.store, HospitalID: f.caller.HospitalID, StoreName: "Main", Status: models.StatusActive}
	f.repo.stores[f.closed] = &models.BiomedicalStore{ID: f.closed, HospitalID: f.caller.HospitalID, StoreName: "Old", Status: models.StatusDeleted}
	f.repo.items[f.item] = &models.ItemMaster{ID: f.item, ItemCode: "SP-001", Status: models.ItemStatusActive}
	f.repo.items[f.retired] = &models.ItemMaster{ID: f.retired, ItemCode: "SP-999", Status: "Discontinued"}
	f.svc = NewStoreItemConfigService(f.repo, noopTx{}, nil)
	return f
}

func TestStoreItemConfigCreateDefaults(t *testing.T) {
	f := newStoreItemFixture()

	c, err := f.svc.Create(context.Background(), f.caller, dtos.CreateStoreItemConfigRequest{
		StoreID: f.store, ItemID: f.item, RackNumber: utils.Ptr(" R1 "),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, f.caller.HospitalID, c.HospitalID)
	assert.Equal(t, "R1", *c.RackNumber)
	assert.Equal(t, models.DefaultReorderLevel, c.ReorderLevel)
	assert.Equal(t, models.DefaultMinOrderQty, c.MinOrderQty)
	assert.Equal(t, models.DefaultReorderTimeDays, c.ReorderTimeDays)
	assert.Equal(t, models.StatusActive, c.Status)
}

func TestStoreItemConfigReferenceChecks(t *testing.T) {
	ctx := context.Background()
	f := newStoreItemFixture()

	cases := []struct {
		name  string
		store uuid.UUID
		item  uuid.UUID
		msg   string
	}{
		{"unknown store", uuid.New(), f.item, "Store not found"},
		{"deleted store", f.closed, f.item, "Store not found"},
		{"unknown item", f.store, uuid.New(), "Item not found"},
		{"inactive item", f.store, f.retired, "Item not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, f.caller, dtos.CreateStoreItemConfigRequest{StoreID: tc.store, ItemID: tc.item})
			appErr := requireAppError(t, err, http.StatusNotFound, utils.ErrCodeNotFound)
			assert.Equal(t, tc.msg, appErr.Message)
		})
	}
}

func TestStoreItemConfigDuplicateAndLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newStoreItemFixture()
	req := dtos.CreateStoreItemConfigRequest{StoreID: f.store, ItemID: f.item, ReorderLevel: utils.Ptr(5)}

	c, err := f.svc.Create(ctx, f.caller, req)
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.caller, req)
	appErr := requireAppError(t, err, http.StatusConflict, constants.DupStoreItemConfig)
	assert.Equal(t, "Configuration already exists for this store-item combination", appErr.Message)

	upd, err := f.svc.Update(ctx, f.caller, c.ID, dtos.UpdateStoreItemConfigRequest{MinOrderQty: utils.Ptr(4)})
	require.NoError(t, err)
	assert.Equal(t, 5, upd.ReorderLevel)
	assert.Equal(t, 4, upd.MinOrderQty)

	require.NoError(t, f.svc.Delete(ctx, f.caller, c.ID))

	_, err = f.svc.ToggleStatus(ctx, f.caller, c.ID, "ACTIVE")
	appErr = requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeInvalidStatus)
	assert.Equal(t, "Cannot toggle status of a DELETED configuration", appErr.Message)

	err = f.svc.Delete(ctx, f.caller, c.ID)
	appErr = requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeInvalidStatus)
	assert.Equal(t, "Configuration is already deleted", appErr.Message)

	got, err := f.svc.GetByID(ctx, f.caller, c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeleted, got.Status)

	_, err = f.svc.Create(ctx, f.caller, req)
	require.NoError(t, err)
}

func TestStoreItemConfigIsHospitalScoped(t *testing.T) {
	ctx := context.Background()
	f := newStoreItemFixture()
	c, err := f.svc.Create(ctx, f.caller, dtos.CreateStoreItemConfigRequest{StoreID: f.store, ItemID: f.item})
	require.NoError(t, err)

	other := f.caller
	other.HospitalID = uuid.New()

	_, err = f.svc.GetByID(ctx, other, c.ID)
	appErr := requireAppError(t, err, http.StatusNotFound, utils.ErrCodeNotFound)
	assert.Equal(t, "Configuration not found", appErr.Message)

	err = f.svc.Delete(ctx, other, c.ID)
	requireAppError(t, err, http.StatusNotFound, utils.ErrCodeNotFound)

	_, err = f.svc.GetByStore(ctx, models.Caller{TenantID: 1}, f.store)
	requireAppError(t, err, http.StatusForbidden, utils.ErrCodeForbidden)
}

func TestLowStockSweepSetsGauge(t *testing.T) {
	repo := newFakeStoreItemRepo()
	repo.counts = []repositories.LowStockCount{
		{TenantID: 1, StoreID: uuid.New(), StoreName: "Main", Items: 3},
		{TenantID: 2, StoreID: uuid.New(), StoreName: "ICU", Items: 1},
	}

	n, err := NewLowStockSweepService(repo).Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.LowStockItems.WithLabelValues("1", "Main")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.LowStockItems.WithLabelValues("2", "ICU")))

	repo.counts = nil
	_, err = NewLowStockSweepService(repo).Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, testutil.CollectAndCount(metrics.LowStockItems))
}
