package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
)

// LowStockCount is one row of the scheduled low-stock sweep.
type LowStockCount struct {
	TenantID  int64
	StoreID   uuid.UUID
	StoreName string
	Items     int64
}

type StoreItemConfigRepository interface {
	ScopedRepository[*models.StoreItemConfig, uuid.UUID]
	ListByStore(ctx context.Context, tenantID int64, hospitalID, storeID uuid.UUID) ([]*models.StoreItemConfig, error)
	ListLowStock(ctx context.Context, tenantID int64, hospitalID, storeID uuid.UUID) ([]*models.StoreItemConfig, error)
	CountLowStock(ctx context.Context) ([]LowStockCount, error)

	GetStore(ctx context.Context, hospitalID, storeID uuid.UUID) (*models.BiomedicalStore, error)
	GetItem(ctx context.Context, itemID uuid.UUID) (*models.ItemMaster, error)
}

type storeItemConfigRepo struct {
	*BaseVersionedRepo[*models.StoreItemConfig, uuid.UUID]
	db DB
}

func NewStoreItemConfigRepository(db DB) StoreItemConfigRepository {
	r := &storeItemConfigRepo{db: db}
	selectStmt := baseSelectStoreItemConfig() + " WHERE c.tenant_id=$1 AND c.id=$2"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanStoreItemConfig)
	return r
}

func (r *storeItemConfigRepo) Create(ctx context.Context, c *models.StoreItemConfig) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return Conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO store_item_config (
			id, tenant_id, hospital_id, store_id, item_id,
			rack_number, shelf_number, bin_location,
			reorder_level, min_order_qty, reorder_time_days, remarks, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING created_at, updated_at, row_version
	`, c.ID, c.TenantID, c.HospitalID, c.StoreID, c.ItemID,
		c.RackNumber, c.ShelfNumber, c.BinLocation,
		c.ReorderLevel, c.MinOrderQty, c.ReorderTimeDays, c.Remarks, c.Status,
	).Scan(&c.CreatedAt, &c.UpdatedAt, &c.RowVersion)
}

func (r *storeItemConfigRepo) UpdateWithRetry(ctx context.Context, tenantID int64, id uuid.UUID, mutate func(*models.StoreItemConfig) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, tenantID, id, mutate, r.updateIfVersion)
}

func (r *storeItemConfigRepo) updateIfVersion(ctx context.Context, c *models.StoreItemConfig, expected int64) (pgconn.CommandTag, error) {
	return Conn(ctx, r.db).Exec(ctx, `
		UPDATE store_item_config SET
			rack_number=$1, shelf_number=$2, bin_location=$3,
			reorder_level=$4, min_order_qty=$5, reorder_time_days=$6, remarks=$7, status=$8,
			updated_at=NOW(), row_version=row_version+1
		WHERE tenant_id=$9 AND id=$10 AND row_version=$11
	`, c.RackNumber, c.ShelfNumber, c.BinLocation,
		c.ReorderLevel, c.MinOrderQty, c.ReorderTimeDays, c.Remarks, c.Status,
		c.TenantID, c.ID, expected)
}

func (r *storeItemConfigRepo) HasDuplicate(ctx context.Context, c *models.StoreItemConfig) (bool, error) {
	return exists(ctx, r.db, `
		SELECT EXISTS (
			SELECT 1 FROM store_item_config
			WHERE tenant_id=$1 AND hospital_id=$2 AND store_id=$3 AND item_id=$4
			  AND status <> 'DELETED' AND id <> $5
		)`, c.TenantID, c.HospitalID, c.StoreID, c.ItemID, c.ID)
}

func (r *storeItemConfigRepo) ListByStore(ctx context.Context, tenantID int64, hospitalID, storeID uuid.UUID) ([]*models.StoreItemConfig, error) {
	return queryAll(ctx, r.db, baseSelectStoreItemConfig()+`
		WHERE c.tenant_id=$1 AND c.hospital_id=$2 AND c.store_id=$3 AND `+ListVisible.clause("c.")+`
		ORDER BY i.item_code`, []any{tenantID, hospitalID, storeID}, scanStoreItemConfig)
}

func (r *storeItemConfigRepo) ListLowStock(ctx context.Context, tenantID int64, hospitalID, storeID uuid.UUID) ([]*models.StoreItemConfig, error) {
	return queryAll(ctx, r.db, baseSelectStoreItemConfig()+`
		WHERE c.tenant_id=$1 AND c.hospital_id=$2 AND c.store_id=$3 AND `+ListActive.clause("c.")+`
		  AND i.current_stock <= c.reorder_level
		ORDER BY i.current_stock, i.item_code`, []any{tenantID, hospitalID, storeID}, scanStoreItemConfig)
}

func (r *storeItemConfigRepo) CountLowStock(ctx context.Context) ([]LowStockCount, error) {
	return queryAll(ctx, r.db, `
		SELECT c.tenant_id, s.id, s.store_name, COUNT(*)
		FROM store_item_config c
		JOIN biomedical_store s ON s.id = c.store_id
		JOIN item_master i ON i.id = c.item_id
		WHERE c.status = 'ACTIVE' AND i.current_stock <= c.reorder_level
		GROUP BY c.tenant_id, s.id, s.store_name
		ORDER BY c.tenant_id, s.store_name`, nil,
		func(row pgx.Row) (LowStockCount, error) {
			var lc LowStockCount
			err := row.Scan(&lc.TenantID, &lc.StoreID, &lc.StoreName, &lc.Items)
			return lc, err
		})
}

func (r *storeItemConfigRepo) GetStore(ctx context.Context, hospitalID, storeID uuid.UUID) (*models.BiomedicalStore, error) {
	var s models.BiomedicalStore
	err := Conn(ctx, r.db).QueryRow(ctx, `
		SELECT id, hospital_id, store_name, status FROM biomedical_store
		WHERE id=$1 AND hospital_id=$2
	`, storeID, hospitalID).Scan(&s.ID, &s.HospitalID, &s.StoreName, &s.Status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *storeItemConfigRepo) GetItem(ctx context.Context, itemID uuid.UUID) (*models.ItemMaster, error) {
	var i models.ItemMaster
	err := Conn(ctx, r.db).QueryRow(ctx, `
		SELECT id, item_code, item_name, current_stock, status FROM item_master WHERE id=$1
	`, itemID).Scan(&i.ID, &i.ItemCode, &i.ItemName, &i.CurrentStock, &i.Status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}

/* ---------- internals ---------- */

func baseSelectStoreItemConfig() string {
	return `
		SELECT c.id, c.tenant_id, c.hospital_id, c.store_id, c.item_id,
		       c.rack_number, c.shelf_number, c.bin_location,
		       c.reorder_level, c.min_order_qty, c.reorder_time_days, c.remarks, c.status,
		       c.created_at, c.updated_at, c.row_version,
		       s.store_name, i.item_code, i.item_name, i.current_stock
		FROM store_item_config c
		JOIN biomedical_store s ON s.id = c.store_id
		JOIN item_master i ON i.id = c.item_id`
}

func scanStoreItemConfig(row pgx.Row) (*models.StoreItemConfig, error) {
	var c models.StoreItemConfig
	if err := row.Scan(
		&c.ID, &c.TenantID, &c.HospitalID, &c.StoreID, &c.ItemID,
		&c.RackNumber, &c.ShelfNumber, &c.BinLocation,
		&c.ReorderLevel, &c.MinOrderQty, &c.ReorderTimeDays, &c.Remarks, &c.Status,
		&c.CreatedAt, &c.UpdatedAt, &c.RowVersion,
		&c.StoreName, &c.ItemCode, &c.ItemName, &c.CurrentStock,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
