package repositories

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
)

type DeviceRiskTypeRepository interface {
	ScopedRepository[*models.DeviceRiskType, int64]
	List(ctx context.Context, tenantID int64, filter ListFilter) ([]*models.DeviceRiskType, error)
}

type deviceRiskTypeRepo struct {
	*BaseVersionedRepo[*models.DeviceRiskType, int64]
	db DB
}

func NewDeviceRiskTypeRepository(db DB) DeviceRiskTypeRepository {
	r := &deviceRiskTypeRepo{db: db}
	selectStmt := baseSelectRiskType() + " WHERE tenant_id=$1 AND id=$2"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanRiskType)
	return r
}

func (r *deviceRiskTypeRepo) Create(ctx context.Context, d *models.DeviceRiskType) error {
	return Conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO device_risk_type (tenant_id, code, name, description, sort_order, status)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at, updated_at, row_version
	`, d.TenantID, d.Code, d.Name, d.Description, d.SortOrder, d.Status,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt, &d.RowVersion)
}

func (r *deviceRiskTypeRepo) UpdateWithRetry(ctx context.Context, tenantID, id int64, mutate func(*models.DeviceRiskType) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, tenantID, id, mutate, r.updateIfVersion)
}

func (r *deviceRiskTypeRepo) updateIfVersion(ctx context.Context, d *models.DeviceRiskType, expected int64) (pgconn.CommandTag, error) {
	return Conn(ctx, r.db).Exec(ctx, `
		UPDATE device_risk_type SET
			code=$1, name=$2, description=$3, sort_order=$4, status=$5,
			updated_at=NOW(), row_version=row_version+1
		WHERE tenant_id=$6 AND id=$7 AND row_version=$8
	`, d.Code, d.Name, d.Description, d.SortOrder, d.Status, d.TenantID, d.ID, expected)
}

func (r *deviceRiskTypeRepo) HasDuplicate(ctx context.Context, d *models.DeviceRiskType) (bool, error) {
	return exists(ctx, r.db, `
		SELECT EXISTS (
			SELECT 1 FROM device_risk_type
			WHERE tenant_id=$1 AND UPPER(TRIM(code)) = UPPER(TRIM($2))
			  AND status <> 'DELETED' AND id <> $3
		)`, d.TenantID, d.Code, d.ID)
}

func (r *deviceRiskTypeRepo) List(ctx context.Context, tenantID int64, filter ListFilter) ([]*models.DeviceRiskType, error) {
	return queryAll(ctx, r.db,
		baseSelectRiskType()+" WHERE tenant_id=$1 AND "+filter.clause("")+" ORDER BY sort_order, name",
		[]any{tenantID}, scanRiskType)
}

func baseSelectRiskType() string {
	return `
		SELECT id, tenant_id, code, name, description, sort_order, status,
		       created_at, updated_at, row_version
		FROM device_risk_type`
}

func scanRiskType(row pgx.Row) (*models.DeviceRiskType, error) {
	var d models.DeviceRiskType
	if err := row.Scan(
		&d.ID, &d.TenantID, &d.Code, &d.Name, &d.Description, &d.SortOrder, &d.Status,
		&d.CreatedAt, &d.UpdatedAt, &d.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}
