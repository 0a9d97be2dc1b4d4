package repositories

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
)

type InletPowerRepository interface {
	ScopedRepository[*models.InletPower, int64]
	List(ctx context.Context, tenantID int64, filter ListFilter) ([]*models.InletPower, error)
	ListExpanded(ctx context.Context, tenantID int64) ([]*models.InletPowerExpanded, error)
}

type inletPowerRepo struct {
	*BaseVersionedRepo[*models.InletPower, int64]
	db DB
}

func NewInletPowerRepository(db DB) InletPowerRepository {
	r := &inletPowerRepo{db: db}
	selectStmt := baseSelectInletPower() + " WHERE ip.tenant_id=$1 AND ip.id=$2"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanInletPower)
	return r
}

func (r *inletPowerRepo) Create(ctx context.Context, p *models.InletPower) error {
	return Conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO inlet_power (tenant_id, code, name, sort_order, status)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at, updated_at, row_version
	`, p.TenantID, p.Code, p.Name, p.SortOrder, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.RowVersion)
}

func (r *inletPowerRepo) UpdateWithRetry(ctx context.Context, tenantID, id int64, mutate func(*models.InletPower) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, tenantID, id, mutate, r.updateIfVersion)
}

func (r *inletPowerRepo) updateIfVersion(ctx context.Context, p *models.InletPower, expected int64) (pgconn.CommandTag, error) {
	return Conn(ctx, r.db).Exec(ctx, `
		UPDATE inlet_power SET
			code=$1, name=$2, sort_order=$3, status=$4,
			updated_at=NOW(), row_version=row_version+1
		WHERE tenant_id=$5 AND id=$6 AND row_version=$7
	`, p.Code, p.Name, p.SortOrder, p.Status, p.TenantID, p.ID, expected)
}

func (r *inletPowerRepo) HasDuplicate(ctx context.Context, p *models.InletPower) (bool, error) {
	return exists(ctx, r.db, `
		SELECT EXISTS (
			SELECT 1 FROM inlet_power
			WHERE tenant_id=$1 AND UPPER(TRIM(code)) = UPPER(TRIM($2))
			  AND status <> 'DELETED' AND id <> $3
		)`, p.TenantID, p.Code, p.ID)
}

func (r *inletPowerRepo) List(ctx context.Context, tenantID int64, filter ListFilter) ([]*models.InletPower, error) {
	return queryAll(ctx, r.db,
		baseSelectInletPower()+" WHERE ip.tenant_id=$1 AND "+filter.clause("ip.")+" ORDER BY ip.sort_order, ip.name",
		[]any{tenantID}, scanInletPower)
}

func (r *inletPowerRepo) ListExpanded(ctx context.Context, tenantID int64) ([]*models.InletPowerExpanded, error) {
	return queryAll(ctx, r.db, "SELECT"+inletPowerColumns+`,
		(SELECT COUNT(*) FROM voltage_option v
		  WHERE v.inlet_power_id = ip.id AND v.status <> 'DELETED'),
		(SELECT COUNT(*) FROM equipment_class_option c
		  WHERE c.inlet_power_id = ip.id AND c.status <> 'DELETED'),
		(SELECT COUNT(*) FROM equipment_type_option t
		  WHERE t.inlet_power_id = ip.id AND t.status <> 'DELETED')
	FROM inlet_power ip
	WHERE ip.tenant_id=$1 AND `+ListVisible.clause("ip.")+`
	ORDER BY ip.sort_order, ip.name`, []any{tenantID}, scanInletPowerExpanded)
}

/* ---------- internals ---------- */

const inletPowerColumns = `
	ip.id, ip.tenant_id, ip.code, ip.name, ip.sort_order, ip.status,
	ip.created_at, ip.updated_at, ip.row_version`

func baseSelectInletPower() string {
	return "SELECT" + inletPowerColumns + " FROM inlet_power ip"
}

func inletPowerDest(p *models.InletPower) []any {
	return []any{
		&p.ID, &p.TenantID, &p.Code, &p.Name, &p.SortOrder, &p.Status,
		&p.CreatedAt, &p.UpdatedAt, &p.RowVersion,
	}
}

func scanInletPower(row pgx.Row) (*models.InletPower, error) {
	var p models.InletPower
	if err := row.Scan(inletPowerDest(&p)...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func scanInletPowerExpanded(row pgx.Row) (*models.InletPowerExpanded, error) {
	var e models.InletPowerExpanded
	dest := append(inletPowerDest(&e.InletPower), &e.VoltageCount, &e.EquipmentClassCount, &e.EquipmentTypeCount)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &e, nil
}
