package repositories

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
)

type BuildingRepository interface {
	ScopedRepository[*models.Building, int64]
	List(ctx context.Context, tenantID, orgID int64, filter ListFilter, page PageRequest) (*Page[*models.Building], error)
	ListExpanded(ctx context.Context, tenantID, orgID int64, page PageRequest) (*Page[*models.BuildingExpanded], error)
	GetExpandedByID(ctx context.Context, tenantID, id int64) (*models.BuildingExpanded, error)
}

type buildingRepo struct {
	*BaseVersionedRepo[*models.Building, int64]
	db DB
}

func NewBuildingRepository(db DB) BuildingRepository {
	r := &buildingRepo{db: db}
	selectStmt := baseSelectBuilding() + " WHERE b.tenant_id=$1 AND b.building_id=$2"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanBuilding)
	return r
}

func (r *buildingRepo) Create(ctx context.Context, b *models.Building) error {
	return Conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO building (
			tenant_id, org_id, building_name, building_code, description, status
		) VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING building_id, created_at, updated_at, row_version
	`, b.TenantID, b.OrgID, b.BuildingName, b.BuildingCode, b.Description, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt, &b.RowVersion)
}

func (r *buildingRepo) UpdateWithRetry(ctx context.Context, tenantID, id int64, mutate func(*models.Building) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, tenantID, id, mutate, r.updateIfVersion)
}

func (r *buildingRepo) updateIfVersion(ctx context.Context, b *models.Building, expected int64) (pgconn.CommandTag, error) {
	return Conn(ctx, r.db).Exec(ctx, `
		UPDATE building SET
			org_id=$1, building_name=$2, building_code=$3, description=$4, status=$5,
			updated_at=NOW(), row_version=row_version+1
		WHERE tenant_id=$6 AND building_id=$7 AND row_version=$8
	`, b.OrgID, b.BuildingName, b.BuildingCode, b.Description, b.Status, b.TenantID, b.ID, expected)
}

// HasDuplicate is false for a blank code: buildings without a code never
// collide.
func (r *buildingRepo) HasDuplicate(ctx context.Context, b *models.Building) (bool, error) {
	if b.BuildingCode == nil || *b.BuildingCode == "" {
		return false, nil
	}
	return exists(ctx, r.db, `
		SELECT EXISTS (
			SELECT 1 FROM building
			WHERE tenant_id=$1 AND org_id=$2
			  AND LOWER(TRIM(building_code)) = LOWER(TRIM($3))
			  AND status <> 'DELETED' AND building_id <> $4
		)`, b.TenantID, b.OrgID, *b.BuildingCode, b.ID)
}

func (r *buildingRepo) List(ctx context.Context, tenantID, orgID int64, filter ListFilter, page PageRequest) (*Page[*models.Building], error) {
	where := " WHERE b.tenant_id=$1 AND b.org_id=$2 AND " + filter.clause("b.")
	return fetchPage(ctx, r.db,
		"SELECT COUNT(*) FROM building b"+where,
		baseSelectBuilding()+where+" ORDER BY b.building_name, b.building_id",
		[]any{tenantID, orgID}, page, scanBuilding)
}

func (r *buildingRepo) ListExpanded(ctx context.Context, tenantID, orgID int64, page PageRequest) (*Page[*models.BuildingExpanded], error) {
	where := " WHERE b.tenant_id=$1 AND b.org_id=$2 AND " + ListVisible.clause("b.")
	return fetchPage(ctx, r.db,
		"SELECT COUNT(*) FROM building b"+where,
		baseSelectBuildingExpanded()+where+" ORDER BY b.building_name, b.building_id",
		[]any{tenantID, orgID}, page, scanBuildingExpanded)
}

func (r *buildingRepo) GetExpandedByID(ctx context.Context, tenantID, id int64) (*models.BuildingExpanded, error) {
	row := Conn(ctx, r.db).QueryRow(ctx, baseSelectBuildingExpanded()+" WHERE b.tenant_id=$1 AND b.building_id=$2", tenantID, id)
	return scanBuildingExpanded(row)
}

/* ---------- internals ---------- */

const buildingColumns = `
	b.building_id, b.tenant_id, b.org_id, b.building_name, b.building_code,
	b.description, b.status, b.created_at, b.updated_at, b.row_version`

func baseSelectBuilding() string {
	return "SELECT" + buildingColumns + " FROM building b"
}

func baseSelectBuildingExpanded() string {
	return "SELECT" + buildingColumns + `,
		o.org_name, o.org_code,
		(SELECT COUNT(*) FROM floor f
		  WHERE f.building_id = b.building_id AND f.status <> 'DELETED'),
		(SELECT COUNT(*) FROM room rm JOIN floor f ON f.floor_id = rm.floor_id
		  WHERE f.building_id = b.building_id AND rm.status <> 'DELETED'),
		(SELECT COUNT(*) FROM bed bd JOIN room rm ON rm.room_id = bd.room_id JOIN floor f ON f.floor_id = rm.floor_id
		  WHERE f.building_id = b.building_id AND bd.status <> 'DELETED'),
		(SELECT COUNT(*) FROM bed bd JOIN room rm ON rm.room_id = bd.room_id JOIN floor f ON f.floor_id = rm.floor_id
		  WHERE f.building_id = b.building_id AND bd.status = 'ACTIVE')
	FROM building b
	LEFT JOIN organization o ON o.org_id = b.org_id`
}

func buildingDest(b *models.Building) []any {
	return []any{
		&b.ID, &b.TenantID, &b.OrgID, &b.BuildingName, &b.BuildingCode,
		&b.Description, &b.Status, &b.CreatedAt, &b.UpdatedAt, &b.RowVersion,
	}
}

func scanBuilding(row pgx.Row) (*models.Building, error) {
	var b models.Building
	if err := row.Scan(buildingDest(&b)...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func scanBuildingExpanded(row pgx.Row) (*models.BuildingExpanded, error) {
	var e models.BuildingExpanded
	dest := append(buildingDest(&e.Building),
		&e.OrgName, &e.OrgCode, &e.FloorCount, &e.RoomCount, &e.BedCount, &e.ActiveBedCount)
	if err := row.Scan(dest...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
