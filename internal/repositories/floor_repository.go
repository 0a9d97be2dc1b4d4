package repositories

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
)

type FloorRepository interface {
	ScopedRepository[*models.Floor, int64]
	ListByBuilding(ctx context.Context, tenantID, buildingID int64, filter ListFilter, page PageRequest) (*Page[*models.Floor], error)
	ListExpandedByBuilding(ctx context.Context, tenantID, buildingID int64, page PageRequest) (*Page[*models.FloorExpanded], error)
	GetExpandedByID(ctx context.Context, tenantID, id int64) (*models.FloorExpanded, error)
}

type floorRepo struct {
	*BaseVersionedRepo[*models.Floor, int64]
	db DB
}

func NewFloorRepository(db DB) FloorRepository {
	r := &floorRepo{db: db}
	selectStmt := baseSelectFloor() + " WHERE f.tenant_id=$1 AND f.floor_id=$2"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanFloor)
	return r
}

func (r *floorRepo) Create(ctx context.Context, f *models.Floor) error {
	return Conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO floor (
			tenant_id, org_id, building_id, floor_no, floor_name, description, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING floor_id, created_at, updated_at, row_version
	`, f.TenantID, f.OrgID, f.BuildingID, f.FloorNo, f.FloorName, f.Description, f.Status,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt, &f.RowVersion)
}

func (r *floorRepo) UpdateWithRetry(ctx context.Context, tenantID, id int64, mutate func(*models.Floor) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, tenantID, id, mutate, r.updateIfVersion)
}

func (r *floorRepo) updateIfVersion(ctx context.Context, f *models.Floor, expected int64) (pgconn.CommandTag, error) {
	return Conn(ctx, r.db).Exec(ctx, `
		UPDATE floor SET
			org_id=$1, building_id=$2, floor_no=$3, floor_name=$4, description=$5, status=$6,
			updated_at=NOW(), row_version=row_version+1
		WHERE tenant_id=$7 AND floor_id=$8 AND row_version=$9
	`, f.OrgID, f.BuildingID, f.FloorNo, f.FloorName, f.Description, f.Status, f.TenantID, f.ID, expected)
}

func (r *floorRepo) HasDuplicate(ctx context.Context, f *models.Floor) (bool, error) {
	return exists(ctx, r.db, `
		SELECT EXISTS (
			SELECT 1 FROM floor
			WHERE tenant_id=$1 AND building_id=$2 AND floor_no=$3
			  AND status <> 'DELETED' AND floor_id <> $4
		)`, f.TenantID, f.BuildingID, f.FloorNo, f.ID)
}

func (r *floorRepo) ListByBuilding(ctx context.Context, tenantID, buildingID int64, filter ListFilter, page PageRequest) (*Page[*models.Floor], error) {
	where := " WHERE f.tenant_id=$1 AND f.building_id=$2 AND " + filter.clause("f.")
	return fetchPage(ctx, r.db,
		"SELECT COUNT(*) FROM floor f"+where,
		baseSelectFloor()+where+" ORDER BY f.floor_no",
		[]any{tenantID, buildingID}, page, scanFloor)
}

func (r *floorRepo) ListExpandedByBuilding(ctx context.Context, tenantID, buildingID int64, page PageRequest) (*Page[*models.FloorExpanded], error) {
	where := " WHERE f.tenant_id=$1 AND f.building_id=$2 AND " + ListVisible.clause("f.")
	return fetchPage(ctx, r.db,
		"SELECT COUNT(*) FROM floor f"+where,
		baseSelectFloorExpanded()+where+" ORDER BY f.floor_no",
		[]any{tenantID, buildingID}, page, scanFloorExpanded)
}

func (r *floorRepo) GetExpandedByID(ctx context.Context, tenantID, id int64) (*models.FloorExpanded, error) {
	row := Conn(ctx, r.db).QueryRow(ctx, baseSelectFloorExpanded()+" WHERE f.tenant_id=$1 AND f.floor_id=$2", tenantID, id)
	return scanFloorExpanded(row)
}

/* ---------- internals ---------- */

const floorColumns = `
	f.floor_id, f.tenant_id, f.org_id, f.building_id, f.floor_no, f.floor_name,
	f.description, f.status, f.created_at, f.updated_at, f.row_version`

func baseSelectFloor() string {
	return "SELECT" + floorColumns + " FROM floor f"
}

func baseSelectFloorExpanded() string {
	return "SELECT" + floorColumns + `,
		b.building_name, b.building_code,
		(SELECT COUNT(*) FROM room rm
		  WHERE rm.floor_id = f.floor_id AND rm.status <> 'DELETED'),
		(SELECT COUNT(*) FROM bed bd JOIN room rm ON rm.room_id = bd.room_id
		  WHERE rm.floor_id = f.floor_id AND bd.status <> 'DELETED'),
		(SELECT COUNT(*) FROM bed bd JOIN room rm ON rm.room_id = bd.room_id
		  WHERE rm.floor_id = f.floor_id AND bd.status = 'ACTIVE')
	FROM floor f
	JOIN building b ON b.building_id = f.building_id`
}

func floorDest(f *models.Floor) []any {
	return []any{
		&f.ID, &f.TenantID, &f.OrgID, &f.BuildingID, &f.FloorNo, &f.FloorName,
		&f.Description, &f.Status, &f.CreatedAt, &f.UpdatedAt, &f.RowVersion,
	}
}

func scanFloor(row pgx.Row) (*models.Floor, error) {
	var f models.Floor
	if err := row.Scan(floorDest(&f)...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func scanFloorExpanded(row pgx.Row) (*models.FloorExpanded, error) {
	var e models.FloorExpanded
	dest := append(floorDest(&e.Floor),
		&e.BuildingName, &e.BuildingCode, &e.RoomCount, &e.BedCount, &e.ActiveBedCount)
	if err := row.Scan(dest...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
