package repositories

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
)

type BedRepository interface {
	ScopedRepository[*models.Bed, int64]
	ListByRoom(ctx context.Context, tenantID, roomID int64, filter ListFilter, page PageRequest) (*Page[*models.Bed], error)
	ListExpandedByRoom(ctx context.Context, tenantID, roomID int64, page PageRequest) (*Page[*models.BedExpanded], error)
	GetExpandedByID(ctx context.Context, tenantID, id int64) (*models.BedExpanded, error)
	// CountVisibleInRoom counts non-deleted beds; auto-generate numbers from here.
	CountVisibleInRoom(ctx context.Context, tenantID, roomID int64) (int, error)
}

type bedRepo struct {
	*BaseVersionedRepo[*models.Bed, int64]
	db DB
}

func NewBedRepository(db DB) BedRepository {
	r := &bedRepo{db: db}
	selectStmt := baseSelectBed() + " WHERE bd.tenant_id=$1 AND bd.bed_id=$2"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanBed)
	return r
}

func (r *bedRepo) Create(ctx context.Context, b *models.Bed) error {
	return Conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO bed (
			tenant_id, org_id, room_id, bed_no, bed_code, status
		) VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING bed_id, created_at, updated_at, row_version
	`, b.TenantID, b.OrgID, b.RoomID, b.BedNo, b.BedCode, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt, &b.RowVersion)
}

func (r *bedRepo) UpdateWithRetry(ctx context.Context, tenantID, id int64, mutate func(*models.Bed) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, tenantID, id, mutate, r.updateIfVersion)
}

func (r *bedRepo) updateIfVersion(ctx context.Context, b *models.Bed, expected int64) (pgconn.CommandTag, error) {
	return Conn(ctx, r.db).Exec(ctx, `
		UPDATE bed SET
			org_id=$1, room_id=$2, bed_no=$3, bed_code=$4, status=$5,
			updated_at=NOW(), row_version=row_version+1
		WHERE tenant_id=$6 AND bed_id=$7 AND row_version=$8
	`, b.OrgID, b.RoomID, b.BedNo, b.BedCode, b.Status, b.TenantID, b.ID, expected)
}

func (r *bedRepo) HasDuplicate(ctx context.Context, b *models.Bed) (bool, error) {
	return exists(ctx, r.db, `
		SELECT EXISTS (
			SELECT 1 FROM bed
			WHERE tenant_id=$1 AND room_id=$2
			  AND LOWER(TRIM(bed_no)) = LOWER(TRIM($3))
			  AND status <> 'DELETED' AND bed_id <> $4
		)`, b.TenantID, b.RoomID, b.BedNo, b.ID)
}

func (r *bedRepo) CountVisibleInRoom(ctx context.Context, tenantID, roomID int64) (int, error) {
	var n int
	err := Conn(ctx, r.db).QueryRow(ctx,
		`SELECT COUNT(*) FROM bed WHERE tenant_id=$1 AND room_id=$2 AND status <> 'DELETED'`,
		tenantID, roomID,
	).Scan(&n)
	return n, err
}

func (r *bedRepo) ListByRoom(ctx context.Context, tenantID, roomID int64, filter ListFilter, page PageRequest) (*Page[*models.Bed], error) {
	where := " WHERE bd.tenant_id=$1 AND bd.room_id=$2 AND " + filter.clause("bd.")
	return fetchPage(ctx, r.db,
		"SELECT COUNT(*) FROM bed bd"+where,
		baseSelectBed()+where+" ORDER BY bd.bed_no",
		[]any{tenantID, roomID}, page, scanBed)
}

func (r *bedRepo) ListExpandedByRoom(ctx context.Context, tenantID, roomID int64, page PageRequest) (*Page[*models.BedExpanded], error) {
	where := " WHERE bd.tenant_id=$1 AND bd.room_id=$2 AND " + ListVisible.clause("bd.")
	return fetchPage(ctx, r.db,
		"SELECT COUNT(*) FROM bed bd"+where,
		baseSelectBedExpanded()+where+" ORDER BY bd.bed_no",
		[]any{tenantID, roomID}, page, scanBedExpanded)
}

func (r *bedRepo) GetExpandedByID(ctx context.Context, tenantID, id int64) (*models.BedExpanded, error) {
	row := Conn(ctx, r.db).QueryRow(ctx, baseSelectBedExpanded()+" WHERE bd.tenant_id=$1 AND bd.bed_id=$2", tenantID, id)
	return scanBedExpanded(row)
}

/* ---------- internals ---------- */

const bedColumns = `
	bd.bed_id, bd.tenant_id, bd.org_id, bd.room_id, bd.bed_no, bd.bed_code,
	bd.status, bd.created_at, bd.updated_at, bd.row_version`

func baseSelectBed() string {
	return "SELECT" + bedColumns + " FROM bed bd"
}

func baseSelectBedExpanded() string {
	return "SELECT" + bedColumns + `,
		rm.room_no, rm.room_name, f.floor_id, f.floor_name, f.floor_no,
		b.building_id, b.building_name
	FROM bed bd
	JOIN room rm ON rm.room_id = bd.room_id
	JOIN floor f ON f.floor_id = rm.floor_id
	JOIN building b ON b.building_id = f.building_id`
}

func bedDest(b *models.Bed) []any {
	return []any{
		&b.ID, &b.TenantID, &b.OrgID, &b.RoomID, &b.BedNo, &b.BedCode,
		&b.Status, &b.CreatedAt, &b.UpdatedAt, &b.RowVersion,
	}
}

func scanBed(row pgx.Row) (*models.Bed, error) {
	var b models.Bed
	if err := row.Scan(bedDest(&b)...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func scanBedExpanded(row pgx.Row) (*models.BedExpanded, error) {
	var e models.BedExpanded
	dest := append(bedDest(&e.Bed),
		&e.RoomNo, &e.RoomName, &e.FloorID, &e.FloorName, &e.FloorNo,
		&e.BuildingID, &e.BuildingName)
	if err := row.Scan(dest...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
