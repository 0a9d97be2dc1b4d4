package repositories

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
)

type RoomRepository interface {
	ScopedRepository[*models.Room, int64]
	ListByFloor(ctx context.Context, tenantID, floorID int64, filter ListFilter, page PageRequest) (*Page[*models.Room], error)
	ListExpandedByFloor(ctx context.Context, tenantID, floorID int64, page PageRequest) (*Page[*models.RoomExpanded], error)
	GetExpandedByID(ctx context.Context, tenantID, id int64) (*models.RoomExpanded, error)
}

type roomRepo struct {
	*BaseVersionedRepo[*models.Room, int64]
	db DB
}

func NewRoomRepository(db DB) RoomRepository {
	r := &roomRepo{db: db}
	selectStmt := baseSelectRoom() + " WHERE rm.tenant_id=$1 AND rm.room_id=$2"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanRoom)
	return r
}

func (r *roomRepo) Create(ctx context.Context, rm *models.Room) error {
	return Conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO room (
			tenant_id, org_id, floor_id, room_no, room_name, room_type_id, description, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING room_id, created_at, updated_at, row_version
	`, rm.TenantID, rm.OrgID, rm.FloorID, rm.RoomNo, rm.RoomName, rm.RoomTypeID, rm.Description, rm.Status,
	).Scan(&rm.ID, &rm.CreatedAt, &rm.UpdatedAt, &rm.RowVersion)
}

func (r *roomRepo) UpdateWithRetry(ctx context.Context, tenantID, id int64, mutate func(*models.Room) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, tenantID, id, mutate, r.updateIfVersion)
}

func (r *roomRepo) updateIfVersion(ctx context.Context, rm *models.Room, expected int64) (pgconn.CommandTag, error) {
	return Conn(ctx, r.db).Exec(ctx, `
		UPDATE room SET
			org_id=$1, floor_id=$2, room_no=$3, room_name=$4, room_type_id=$5, description=$6, status=$7,
			updated_at=NOW(), row_version=row_version+1
		WHERE tenant_id=$8 AND room_id=$9 AND row_version=$10
	`, rm.OrgID, rm.FloorID, rm.RoomNo, rm.RoomName, rm.RoomTypeID, rm.Description, rm.Status, rm.TenantID, rm.ID, expected)
}

func (r *roomRepo) HasDuplicate(ctx context.Context, rm *models.Room) (bool, error) {
	return exists(ctx, r.db, `
		SELECT EXISTS (
			SELECT 1 FROM room
			WHERE tenant_id=$1 AND floor_id=$2
			  AND LOWER(TRIM(room_no)) = LOWER(TRIM($3))
			  AND status <> 'DELETED' AND room_id <> $4
		)`, rm.TenantID, rm.FloorID, rm.RoomNo, rm.ID)
}

func (r *roomRepo) ListByFloor(ctx context.Context, tenantID, floorID int64, filter ListFilter, page PageRequest) (*Page[*models.Room], error) {
	where := " WHERE rm.tenant_id=$1 AND rm.floor_id=$2 AND " + filter.clause("rm.")
	return fetchPage(ctx, r.db,
		"SELECT COUNT(*) FROM room rm"+where,
		baseSelectRoom()+where+" ORDER BY rm.room_no",
		[]any{tenantID, floorID}, page, scanRoom)
}

func (r *roomRepo) ListExpandedByFloor(ctx context.Context, tenantID, floorID int64, page PageRequest) (*Page[*models.RoomExpanded], error) {
	where := " WHERE rm.tenant_id=$1 AND rm.floor_id=$2 AND " + ListVisible.clause("rm.")
	return fetchPage(ctx, r.db,
		"SELECT COUNT(*) FROM room rm"+where,
		baseSelectRoomExpanded()+where+" ORDER BY rm.room_no",
		[]any{tenantID, floorID}, page, scanRoomExpanded)
}

func (r *roomRepo) GetExpandedByID(ctx context.Context, tenantID, id int64) (*models.RoomExpanded, error) {
	row := Conn(ctx, r.db).QueryRow(ctx, baseSelectRoomExpanded()+" WHERE rm.tenant_id=$1 AND rm.room_id=$2", tenantID, id)
	return scanRoomExpanded(row)
}

/* ---------- internals ---------- */

const roomColumns = `
	rm.room_id, rm.tenant_id, rm.org_id, rm.floor_id, rm.room_no, rm.room_name,
	rm.room_type_id, rm.description, rm.status, rm.created_at, rm.updated_at, rm.row_version`

func baseSelectRoom() string {
	return "SELECT" + roomColumns + " FROM room rm"
}

func baseSelectRoomExpanded() string {
	return "SELECT" + roomColumns + `,
		f.floor_no, f.floor_name, b.building_id, b.building_name,
		rt.code, rt.name,
		(SELECT COUNT(*) FROM bed bd WHERE bd.room_id = rm.room_id AND bd.status <> 'DELETED'),
		(SELECT COUNT(*) FROM bed bd WHERE bd.room_id = rm.room_id AND bd.status = 'ACTIVE')
	FROM room rm
	JOIN floor f ON f.floor_id = rm.floor_id
	JOIN building b ON b.building_id = f.building_id
	LEFT JOIN room_type rt ON rt.id = rm.room_type_id`
}

func roomDest(rm *models.Room) []any {
	return []any{
		&rm.ID, &rm.TenantID, &rm.OrgID, &rm.FloorID, &rm.RoomNo, &rm.RoomName,
		&rm.RoomTypeID, &rm.Description, &rm.Status, &rm.CreatedAt, &rm.UpdatedAt, &rm.RowVersion,
	}
}

func scanRoom(row pgx.Row) (*models.Room, error) {
	var rm models.Room
	if err := row.Scan(roomDest(&rm)...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rm, nil
}

func scanRoomExpanded(row pgx.Row) (*models.RoomExpanded, error) {
	var e models.RoomExpanded
	dest := append(roomDest(&e.Room),
		&e.FloorNo, &e.FloorName, &e.BuildingID, &e.BuildingName,
		&e.RoomTypeCode, &e.RoomTypeName, &e.BedCount, &e.ActiveBedCount)
	if err := row.Scan(dest...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
