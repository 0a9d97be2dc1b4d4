package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
)

// LookupRepository reads the facility reference tables. They are seeded,
// never written through the API.
type LookupRepository interface {
	ListRoomTypes(ctx context.Context, tenantID int64, filter ListFilter) ([]*models.RoomType, error)
	ListLocationLevels(ctx context.Context, tenantID int64) ([]*models.LocationLevel, error)
}

type lookupRepo struct{ db DB }

func NewLookupRepository(db DB) LookupRepository {
	return &lookupRepo{db: db}
}

func (r *lookupRepo) ListRoomTypes(ctx context.Context, tenantID int64, filter ListFilter) ([]*models.RoomType, error) {
	return queryAll(ctx, r.db, `
		SELECT id, tenant_id, code, name, description, sort_order, status
		FROM room_type
		WHERE tenant_id=$1 AND `+filter.clause("")+`
		ORDER BY sort_order, name`, []any{tenantID}, scanRoomType)
}

func (r *lookupRepo) ListLocationLevels(ctx context.Context, tenantID int64) ([]*models.LocationLevel, error) {
	return queryAll(ctx, r.db, `
		SELECT id, tenant_id, code, name, sort_order, status
		FROM location_level
		WHERE tenant_id=$1 AND `+ListActive.clause("")+`
		ORDER BY sort_order`, []any{tenantID}, scanLocationLevel)
}

func scanRoomType(row pgx.Row) (*models.RoomType, error) {
	var t models.RoomType
	if err := row.Scan(&t.ID, &t.TenantID, &t.Code, &t.Name, &t.Description, &t.SortOrder, &t.Status); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func scanLocationLevel(row pgx.Row) (*models.LocationLevel, error) {
	var l models.LocationLevel
	if err := row.Scan(&l.ID, &l.TenantID, &l.Code, &l.Name, &l.SortOrder, &l.Status); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}
