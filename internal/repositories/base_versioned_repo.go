package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
)

const maxUpdateRetries = 3

// BaseVersionedRepo holds the DB connection, a tenant-scoped select-by-id
// statement ($1 tenant, $2 id) and a scanner for a single entity type T.
// It gives you:
//
//	GetByID(ctx, tenantID, id) (T, error)
//	UpdateWithRetry(ctx, tenantID, id, mutate, updateIfVersion)
type BaseVersionedRepo[T models.ScopedRecord[ID], ID comparable] struct {
	db         DB
	selectByID string
	scan       func(row pgx.Row) (T, error)
}

// NewBaseRepo is called by concrete repositories.
func NewBaseRepo[T models.ScopedRecord[ID], ID comparable](
	db DB,
	selectByID string,
	scan func(pgx.Row) (T, error),
) *BaseVersionedRepo[T, ID] {
	return &BaseVersionedRepo[T, ID]{db: db, selectByID: selectByID, scan: scan}
}

// -------------------------- public helpers --------------------------

func (b *BaseVersionedRepo[T, ID]) GetByID(ctx context.Context, tenantID int64, id ID) (T, error) {
	row := Conn(ctx, b.db).QueryRow(ctx, b.selectByID, tenantID, id)
	return b.scan(row)
}

// UpdateWithRetry wires the generic optimistic‑locking loop.
func (b *BaseVersionedRepo[T, ID]) UpdateWithRetry(
	ctx context.Context,
	tenantID int64,
	id ID,
	mutate func(T) error,
	updateIfVersion UpdateIfVersionFunc[T],
) error {
	return WithRetry(
		ctx,
		maxUpdateRetries,
		id,
		func(ctx context.Context, id ID) (T, error) { return b.GetByID(ctx, tenantID, id) },
		updateIfVersion,
		mutate,
	)
}
