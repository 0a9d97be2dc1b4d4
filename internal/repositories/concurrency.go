package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

/*
EntityWithVersion:

  - `comparable` lets us use `==` to compare two values of type T
  - the three concurrency methods
*/
type EntityWithVersion[ID comparable] interface {
	comparable
	GetID() ID
	GetRowVersion() int64
	SetRowVersion(int64)
}

type UpdateIfVersionFunc[T any] func(
	ctx context.Context,
	entity T,
	expectedVersion int64,
) (pgconn.CommandTag, error)

type GetByIDFunc[T any, ID comparable] func(
	ctx context.Context,
	id ID,
) (T, error)

/*
WithRetry runs a read‑mutate‑update loop with optimistic locking.
Errors returned by mutate abort the loop unchanged.
*/
func WithRetry[T EntityWithVersion[ID], ID comparable](
	ctx context.Context,
	maxRetries int,
	id ID,
	getByID GetByIDFunc[T, ID],
	updateIfVersion UpdateIfVersionFunc[T],
	mutate func(T) error,
) error {
	for attempt := 0; attempt < maxRetries; attempt++ {
		current, err := getByID(ctx, id)
		if err != nil {
			return err
		}

		// zero value of T (nil for pointers)
		var zero T
		if current == zero {
			return pgx.ErrNoRows
		}

		oldVersion := current.GetRowVersion()

		if err := mutate(current); err != nil {
			return err
		}

		tag, err := updateIfVersion(ctx, current, oldVersion)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 1 {
			current.SetRowVersion(oldVersion + 1)
			return nil
		}
		// someone else updated first – retry
	}
	return fmt.Errorf("too much contention updating %v: %w", id, utils.ErrRowVersionConflict)
}
