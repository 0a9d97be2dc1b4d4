package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"golang.org/x/sync/errgroup"
)

// PageRequest is 0-based.
type PageRequest struct {
	Page int
	Size int
}

func (p PageRequest) Offset() int { return p.Page * p.Size }

type Page[T any] struct {
	Items []T
	Total int64
}

// ListFilter selects which statuses a list query returns. DELETED rows are
// never listed.
type ListFilter int

const (
	ListVisible ListFilter = iota // ACTIVE + INACTIVE
	ListActive
)

func (f ListFilter) clause(alias string) string {
	if f == ListActive {
		return alias + "status = 'ACTIVE'"
	}
	return alias + "status <> 'DELETED'"
}

/*
fetchPage runs the COUNT and the LIMIT/OFFSET query. Outside a
transaction both go to the pool concurrently; inside one they share the
tx connection and run in sequence.
*/
func fetchPage[T any](
	ctx context.Context,
	db DB,
	countSQL string,
	pageSQL string,
	args []any,
	page PageRequest,
	scan func(pgx.Row) (T, error),
) (*Page[T], error) {
	n := len(args)
	pagedSQL := fmt.Sprintf("%s LIMIT $%d OFFSET $%d", pageSQL, n+1, n+2)
	pagedArgs := append(append([]any{}, args...), page.Size, page.Offset())

	out := &Page[T]{}
	count := func(ctx context.Context) error {
		return Conn(ctx, db).QueryRow(ctx, countSQL, args...).Scan(&out.Total)
	}
	list := func(ctx context.Context) error {
		rows, err := Conn(ctx, db).Query(ctx, pagedSQL, pagedArgs...)
		if err != nil {
			return err
		}
		items, err := collect(rows, scan)
		if err != nil {
			return err
		}
		out.Items = items
		return nil
	}

	if InTx(ctx) {
		if err := count(ctx); err != nil {
			return nil, err
		}
		if err := list(ctx); err != nil {
			return nil, err
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return count(gctx) })
	g.Go(func() error { return list(gctx) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func queryAll[T any](ctx context.Context, db DB, sql string, args []any, scan func(pgx.Row) (T, error)) ([]T, error) {
	rows, err := Conn(ctx, db).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scan)
}

func collect[T any](rows pgx.Rows, scan func(pgx.Row) (T, error)) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func exists(ctx context.Context, db DB, sql string, args ...any) (bool, error) {
	var found bool
	if err := Conn(ctx, db).QueryRow(ctx, sql, args...).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}
