package repositories

import (
	"context"

	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
)

// ScopedRepository is the storage contract of a status-managed record kind.
// GetByID returns the zero T and a nil error when the id does not resolve in
// the tenant. HasDuplicate looks for another non-deleted row in rec's scope
// with the same natural key, excluding rec's own id.
type ScopedRepository[T models.ScopedRecord[ID], ID comparable] interface {
	Create(ctx context.Context, rec T) error
	GetByID(ctx context.Context, tenantID int64, id ID) (T, error)
	UpdateWithRetry(ctx context.Context, tenantID int64, id ID, mutate func(T) error) error
	HasDuplicate(ctx context.Context, rec T) (bool, error)
}
