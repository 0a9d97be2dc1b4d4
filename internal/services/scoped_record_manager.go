package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v4"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/repositories"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

// Messages are the caller-facing texts of one record kind. NotFound is a
// format string taking the id.
type Messages struct {
	NotFound        string
	UpdateDeleted   string
	AlreadyDeleted  string
	ToggleDeleted   string
	ToggleToDeleted string
}

func defaultMessages(label string) Messages {
	title := strings.ToUpper(label[:1]) + label[1:]
	return Messages{
		NotFound:        title + " not found with ID: %v",
		UpdateDeleted:   "Cannot update a DELETED " + label + ".",
		AlreadyDeleted:  title + " is already deleted.",
		ToggleDeleted:   "Cannot toggle status of a DELETED " + label + ".",
		ToggleToDeleted: "Use DELETE endpoint to soft-delete.",
	}
}

/*
RecordKind parameterises ScopedRecordManager for one table.

  - DedupKey returns scope + normalised natural key; an update re-runs the
    duplicate check only when it changes.
  - ParentKey/CheckParent are nil for kinds without a parent. CheckParent
    runs on create and when ParentKey changes on update.
  - AfterSave runs inside the transaction after every create and update.
  - Access, when set, runs next to the org check on every record touched.
*/
type RecordKind[T models.ScopedRecord[ID], ID comparable] struct {
	Label            string
	TargetType       models.AuditTargetType
	DuplicateCode    string
	Messages         Messages
	Repo             repositories.ScopedRepository[T, ID]
	DedupKey         func(T) string
	DuplicateMessage func(T) string
	ParentKey        func(T) any
	CheckParent      func(ctx context.Context, rec T) error
	AfterSave        func(ctx context.Context, rec T) error
	Access           func(caller models.Caller, rec T) error
}

// ScopedRecordManager owns the lifecycle rules shared by every master
// record: status transitions, scoped uniqueness, parent guard, org access.
type ScopedRecordManager[T models.ScopedRecord[ID], ID comparable] struct {
	kind  RecordKind[T, ID]
	tx    repositories.TxRunner
	audit *AuditRecorder
}

func NewScopedRecordManager[T models.ScopedRecord[ID], ID comparable](
	kind RecordKind[T, ID],
	tx repositories.TxRunner,
	audit *AuditRecorder,
) *ScopedRecordManager[T, ID] {
	if kind.Messages == (Messages{}) {
		kind.Messages = defaultMessages(kind.Label)
	}
	return &ScopedRecordManager[T, ID]{kind: kind, tx: tx, audit: audit}
}

// Create stores rec. The caller has filled tenant, scope and the initial
// status; rec is re-read after insert so joined columns are populated.
func (m *ScopedRecordManager[T, ID]) Create(ctx context.Context, caller models.Caller, rec T) (T, error) {
	out, err := m.CreateMany(ctx, caller, []T{rec})
	if err != nil {
		var zero T
		return zero, err
	}
	return out[0], nil
}

// CreateMany stores every record in one transaction; the first failure
// rolls back the whole batch.
func (m *ScopedRecordManager[T, ID]) CreateMany(ctx context.Context, caller models.Caller, recs []T) ([]T, error) {
	out := make([]T, 0, len(recs))
	err := m.tx.WithTx(ctx, func(ctx context.Context) error {
		for _, rec := range recs {
			if err := m.checkOrg(caller, rec); err != nil {
				return err
			}
			if rec.GetStatus().IsDeleted() || !rec.GetStatus().Valid() {
				rec.SetStatus(models.StatusActive)
			}
			if m.kind.CheckParent != nil {
				if err := m.kind.CheckParent(ctx, rec); err != nil {
					return err
				}
			}
			if err := m.checkDuplicate(ctx, rec); err != nil {
				return err
			}
			if err := m.kind.Repo.Create(ctx, rec); err != nil {
				return m.fail("create", rec, err)
			}
			if err := m.afterSave(ctx, rec); err != nil {
				return err
			}
			saved, err := m.reload(ctx, rec)
			if err != nil {
				return err
			}
			out = append(out, saved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, rec := range out {
		m.audit.Record(ctx, caller, models.AuditCreate, m.kind.TargetType, rec.GetID(), rec)
	}
	return out, nil
}

// Update loads the record, applies the caller's changes and writes it back
// under optimistic locking. apply must only touch non-status fields.
func (m *ScopedRecordManager[T, ID]) Update(ctx context.Context, caller models.Caller, id ID, apply func(T) error) (T, error) {
	var saved T
	err := m.tx.WithTx(ctx, func(ctx context.Context) error {
		var current T
		err := m.kind.Repo.UpdateWithRetry(ctx, caller.TenantID, id, func(rec T) error {
			if err := m.checkOrg(caller, rec); err != nil {
				return err
			}
			if err := rec.GetStatus().CheckUpdatable(); err != nil {
				return utils.InvalidStatusError(m.kind.Messages.UpdateDeleted)
			}

			var beforeKey string
			if m.kind.DedupKey != nil {
				beforeKey = m.kind.DedupKey(rec)
			}
			var beforeParent any
			if m.kind.ParentKey != nil {
				beforeParent = m.kind.ParentKey(rec)
			}
			status := rec.GetStatus()

			if err := apply(rec); err != nil {
				return err
			}
			rec.SetStatus(status)

			if err := m.checkOrg(caller, rec); err != nil {
				return err
			}
			if m.kind.ParentKey != nil && m.kind.CheckParent != nil && m.kind.ParentKey(rec) != beforeParent {
				if err := m.kind.CheckParent(ctx, rec); err != nil {
					return err
				}
			}
			if m.kind.DedupKey != nil && m.kind.DedupKey(rec) != beforeKey {
				if err := m.checkDuplicate(ctx, rec); err != nil {
					return err
				}
			}
			current = rec
			return nil
		})
		if err != nil {
			return m.fail("update", current, m.notFound(id, err))
		}
		if err := m.afterSave(ctx, current); err != nil {
			return err
		}
		saved, err = m.reload(ctx, current)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}

	m.audit.Record(ctx, caller, models.AuditUpdate, m.kind.TargetType, id, saved)
	return saved, nil
}

// Delete is the soft delete: status becomes DELETED, the row stays.
func (m *ScopedRecordManager[T, ID]) Delete(ctx context.Context, caller models.Caller, id ID) error {
	err := m.tx.WithTx(ctx, func(ctx context.Context) error {
		err := m.kind.Repo.UpdateWithRetry(ctx, caller.TenantID, id, func(rec T) error {
			if err := m.checkOrg(caller, rec); err != nil {
				return err
			}
			next, err := rec.GetStatus().Delete()
			if err != nil {
				return utils.InvalidStatusError(m.kind.Messages.AlreadyDeleted)
			}
			rec.SetStatus(next)
			return nil
		})
		if err != nil {
			var zero T
			return m.fail("delete", zero, m.notFound(id, err))
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.audit.Record(ctx, caller, models.AuditDelete, m.kind.TargetType, id, nil)
	return nil
}

// ToggleStatus moves a live record between ACTIVE and INACTIVE.
func (m *ScopedRecordManager[T, ID]) ToggleStatus(ctx context.Context, caller models.Caller, id ID, target string) (T, error) {
	var saved T
	err := m.tx.WithTx(ctx, func(ctx context.Context) error {
		var current T
		err := m.kind.Repo.UpdateWithRetry(ctx, caller.TenantID, id, func(rec T) error {
			if err := m.checkOrg(caller, rec); err != nil {
				return err
			}
			next, err := rec.GetStatus().Toggle(target)
			switch {
			case errors.Is(err, models.ErrRecordDeleted):
				return utils.InvalidStatusError(m.kind.Messages.ToggleDeleted)
			case errors.Is(err, models.ErrToggleToDeleted):
				return utils.InvalidStatusError(m.kind.Messages.ToggleToDeleted)
			case errors.Is(err, models.ErrUnknownStatus):
				return utils.ValidationError(map[string]string{"isActive": "isActive must be ACTIVE or INACTIVE"})
			}
			rec.SetStatus(next)
			current = rec
			return nil
		})
		if err != nil {
			var zero T
			return m.fail("update status of", zero, m.notFound(id, err))
		}
		saved, err = m.reload(ctx, current)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}

	m.audit.Record(ctx, caller, models.AuditStatus, m.kind.TargetType, id, map[string]any{"status": saved.GetStatus()})
	return saved, nil
}

// Get returns the record in any status, DELETED included.
func (m *ScopedRecordManager[T, ID]) Get(ctx context.Context, caller models.Caller, id ID) (T, error) {
	var zero T
	rec, err := m.kind.Repo.GetByID(ctx, caller.TenantID, id)
	if err != nil {
		return zero, utils.InternalError(fmt.Sprintf("Failed to load %s", m.kind.Label), err)
	}
	if rec == zero {
		return zero, m.notFoundError(id)
	}
	if err := m.checkOrg(caller, rec); err != nil {
		return zero, err
	}
	return rec, nil
}

/* ---------- internals ---------- */

func (m *ScopedRecordManager[T, ID]) checkOrg(caller models.Caller, rec T) error {
	if err := CheckOrgAccess(caller, rec.GetOrgID()); err != nil {
		return err
	}
	if m.kind.Access != nil {
		return m.kind.Access(caller, rec)
	}
	return nil
}

// CheckOrgAccess is a no-op for kinds without an org.
func CheckOrgAccess(caller models.Caller, orgID *int64) error {
	if orgID == nil || caller.CanAccessOrg(*orgID) {
		return nil
	}
	return utils.ForbiddenError("Access denied to organization: %d", *orgID)
}

func (m *ScopedRecordManager[T, ID]) checkDuplicate(ctx context.Context, rec T) error {
	dup, err := m.kind.Repo.HasDuplicate(ctx, rec)
	if err != nil {
		return utils.InternalError(fmt.Sprintf("Failed to validate %s", m.kind.Label), err)
	}
	if dup {
		return m.duplicate(rec)
	}
	return nil
}

func (m *ScopedRecordManager[T, ID]) duplicate(rec T) error {
	msg := fmt.Sprintf("%s already exists", m.kind.Label)
	var zero T
	if m.kind.DuplicateMessage != nil && rec != zero {
		msg = m.kind.DuplicateMessage(rec)
	}
	return utils.DuplicateError(m.kind.DuplicateCode, "%s", msg)
}

func (m *ScopedRecordManager[T, ID]) afterSave(ctx context.Context, rec T) error {
	if m.kind.AfterSave == nil {
		return nil
	}
	if err := m.kind.AfterSave(ctx, rec); err != nil {
		return m.fail("save", rec, err)
	}
	return nil
}

func (m *ScopedRecordManager[T, ID]) reload(ctx context.Context, rec T) (T, error) {
	saved, err := m.kind.Repo.GetByID(ctx, rec.GetTenantID(), rec.GetID())
	var zero T
	if err != nil {
		return zero, utils.InternalError(fmt.Sprintf("Failed to load %s", m.kind.Label), err)
	}
	if saved == zero {
		return rec, nil
	}
	return saved, nil
}

func (m *ScopedRecordManager[T, ID]) notFound(id ID, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return m.notFoundError(id)
	}
	return err
}

// notFoundError formats Messages.NotFound; a message without a verb is
// used as is.
func (m *ScopedRecordManager[T, ID]) notFoundError(id ID) *utils.AppError {
	if !strings.Contains(m.kind.Messages.NotFound, "%") {
		return utils.NotFoundError("%s", m.kind.Messages.NotFound)
	}
	return utils.NotFoundError(m.kind.Messages.NotFound, id)
}

// fail keeps AppErrors and the errors HandleAppError already maps, turns a
// racing unique-index hit into the kind's Duplicate and wraps the rest.
func (m *ScopedRecordManager[T, ID]) fail(op string, rec T, err error) error {
	var appErr *utils.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case utils.IsUniqueViolation(err):
		return m.duplicate(rec)
	case errors.Is(err, utils.ErrRowVersionConflict), utils.IsConstraintViolation(err):
		return err
	default:
		return utils.InternalError(fmt.Sprintf("Failed to %s %s", op, m.kind.Label), err)
	}
}
