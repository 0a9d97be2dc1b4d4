package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

// normKey is the comparison form of a natural key: trimmed, lower-cased.
func normKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type parentGetter[P models.ScopedRecord[int64]] interface {
	GetByID(ctx context.Context, tenantID int64, id int64) (P, error)
}

/*
requireParent resolves a parent record in the tenant.

	missing  → NotFound with notFound (a format taking the id)
	DELETED  → InvalidStatus "Cannot add <child> to a DELETED <parent>."
*/
func requireParent[P models.ScopedRecord[int64]](
	ctx context.Context,
	repo parentGetter[P],
	tenantID, id int64,
	notFound, child, parent string,
) (P, error) {
	var zero P
	p, err := repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return zero, utils.InternalError(fmt.Sprintf("Failed to load %s", parent), err)
	}
	if p == zero {
		return zero, utils.NotFoundError(notFound, id)
	}
	if p.GetStatus().IsDeleted() {
		return zero, utils.InvalidStatusError(fmt.Sprintf("Cannot add %s to a DELETED %s.", child, parent))
	}
	return p, nil
}

// guardParentOrg checks an org-bound caller may list the children of a
// parent. Platform callers skip the lookup.
func guardParentOrg[P models.ScopedRecord[int64]](
	ctx context.Context,
	repo parentGetter[P],
	caller models.Caller,
	id int64,
	notFound string,
) error {
	if caller.OrgID == models.PlatformOrgID {
		return nil
	}
	var zero P
	p, err := repo.GetByID(ctx, caller.TenantID, id)
	if err != nil {
		return utils.InternalError("Failed to load parent record", err)
	}
	if p == zero {
		return utils.NotFoundError(notFound, id)
	}
	return CheckOrgAccess(caller, p.GetOrgID())
}
