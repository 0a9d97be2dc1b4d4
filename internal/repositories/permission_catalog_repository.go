package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
)

// PermissionCatalogRepository reads the RBAC reference tables: roles,
// resources, actions and the resource→action mapping.
type PermissionCatalogRepository interface {
	GetRole(ctx context.Context, tenantID, roleID int64) (*models.Role, error)
	ListResources(ctx context.Context) ([]*models.PermissionResource, error)
	ListActions(ctx context.Context) ([]*models.PermissionAction, error)
	ListResourceActions(ctx context.Context) ([]models.ResourceAction, error)
}

type permissionCatalogRepo struct{ db DB }

func NewPermissionCatalogRepository(db DB) PermissionCatalogRepository {
	return &permissionCatalogRepo{db: db}
}

// GetRole matches tenant roles and the system roles (tenant_id NULL).
func (r *permissionCatalogRepo) GetRole(ctx context.Context, tenantID, roleID int64) (*models.Role, error) {
	var ro models.Role
	err := Conn(ctx, r.db).QueryRow(ctx, `
		SELECT id, name, code, scope FROM roles
		WHERE id=$1 AND (tenant_id IS NULL OR tenant_id=$2)
	`, roleID, tenantID).Scan(&ro.ID, &ro.Name, &ro.Code, &ro.Scope)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &ro, nil
}

func (r *permissionCatalogRepo) ListResources(ctx context.Context) ([]*models.PermissionResource, error) {
	return queryAll(ctx, r.db, `
		SELECT res.id, res.resource_key, res.resource_name, res.parent_id, res.sort_order,
		       EXISTS (SELECT 1 FROM resources c WHERE c.parent_id = res.id)
		FROM resources res
		LEFT JOIN resources p ON p.id = res.parent_id
		ORDER BY COALESCE(p.sort_order, res.sort_order), COALESCE(res.parent_id, res.id),
		         res.parent_id NULLS FIRST, res.sort_order, res.id`,
		nil, func(row pgx.Row) (*models.PermissionResource, error) {
			var res models.PermissionResource
			err := row.Scan(&res.ID, &res.ResourceKey, &res.ResourceName, &res.ParentID, &res.SortOrder, &res.HasChildren)
			return &res, err
		})
}

func (r *permissionCatalogRepo) ListActions(ctx context.Context) ([]*models.PermissionAction, error) {
	return queryAll(ctx, r.db, `SELECT id, action_key, action_name FROM actions ORDER BY id`,
		nil, func(row pgx.Row) (*models.PermissionAction, error) {
			var a models.PermissionAction
			err := row.Scan(&a.ID, &a.ActionKey, &a.ActionName)
			return &a, err
		})
}

func (r *permissionCatalogRepo) ListResourceActions(ctx context.Context) ([]models.ResourceAction, error) {
	return queryAll(ctx, r.db, `SELECT resource_id, action_id FROM resource_actions ORDER BY resource_id, action_id`,
		nil, func(row pgx.Row) (models.ResourceAction, error) {
			var ra models.ResourceAction
			err := row.Scan(&ra.ResourceID, &ra.ActionID)
			return ra, err
		})
}
