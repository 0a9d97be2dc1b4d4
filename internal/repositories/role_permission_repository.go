package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type RolePermissionRepository interface {
	Create(ctx context.Context, p *models.RolePermission) error
	CreateMany(ctx context.Context, list []*models.RolePermission) error

	GetByID(ctx context.Context, tenantID, id int64) (*models.RolePermission, error)
	GetExpandedByID(ctx context.Context, tenantID, id int64) (*models.RolePermissionExpanded, error)
	List(ctx context.Context, tenantID int64, page PageRequest) (*Page[*models.RolePermission], error)
	ListExpanded(ctx context.Context, tenantID int64, page PageRequest) (*Page[*models.RolePermissionExpanded], error)
	ListExpandedByRole(ctx context.Context, tenantID, roleID int64) ([]*models.RolePermissionExpanded, error)
	ExistsTriple(ctx context.Context, tenantID, roleID, resourceID, actionID, excludeID int64) (bool, error)

	Update(ctx context.Context, p *models.RolePermission) error
	Delete(ctx context.Context, tenantID, id int64) error
	DeleteByRole(ctx context.Context, tenantID, roleID int64) (int64, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type rolePermissionRepo struct{ db DB }

func NewRolePermissionRepository(db DB) RolePermissionRepository {
	return &rolePermissionRepo{db: db}
}

/* ---------- Create ---------- */

func (r *rolePermissionRepo) Create(ctx context.Context, p *models.RolePermission) error {
	return Conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO role_permissions (
			tenant_id, role_id, resource_id, action_id, is_allowed, granted_at, granted_by
		) VALUES ($1,$2,$3,$4,$5,NOW(),$6)
		RETURNING id, granted_at
	`, p.TenantID, p.RoleID, p.ResourceID, p.ActionID, p.IsAllowed, p.GrantedBy,
	).Scan(&p.ID, &p.GrantedAt)
}

func (r *rolePermissionRepo) CreateMany(ctx context.Context, list []*models.RolePermission) error {
	for _, p := range list {
		if err := r.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

/* ---------- Reads ---------- */

func (r *rolePermissionRepo) GetByID(ctx context.Context, tenantID, id int64) (*models.RolePermission, error) {
	row := Conn(ctx, r.db).QueryRow(ctx, baseSelectRolePermission()+" WHERE rp.tenant_id=$1 AND rp.id=$2", tenantID, id)
	return scanRolePermission(row)
}

func (r *rolePermissionRepo) GetExpandedByID(ctx context.Context, tenantID, id int64) (*models.RolePermissionExpanded, error) {
	row := Conn(ctx, r.db).QueryRow(ctx, baseSelectRolePermissionExpanded()+" WHERE rp.tenant_id=$1 AND rp.id=$2", tenantID, id)
	return scanRolePermissionExpanded(row)
}

func (r *rolePermissionRepo) List(ctx context.Context, tenantID int64, page PageRequest) (*Page[*models.RolePermission], error) {
	return fetchPage(ctx, r.db,
		"SELECT COUNT(*) FROM role_permissions rp WHERE rp.tenant_id=$1",
		baseSelectRolePermission()+" WHERE rp.tenant_id=$1 ORDER BY rp.role_id, rp.resource_id, rp.action_id",
		[]any{tenantID}, page, scanRolePermission)
}

func (r *rolePermissionRepo) ListExpanded(ctx context.Context, tenantID int64, page PageRequest) (*Page[*models.RolePermissionExpanded], error) {
	return fetchPage(ctx, r.db,
		"SELECT COUNT(*) FROM role_permissions rp WHERE rp.tenant_id=$1",
		baseSelectRolePermissionExpanded()+" WHERE rp.tenant_id=$1 ORDER BY ro.name, res.resource_name, a.action_name",
		[]any{tenantID}, page, scanRolePermissionExpanded)
}

func (r *rolePermissionRepo) ListExpandedByRole(ctx context.Context, tenantID, roleID int64) ([]*models.RolePermissionExpanded, error) {
	return queryAll(ctx, r.db,
		baseSelectRolePermissionExpanded()+" WHERE rp.tenant_id=$1 AND rp.role_id=$2 ORDER BY res.resource_name, a.action_name",
		[]any{tenantID, roleID}, scanRolePermissionExpanded)
}

func (r *rolePermissionRepo) ExistsTriple(ctx context.Context, tenantID, roleID, resourceID, actionID, excludeID int64) (bool, error) {
	return exists(ctx, r.db, `
		SELECT EXISTS (
			SELECT 1 FROM role_permissions
			WHERE tenant_id=$1 AND role_id=$2 AND resource_id=$3 AND action_id=$4 AND id <> $5
		)`, tenantID, roleID, resourceID, actionID, excludeID)
}

/* ---------- Update / Delete ---------- */

func (r *rolePermissionRepo) Update(ctx context.Context, p *models.RolePermission) error {
	tag, err := Conn(ctx, r.db).Exec(ctx, `
		UPDATE role_permissions SET
		      role_id=$1, resource_id=$2, action_id=$3, is_allowed=$4
		WHERE tenant_id=$5 AND id=$6
	`, p.RoleID, p.ResourceID, p.ActionID, p.IsAllowed, p.TenantID, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *rolePermissionRepo) Delete(ctx context.Context, tenantID, id int64) error {
	tag, err := Conn(ctx, r.db).Exec(ctx, `DELETE FROM role_permissions WHERE tenant_id=$1 AND id=$2`, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *rolePermissionRepo) DeleteByRole(ctx context.Context, tenantID, roleID int64) (int64, error) {
	tag, err := Conn(ctx, r.db).Exec(ctx, `DELETE FROM role_permissions WHERE tenant_id=$1 AND role_id=$2`, tenantID, roleID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

/* ---------- internals ---------- */

const rolePermissionColumns = `
	rp.id, rp.tenant_id, rp.role_id, rp.resource_id, rp.action_id,
	rp.is_allowed, rp.granted_at, rp.granted_by`

func baseSelectRolePermission() string {
	return "SELECT" + rolePermissionColumns + " FROM role_permissions rp"
}

func baseSelectRolePermissionExpanded() string {
	return "SELECT" + rolePermissionColumns + `,
		ro.name, ro.code, ro.scope,
		res.resource_key, res.resource_name, res.parent_id,
		a.action_key, a.action_name, u.full_name
	FROM role_permissions rp
	JOIN roles ro ON ro.id = rp.role_id
	JOIN resources res ON res.id = rp.resource_id
	JOIN actions a ON a.id = rp.action_id
	LEFT JOIN users u ON u.id = rp.granted_by`
}

func rolePermissionDest(p *models.RolePermission) []any {
	return []any{
		&p.ID, &p.TenantID, &p.RoleID, &p.ResourceID, &p.ActionID,
		&p.IsAllowed, &p.GrantedAt, &p.GrantedBy,
	}
}

func scanRolePermission(row pgx.Row) (*models.RolePermission, error) {
	var p models.RolePermission
	if err := row.Scan(rolePermissionDest(&p)...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func scanRolePermissionExpanded(row pgx.Row) (*models.RolePermissionExpanded, error) {
	var e models.RolePermissionExpanded
	dest := append(rolePermissionDest(&e.RolePermission),
		&e.RoleName, &e.RoleCode, &e.RoleScope,
		&e.ResourceKey, &e.ResourceName, &e.ResourceParentID,
		&e.ActionKey, &e.ActionName, &e.GrantedByName)
	if err := row.Scan(dest...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
