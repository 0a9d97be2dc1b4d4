package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/vishnuvarthan48/biomedical-cms/internal/constants"
	"github.com/vishnuvarthan48/biomedical-cms/internal/dtos"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/repositories"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

const (
	permissionNotFound  = "Permission not found"
	permissionDuplicate = "Permission already exists for this role-resource-action combination"
)

// RolePermissionService manages role × resource × action grants. Unlike
// the master records these rows carry no status and are hard-deleted.
type RolePermissionService struct {
	repo    repositories.RolePermissionRepository
	catalog repositories.PermissionCatalogRepository
	tx      repositories.TxRunner
	audit   *AuditRecorder
}

func NewRolePermissionService(
	repo repositories.RolePermissionRepository,
	catalog repositories.PermissionCatalogRepository,
	tx repositories.TxRunner,
	audit *AuditRecorder,
) *RolePermissionService {
	return &RolePermissionService{repo: repo, catalog: catalog, tx: tx, audit: audit}
}

func (s *RolePermissionService) Create(ctx context.Context, caller models.Caller, req dtos.CreateRolePermissionRequest) (*models.RolePermission, error) {
	p := &models.RolePermission{
		TenantID:   caller.TenantID,
		RoleID:     req.RoleID,
		ResourceID: req.ResourceID,
		ActionID:   req.ActionID,
		IsAllowed:  req.IsAllowed == nil || *req.IsAllowed,
		GrantedBy:  grantedBy(caller),
	}
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.checkTriple(ctx, p, 0); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, p); err != nil {
			return s.fail("create", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, caller, models.AuditCreate, models.TargetRolePermission, p.ID, p)
	return p, nil
}

func (s *RolePermissionService) Update(ctx context.Context, caller models.Caller, req dtos.UpdateRolePermissionRequest) (*models.RolePermission, error) {
	var saved *models.RolePermission
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		p, err := s.load(ctx, caller, req.ID)
		if err != nil {
			return err
		}
		changed := p.RoleID != req.RoleID || p.ResourceID != req.ResourceID || p.ActionID != req.ActionID
		p.RoleID, p.ResourceID, p.ActionID = req.RoleID, req.ResourceID, req.ActionID
		if req.IsAllowed != nil {
			p.IsAllowed = *req.IsAllowed
		}
		if changed {
			if err := s.checkTriple(ctx, p, p.ID); err != nil {
				return err
			}
		}
		if err := s.repo.Update(ctx, p); err != nil {
			return s.fail("update", err)
		}
		saved = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, caller, models.AuditUpdate, models.TargetRolePermission, saved.ID, saved)
	return saved, nil
}

func (s *RolePermissionService) Delete(ctx context.Context, caller models.Caller, id int64) error {
	if err := s.repo.Delete(ctx, caller.TenantID, id); err != nil {
		return s.fail("delete", err)
	}
	s.audit.Record(ctx, caller, models.AuditDelete, models.TargetRolePermission, id, nil)
	return nil
}

func (s *RolePermissionService) GetAll(ctx context.Context, caller models.Caller, expand bool, page repositories.PageRequest) (any, error) {
	if expand {
		res, err := s.repo.ListExpanded(ctx, caller.TenantID, page)
		if err != nil {
			return nil, utils.InternalError("Failed to list permissions", err)
		}
		return dtos.NewPageResponse(res.Items, res.Total, page.Page, page.Size), nil
	}
	res, err := s.repo.List(ctx, caller.TenantID, page)
	if err != nil {
		return nil, utils.InternalError("Failed to list permissions", err)
	}
	return dtos.NewPageResponse(res.Items, res.Total, page.Page, page.Size), nil
}

func (s *RolePermissionService) GetByID(ctx context.Context, caller models.Caller, id int64, expand bool) (any, error) {
	if !expand {
		return s.load(ctx, caller, id)
	}
	p, err := s.repo.GetExpandedByID(ctx, caller.TenantID, id)
	if err != nil {
		return nil, utils.InternalError("Failed to load permission", err)
	}
	if p == nil {
		return nil, utils.NotFoundError(permissionNotFound)
	}
	return p, nil
}

func (s *RolePermissionService) GetByRole(ctx context.Context, caller models.Caller, roleID int64) ([]*models.RolePermissionExpanded, error) {
	list, err := s.repo.ListExpandedByRole(ctx, caller.TenantID, roleID)
	if err != nil {
		return nil, utils.InternalError("Failed to list permissions", err)
	}
	return list, nil
}

// BulkSave replaces the role's permissions with the allowed entries of
// req. A denied entry is simply not stored.
func (s *RolePermissionService) BulkSave(ctx context.Context, caller models.Caller, req dtos.BulkSaveRolePermissionsRequest) (*dtos.BulkSaveRolePermissionsResponse, error) {
	allowed := lo.Filter(req.Permissions, func(e dtos.PermissionEntry, _ int) bool {
		return e.IsAllowed != nil && *e.IsAllowed
	})
	allowed = lo.UniqBy(allowed, func(e dtos.PermissionEntry) [2]int64 {
		return [2]int64{e.ResourceID, e.ActionID}
	})
	rows := lo.Map(allowed, func(e dtos.PermissionEntry, _ int) *models.RolePermission {
		return &models.RolePermission{
			TenantID:   caller.TenantID,
			RoleID:     req.RoleID,
			ResourceID: e.ResourceID,
			ActionID:   e.ActionID,
			IsAllowed:  true,
			GrantedBy:  grantedBy(caller),
		}
	})

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.DeleteByRole(ctx, caller.TenantID, req.RoleID); err != nil {
			return s.fail("replace", err)
		}
		if err := s.repo.CreateMany(ctx, rows); err != nil {
			return s.fail("replace", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, caller, models.AuditUpdate, models.TargetRolePermission, req.RoleID,
		map[string]any{"roleId": req.RoleID, "permissionsCount": len(rows)})
	return &dtos.BulkSaveRolePermissionsResponse{RoleID: req.RoleID, PermissionsCount: len(rows)}, nil
}

/*
Matrix renders every resource with the actions mapped to it and whether
the role holds each one.

	parent resource (no parent, has children) → no actions
	leaf resource                             → one entry per resource_actions row
*/
func (s *RolePermissionService) Matrix(ctx context.Context, caller models.Caller, roleID int64) (*dtos.RolePermissionMatrixResponse, error) {
	role, err := s.catalog.GetRole(ctx, caller.TenantID, roleID)
	if err != nil {
		return nil, utils.InternalError("Failed to load role", err)
	}
	if role == nil {
		return nil, utils.NotFoundError("Role not found with ID: %d", roleID)
	}

	var (
		resources []*models.PermissionResource
		actions   []*models.PermissionAction
		mapping   []models.ResourceAction
		granted   []*models.RolePermissionExpanded
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { resources, err = s.catalog.ListResources(gctx); return })
	g.Go(func() (err error) { actions, err = s.catalog.ListActions(gctx); return })
	g.Go(func() (err error) { mapping, err = s.catalog.ListResourceActions(gctx); return })
	g.Go(func() (err error) { granted, err = s.repo.ListExpandedByRole(gctx, caller.TenantID, roleID); return })
	if err := g.Wait(); err != nil {
		return nil, utils.InternalError("Failed to load permission matrix", err)
	}

	actionByID := lo.KeyBy(actions, func(a *models.PermissionAction) int64 { return a.ID })
	actionsOf := lo.GroupBy(mapping, func(m models.ResourceAction) int64 { return m.ResourceID })
	grantOf := lo.KeyBy(granted, func(p *models.RolePermissionExpanded) [2]int64 {
		return [2]int64{p.ResourceID, p.ActionID}
	})

	groups := lo.Map(resources, func(r *models.PermissionResource, _ int) dtos.MatrixResourceGroup {
		group := dtos.MatrixResourceGroup{
			ResourceID:   r.ID,
			ResourceKey:  r.ResourceKey,
			ResourceName: r.ResourceName,
			ParentID:     r.ParentID,
			IsParent:     r.ParentID == nil && r.HasChildren,
			Actions:      []dtos.MatrixAction{},
		}
		if group.IsParent {
			return group
		}
		for _, m := range actionsOf[r.ID] {
			a, ok := actionByID[m.ActionID]
			if !ok {
				continue
			}
			entry := dtos.MatrixAction{ActionID: a.ID, ActionKey: a.ActionKey, ActionName: a.ActionName}
			if p, ok := grantOf[[2]int64{r.ID, a.ID}]; ok {
				entry.IsAllowed = p.IsAllowed
				entry.PermissionID = lo.ToPtr(p.ID)
			}
			group.Actions = append(group.Actions, entry)
		}
		return group
	})

	return &dtos.RolePermissionMatrixResponse{
		RoleID:           role.ID,
		RoleName:         role.Name,
		RoleCode:         role.Code,
		RoleScope:        role.Scope,
		TotalPermissions: lo.CountBy(granted, func(p *models.RolePermissionExpanded) bool { return p.IsAllowed }),
		ResourceGroups:   groups,
	}, nil
}

/* ---------- internals ---------- */

func (s *RolePermissionService) load(ctx context.Context, caller models.Caller, id int64) (*models.RolePermission, error) {
	p, err := s.repo.GetByID(ctx, caller.TenantID, id)
	if err != nil {
		return nil, utils.InternalError("Failed to load permission", err)
	}
	if p == nil {
		return nil, utils.NotFoundError(permissionNotFound)
	}
	return p, nil
}

func (s *RolePermissionService) checkTriple(ctx context.Context, p *models.RolePermission, excludeID int64) error {
	dup, err := s.repo.ExistsTriple(ctx, p.TenantID, p.RoleID, p.ResourceID, p.ActionID, excludeID)
	if err != nil {
		return utils.InternalError("Failed to validate permission", err)
	}
	if dup {
		return utils.DuplicateError(constants.DupRoleResourceAction, permissionDuplicate)
	}
	return nil
}

func (s *RolePermissionService) fail(op string, err error) error {
	var appErr *utils.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, pgx.ErrNoRows):
		return utils.NotFoundError(permissionNotFound)
	case utils.IsUniqueViolation(err):
		return utils.DuplicateError(constants.DupRoleResourceAction, permissionDuplicate)
	case utils.IsConstraintViolation(err):
		return err
	default:
		return utils.InternalError("Failed to "+op+" permission", err)
	}
}

func grantedBy(caller models.Caller) *int64 {
	if caller.UserID == 0 {
		return nil
	}
	return lo.ToPtr(caller.UserID)
}
