package controllers

import (
	"context"
	"net/http"

	"github.com/vishnuvarthan48/biomedical-cms/internal/constants"
	"github.com/vishnuvarthan48/biomedical-cms/internal/dtos"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/repositories"
)

type RolePermissionService interface {
	Create(ctx context.Context, caller models.Caller, req dtos.CreateRolePermissionRequest) (*models.RolePermission, error)
	Update(ctx context.Context, caller models.Caller, req dtos.UpdateRolePermissionRequest) (*models.RolePermission, error)
	Delete(ctx context.Context, caller models.Caller, id int64) error
	GetAll(ctx context.Context, caller models.Caller, expand bool, page repositories.PageRequest) (any, error)
	GetByID(ctx context.Context, caller models.Caller, id int64, expand bool) (any, error)
	GetByRole(ctx context.Context, caller models.Caller, roleID int64) ([]*models.RolePermissionExpanded, error)
	BulkSave(ctx context.Context, caller models.Caller, req dtos.BulkSaveRolePermissionsRequest) (*dtos.BulkSaveRolePermissionsResponse, error)
	Matrix(ctx context.Context, caller models.Caller, roleID int64) (*dtos.RolePermissionMatrixResponse, error)
}

type RolePermissionController struct {
	svc RolePermissionService
}

func NewRolePermissionController(svc RolePermissionService) *RolePermissionController {
	return &RolePermissionController{svc: svc}
}

// POST /api/role-permission/create
func (c *RolePermissionController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	req, ok := decodeBody[dtos.CreateRolePermissionRequest](w, r)
	if !ok {
		return
	}
	res, err := c.svc.Create(r.Context(), caller, req)
	reply(w, r, http.StatusCreated, "Permission created successfully", res, err)
}

// PUT /api/role-permission/update
func (c *RolePermissionController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	req, ok := decodeBody[dtos.UpdateRolePermissionRequest](w, r)
	if !ok {
		return
	}
	res, err := c.svc.Update(r.Context(), caller, req)
	reply(w, r, http.StatusOK, "Permission updated successfully", res, err)
}

// DELETE /api/role-permission/delete/{id}
func (c *RolePermissionController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}
	reply(w, r, http.StatusOK, "Permission deleted successfully", nil, c.svc.Delete(r.Context(), caller, id))
}

// GET /api/role-permission/get-all?expand=&page=&size=
func (c *RolePermissionController) GetAllHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	expand, ok := boolParam(w, r, "expand", false)
	if !ok {
		return
	}
	page, ok := pageParams(w, r, constants.RolePermissionPageSize)
	if !ok {
		return
	}
	res, err := c.svc.GetAll(r.Context(), caller, expand, page)
	msg := "Permissions fetched"
	if expand {
		msg = "Permissions fetched (expanded)"
	}
	reply(w, r, http.StatusOK, msg, res, err)
}

// GET /api/role-permission/get-by-id?id=&expand=
func (c *RolePermissionController) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := requiredInt64(w, r, "id")
	if !ok {
		return
	}
	expand, ok := boolParam(w, r, "expand", false)
	if !ok {
		return
	}
	res, err := c.svc.GetByID(r.Context(), caller, id, expand)
	msg := "Permission fetched"
	if expand {
		msg = "Permission fetched (expanded)"
	}
	reply(w, r, http.StatusOK, msg, res, err)
}

// GET /api/role-permission/get-by-role?roleId=
func (c *RolePermissionController) GetByRoleHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	roleID, ok := requiredInt64(w, r, "roleId")
	if !ok {
		return
	}
	res, err := c.svc.GetByRole(r.Context(), caller, roleID)
	reply(w, r, http.StatusOK, "Permissions for role fetched", res, err)
}

// POST /api/role-permission/bulk-save
func (c *RolePermissionController) BulkSaveHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	req, ok := decodeBody[dtos.BulkSaveRolePermissionsRequest](w, r)
	if !ok {
		return
	}
	res, err := c.svc.BulkSave(r.Context(), caller, req)
	reply(w, r, http.StatusOK, "Permissions saved for role", res, err)
}

// GET /api/role-permission/matrix?roleId=
func (c *RolePermissionController) MatrixHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	roleID, ok := requiredInt64(w, r, "roleId")
	if !ok {
		return
	}
	res, err := c.svc.Matrix(r.Context(), caller, roleID)
	reply(w, r, http.StatusOK, "Permission matrix loaded", res, err)
}
