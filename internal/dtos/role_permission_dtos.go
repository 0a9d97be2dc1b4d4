package dtos

type CreateRolePermissionRequest struct {
	RoleID     int64 `json:"roleId" validate:"required"`
	ResourceID int64 `json:"resourceId" validate:"required"`
	ActionID   int64 `json:"actionId" validate:"required"`
	IsAllowed  *bool `json:"isAllowed,omitempty"`
}

type UpdateRolePermissionRequest struct {
	ID         int64 `json:"id" validate:"required"`
	RoleID     int64 `json:"roleId" validate:"required"`
	ResourceID int64 `json:"resourceId" validate:"required"`
	ActionID   int64 `json:"actionId" validate:"required"`
	IsAllowed  *bool `json:"isAllowed,omitempty"`
}

type PermissionEntry struct {
	ResourceID int64 `json:"resourceId" validate:"required"`
	ActionID   int64 `json:"actionId" validate:"required"`
	IsAllowed  *bool `json:"isAllowed" validate:"required"`
}

// BulkSaveRolePermissionsRequest replaces every permission of the role.
type BulkSaveRolePermissionsRequest struct {
	RoleID      int64             `json:"roleId" validate:"required"`
	Permissions []PermissionEntry `json:"permissions" validate:"required,min=1,dive"`
}

type BulkSaveRolePermissionsResponse struct {
	RoleID           int64 `json:"roleId"`
	PermissionsCount int   `json:"permissionsCount"`
}

// ----- Matrix -----

type MatrixAction struct {
	ActionID     int64  `json:"actionId"`
	ActionKey    string `json:"actionKey"`
	ActionName   string `json:"actionName"`
	IsAllowed    bool   `json:"isAllowed"`
	PermissionID *int64 `json:"permissionId"`
}

type MatrixResourceGroup struct {
	ResourceID   int64          `json:"resourceId"`
	ResourceKey  string         `json:"resourceKey"`
	ResourceName string         `json:"resourceName"`
	ParentID     *int64         `json:"parentId"`
	IsParent     bool           `json:"isParent"`
	Actions      []MatrixAction `json:"actions"`
}

type RolePermissionMatrixResponse struct {
	RoleID           int64                 `json:"roleId"`
	RoleName         string                `json:"roleName"`
	RoleCode         string                `json:"roleCode"`
	RoleScope        string                `json:"roleScope"`
	TotalPermissions int                   `json:"totalPermissions"`
	ResourceGroups   []MatrixResourceGroup `json:"resourceGroups"`
}
