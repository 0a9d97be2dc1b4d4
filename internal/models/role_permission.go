package models

import "time"

// RolePermission grants one action on one resource to a role. Rows are
// hard-deleted; there is no status column.
type RolePermission struct {
	ID         int64     `json:"id"`
	TenantID   int64     `json:"tenantId"`
	RoleID     int64     `json:"roleId"`
	ResourceID int64     `json:"resourceId"`
	ActionID   int64     `json:"actionId"`
	IsAllowed  bool      `json:"isAllowed"`
	GrantedAt  time.Time `json:"grantedAt"`
	GrantedBy  *int64    `json:"grantedBy,omitempty"`
}

type Role struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Code  string `json:"code"`
	Scope string `json:"scope"`
}

type PermissionResource struct {
	ID           int64  `json:"id"`
	ResourceKey  string `json:"resourceKey"`
	ResourceName string `json:"resourceName"`
	ParentID     *int64 `json:"parentId"`
	SortOrder    int    `json:"sortOrder"`
	HasChildren  bool   `json:"-"`
}

type PermissionAction struct {
	ID         int64  `json:"id"`
	ActionKey  string `json:"actionKey"`
	ActionName string `json:"actionName"`
}

// ResourceAction says which actions apply to a leaf resource.
type ResourceAction struct {
	ResourceID int64
	ActionID   int64
}

type RolePermissionExpanded struct {
	RolePermission
	RoleName         string  `json:"roleName"`
	RoleCode         string  `json:"roleCode"`
	RoleScope        string  `json:"roleScope"`
	ResourceKey      string  `json:"resourceKey"`
	ResourceName     string  `json:"resourceName"`
	ResourceParentID *int64  `json:"resourceParentId"`
	ActionKey        string  `json:"actionKey"`
	ActionName       string  `json:"actionName"`
	GrantedByName    *string `json:"grantedByName,omitempty"`
}
