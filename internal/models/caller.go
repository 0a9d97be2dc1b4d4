package models

import "github.com/google/uuid"

// PlatformOrgID is the org id of platform-level users, who may act on
// every organization of their tenant.
const PlatformOrgID int64 = 0

// Caller is the identity extracted from the access token. It is passed
// explicitly into every service call.
type Caller struct {
	TenantID   int64
	OrgID      int64
	UserID     int64
	Role       string
	HospitalID uuid.UUID
}

// CanAccessOrg is true when the caller is org-unbound or belongs to orgID.
func (c Caller) CanAccessOrg(orgID int64) bool {
	return c.OrgID == PlatformOrgID || c.OrgID == orgID
}
