package models

// ScopedRecord is implemented by every status-managed master record.
//
//   - comparable lets generic code compare a value against the zero T
//     (nil for pointer records).
//   - GetOrgID returns nil for tenant-wide kinds.
type ScopedRecord[ID comparable] interface {
	comparable
	GetID() ID
	GetTenantID() int64
	GetOrgID() *int64
	GetStatus() RecordStatus
	SetStatus(RecordStatus)
	GetRowVersion() int64
	SetRowVersion(int64)
}

// Tracked carries the columns every master table shares.
type Tracked struct {
	TenantID int64        `json:"tenantId"`
	Status   RecordStatus `json:"isActive"`
	Versioned
}

func (t *Tracked) GetTenantID() int64       { return t.TenantID }
func (t *Tracked) GetStatus() RecordStatus  { return t.Status }
func (t *Tracked) SetStatus(s RecordStatus) { t.Status = s }
