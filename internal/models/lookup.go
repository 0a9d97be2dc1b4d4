package models

// RoomType and LocationLevel are read-only lookups.
type RoomType struct {
	ID          int64        `json:"id"`
	TenantID    int64        `json:"tenantId"`
	Code        string       `json:"code"`
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	SortOrder   int          `json:"sortOrder"`
	Status      RecordStatus `json:"isActive"`
}

type LocationLevel struct {
	ID        int64        `json:"id"`
	TenantID  int64        `json:"tenantId"`
	Code      string       `json:"code"`
	Name      string       `json:"name"`
	SortOrder int          `json:"sortOrder"`
	Status    RecordStatus `json:"isActive"`
}
