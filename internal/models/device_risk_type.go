package models

import "time"

type DeviceRiskType struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Tracked
}

func (d *DeviceRiskType) GetID() int64     { return d.ID }
func (d *DeviceRiskType) GetOrgID() *int64 { return nil }
