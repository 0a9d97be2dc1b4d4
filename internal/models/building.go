package models

import "time"

// Building is the root of the facility hierarchy, scoped to tenant+org.
type Building struct {
	ID           int64     `json:"buildingId"`
	OrgID        int64     `json:"orgId"`
	BuildingName string    `json:"buildingName"`
	BuildingCode *string   `json:"buildingCode,omitempty"`
	Description  *string   `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Tracked
}

func (b *Building) GetID() int64     { return b.ID }
func (b *Building) GetOrgID() *int64 { return &b.OrgID }

// BuildingExpanded adds the org labels and live child counts.
type BuildingExpanded struct {
	Building
	OrgName        *string `json:"orgName,omitempty"`
	OrgCode        *string `json:"orgCode,omitempty"`
	FloorCount     int64   `json:"floorCount"`
	RoomCount      int64   `json:"roomCount"`
	BedCount       int64   `json:"bedCount"`
	ActiveBedCount int64   `json:"activeBedCount"`
}
