package models

import "time"

type Floor struct {
	ID          int64     `json:"floorId"`
	OrgID       int64     `json:"orgId"`
	BuildingID  int64     `json:"buildingId"`
	FloorNo     int       `json:"floorNo"`
	FloorName   *string   `json:"floorName,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Tracked
}

func (f *Floor) GetID() int64     { return f.ID }
func (f *Floor) GetOrgID() *int64 { return &f.OrgID }

type FloorExpanded struct {
	Floor
	BuildingName   string  `json:"buildingName"`
	BuildingCode   *string `json:"buildingCode,omitempty"`
	RoomCount      int64   `json:"roomCount"`
	BedCount       int64   `json:"bedCount"`
	ActiveBedCount int64   `json:"activeBedCount"`
}
