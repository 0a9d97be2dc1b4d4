package models

import "time"

type Room struct {
	ID          int64     `json:"roomId"`
	OrgID       int64     `json:"orgId"`
	FloorID     int64     `json:"floorId"`
	RoomNo      string    `json:"roomNo"`
	RoomName    *string   `json:"roomName,omitempty"`
	RoomTypeID  *int64    `json:"roomTypeId,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Tracked
}

func (r *Room) GetID() int64     { return r.ID }
func (r *Room) GetOrgID() *int64 { return &r.OrgID }

type RoomExpanded struct {
	Room
	FloorNo        int     `json:"floorNo"`
	FloorName      *string `json:"floorName,omitempty"`
	BuildingID     int64   `json:"buildingId"`
	BuildingName   string  `json:"buildingName"`
	RoomTypeCode   *string `json:"roomTypeCode,omitempty"`
	RoomTypeName   *string `json:"roomTypeName,omitempty"`
	BedCount       int64   `json:"bedCount"`
	ActiveBedCount int64   `json:"activeBedCount"`
}
