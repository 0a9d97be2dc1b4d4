package models

import "time"

type Bed struct {
	ID        int64     `json:"bedId"`
	OrgID     int64     `json:"orgId"`
	RoomID    int64     `json:"roomId"`
	BedNo     string    `json:"bedNo"`
	BedCode   *string   `json:"bedCode,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Tracked
}

func (b *Bed) GetID() int64     { return b.ID }
func (b *Bed) GetOrgID() *int64 { return &b.OrgID }

type BedExpanded struct {
	Bed
	RoomNo       string  `json:"roomNo"`
	RoomName     *string `json:"roomName,omitempty"`
	FloorID      int64   `json:"floorId"`
	FloorName    *string `json:"floorName,omitempty"`
	FloorNo      int     `json:"floorNo"`
	BuildingID   int64   `json:"buildingId"`
	BuildingName string  `json:"buildingName"`
}
