package dtos

// ----- Building -----

type CreateBuildingRequest struct {
	OrgID        int64   `json:"orgId" validate:"required"`
	BuildingName string  `json:"buildingName" validate:"required,max=150"`
	BuildingCode *string `json:"buildingCode,omitempty" validate:"omitempty,max=50"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=500"`
	IsActive     string  `json:"isActive,omitempty"`
}

type UpdateBuildingRequest struct {
	BuildingID   int64   `json:"buildingId" validate:"required"`
	OrgID        int64   `json:"orgId" validate:"required"`
	BuildingName string  `json:"buildingName" validate:"required,max=150"`
	BuildingCode *string `json:"buildingCode,omitempty" validate:"omitempty,max=50"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// ----- Floor -----

type CreateFloorRequest struct {
	OrgID       int64   `json:"orgId" validate:"required"`
	BuildingID  int64   `json:"buildingId" validate:"required"`
	FloorNo     *int    `json:"floorNo" validate:"required"`
	FloorName   *string `json:"floorName,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=300"`
	IsActive    string  `json:"isActive,omitempty"`
}

type UpdateFloorRequest struct {
	FloorID     int64   `json:"floorId" validate:"required"`
	OrgID       int64   `json:"orgId" validate:"required"`
	BuildingID  int64   `json:"buildingId" validate:"required"`
	FloorNo     *int    `json:"floorNo" validate:"required"`
	FloorName   *string `json:"floorName,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=300"`
}

type BulkCreateFloorsRequest struct {
	Floors []CreateFloorRequest `json:"floors" validate:"required,min=1,max=50,dive"`
}

// ----- Room -----

type CreateRoomRequest struct {
	OrgID       int64   `json:"orgId" validate:"required"`
	FloorID     int64   `json:"floorId" validate:"required"`
	RoomNo      string  `json:"roomNo" validate:"required,max=50"`
	RoomName    *string `json:"roomName,omitempty" validate:"omitempty,max=100"`
	RoomTypeID  *int64  `json:"roomTypeId,omitempty"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=300"`
	IsActive    string  `json:"isActive,omitempty"`
}

type UpdateRoomRequest struct {
	RoomID      int64   `json:"roomId" validate:"required"`
	OrgID       int64   `json:"orgId" validate:"required"`
	FloorID     int64   `json:"floorId" validate:"required"`
	RoomNo      string  `json:"roomNo" validate:"required,max=50"`
	RoomName    *string `json:"roomName,omitempty" validate:"omitempty,max=100"`
	RoomTypeID  *int64  `json:"roomTypeId,omitempty"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=300"`
}

type BulkCreateRoomsRequest struct {
	Rooms []CreateRoomRequest `json:"rooms" validate:"required,min=1,max=50,dive"`
}

// ----- Bed -----

type CreateBedRequest struct {
	OrgID    int64   `json:"orgId" validate:"required"`
	RoomID   int64   `json:"roomId" validate:"required"`
	BedNo    string  `json:"bedNo" validate:"required,max=50"`
	BedCode  *string `json:"bedCode,omitempty" validate:"omitempty,max=80"`
	IsActive string  `json:"isActive,omitempty"`
}

type UpdateBedRequest struct {
	BedID   int64   `json:"bedId" validate:"required"`
	OrgID   int64   `json:"orgId" validate:"required"`
	RoomID  int64   `json:"roomId" validate:"required"`
	BedNo   string  `json:"bedNo" validate:"required,max=50"`
	BedCode *string `json:"bedCode,omitempty" validate:"omitempty,max=80"`
}

type BulkCreateBedsRequest struct {
	Beds []CreateBedRequest `json:"beds" validate:"required,min=1,max=200,dive"`
}

// AutoGenerateBedsRequest numbers new beds after the room's live beds,
// e.g. prefix "ER-B" yields ER-B1, ER-B2, ...
type AutoGenerateBedsRequest struct {
	OrgID  int64   `json:"orgId" validate:"required"`
	RoomID int64   `json:"roomId" validate:"required"`
	Count  int     `json:"count" validate:"required,min=1,max=200"`
	Prefix *string `json:"prefix,omitempty" validate:"omitempty,max=30"`
}
