package controllers

import (
	"context"
	"net/http"

	"github.com/vishnuvarthan48/biomedical-cms/internal/constants"
	"github.com/vishnuvarthan48/biomedical-cms/internal/dtos"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/repositories"
)

// facilityLister is the read side shared by building, floor, room and bed.
// parentID is the list filter: orgId, buildingId, floorId or roomId.
type facilityLister interface {
	GetAll(ctx context.Context, caller models.Caller, parentID int64, expand bool, page repositories.PageRequest) (any, error)
	GetAllActive(ctx context.Context, caller models.Caller, parentID int64, page repositories.PageRequest) (any, error)
	GetByID(ctx context.Context, caller models.Caller, id int64, expand bool) (any, error)
}

type listMessages struct {
	All     string
	Active  string
	Fetched string
}

type facilityListHandlers struct {
	svc         facilityLister
	parentParam string
	pageSize    int
	msg         listMessages
}

// GET .../get-all?<parent>=&expand=&page=&size=
func (h facilityListHandlers) GetAllHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	parentID, ok := requiredInt64(w, r, h.parentParam)
	if !ok {
		return
	}
	expand, ok := boolParam(w, r, "expand", false)
	if !ok {
		return
	}
	page, ok := pageParams(w, r, h.pageSize)
	if !ok {
		return
	}
	res, err := h.svc.GetAll(r.Context(), caller, parentID, expand, page)
	reply(w, r, http.StatusOK, h.msg.All, res, err)
}

// POST .../get-all-active?<parent>=&page=&size=
func (h facilityListHandlers) GetAllActiveHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	parentID, ok := requiredInt64(w, r, h.parentParam)
	if !ok {
		return
	}
	page, ok := pageParams(w, r, h.pageSize)
	if !ok {
		return
	}
	res, err := h.svc.GetAllActive(r.Context(), caller, parentID, page)
	reply(w, r, http.StatusOK, h.msg.Active, res, err)
}

// GET .../get-by-id?id=&expand=
func (h facilityListHandlers) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := requiredInt64(w, r, "id")
	if !ok {
		return
	}
	expand, ok := boolParam(w, r, "expand", false)
	if !ok {
		return
	}
	res, err := h.svc.GetByID(r.Context(), caller, id, expand)
	reply(w, r, http.StatusOK, h.msg.Fetched, res, err)
}

// ----- Building -----

type BuildingService interface {
	recordService[dtos.CreateBuildingRequest, dtos.UpdateBuildingRequest, *models.Building]
	facilityLister
}

type BuildingController struct {
	mutationHandlers[dtos.CreateBuildingRequest, dtos.UpdateBuildingRequest, *models.Building]
	facilityListHandlers
}

func NewBuildingController(svc BuildingService) *BuildingController {
	return &BuildingController{
		mutationHandlers: mutationHandlers[dtos.CreateBuildingRequest, dtos.UpdateBuildingRequest, *models.Building]{
			svc: svc,
			msg: mutationMessages{
				Created: "Building created",
				Updated: "Building updated",
				Deleted: "Building soft-deleted",
				Toggled: "Building status updated",
			},
		},
		facilityListHandlers: facilityListHandlers{
			svc:         svc,
			parentParam: "orgId",
			pageSize:    constants.BuildingPageSize,
			msg:         listMessages{"Buildings retrieved", "Active buildings retrieved", "Building retrieved"},
		},
	}
}

// ----- Floor -----

type FloorService interface {
	recordService[dtos.CreateFloorRequest, dtos.UpdateFloorRequest, *models.Floor]
	facilityLister
	CreateBulk(ctx context.Context, caller models.Caller, req dtos.BulkCreateFloorsRequest) ([]*models.Floor, error)
}

type FloorController struct {
	mutationHandlers[dtos.CreateFloorRequest, dtos.UpdateFloorRequest, *models.Floor]
	facilityListHandlers
	svc FloorService
}

func NewFloorController(svc FloorService) *FloorController {
	return &FloorController{
		mutationHandlers: mutationHandlers[dtos.CreateFloorRequest, dtos.UpdateFloorRequest, *models.Floor]{
			svc: svc,
			msg: mutationMessages{
				Created: "Floor created",
				Updated: "Floor updated",
				Deleted: "Floor soft-deleted",
				Toggled: "Floor status updated",
			},
		},
		facilityListHandlers: facilityListHandlers{
			svc:         svc,
			parentParam: "buildingId",
			pageSize:    constants.FloorPageSize,
			msg:         listMessages{"Floors retrieved", "Active floors retrieved", "Floor retrieved"},
		},
		svc: svc,
	}
}

// POST /api/floor/create-bulk
func (c *FloorController) CreateBulkHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	req, ok := decodeBody[dtos.BulkCreateFloorsRequest](w, r)
	if !ok {
		return
	}
	res, err := c.svc.CreateBulk(r.Context(), caller, req)
	reply(w, r, http.StatusCreated, "Floors created in bulk", res, err)
}

// ----- Room -----

type RoomService interface {
	recordService[dtos.CreateRoomRequest, dtos.UpdateRoomRequest, *models.Room]
	facilityLister
	CreateBulk(ctx context.Context, caller models.Caller, req dtos.BulkCreateRoomsRequest) ([]*models.Room, error)
}

type RoomController struct {
	mutationHandlers[dtos.CreateRoomRequest, dtos.UpdateRoomRequest, *models.Room]
	facilityListHandlers
	svc RoomService
}

func NewRoomController(svc RoomService) *RoomController {
	return &RoomController{
		mutationHandlers: mutationHandlers[dtos.CreateRoomRequest, dtos.UpdateRoomRequest, *models.Room]{
			svc: svc,
			msg: mutationMessages{
				Created: "Room created",
				Updated: "Room updated",
				Deleted: "Room soft-deleted",
				Toggled: "Room status updated",
			},
		},
		facilityListHandlers: facilityListHandlers{
			svc:         svc,
			parentParam: "floorId",
			pageSize:    constants.RoomPageSize,
			msg:         listMessages{"Rooms retrieved", "Active rooms retrieved", "Room retrieved"},
		},
		svc: svc,
	}
}

// POST /api/room/create-bulk
func (c *RoomController) CreateBulkHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	req, ok := decodeBody[dtos.BulkCreateRoomsRequest](w, r)
	if !ok {
		return
	}
	res, err := c.svc.CreateBulk(r.Context(), caller, req)
	reply(w, r, http.StatusCreated, "Rooms created in bulk", res, err)
}

// ----- Bed -----

type BedService interface {
	recordService[dtos.CreateBedRequest, dtos.UpdateBedRequest, *models.Bed]
	facilityLister
	CreateBulk(ctx context.Context, caller models.Caller, req dtos.BulkCreateBedsRequest) ([]*models.Bed, error)
	AutoGenerate(ctx context.Context, caller models.Caller, req dtos.AutoGenerateBedsRequest) ([]*models.Bed, error)
}

type BedController struct {
	mutationHandlers[dtos.CreateBedRequest, dtos.UpdateBedRequest, *models.Bed]
	facilityListHandlers
	svc BedService
}

func NewBedController(svc BedService) *BedController {
	return &BedController{
		mutationHandlers: mutationHandlers[dtos.CreateBedRequest, dtos.UpdateBedRequest, *models.Bed]{
			svc: svc,
			msg: mutationMessages{
				Created: "Bed created",
				Updated: "Bed updated",
				Deleted: "Bed soft-deleted",
				Toggled: "Bed status updated",
			},
		},
		facilityListHandlers: facilityListHandlers{
			svc:         svc,
			parentParam: "roomId",
			pageSize:    constants.BedPageSize,
			msg:         listMessages{"Beds retrieved", "Active beds retrieved", "Bed retrieved"},
		},
		svc: svc,
	}
}

// POST /api/bed/create-bulk
func (c *BedController) CreateBulkHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	req, ok := decodeBody[dtos.BulkCreateBedsRequest](w, r)
	if !ok {
		return
	}
	res, err := c.svc.CreateBulk(r.Context(), caller, req)
	reply(w, r, http.StatusCreated, "Beds created in bulk", res, err)
}

// POST /api/bed/auto-generate
func (c *BedController) AutoGenerateHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	req, ok := decodeBody[dtos.AutoGenerateBedsRequest](w, r)
	if !ok {
		return
	}
	res, err := c.svc.AutoGenerate(r.Context(), caller, req)
	reply(w, r, http.StatusCreated, "Beds auto-generated", res, err)
}
