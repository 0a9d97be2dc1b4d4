package controllers

import (
	"context"
	"net/http"

	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
)

type LookupService interface {
	RoomTypes(ctx context.Context, caller models.Caller, activeOnly bool) ([]*models.RoomType, error)
	LocationLevels(ctx context.Context, caller models.Caller) ([]*models.LocationLevel, error)
}

type LookupController struct {
	svc LookupService
}

func NewLookupController(svc LookupService) *LookupController {
	return &LookupController{svc: svc}
}

// GET /api/room-type/get-all?activeOnly=true
func (c *LookupController) RoomTypesHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	activeOnly, ok := boolParam(w, r, "activeOnly", true)
	if !ok {
		return
	}
	res, err := c.svc.RoomTypes(r.Context(), caller, activeOnly)
	reply(w, r, http.StatusOK, "Room types retrieved", res, err)
}

// GET /api/location-level/get-all
func (c *LookupController) LocationLevelsHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	res, err := c.svc.LocationLevels(r.Context(), caller)
	reply(w, r, http.StatusOK, "Location levels retrieved", res, err)
}
