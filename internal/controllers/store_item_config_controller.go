package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/vishnuvarthan48/biomedical-cms/internal/dtos"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

type StoreItemConfigService interface {
	Create(ctx context.Context, caller models.Caller, req dtos.CreateStoreItemConfigRequest) (*models.StoreItemConfig, error)
	Update(ctx context.Context, caller models.Caller, id uuid.UUID, req dtos.UpdateStoreItemConfigRequest) (*models.StoreItemConfig, error)
	Delete(ctx context.Context, caller models.Caller, id uuid.UUID) error
	ToggleStatus(ctx context.Context, caller models.Caller, id uuid.UUID, target string) (*models.StoreItemConfig, error)
	GetByID(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.StoreItemConfig, error)
	GetByStore(ctx context.Context, caller models.Caller, storeID uuid.UUID) ([]*models.StoreItemConfig, error)
	LowStock(ctx context.Context, caller models.Caller, storeID uuid.UUID) ([]*models.StoreItemConfig, error)
}

// StoreItemConfigController keys every call by path id rather than body id.
type StoreItemConfigController struct {
	svc StoreItemConfigService
}

func NewStoreItemConfigController(svc StoreItemConfigService) *StoreItemConfigController {
	return &StoreItemConfigController{svc: svc}
}

// POST /api/store-item-config
func (c *StoreItemConfigController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	req, ok := decodeBody[dtos.CreateStoreItemConfigRequest](w, r)
	if !ok {
		return
	}
	res, err := c.svc.Create(r.Context(), caller, req)
	reply(w, r, http.StatusCreated, "Configuration created", res, err)
}

// PUT /api/store-item-config/{id}
func (c *StoreItemConfigController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	req, ok := decodeBody[dtos.UpdateStoreItemConfigRequest](w, r)
	if !ok {
		return
	}
	res, err := c.svc.Update(r.Context(), caller, id, req)
	reply(w, r, http.StatusOK, "Configuration updated", res, err)
}

// DELETE /api/store-item-config/{id} => 204
func (c *StoreItemConfigController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.svc.Delete(r.Context(), caller, id); err != nil {
		utils.HandleAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PATCH /api/store-item-config/{id}/toggle-status
func (c *StoreItemConfigController) ToggleStatusHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	req, ok := decodeBody[dtos.ToggleStatusRequest](w, r)
	if !ok {
		return
	}
	res, err := c.svc.ToggleStatus(r.Context(), caller, id, req.IsActive)
	reply(w, r, http.StatusOK, "Configuration status updated", res, err)
}

// GET /api/store-item-config/{id}
func (c *StoreItemConfigController) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	res, err := c.svc.GetByID(r.Context(), caller, id)
	reply(w, r, http.StatusOK, "Configuration retrieved", res, err)
}

// GET /api/store-item-config/store/{storeId}
func (c *StoreItemConfigController) GetByStoreHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	storeID, ok := pathUUID(w, r, "storeId")
	if !ok {
		return
	}
	res, err := c.svc.GetByStore(r.Context(), caller, storeID)
	reply(w, r, http.StatusOK, "Configurations retrieved", res, err)
}

// GET /api/store-item-config/store/{storeId}/low-stock
func (c *StoreItemConfigController) LowStockHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	storeID, ok := pathUUID(w, r, "storeId")
	if !ok {
		return
	}
	res, err := c.svc.LowStock(r.Context(), caller, storeID)
	reply(w, r, http.StatusOK, "Low-stock configurations retrieved", res, err)
}
