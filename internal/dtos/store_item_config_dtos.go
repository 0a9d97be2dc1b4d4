package dtos

import "github.com/google/uuid"

type CreateStoreItemConfigRequest struct {
	StoreID         uuid.UUID `json:"storeId" validate:"required"`
	ItemID          uuid.UUID `json:"itemId" validate:"required"`
	RackNumber      *string   `json:"rackNumber,omitempty" validate:"omitempty,max=50"`
	ShelfNumber     *string   `json:"shelfNumber,omitempty" validate:"omitempty,max=50"`
	BinLocation     *string   `json:"binLocation,omitempty" validate:"omitempty,max=100"`
	ReorderLevel    *int      `json:"reorderLevel,omitempty" validate:"omitempty,min=0"`
	MinOrderQty     *int      `json:"minOrderQty,omitempty" validate:"omitempty,min=1"`
	ReorderTimeDays *int      `json:"reorderTimeDays,omitempty" validate:"omitempty,min=1"`
	Remarks         *string   `json:"remarks,omitempty"`
	IsActive        string    `json:"isActive,omitempty"`
}

// UpdateStoreItemConfigRequest is partial: nil fields keep their value.
// Store and item are fixed once the config exists.
type UpdateStoreItemConfigRequest struct {
	RackNumber      *string `json:"rackNumber,omitempty" validate:"omitempty,max=50"`
	ShelfNumber     *string `json:"shelfNumber,omitempty" validate:"omitempty,max=50"`
	BinLocation     *string `json:"binLocation,omitempty" validate:"omitempty,max=100"`
	ReorderLevel    *int    `json:"reorderLevel,omitempty" validate:"omitempty,min=0"`
	MinOrderQty     *int    `json:"minOrderQty,omitempty" validate:"omitempty,min=1"`
	ReorderTimeDays *int    `json:"reorderTimeDays,omitempty" validate:"omitempty,min=1"`
	Remarks         *string `json:"remarks,omitempty"`
}
