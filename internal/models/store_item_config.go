package models

import (
	"time"

	"github.com/google/uuid"
)

// StoreItemConfig is the reorder policy of one item in one store.
type StoreItemConfig struct {
	ID              uuid.UUID `json:"id"`
	HospitalID      uuid.UUID `json:"hospitalId"`
	StoreID         uuid.UUID `json:"storeId"`
	ItemID          uuid.UUID `json:"itemId"`
	RackNumber      *string   `json:"rackNumber,omitempty"`
	ShelfNumber     *string   `json:"shelfNumber,omitempty"`
	BinLocation     *string   `json:"binLocation,omitempty"`
	ReorderLevel    int       `json:"reorderLevel"`
	MinOrderQty     int       `json:"minOrderQty"`
	ReorderTimeDays int       `json:"reorderTimeDays"`
	Remarks         *string   `json:"remarks,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	Tracked

	// joined from biomedical_store and item_master
	StoreName    string `json:"storeName"`
	ItemCode     string `json:"itemCode"`
	ItemName     string `json:"itemName"`
	CurrentStock int    `json:"currentStock"`
}

func (c *StoreItemConfig) GetID() uuid.UUID { return c.ID }
func (c *StoreItemConfig) GetOrgID() *int64 { return nil }

const (
	DefaultReorderLevel    = 0
	DefaultMinOrderQty     = 1
	DefaultReorderTimeDays = 14
)

// BiomedicalStore and ItemMaster are owned by the inventory module; this
// service only reads them.
type BiomedicalStore struct {
	ID         uuid.UUID    `json:"id"`
	HospitalID uuid.UUID    `json:"hospitalId"`
	StoreName  string       `json:"storeName"`
	Status     RecordStatus `json:"isActive"`
}

type ItemMaster struct {
	ID           uuid.UUID `json:"id"`
	ItemCode     string    `json:"itemCode"`
	ItemName     string    `json:"itemName"`
	CurrentStock int       `json:"currentStock"`
	Status       string    `json:"status"`
}

// ItemStatusActive is the item_master status value of usable items.
const ItemStatusActive = "Active"
