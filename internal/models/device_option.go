package models

import "time"

// DeviceOption is implemented by inlet-power children carrying a default flag.
type DeviceOption interface {
	ScopedRecord[int64]
	GetInletPowerID() int64
	IsDefaultOption() bool
}

type VoltageOption struct {
	ID           int64     `json:"id"`
	InletPowerID int64     `json:"inletPowerId"`
	DisplayLabel string    `json:"displayLabel"`
	VoltageV     *float64  `json:"voltageV,omitempty"`
	FrequencyHz  *int      `json:"frequencyHz,omitempty"`
	IsDefault    bool      `json:"isDefault"`
	SortOrder    int       `json:"sortOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Tracked
	InletPowerLabel
}

func (v *VoltageOption) GetID() int64           { return v.ID }
func (v *VoltageOption) GetOrgID() *int64       { return nil }
func (v *VoltageOption) GetInletPowerID() int64 { return v.InletPowerID }
func (v *VoltageOption) IsDefaultOption() bool  { return v.IsDefault }

// EquipmentOption backs both the equipment class and equipment type tables.
type EquipmentOption struct {
	ID           int64     `json:"id"`
	InletPowerID int64     `json:"inletPowerId"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	IsDefault    bool      `json:"isDefault"`
	SortOrder    int       `json:"sortOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Tracked
	InletPowerLabel
}

func (e *EquipmentOption) GetID() int64           { return e.ID }
func (e *EquipmentOption) GetOrgID() *int64       { return nil }
func (e *EquipmentOption) GetInletPowerID() int64 { return e.InletPowerID }
func (e *EquipmentOption) IsDefaultOption() bool  { return e.IsDefault }

// InletPowerLabel is joined in on every option read.
type InletPowerLabel struct {
	InletPowerCode string `json:"inletPowerCode"`
	InletPowerName string `json:"inletPowerName"`
}
