package models

import "time"

// InletPower is the parent of the voltage, equipment class and equipment
// type dropdowns. Tenant-wide, no org.
type InletPower struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Tracked
}

func (p *InletPower) GetID() int64     { return p.ID }
func (p *InletPower) GetOrgID() *int64 { return nil }

type InletPowerExpanded struct {
	InletPower
	VoltageCount        int64 `json:"voltageCount"`
	EquipmentClassCount int64 `json:"equipmentClassCount"`
	EquipmentTypeCount  int64 `json:"equipmentTypeCount"`
}
