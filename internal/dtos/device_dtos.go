package dtos

// ----- Inlet power -----

type CreateInletPowerRequest struct {
	Code      string `json:"code" validate:"required,max=10"`
	Name      string `json:"name" validate:"required,max=50"`
	SortOrder *int   `json:"sortOrder,omitempty"`
	IsActive  string `json:"isActive,omitempty"`
}

type UpdateInletPowerRequest struct {
	ID        int64  `json:"id" validate:"required"`
	Code      string `json:"code" validate:"required,max=10"`
	Name      string `json:"name" validate:"required,max=50"`
	SortOrder *int   `json:"sortOrder,omitempty"`
}

// ----- Voltage option -----

type CreateVoltageOptionRequest struct {
	InletPowerID int64    `json:"inletPowerId" validate:"required"`
	DisplayLabel string   `json:"displayLabel" validate:"required,max=30"`
	VoltageV     *float64 `json:"voltageV,omitempty" validate:"omitempty,gt=0,lt=1000000"`
	FrequencyHz  *int     `json:"frequencyHz,omitempty" validate:"omitempty,min=1"`
	IsDefault    *bool    `json:"isDefault,omitempty"`
	SortOrder    *int     `json:"sortOrder,omitempty"`
	IsActive     string   `json:"isActive,omitempty"`
}

type UpdateVoltageOptionRequest struct {
	ID           int64    `json:"id" validate:"required"`
	InletPowerID int64    `json:"inletPowerId" validate:"required"`
	DisplayLabel string   `json:"displayLabel" validate:"required,max=30"`
	VoltageV     *float64 `json:"voltageV,omitempty" validate:"omitempty,gt=0,lt=1000000"`
	FrequencyHz  *int     `json:"frequencyHz,omitempty" validate:"omitempty,min=1"`
	IsDefault    *bool    `json:"isDefault,omitempty"`
	SortOrder    *int     `json:"sortOrder,omitempty"`
}

// ----- Equipment class / type -----

// CreateEquipmentOptionRequest serves both tables; the length limits
// differ per table and are checked by the service.
type CreateEquipmentOptionRequest struct {
	InletPowerID int64  `json:"inletPowerId" validate:"required"`
	Code         string `json:"code" validate:"required,max=30"`
	Name         string `json:"name" validate:"required,max=60"`
	IsDefault    *bool  `json:"isDefault,omitempty"`
	SortOrder    *int   `json:"sortOrder,omitempty"`
	IsActive     string `json:"isActive,omitempty"`
}

type UpdateEquipmentOptionRequest struct {
	ID           int64  `json:"id" validate:"required"`
	InletPowerID int64  `json:"inletPowerId" validate:"required"`
	Code         string `json:"code" validate:"required,max=30"`
	Name         string `json:"name" validate:"required,max=60"`
	IsDefault    *bool  `json:"isDefault,omitempty"`
	SortOrder    *int   `json:"sortOrder,omitempty"`
}

// ----- Device risk type -----

type CreateDeviceRiskTypeRequest struct {
	Code        string  `json:"code" validate:"required,max=20"`
	Name        string  `json:"name" validate:"required,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
	SortOrder   *int    `json:"sortOrder,omitempty"`
	IsActive    string  `json:"isActive,omitempty"`
}

type UpdateDeviceRiskTypeRequest struct {
	ID          int64   `json:"id" validate:"required"`
	Code        string  `json:"code" validate:"required,max=20"`
	Name        string  `json:"name" validate:"required,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
	SortOrder   *int    `json:"sortOrder,omitempty"`
}
