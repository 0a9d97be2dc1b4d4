package constants

import "time"

// Duplicate error codes, one per record kind.
const (
	DupBuildingCode       = "DUPLICATE_BUILDING_CODE"
	DupFloorNo            = "DUPLICATE_FLOOR_NO"
	DupRoomNo             = "DUPLICATE_ROOM_NO"
	DupBedNo              = "DUPLICATE_BED_NO"
	DupInletPowerCode     = "DUPLICATE_INLET_POWER_CODE"
	DupVoltageOption      = "DUPLICATE_VOLTAGE_OPTION"
	DupEquipmentClass     = "DUPLICATE_EQUIPMENT_CLASS"
	DupEquipmentType      = "DUPLICATE_EQUIPMENT_TYPE"
	DupRiskTypeCode       = "DUPLICATE_RISK_TYPE_CODE"
	DupStoreItemConfig    = "DUPLICATE_STORE_ITEM_CONFIG"
	DupRoleResourceAction = "DUPLICATE_ROLE_RESOURCE_ACTION"
)

// Default page sizes of the paged list endpoints.
const (
	BuildingPageSize       = 20
	FloorPageSize          = 50
	RoomPageSize           = 50
	BedPageSize            = 100
	RolePermissionPageSize = 20
	MaxPageSize            = 500
)

const (
	DefaultLowStockSweepSpec = "@every 15m"
	LowStockSweepTimeout     = 2 * time.Minute
)
