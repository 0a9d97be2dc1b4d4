package routes

const (
	// Health
	Health  = "/health"
	Metrics = "/metrics"

	// Everything below is mounted on the authenticated /api sub-router.
	APIBase = "/api"

	// ───────────────────────────────
	// Facility hierarchy
	// ───────────────────────────────
	BuildingBase = "/building"
	FloorBase    = "/floor"
	RoomBase     = "/room"
	BedBase      = "/bed"

	// Relative to each facility/device base.
	Create       = "/create"
	CreateBulk   = "/create-bulk"
	Update       = "/update"
	Delete       = "/delete/{id}"
	ToggleStatus = "/toggle-status"
	GetAll       = "/get-all"
	GetAllActive = "/get-all-active"
	GetByID      = "/get-by-id"

	BedAutoGenerate = "/auto-generate"

	// ───────────────────────────────
	// Facility lookups
	// ───────────────────────────────
	RoomTypeGetAll      = "/room-type/get-all"
	LocationLevelGetAll = "/location-level/get-all"

	// ───────────────────────────────
	// Device dropdowns
	// ───────────────────────────────
	InletPowerBase     = "/device/inlet-power"
	VoltageOptionBase  = "/device/voltage-option"
	EquipmentClassBase = "/device/equipment-class"
	EquipmentTypeBase  = "/device/equipment-type"
	RiskTypeBase       = "/device/risk-type"
	DeviceGet          = "/get/{id}"

	// ───────────────────────────────
	// Role permissions
	// ───────────────────────────────
	RolePermissionBase = "/role-permission"
	GetByRole          = "/get-by-role"
	BulkSave           = "/bulk-save"
	Matrix             = "/matrix"

	// ───────────────────────────────
	// Store item config
	// ───────────────────────────────
	StoreItemConfigBase     = "/store-item-config"
	StoreItemConfigByID     = "/{id}"
	StoreItemConfigToggle   = "/{id}/toggle-status"
	StoreItemConfigByStore  = "/store/{storeId}"
	StoreItemConfigLowStock = "/store/{storeId}/low-stock"
)
