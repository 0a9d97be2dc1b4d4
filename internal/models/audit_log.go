package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
	AuditStatus AuditAction = "STATUS"
)

type AuditTargetType string

const (
	TargetBuilding        AuditTargetType = "BUILDING"
	TargetFloor           AuditTargetType = "FLOOR"
	TargetRoom            AuditTargetType = "ROOM"
	TargetBed             AuditTargetType = "BED"
	TargetInletPower      AuditTargetType = "INLET_POWER"
	TargetVoltageOption   AuditTargetType = "VOLTAGE_OPTION"
	TargetEquipmentClass  AuditTargetType = "EQUIPMENT_CLASS"
	TargetEquipmentType   AuditTargetType = "EQUIPMENT_TYPE"
	TargetDeviceRiskType  AuditTargetType = "DEVICE_RISK_TYPE"
	TargetRolePermission  AuditTargetType = "ROLE_PERMISSION"
	TargetStoreItemConfig AuditTargetType = "STORE_ITEM_CONFIG"
)

type AuditLog struct {
	ID         uuid.UUID       `json:"id"`
	TenantID   int64           `json:"tenantId"`
	UserID     int64           `json:"userId"`
	Action     AuditAction     `json:"action"`
	TargetID   string          `json:"targetId"`
	TargetType AuditTargetType `json:"targetType"`
	Details    json.RawMessage `json:"details,omitempty"` // JSONB snapshot after the change
	CreatedAt  time.Time       `json:"createdAt"`
}
