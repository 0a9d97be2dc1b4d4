package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
)

// DeviceOptionRepository stores one inlet-power child table. A nil
// inletPowerID lists the options of every inlet power in the tenant.
type DeviceOptionRepository[T models.DeviceOption] interface {
	ScopedRepository[T, int64]
	ListByInletPower(ctx context.Context, tenantID int64, inletPowerID *int64, filter ListFilter) ([]T, error)
	// ClearOtherDefaults drops is_default on every sibling of keepID.
	ClearOtherDefaults(ctx context.Context, tenantID, inletPowerID, keepID int64) error
}

type (
	VoltageOptionRepository   = DeviceOptionRepository[*models.VoltageOption]
	EquipmentOptionRepository = DeviceOptionRepository[*models.EquipmentOption]
)

func clearOtherDefaults(ctx context.Context, db DB, table string, tenantID, inletPowerID, keepID int64) error {
	_, err := Conn(ctx, db).Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET is_default=FALSE, updated_at=NOW(), row_version=row_version+1
		WHERE tenant_id=$1 AND inlet_power_id=$2 AND id <> $3 AND is_default`, table),
		tenantID, inletPowerID, keepID)
	return err
}

func optionListWhere(alias string, inletPowerID *int64, filter ListFilter) (string, []any) {
	if inletPowerID == nil {
		return " WHERE " + alias + "tenant_id=$1 AND " + filter.clause(alias), nil
	}
	return " WHERE " + alias + "tenant_id=$1 AND " + alias + "inlet_power_id=$2 AND " + filter.clause(alias),
		[]any{*inletPowerID}
}

/* ------------------------------------------------------------------
   Voltage
------------------------------------------------------------------ */

type voltageOptionRepo struct {
	*BaseVersionedRepo[*models.VoltageOption, int64]
	db DB
}

func NewVoltageOptionRepository(db DB) VoltageOptionRepository {
	r := &voltageOptionRepo{db: db}
	selectStmt := baseSelectVoltage() + " WHERE v.tenant_id=$1 AND v.id=$2"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanVoltage)
	return r
}

func (r *voltageOptionRepo) Create(ctx context.Context, v *models.VoltageOption) error {
	return Conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO voltage_option (
			tenant_id, inlet_power_id, display_label, voltage_v, frequency_hz, is_default, sort_order, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at, updated_at, row_version
	`, v.TenantID, v.InletPowerID, v.DisplayLabel, numericParam(v.VoltageV), v.FrequencyHz, v.IsDefault, v.SortOrder, v.Status,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt, &v.RowVersion)
}

func (r *voltageOptionRepo) UpdateWithRetry(ctx context.Context, tenantID, id int64, mutate func(*models.VoltageOption) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, tenantID, id, mutate, r.updateIfVersion)
}

func (r *voltageOptionRepo) updateIfVersion(ctx context.Context, v *models.VoltageOption, expected int64) (pgconn.CommandTag, error) {
	return Conn(ctx, r.db).Exec(ctx, `
		UPDATE voltage_option SET
			inlet_power_id=$1, display_label=$2, voltage_v=$3, frequency_hz=$4,
			is_default=$5, sort_order=$6, status=$7,
			updated_at=NOW(), row_version=row_version+1
		WHERE tenant_id=$8 AND id=$9 AND row_version=$10
	`, v.InletPowerID, v.DisplayLabel, numericParam(v.VoltageV), v.FrequencyHz, v.IsDefault, v.SortOrder, v.Status,
		v.TenantID, v.ID, expected)
}

func (r *voltageOptionRepo) HasDuplicate(ctx context.Context, v *models.VoltageOption) (bool, error) {
	return exists(ctx, r.db, `
		SELECT EXISTS (
			SELECT 1 FROM voltage_option
			WHERE tenant_id=$1 AND inlet_power_id=$2
			  AND LOWER(TRIM(display_label)) = LOWER(TRIM($3))
			  AND status <> 'DELETED' AND id <> $4
		)`, v.TenantID, v.InletPowerID, v.DisplayLabel, v.ID)
}

func (r *voltageOptionRepo) ListByInletPower(ctx context.Context, tenantID int64, inletPowerID *int64, filter ListFilter) ([]*models.VoltageOption, error) {
	where, extra := optionListWhere("v.", inletPowerID, filter)
	return queryAll(ctx, r.db,
		baseSelectVoltage()+where+" ORDER BY v.sort_order, v.display_label",
		append([]any{tenantID}, extra...), scanVoltage)
}

func (r *voltageOptionRepo) ClearOtherDefaults(ctx context.Context, tenantID, inletPowerID, keepID int64) error {
	return clearOtherDefaults(ctx, r.db, "voltage_option", tenantID, inletPowerID, keepID)
}

func baseSelectVoltage() string {
	return `
		SELECT v.id, v.tenant_id, v.inlet_power_id, v.display_label, v.voltage_v,
		       v.frequency_hz, v.is_default, v.sort_order, v.status,
		       v.created_at, v.updated_at, v.row_version, ip.code, ip.name
		FROM voltage_option v
		JOIN inlet_power ip ON ip.id = v.inlet_power_id`
}

func scanVoltage(row pgx.Row) (*models.VoltageOption, error) {
	var (
		v     models.VoltageOption
		volts pgtype.Numeric
	)
	if err := row.Scan(
		&v.ID, &v.TenantID, &v.InletPowerID, &v.DisplayLabel, &volts,
		&v.FrequencyHz, &v.IsDefault, &v.SortOrder, &v.Status,
		&v.CreatedAt, &v.UpdatedAt, &v.RowVersion, &v.InletPowerCode, &v.InletPowerName,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	var err error
	if v.VoltageV, err = numericValue(volts); err != nil {
		return nil, err
	}
	return &v, nil
}

/* ------------------------------------------------------------------
   Equipment class / type (same shape, different table)
------------------------------------------------------------------ */

type equipmentOptionRepo struct {
	*BaseVersionedRepo[*models.EquipmentOption, int64]
	db    DB
	table string
}

func NewEquipmentClassRepository(db DB) EquipmentOptionRepository {
	return newEquipmentOptionRepo(db, "equipment_class_option")
}

func NewEquipmentTypeRepository(db DB) EquipmentOptionRepository {
	return newEquipmentOptionRepo(db, "equipment_type_option")
}

func newEquipmentOptionRepo(db DB, table string) *equipmentOptionRepo {
	r := &equipmentOptionRepo{db: db, table: table}
	selectStmt := r.baseSelect() + " WHERE e.tenant_id=$1 AND e.id=$2"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanEquipmentOption)
	return r
}

func (r *equipmentOptionRepo) Create(ctx context.Context, e *models.EquipmentOption) error {
	return Conn(ctx, r.db).QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO %s (
			tenant_id, inlet_power_id, code, name, is_default, sort_order, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at, updated_at, row_version
	`, r.table), e.TenantID, e.InletPowerID, e.Code, e.Name, e.IsDefault, e.SortOrder, e.Status,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt, &e.RowVersion)
}

func (r *equipmentOptionRepo) UpdateWithRetry(ctx context.Context, tenantID, id int64, mutate func(*models.EquipmentOption) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, tenantID, id, mutate, r.updateIfVersion)
}

func (r *equipmentOptionRepo) updateIfVersion(ctx context.Context, e *models.EquipmentOption, expected int64) (pgconn.CommandTag, error) {
	return Conn(ctx, r.db).Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET
			inlet_power_id=$1, code=$2, name=$3, is_default=$4, sort_order=$5, status=$6,
			updated_at=NOW(), row_version=row_version+1
		WHERE tenant_id=$7 AND id=$8 AND row_version=$9
	`, r.table), e.InletPowerID, e.Code, e.Name, e.IsDefault, e.SortOrder, e.Status, e.TenantID, e.ID, expected)
}

func (r *equipmentOptionRepo) HasDuplicate(ctx context.Context, e *models.EquipmentOption) (bool, error) {
	return exists(ctx, r.db, fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE tenant_id=$1 AND inlet_power_id=$2
			  AND LOWER(TRIM(code)) = LOWER(TRIM($3))
			  AND status <> 'DELETED' AND id <> $4
		)`, r.table), e.TenantID, e.InletPowerID, e.Code, e.ID)
}

func (r *equipmentOptionRepo) ListByInletPower(ctx context.Context, tenantID int64, inletPowerID *int64, filter ListFilter) ([]*models.EquipmentOption, error) {
	where, extra := optionListWhere("e.", inletPowerID, filter)
	return queryAll(ctx, r.db,
		r.baseSelect()+where+" ORDER BY e.sort_order, e.name",
		append([]any{tenantID}, extra...), scanEquipmentOption)
}

func (r *equipmentOptionRepo) ClearOtherDefaults(ctx context.Context, tenantID, inletPowerID, keepID int64) error {
	return clearOtherDefaults(ctx, r.db, r.table, tenantID, inletPowerID, keepID)
}

func (r *equipmentOptionRepo) baseSelect() string {
	return fmt.Sprintf(`
		SELECT e.id, e.tenant_id, e.inlet_power_id, e.code, e.name, e.is_default,
		       e.sort_order, e.status, e.created_at, e.updated_at, e.row_version,
		       ip.code, ip.name
		FROM %s e
		JOIN inlet_power ip ON ip.id = e.inlet_power_id`, r.table)
}

func scanEquipmentOption(row pgx.Row) (*models.EquipmentOption, error) {
	var e models.EquipmentOption
	if err := row.Scan(
		&e.ID, &e.TenantID, &e.InletPowerID, &e.Code, &e.Name, &e.IsDefault,
		&e.SortOrder, &e.Status, &e.CreatedAt, &e.UpdatedAt, &e.RowVersion,
		&e.InletPowerCode, &e.InletPowerName,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
