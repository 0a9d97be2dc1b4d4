package app

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishnuvarthan48/biomedical-cms/internal/dtos"
)

var maxTag = regexp.MustCompile(`\bmax=(\d+)\b`)

// varcharWidth returns the declared width of table.column in the embedded schema.
func varcharWidth(t *testing.T, schema, table, column string) int {
	t.Helper()
	block := regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS ` + table + ` \((.*?)\n\);`).FindStringSubmatch(schema)
	require.NotNil(t, block, "table %s", table)
	col := regexp.MustCompile(`(?m)^\s*` + column + `\s+VARCHAR\((\d+)\)`).FindStringSubmatch(block[1])
	require.NotNil(t, col, "%s.%s", table, column)
	n, err := strconv.Atoi(col[1])
	require.NoError(t, err)
	return n
}

func validatedMax(t *testing.T, req any, field string) int {
	t.Helper()
	f, ok := reflect.TypeOf(req).FieldByName(field)
	require.True(t, ok, "%T.%s", req, field)
	m := maxTag.FindStringSubmatch(f.Tag.Get("validate"))
	require.NotNil(t, m, "%T.%s has no max", req, field)
	n, err := strconv.Atoi(m[1])
	require.NoError(t, err)
	return n
}

// Anything the request validators accept must fit the column it is stored in.
func TestSchemaWidthsCoverValidatedLengths(t *testing.T) {
	raw, err := migrationsFS.ReadFile("migrations/00001_master_records.sql")
	require.NoError(t, err)
	schema := string(raw)

	cases := []struct {
		table, column string
		req           any
		field         string
	}{
		{"building", "building_name", dtos.CreateBuildingRequest{}, "BuildingName"},
		{"building", "building_code", dtos.CreateBuildingRequest{}, "BuildingCode"},
		{"building", "building_code", dtos.UpdateBuildingRequest{}, "BuildingCode"},
		{"floor", "floor_name", dtos.CreateFloorRequest{}, "FloorName"},
		{"room", "room_no", dtos.CreateRoomRequest{}, "RoomNo"},
		{"room", "room_no", dtos.UpdateRoomRequest{}, "RoomNo"},
		{"room", "room_name", dtos.CreateRoomRequest{}, "RoomName"},
		{"bed", "bed_no", dtos.CreateBedRequest{}, "BedNo"},
		{"bed", "bed_no", dtos.UpdateBedRequest{}, "BedNo"},
		{"bed", "bed_code", dtos.CreateBedRequest{}, "BedCode"},
		{"bed", "bed_code", dtos.UpdateBedRequest{}, "BedCode"},
		{"inlet_power", "code", dtos.CreateInletPowerRequest{}, "Code"},
		{"inlet_power", "name", dtos.CreateInletPowerRequest{}, "Name"},
		{"voltage_option", "display_label", dtos.CreateVoltageOptionRequest{}, "DisplayLabel"},
		{"equipment_class_option", "code", dtos.CreateEquipmentOptionRequest{}, "Code"},
		{"equipment_class_option", "name", dtos.CreateEquipmentOptionRequest{}, "Name"},
		{"device_risk_type", "code", dtos.CreateDeviceRiskTypeRequest{}, "Code"},
		{"device_risk_type", "name", dtos.CreateDeviceRiskTypeRequest{}, "Name"},
		{"store_item_config", "rack_number", dtos.CreateStoreItemConfigRequest{}, "RackNumber"},
		{"store_item_config", "shelf_number", dtos.CreateStoreItemConfigRequest{}, "ShelfNumber"},
		{"store_item_config", "bin_location", dtos.CreateStoreItemConfigRequest{}, "BinLocation"},
	}
	for _, tc := range cases {
		name := strings.Join([]string{tc.table, tc.column, reflect.TypeOf(tc.req).Name()}, "/")
		t.Run(name, func(t *testing.T) {
			assert.LessOrEqual(t, validatedMax(t, tc.req, tc.field), varcharWidth(t, schema, tc.table, tc.column))
		})
	}

	// Bed auto-generate codes are prefix plus a sequence number.
	autoPrefix := validatedMax(t, dtos.AutoGenerateBedsRequest{}, "Prefix")
	assert.Less(t, autoPrefix, varcharWidth(t, schema, "bed", "bed_code"))
}
