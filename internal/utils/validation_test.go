package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleEntry struct {
	ResourceID *int64 `json:"resourceId" validate:"required"`
}

type sampleRequest struct {
	OrgID        *int64        `json:"orgId" validate:"required"`
	BuildingName string        `json:"buildingName" validate:"required,max=5"`
	Entries      []sampleEntry `json:"entries" validate:"required,min=1,dive"`
}

func TestFieldErrorsUseJSONNames(t *testing.T) {
	v := NewValidator()
	err := v.Struct(sampleRequest{BuildingName: "too long", Entries: []sampleEntry{{}}})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, "orgId is required", fields["orgId"])
	assert.Equal(t, "buildingName must be at most 5 characters", fields["buildingName"])
	assert.Equal(t, "resourceId is required", fields["entries[0].resourceId"])
}

func TestTrimPtr(t *testing.T) {
	assert.Nil(t, TrimPtr(nil))
	assert.Nil(t, TrimPtr(Ptr("   ")))
	assert.Equal(t, "B1", *TrimPtr(Ptr(" B1 ")))
}
