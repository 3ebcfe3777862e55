package api

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/block/datatables-go/errors"
	"github.com/block/datatables-go/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTableId(t *testing.T) {
	assert.NoError(t, ValidateTableId(testTableId))
	assert.NoError(t, ValidateTableId("6C1A5F0E-4CF5-4B3B-8B6A-0C5D0E6F7A81"))

	err := ValidateTableId("")
	assert.True(t, errors.IsValidation(err))
	assert.Contains(t, err.Error(), "table id is required")

	err = ValidateTableId("customers")
	assert.True(t, errors.IsValidation(err))
	assert.Contains(t, err.Error(), "table id must be a UUID")
}

func TestValidateRowData(t *testing.T) {
	no := false
	yes := true
	schema := []types.SchemaField{
		{Name: "name", Type: "string", Optional: &no},
		{Name: "age", Type: "integer"},
		{Name: "score", Type: "number"},
		{Name: "active", Type: "boolean"},
		{Name: "born", Type: "date"},
		{Name: "seen", Type: "date_time", Optional: &yes},
		{Name: "avatar", Type: "file"},
	}

	testCases := []struct {
		name         string
		row          map[string]any
		expectFields []string
	}{
		{
			name: "valid",
			row: map[string]any{
				"name":   "Ada",
				"age":    float64(36),
				"score":  "9.5",
				"active": "1",
				"born":   "1815-12-10",
				"seen":   "2024-01-15T10:30:00Z",
				"avatar": map[string]any{"id": "x"},
			},
		},
		{
			name: "optional columns may be absent",
			row:  map[string]any{"name": "Ada"},
		},
		{
			name:         "required column empty",
			row:          map[string]any{"name": ""},
			expectFields: []string{"name"},
		},
		{
			name: "type mismatches",
			row: map[string]any{
				"name":   "Ada",
				"age":    "36.5",
				"score":  "high",
				"active": "yes",
				"born":   "2024-02-30",
			},
			expectFields: []string{"age", "score", "active", "born"},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRowData(tt.row, schema)
			if len(tt.expectFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.True(t, errors.IsValidation(err))
			var fieldErrs validation.Errors
			require.ErrorAs(t, err, &fieldErrs)
			assert.Len(t, fieldErrs, len(tt.expectFields))
			for _, f := range tt.expectFields {
				assert.Contains(t, fieldErrs, f)
			}
		})
	}
}
