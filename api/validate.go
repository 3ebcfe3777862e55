package api

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/block/datatables-go/errors"
	"github.com/block/datatables-go/types"
)

// ValidateTableId rejects empty and non-UUID table ids before any request
// is sent. Case is ignored.
func ValidateTableId(tableId string) error {
	err := validation.Validate(
		strings.ToLower(tableId),
		validation.Required.Error("table id is required"),
		is.UUID.Error("table id must be a UUID"),
	)
	return invalid(err)
}

// ValidateRowData checks row against a table schema: every required column
// must carry a non-empty value, and values of integer, number, boolean,
// date and date_time columns must match their type. All offending columns
// are reported at once, keyed by column name.
func ValidateRowData(row map[string]any, schema []types.SchemaField) error {
	errs := validation.Errors{}
	for _, col := range schema {
		val, ok := row[col.Name]
		if !ok || val == nil || fmt.Sprint(val) == "" {
			if col.Required() {
				errs[col.Name] = validation.NewError("required", "required field missing")
			}
			continue
		}

		ft := types.FieldTypes.Parse(col.Type)
		if types.FieldTypes.IsChecked(ft) && !types.FieldTypes.Is(val, ft) {
			errs[col.Name] = validation.NewError(
				"type_"+ft.Name(),
				fmt.Sprintf("must be a valid %s", ft.Name()),
			)
		}
	}
	return invalid(errs.Filter())
}

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return &errors.ApiError{
		Stage:     errors.STAGE_BEFORE_REQUEST,
		Type:      errors.TYPE_INVALID_DATA,
		SourceErr: err,
	}
}
