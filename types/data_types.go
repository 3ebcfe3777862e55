package types

import (
	"encoding/json"
	"math"
	"regexp"
	"time"

	"github.com/araddon/dateparse"
)

// Field Types in Datatables-Go
//
// This package provides value validation for the column types a data table
// schema can declare.
//
// Available Types:
// - String:   Any value; the service coerces it
// - Integer:  Whole numbers, native or as a decimal string ("-42")
// - Number:   Decimal numbers, native or as a string ("3.14")
// - Boolean:  true/false, "true"/"false", 0/1, "0"/"1"
// - Date:     Anything github.com/araddon/dateparse understands
// - DateTime: Same as Date; the service stores the time part
// - File:     Opaque; not checked client side
// - Relation: Opaque; not checked client side
//
// Usage:
//
//	fieldType := types.FieldTypes.Parse(column.Type)
//	if types.FieldTypes.IsChecked(fieldType) && !types.FieldTypes.Is(value, fieldType) {
//	    // reject the row
//	}
//
// Important Notes:
// - Values decoded from JSON arrive as float64; an integral float64 is
//   a valid Integer
// - Unknown types never validate

const (
	fieldTypeNameString   = "string"
	fieldTypeNameInteger  = "integer"
	fieldTypeNameNumber   = "number"
	fieldTypeNameBoolean  = "boolean"
	fieldTypeNameDate     = "date"
	fieldTypeNameDateTime = "date_time"
	fieldTypeNameFile     = "file"
	fieldTypeNameRelation = "relation"
	fieldTypeNameUnknown  = "unknown"
)

type FieldType interface {
	is(any) bool
	Name() string
}

type fieldTypes struct {
	String   FieldType
	Integer  FieldType
	Number   FieldType
	Boolean  FieldType
	Date     FieldType
	DateTime FieldType
	File     FieldType
	Relation FieldType
	Unknown  FieldType
}

var (
	FieldTypes = fieldTypes{
		fieldTypeString{},
		fieldTypeInteger{},
		fieldTypeNumber{},
		fieldTypeBoolean{},
		fieldTypeDate{},
		fieldTypeDateTime{},
		fieldTypeFile{},
		fieldTypeRelation{},
		fieldTypeUnknown{},
	}
)

func (f fieldTypes) Parse(name string) FieldType {
	switch name {
	case f.String.Name():
		return f.String
	case f.Integer.Name():
		return f.Integer
	case f.Number.Name():
		return f.Number
	case f.Boolean.Name():
		return f.Boolean
	case f.Date.Name():
		return f.Date
	case f.DateTime.Name():
		return f.DateTime
	case f.File.Name():
		return f.File
	case f.Relation.Name():
		return f.Relation
	}
	return f.Unknown
}

func (f fieldTypes) IsKnown(t FieldType) bool {
	return t.Name() != f.Unknown.Name()
}

// IsChecked reports whether values of t are validated before being sent.
func (f fieldTypes) IsChecked(t FieldType) bool {
	switch t.Name() {
	case f.Integer.Name(), f.Number.Name(), f.Boolean.Name(), f.Date.Name(), f.DateTime.Name():
		return true
	}
	return false
}

func (f fieldTypes) Is(fieldValue any, t FieldType) bool {
	return t.is(fieldValue)
}

type fieldTypeString struct{}
type fieldTypeInteger struct{}
type fieldTypeNumber struct{}
type fieldTypeBoolean struct{}
type fieldTypeDate struct{}
type fieldTypeDateTime struct{}
type fieldTypeFile struct{}
type fieldTypeRelation struct{}
type fieldTypeUnknown struct{}

var (
	_ FieldType = fieldTypeString{}
	_ FieldType = fieldTypeInteger{}
	_ FieldType = fieldTypeNumber{}
	_ FieldType = fieldTypeBoolean{}
	_ FieldType = fieldTypeDate{}
	_ FieldType = fieldTypeDateTime{}
	_ FieldType = fieldTypeFile{}
	_ FieldType = fieldTypeRelation{}
	_ FieldType = fieldTypeUnknown{}
)

func (s fieldTypeString) Name() string {
	return fieldTypeNameString
}

func (s fieldTypeInteger) Name() string {
	return fieldTypeNameInteger
}

func (s fieldTypeNumber) Name() string {
	return fieldTypeNameNumber
}

func (s fieldTypeBoolean) Name() string {
	return fieldTypeNameBoolean
}

func (s fieldTypeDate) Name() string {
	return fieldTypeNameDate
}

func (s fieldTypeDateTime) Name() string {
	return fieldTypeNameDateTime
}

func (s fieldTypeFile) Name() string {
	return fieldTypeNameFile
}

func (s fieldTypeRelation) Name() string {
	return fieldTypeNameRelation
}

func (s fieldTypeUnknown) Name() string {
	return fieldTypeNameUnknown
}

func (s fieldTypeString) is(val any) bool {
	return val != nil
}

var (
	integerPattern = regexp.MustCompile(`^-?\d+$`)
	numberPattern  = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

func (s fieldTypeInteger) is(val any) bool {
	switch v := val.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return isIntegral(float64(v))
	case float64:
		return isIntegral(v)
	case json.Number:
		return integerPattern.MatchString(v.String())
	case string:
		return integerPattern.MatchString(v)
	}
	return false
}

func isIntegral(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
}

func (s fieldTypeNumber) is(val any) bool {
	switch v := val.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return !math.IsInf(float64(v), 0) && !math.IsNaN(float64(v))
	case float64:
		return !math.IsInf(v, 0) && !math.IsNaN(v)
	case json.Number:
		return numberPattern.MatchString(v.String())
	case string:
		return numberPattern.MatchString(v)
	}
	return false
}

func (s fieldTypeBoolean) is(val any) bool {
	switch v := val.(type) {
	case bool:
		return true
	case string:
		switch v {
		case "true", "false", "0", "1":
			return true
		}
	case float64:
		return v == 0 || v == 1
	case int:
		return v == 0 || v == 1
	case int64:
		return v == 0 || v == 1
	}
	return false
}

func (s fieldTypeDate) is(val any) bool {
	return isTime(val)
}

func (s fieldTypeDateTime) is(val any) bool {
	return isTime(val)
}

func isTime(val any) bool {
	switch v := val.(type) {
	case time.Time:
		return !v.IsZero()
	case string:
		// Bare numbers are accepted by dateparse as years or epoch
		// values; a date column never receives those.
		if numberPattern.MatchString(v) {
			return false
		}
		_, err := dateparse.ParseAny(v)
		return err == nil
	}
	return false
}

func (s fieldTypeFile) is(val any) bool {
	return val != nil
}

func (s fieldTypeRelation) is(val any) bool {
	return val != nil
}

func (s fieldTypeUnknown) is(_ any) bool {
	return false
}
