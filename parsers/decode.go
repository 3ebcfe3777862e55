package parsers

import (
	"github.com/mitchellh/mapstructure"
)

// DecodeList converts normalized rows (generic JSON values) into a typed
// slice. out must be a pointer to a slice; fields are matched by json tag and
// loosely typed input is accepted (e.g. a numeric id sent as a string).
func DecodeList(data []any, out any) error {
	return Decode(data, out)
}

// Decode converts a generic JSON value into out, matching fields by json tag.
func Decode(in any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}
