package parsers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NormalizeList(t *testing.T) {
	testCases := []struct {
		name   string
		body   string
		expect []any
	}{
		{name: "bare array", body: `[{"id":1},{"id":2}]`, expect: []any{obj("id", 1.0), obj("id", 2.0)}},
		{name: "empty array", body: `[]`, expect: []any{}},
		{name: "data envelope", body: `{"data":[{"id":1}]}`, expect: []any{obj("id", 1.0)}},
		{name: "items envelope", body: `{"items":[{"id":2}]}`, expect: []any{obj("id", 2.0)}},
		{name: "data wins over items", body: `{"data":[{"id":1}],"items":[{"id":2}]}`, expect: []any{obj("id", 1.0)}},
		{name: "null data falls through to items", body: `{"data":null,"items":[{"id":2}]}`, expect: []any{obj("id", 2.0)}},
		{name: "no envelope", body: `{"total":0}`, expect: []any{}},
		{name: "null", body: `null`, expect: []any{}},
		{name: "scalar", body: `42`, expect: []any{}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, NormalizeList(parse(t, tt.body)).Data)
		})
	}
}

func Test_NormalizeRecords(t *testing.T) {
	res := NormalizeRecords(parse(t, `{"records":[{"a":1}],"continuation_token":"tok-1"}`))
	assert.Equal(t, []any{obj("a", 1.0)}, res.Records)
	require.NotNil(t, res.ContinuationToken)
	assert.Equal(t, "tok-1", *res.ContinuationToken)

	res = NormalizeRecords(parse(t, `{"data":[{"a":2}]}`))
	assert.Equal(t, []any{obj("a", 2.0)}, res.Records)
	assert.Nil(t, res.ContinuationToken)

	res = NormalizeRecords(parse(t, `{"records":[],"data":[{"a":2}],"continuation_token":null}`))
	assert.Equal(t, []any{}, res.Records)
	assert.Nil(t, res.ContinuationToken)

	res = NormalizeRecords(parse(t, `[{"a":1}]`))
	assert.Equal(t, []any{}, res.Records)

	res = NormalizeRecords(nil)
	assert.Equal(t, []any{}, res.Records)
}

func Test_NormalizeRecords_token_omitted_on_wire(t *testing.T) {
	data, err := json.Marshal(NormalizeRecords(parse(t, `{"records":[]}`)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"records":[]}`, string(data))
}

func Test_NormalizePage(t *testing.T) {
	page := NormalizePage(parse(t, `{"rows":[{"id":1}],"has_more":true}`))
	assert.Len(t, page.Rows, 1)
	require.NotNil(t, page.HasMore)
	assert.True(t, *page.HasMore)

	page = NormalizePage(parse(t, `{"records":[{"id":1},{"id":2}],"has_more":false}`))
	assert.Len(t, page.Rows, 2)
	require.NotNil(t, page.HasMore)
	assert.False(t, *page.HasMore)

	page = NormalizePage(parse(t, `{"data":[{"id":1}],"has_more":"yes"}`))
	assert.Len(t, page.Rows, 1)
	assert.Nil(t, page.HasMore)

	page = NormalizePage(parse(t, `[{"id":1},{"id":2},{"id":3}]`))
	assert.Len(t, page.Rows, 3)
	assert.Nil(t, page.HasMore)

	page = NormalizePage(parse(t, `{}`))
	assert.Empty(t, page.Rows)
}

func Test_FirstObject(t *testing.T) {
	assert.Equal(t, obj("record_id", "r1"), FirstObject(parse(t, `{"record_id":"r1"}`)))
	assert.Equal(t, obj("record_id", "r1"), FirstObject(parse(t, `[{"record_id":"r1"},{"record_id":"r2"}]`)))
	assert.Equal(t, map[string]any{}, FirstObject(parse(t, `[]`)))
	assert.Equal(t, map[string]any{}, FirstObject(parse(t, `[1]`)))
	assert.Equal(t, map[string]any{}, FirstObject(nil))
}

func Test_NormalizeObject(t *testing.T) {
	table := NormalizeObject(parse(t, `{"data":{"id":"t1","schema":[]}}`))
	assert.Equal(t, "t1", table["id"])

	table = NormalizeObject(parse(t, `{"id":"t1","data":{"id":"other"}}`))
	assert.Equal(t, "t1", table["id"])

	table = NormalizeObject(parse(t, `{"schema":[{"name":"a"}],"data":{}}`))
	assert.Contains(t, table, "schema")

	assert.Equal(t, map[string]any{}, NormalizeObject(parse(t, `"abc"`)))
	assert.Equal(t, obj("id", "r1"), NormalizeObject(parse(t, `[{"id":"r1"}]`)))
}

func Test_DecodeList(t *testing.T) {
	type folder struct {
		Id       int64  `json:"id"`
		Name     string `json:"name"`
		ParentId *int64 `json:"parent_id,omitempty"`
	}

	rows := NormalizeList(parse(t, `[{"id":1,"name":"root"},{"id":"2","name":"child","parent_id":1,"extra":true}]`)).Data

	var out []folder
	require.NoError(t, DecodeList(rows, &out))
	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].Id)
	assert.Equal(t, "root", out[0].Name)
	assert.Nil(t, out[0].ParentId)
	assert.Equal(t, int64(2), out[1].Id)
	require.NotNil(t, out[1].ParentId)
	assert.Equal(t, int64(1), *out[1].ParentId)
}

func Test_DecodeList_error(t *testing.T) {
	type item struct {
		Id int64 `json:"id"`
	}
	var out []item
	assert.Error(t, DecodeList([]any{obj("id", "not-a-number")}, &out))
}

func parse(t *testing.T, body string) any {
	var raw any
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return raw
}

func obj(k string, v any) map[string]any {
	return map[string]any{k: v}
}
