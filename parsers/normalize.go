package parsers

// The Data Tables API is not consistent about response shapes:
//   - GET /api/projects and GET /api/folders return a bare array
//   - GET /api/data_tables returns {"data": [...]}
//   - the records query endpoints return {"records": [...]} or, on the
//     legacy path, {"data": [...]}
//
// The functions below reconcile those shapes into one canonical form each,
// so call sites never branch on the raw JSON.

type ListResponse struct {
	Data []any `json:"data"`
}

type RecordsResponse struct {
	Records           []any   `json:"records"`
	ContinuationToken *string `json:"continuation_token,omitempty"`
}

// Page is one page of an offset-paged listing.
type Page struct {
	Rows []any
	// HasMore is nil when the endpoint sent no explicit has_more flag.
	HasMore *bool
}

// NormalizeList accepts a bare array, or an object enveloping the array in
// "data" or "items" (first present wins). Anything else yields an empty list.
func NormalizeList(raw any) ListResponse {
	if arr, ok := raw.([]any); ok {
		return ListResponse{Data: arr}
	}
	return ListResponse{Data: firstList(raw, "data", "items")}
}

// NormalizeRecords reads rows from "records" then "data" and carries the
// continuation token through verbatim.
func NormalizeRecords(raw any) RecordsResponse {
	res := RecordsResponse{
		Records: firstList(raw, "records", "data"),
	}
	if obj, ok := raw.(map[string]any); ok {
		if token, ok := obj["continuation_token"].(string); ok {
			res.ContinuationToken = &token
		}
	}
	return res
}

// NormalizePage reads rows from "rows", "records", "data" then "items",
// or from the root when the page is a bare array.
func NormalizePage(raw any) Page {
	if arr, ok := raw.([]any); ok {
		return Page{Rows: arr}
	}

	page := Page{
		Rows: firstList(raw, "rows", "records", "data", "items"),
	}
	if obj, ok := raw.(map[string]any); ok {
		if hasMore, ok := obj["has_more"].(bool); ok {
			page.HasMore = &hasMore
		}
	}
	return page
}

func firstList(raw any, keys ...string) []any {
	obj, ok := raw.(map[string]any)
	if !ok {
		return []any{}
	}
	for _, key := range keys {
		if arr, ok := obj[key].([]any); ok {
			return arr
		}
	}
	return []any{}
}

// FirstObject unwraps endpoints that sometimes answer a single-object
// request with an array: the first element wins, an empty array or a
// non-object yields an empty map.
func FirstObject(raw any) map[string]any {
	switch v := raw.(type) {
	case map[string]any:
		return v
	case []any:
		if len(v) > 0 {
			if obj, ok := v[0].(map[string]any); ok {
				return obj
			}
		}
	}
	return map[string]any{}
}

// NormalizeObject unwraps single-resource responses that may arrive either
// bare or enveloped as {"data": {...}}. A root object that carries its own
// "id" or "schema" is never unwrapped.
func NormalizeObject(raw any) map[string]any {
	obj := FirstObject(raw)
	if _, ok := obj["id"]; ok {
		return obj
	}
	if _, ok := obj["schema"]; ok {
		return obj
	}
	if inner, ok := obj["data"].(map[string]any); ok {
		return inner
	}
	return obj
}
