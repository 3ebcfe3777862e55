package types

import "github.com/block/datatables-go/filter"

type Record struct {
	RecordId  string `json:"record_id"`
	CreatedAt string `json:"created_at,omitempty"`
	Document  any    `json:"document,omitempty"`
}

// QueryRequest selects records from a table.
// Select entries are field names or $-prefixed meta-fields
// ($record_id, $created_at, $updated_at).
type QueryRequest struct {
	TableId string
	Select  []string
	Filters *filter.Tree
	Order   *QueryOrder
	// Limit defaults to 100.
	Limit              *int
	ContinuationToken  *string
	TimezoneOffsetSecs *int
}

type QueryOrder struct {
	Column string `json:"column"`
	// Order is "asc" (default) or "desc".
	Order         string `json:"order"`
	CaseSensitive bool   `json:"case_sensitive"`
}

type RecordUpdate struct {
	RecordId string         `json:"record_id"`
	Data     map[string]any `json:"data"`
}

type RecordDeleteResponse struct {
	RecordId string `json:"record_id,omitempty"`
	Status   int    `json:"status"`
}
