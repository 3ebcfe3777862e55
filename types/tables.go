package types

import "time"

type Table struct {
	Id          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Schema      []SchemaField `json:"schema,omitempty"`
	FolderId    int64         `json:"folder_id,omitempty"`
	CreatedAt   string        `json:"created_at,omitempty"`
	UpdatedAt   string        `json:"updated_at,omitempty"`
}

// SchemaField is one column of a table schema. Type is one of the
// FieldTypes names.
type SchemaField struct {
	Type         string         `json:"type"`
	Name         string         `json:"name"`
	Optional     *bool          `json:"optional,omitempty"`
	FieldId      string         `json:"field_id,omitempty"`
	Hint         string         `json:"hint,omitempty"`
	DefaultValue any            `json:"default_value,omitempty"`
	Multivalue   bool           `json:"multivalue,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Relation     *Relation      `json:"relation,omitempty"`
}

// Required reports whether the column was explicitly declared non-optional.
func (f SchemaField) Required() bool {
	return f.Optional != nil && !*f.Optional
}

type Relation struct {
	TableId string `json:"table_id"`
	FieldId string `json:"field_id"`
}

type TablesRequest struct {
	Page    int
	PerPage int
}

type TableCreateRequest struct {
	Name     string        `json:"name"`
	FolderId int64         `json:"folder_id"`
	Schema   []SchemaField `json:"schema"`
}

// TableUpdateRequest only sends the fields that are set.
type TableUpdateRequest struct {
	Name     string        `json:"name,omitempty"`
	FolderId *int64        `json:"folder_id,omitempty"`
	Schema   []SchemaField `json:"schema,omitempty"`
}

type TableTruncateRequest struct {
	TableId string
	// Confirm must be true; truncation removes every record.
	Confirm bool
}

type TableTruncateResponse struct {
	Success     bool      `json:"success"`
	TruncatedAt time.Time `json:"truncated_at"`
}

type TableRow struct {
	Id        int64          `json:"id"`
	CreatedAt string         `json:"created_at,omitempty"`
	UpdatedAt string         `json:"updated_at,omitempty"`
	Data      map[string]any `json:"data"`
}
