package api

import (
	"fmt"
	"net/url"
	"time"

	"github.com/block/datatables-go/errors"
	"github.com/block/datatables-go/pagination"
	"github.com/block/datatables-go/parsers"
	"github.com/block/datatables-go/types"
)

const (
	pathTables        = "/api/data_tables"
	pathTable         = "/api/data_tables/{tableId}"
	pathTableTruncate = "/api/data_tables/{tableId}/truncate"
	pathTableRows     = "/api/data_tables/{tableId}/rows"
)

// Tables implements the /api/data_tables endpoints of the management API.
type Tables struct {
	api    *apiClient
	walker *pagination.Walker
	now    func() time.Time
}

func NewTablesApi(apiToken string, baseUrl string, cfg Config) *Tables {
	api := newApiClient(apiToken, baseUrl, cfg)
	return &Tables{
		api:    api,
		walker: pagination.NewWalker(api.retry, api.logger),
		now:    time.Now,
	}
}

// List returns one page of tables; per_page is capped at 100.
func (c *Tables) List(req types.TablesRequest) ([]types.Table, error) {
	res := []types.Table{}
	err := c.api.listIndex("tables.list", pathTables, req.Page, req.PerPage, nil, &res)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Tables) Get(tableId string) (*types.Table, error) {
	if err := ValidateTableId(tableId); err != nil {
		return nil, err
	}
	return c.send("tables.get", func(raw *any) *errors.ApiError {
		return c.api.getJson(pathWithId(pathTable, "{tableId}", tableId), nil, raw)
	})
}

// Columns returns the column names of the table schema, in schema order.
func (c *Tables) Columns(tableId string) ([]string, error) {
	table, err := c.Get(tableId)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(table.Schema))
	for _, col := range table.Schema {
		names = append(names, col.Name)
	}
	return names, nil
}

// ValidateRow checks row against the current schema of the table.
func (c *Tables) ValidateRow(tableId string, row map[string]any) error {
	table, err := c.Get(tableId)
	if err != nil {
		return err
	}
	return ValidateRowData(row, table.Schema)
}

func (c *Tables) Create(req types.TableCreateRequest) (*types.Table, error) {
	if req.Name == "" {
		return nil, errors.NewValidation("table name is required")
	}
	return c.send("tables.create", func(raw *any) *errors.ApiError {
		return c.api.postJson(pathTables, req, raw)
	})
}

// Update changes the fields set in req; unset fields are left alone.
func (c *Tables) Update(tableId string, req types.TableUpdateRequest) (*types.Table, error) {
	if err := ValidateTableId(tableId); err != nil {
		return nil, err
	}
	return c.send("tables.update", func(raw *any) *errors.ApiError {
		return c.api.putJson(pathWithId(pathTable, "{tableId}", tableId), req, raw)
	})
}

// MoveOrRename moves the table to another folder and/or renames it.
// At least one of name and folderId must be given.
func (c *Tables) MoveOrRename(tableId string, name string, folderId *int64) (*types.Table, error) {
	if name == "" && folderId == nil {
		return nil, errors.NewValidation("provide at least one of name/folder_id")
	}
	return c.Update(tableId, types.TableUpdateRequest{
		Name:     name,
		FolderId: folderId,
	})
}

// Truncate removes every record of the table and keeps its schema.
// It refuses to run unless req.Confirm is true.
func (c *Tables) Truncate(req types.TableTruncateRequest) (*types.TableTruncateResponse, error) {
	if err := ValidateTableId(req.TableId); err != nil {
		return nil, err
	}
	if !req.Confirm {
		return nil, errors.NewValidation("truncation not confirmed")
	}

	err := c.api.do("tables.truncate", func() *errors.ApiError {
		return c.api.postJson(pathWithId(pathTableTruncate, "{tableId}", req.TableId), nil, nil)
	})
	if err != nil {
		return nil, err
	}
	return &types.TableTruncateResponse{
		Success:     true,
		TruncatedAt: c.now().UTC(),
	}, nil
}

// Rows returns every row of the table, walking offset pages of pageSize
// (default 100). Listings stop after offset 10000.
func (c *Tables) Rows(tableId string, pageSize int) ([]types.TableRow, error) {
	if err := ValidateTableId(tableId); err != nil {
		return nil, err
	}

	path := pathWithId(pathTableRows, "{tableId}", tableId)
	rows, err := c.walker.WalkAll("tables.rows", func(offset int, limit int) (any, error) {
		query := url.Values{}
		query.Set("offset", fmt.Sprint(offset))
		query.Set("limit", fmt.Sprint(limit))

		var raw any
		err := c.api.getJson(path, query, &raw)
		return toNilErr(raw, err)
	}, pageSize)
	if err != nil {
		return nil, err
	}

	res := []types.TableRow{}
	if err := decode(rows, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Tables) send(fnName string, fn func(raw *any) *errors.ApiError) (*types.Table, error) {
	var raw any
	err := c.api.do(fnName, func() *errors.ApiError {
		return fn(&raw)
	})
	if err != nil {
		return nil, err
	}

	var table types.Table
	if err := decode(parsers.NormalizeObject(raw), &table); err != nil {
		return nil, err
	}
	return &table, nil
}
