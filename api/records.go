package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/block/datatables-go/batch"
	"github.com/block/datatables-go/errors"
	"github.com/block/datatables-go/filter"
	"github.com/block/datatables-go/parsers"
	"github.com/block/datatables-go/retry"
	"github.com/block/datatables-go/types"
)

const (
	pathRecordsQuery       = "/api/v1/tables/{tableId}/query"
	pathRecordsQueryLegacy = "/api/v1/tables/{tableId}/records/query"
	pathRecords            = "/api/v1/tables/{tableId}/records"
	pathRecord             = "/api/v1/tables/{tableId}/records/{recordId}"

	defaultQueryLimit = 100
)

// Records implements the v1 records API served from the global records
// host. Batch operations issue one request per item, sequentially.
type Records struct {
	api   *apiClient
	batch *batch.Executor
}

func NewRecordsApi(apiToken string, baseUrl string, cfg Config) *Records {
	api := newApiClient(apiToken, baseUrl, cfg)
	return &Records{
		api: api,
		batch: batch.NewExecutor(
			api.retry,
			batch.WithLogger(api.logger),
			batch.WithMetrics(api.metrics),
		),
	}
}

type queryOrder struct {
	By            string `json:"by"`
	Order         string `json:"order"`
	CaseSensitive bool   `json:"case_sensitive"`
}

type queryBody struct {
	Select             []string        `json:"select,omitempty"`
	Where              filter.Compiled `json:"where,omitempty"`
	Order              *queryOrder     `json:"order,omitempty"`
	Limit              *int            `json:"limit,omitempty"`
	ContinuationToken  *string         `json:"continuation_token,omitempty"`
	TimezoneOffsetSecs *int            `json:"timezone_offset_secs,omitempty"`
}

// Query selects records. The filter tree is compiled into the where clause
// and the limit defaults to 100. The current query path is tried first; on
// 404 the legacy one is used.
func (c *Records) Query(req types.QueryRequest) (*parsers.RecordsResponse, error) {
	if err := ValidateTableId(req.TableId); err != nil {
		return nil, err
	}

	limit := defaultQueryLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	body := queryBody{
		Select:             req.Select,
		Where:              filter.Compile(req.Filters),
		Limit:              &limit,
		ContinuationToken:  req.ContinuationToken,
		TimezoneOffsetSecs: req.TimezoneOffsetSecs,
	}
	if req.Order != nil && req.Order.Column != "" {
		order := req.Order.Order
		if order == "" {
			order = "asc"
		}
		body.Order = &queryOrder{
			By:            req.Order.Column,
			Order:         order,
			CaseSensitive: req.Order.CaseSensitive,
		}
	}
	return c.query("records.query", req.TableId, body)
}

// NextPage fetches the page after the one that returned continuationToken.
// limit may be nil to let the service decide.
func (c *Records) NextPage(tableId string, continuationToken string, limit *int) (*parsers.RecordsResponse, error) {
	if err := ValidateTableId(tableId); err != nil {
		return nil, err
	}
	if continuationToken == "" {
		return nil, errors.NewValidation("continuation token is required")
	}
	return c.query("records.next_page", tableId, queryBody{
		ContinuationToken: &continuationToken,
		Limit:             limit,
	})
}

func (c *Records) query(fnName string, tableId string, body queryBody) (*parsers.RecordsResponse, error) {
	var raw any
	err := retry.DualPath(c.api.retry, fnName,
		func(_ int) error {
			return nilErr(c.api.postJson(pathWithId(pathRecordsQuery, "{tableId}", tableId), body, &raw))
		},
		func(_ int) error {
			return nilErr(c.api.postJson(pathWithId(pathRecordsQueryLegacy, "{tableId}", tableId), body, &raw))
		},
	)
	if err != nil {
		return nil, err
	}

	res := parsers.NormalizeRecords(raw)
	return &res, nil
}

// Create inserts a record. data is keyed by field name or $UUID.
func (c *Records) Create(tableId string, data map[string]any) (*types.Record, error) {
	if err := ValidateTableId(tableId); err != nil {
		return nil, err
	}

	var obj map[string]any
	err := c.api.do("records.create", func() *errors.ApiError {
		var err *errors.ApiError
		obj, err = c.create(tableId, data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toRecord(obj, "")
}

// Update changes the given fields of one record.
func (c *Records) Update(tableId string, recordId string, data map[string]any) (*types.Record, error) {
	if err := validateRecordRef(tableId, recordId); err != nil {
		return nil, err
	}

	var obj map[string]any
	err := c.api.do("records.update", func() *errors.ApiError {
		var err *errors.ApiError
		obj, err = c.update(tableId, recordId, data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toRecord(obj, recordId)
}

// Delete removes one record. The returned status is the one reported by
// the service, or 200 when it reports none.
func (c *Records) Delete(tableId string, recordId string) (*types.RecordDeleteResponse, error) {
	if err := validateRecordRef(tableId, recordId); err != nil {
		return nil, err
	}

	var res *types.RecordDeleteResponse
	err := c.api.do("records.delete", func() *errors.ApiError {
		var err *errors.ApiError
		res, err = c.delete(tableId, recordId)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// BatchCreate creates each record in turn. Results holds the created
// records as returned by the service.
func (c *Records) BatchCreate(tableId string, records []map[string]any) (batch.Result, error) {
	if err := ValidateTableId(tableId); err != nil {
		return batch.Result{}, err
	}

	items := batch.NewItems(records, nil)
	return c.batch.Run("records.batch_create", items, func(item batch.Item) (any, error) {
		obj, err := c.create(tableId, item.Payload.(map[string]any))
		return toNilErr[any](obj, err)
	}), nil
}

// BatchUpdate applies each update in turn. ItemErrors carry the record id.
func (c *Records) BatchUpdate(tableId string, updates []types.RecordUpdate) (batch.Result, error) {
	if err := ValidateTableId(tableId); err != nil {
		return batch.Result{}, err
	}

	items := batch.NewItems(updates, func(u types.RecordUpdate) string {
		return u.RecordId
	})
	return c.batch.Run("records.batch_update", items, func(item batch.Item) (any, error) {
		u := item.Payload.(types.RecordUpdate)
		if err := validateRecordRef(tableId, u.RecordId); err != nil {
			return nil, err
		}
		obj, err := c.update(tableId, u.RecordId, u.Data)
		return toNilErr[any](obj, err)
	}), nil
}

// BatchDelete deletes each record in turn. Results holds one
// RecordDeleteResponse per deleted record.
func (c *Records) BatchDelete(tableId string, recordIds []string) (batch.Result, error) {
	if err := ValidateTableId(tableId); err != nil {
		return batch.Result{}, err
	}

	items := batch.NewItems(recordIds, func(id string) string {
		return id
	})
	return c.batch.Run("records.batch_delete", items, func(item batch.Item) (any, error) {
		if err := validateRecordRef(tableId, item.Id); err != nil {
			return nil, err
		}
		res, err := c.delete(tableId, item.Id)
		if err != nil {
			return nil, err
		}
		return *res, nil
	}), nil
}

func (c *Records) create(tableId string, data map[string]any) (map[string]any, *errors.ApiError) {
	var raw any
	err := c.api.postJson(pathWithId(pathRecords, "{tableId}", tableId), data, &raw)
	if err != nil {
		return nil, err
	}
	return parsers.FirstObject(raw), nil
}

func (c *Records) update(tableId string, recordId string, data map[string]any) (map[string]any, *errors.ApiError) {
	var raw any
	err := c.api.putJson(recordPath(tableId, recordId), data, &raw)
	if err != nil {
		return nil, err
	}
	return parsers.FirstObject(raw), nil
}

func (c *Records) delete(tableId string, recordId string) (*types.RecordDeleteResponse, *errors.ApiError) {
	var raw any
	err := c.api.deleteJson(recordPath(tableId, recordId), &raw)
	if err != nil {
		return nil, err
	}
	return &types.RecordDeleteResponse{
		RecordId: recordId,
		Status:   deleteStatus(raw),
	}, nil
}

func deleteStatus(raw any) int {
	obj, ok := raw.(map[string]any)
	if !ok {
		return 200
	}
	if data, ok := obj["data"].(map[string]any); ok {
		if status, ok := data["status"].(float64); ok {
			return int(status)
		}
	}
	if status, ok := obj["status"].(float64); ok {
		return int(status)
	}
	return 200
}

func recordPath(tableId string, recordId string) string {
	return pathWithId(pathWithId(pathRecord, "{tableId}", tableId), "{recordId}", recordId)
}

func validateRecordRef(tableId string, recordId string) error {
	if err := ValidateTableId(tableId); err != nil {
		return err
	}
	return invalid(validation.Validate(
		recordId,
		validation.Required.Error("record id is required"),
	))
}

func toRecord(obj map[string]any, recordId string) (*types.Record, error) {
	var rec types.Record
	if err := decode(obj, &rec); err != nil {
		return nil, err
	}
	if rec.RecordId == "" {
		rec.RecordId = recordId
	}
	if rec.Document == nil && len(obj) > 0 {
		if _, ok := obj["record_id"]; !ok {
			rec.Document = obj
		}
	}
	return &rec, nil
}
