package batch

import (
	"errors"
	"fmt"

	datatables_errors "github.com/block/datatables-go/errors"
)

// ItemError describes why one batch item failed.
type ItemError struct {
	Index      int    `json:"index"`
	ItemId     string `json:"record_id,omitempty"`
	HttpStatus int    `json:"http_code,omitempty"`
	// Message is whitespace-collapsed and at most 500 characters long.
	Message string `json:"message"`
	Body    string `json:"body,omitempty"`
}

var _ error = ItemError{}

func (e ItemError) Error() string {
	id := ""
	if e.ItemId != "" {
		id = fmt.Sprintf(" (%s)", e.ItemId)
	}
	return fmt.Sprintf("batch item %d%s failed, httpStatus: '%d': %s", e.Index, id, e.HttpStatus, e.Message)
}

func newItemError(item Item, err error) ItemError {
	itemErr := ItemError{
		Index:   item.Index,
		ItemId:  item.Id,
		Message: datatables_errors.Summarize(err.Error()),
	}

	var apiErr *datatables_errors.ApiError
	if errors.As(err, &apiErr) && apiErr != nil {
		itemErr.HttpStatus = apiErr.HttpStatusCode
		if len(apiErr.Body) > 0 {
			itemErr.Body = string(apiErr.Body)
		}
	}
	return itemErr
}
