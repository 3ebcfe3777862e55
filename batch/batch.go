package batch

import (
	"github.com/hashicorp/go-multierror"
)

// Item is one independent unit of a batch mutation.
//
// Usage Example:
//
//	items := batch.NewItems(updates, func(u types.RecordUpdate) string {
//	    return u.RecordId
//	})
type Item struct {
	// Index is the item's position in the input; it is what every
	// ItemError refers back to.
	Index int
	// Id optionally identifies the item to humans (e.g. a record id).
	Id string
	// Payload is handed to the per-item operation untouched.
	Payload any
}

// NewItems wraps payloads into Items, preserving their order. id may be nil.
func NewItems[T any](payloads []T, id func(p T) string) []Item {
	items := make([]Item, 0, len(payloads))
	for i, p := range payloads {
		item := Item{Index: i, Payload: p}
		if id != nil {
			item.Id = id(p)
		}
		items = append(items, item)
	}
	return items
}

// Result is the outcome of a batch. Results and Errors are both in input
// order and together account for every input item exactly once.
type Result struct {
	SuccessCount int         `json:"success_count"`
	ErrorCount   int         `json:"error_count"`
	Results      []any       `json:"results"`
	Errors       []ItemError `json:"errors"`
}

// Err folds all item failures into a single error, or nil if there were none.
func (r Result) Err() error {
	var result *multierror.Error
	for _, e := range r.Errors {
		result = multierror.Append(result, e)
	}
	return result.ErrorOrNil()
}
