package batch

import (
	"github.com/block/datatables-go/logger"
	"github.com/block/datatables-go/metrics"
	"github.com/block/datatables-go/retry"
)

// ItemFn performs the mutation for a single item and returns the raw
// success body.
type ItemFn func(item Item) (any, error)

// Executor runs a batch of independent mutations one item at a time.
//
// There is no bulk endpoint behind it: each item is its own request,
// retried on rate limiting like any other call. Items never run
// concurrently, which keeps the outbound request rate bounded against the
// same service that answers 429, and keeps errors correlated by index.
// A failing item never aborts the batch.
//
// Usage Example:
//
//	exec := batch.NewExecutor(myRetry, batch.WithLogger(myLogger))
//	res := exec.Run("records.batch_delete", items, func(item batch.Item) (any, error) {
//	    return records.Delete(tableId, item.Id)
//	})
//	fmt.Println(res.SuccessCount, res.ErrorCount)
type Executor struct {
	retry   retry.Retry
	logger  logger.Logger
	metrics metrics.Recorder
}

type ExecutorOption func(e *Executor)

func WithLogger(log logger.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = log
	}
}

func WithMetrics(m metrics.Recorder) ExecutorOption {
	return func(e *Executor) {
		e.metrics = m
	}
}

func NewExecutor(r retry.Retry, opts ...ExecutorOption) *Executor {
	e := &Executor{
		retry:   r,
		logger:  &logger.Noop{},
		metrics: &metrics.Noop{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes fn for every item in input order. Each item's Index is reset
// to its position in items.
func (e *Executor) Run(fnName string, items []Item, fn ItemFn) Result {
	res := Result{
		Results: make([]any, 0, len(items)),
		Errors:  make([]ItemError, 0),
	}

	for i, item := range items {
		item.Index = i

		var out any
		err := e.retry.Do(fnName, func(attempt int) error {
			var err error
			out, err = fn(item)
			return err
		})
		if err != nil {
			itemErr := newItemError(item, err)
			e.logger.Warnf("%s: item %d failed: %s", fnName, item.Index, itemErr.Message)
			res.Errors = append(res.Errors, itemErr)
			e.metrics.BatchItem(fnName, false)
			continue
		}

		res.Results = append(res.Results, out)
		e.metrics.BatchItem(fnName, true)
	}

	res.SuccessCount = len(res.Results)
	res.ErrorCount = len(res.Errors)

	e.logger.Infof(
		"%s: processed %d items, success=%d, errors=%d",
		fnName, len(items), res.SuccessCount, res.ErrorCount,
	)
	return res
}
