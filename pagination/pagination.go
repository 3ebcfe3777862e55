package pagination

import (
	"github.com/block/datatables-go/logger"
	"github.com/block/datatables-go/parsers"
	"github.com/block/datatables-go/retry"
)

const (
	DefaultPageSize = 100

	// MaxOffset stops a walk against an endpoint that never signals the end.
	// It is a ceiling, not an error.
	MaxOffset = 10000
)

// PageFunc performs one list call for the given offset/limit and returns the
// decoded JSON body.
type PageFunc func(offset int, limit int) (any, error)

// Walker drives offset/limit listings page by page until the endpoint is
// exhausted or MaxOffset is passed. Pages are requested strictly one after
// another; page N+1 is never requested before page N completed.
type Walker struct {
	retry  retry.Retry
	logger logger.Logger
}

func NewWalker(r retry.Retry, log logger.Logger) *Walker {
	if log == nil {
		log = &logger.Noop{}
	}
	return &Walker{
		retry:  r,
		logger: log,
	}
}

// WalkAll concatenates the rows of every page. Each page runs through the
// retry policy; the first failure that survives it aborts the walk.
//
// A page is followed by another one while the endpoint answers
// has_more=true or, without that flag, while the page came back full.
func (w *Walker) WalkAll(fnName string, fetch PageFunc, pageSize int) ([]any, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	all := []any{}
	offset := 0
	for {
		var raw any
		err := w.retry.Do(fnName, func(attempt int) error {
			var err error
			raw, err = fetch(offset, pageSize)
			return err
		})
		if err != nil {
			return nil, err
		}

		page := parsers.NormalizePage(raw)
		all = append(all, page.Rows...)

		hasMore := len(page.Rows) == pageSize
		if page.HasMore != nil {
			hasMore = *page.HasMore
		}
		if !hasMore {
			break
		}

		offset += pageSize
		if offset > MaxOffset {
			w.logger.Warnf(
				"%s: stopped paginating at offset=%d with %d rows; more rows may exist",
				fnName, offset, len(all),
			)
			break
		}
	}

	w.logger.Debugf("%s: fetched %d rows", fnName, len(all))
	return all, nil
}

type Page struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// Clamp normalises page/per_page inputs: a zero page means 1 and a zero
// per_page means 100; per_page is then bounded to [1, maxPerPage].
func Clamp(page int, perPage int, maxPerPage int) Page {
	if page <= 0 {
		page = 1
	}
	if perPage == 0 {
		perPage = DefaultPageSize
	}
	perPage = max(perPage, 1)
	if maxPerPage > 0 {
		perPage = min(perPage, maxPerPage)
	}
	return Page{Page: page, PerPage: perPage}
}
