package pagination

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	datatables_errors "github.com/block/datatables-go/errors"
	"github.com/block/datatables-go/logger"
	"github.com/block/datatables-go/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_WalkAll_exhaustion(t *testing.T) {
	w := makeWalker()
	var offsets []int

	rows, err := w.WalkAll("rows", func(offset int, limit int) (any, error) {
		offsets = append(offsets, offset)
		assert.Equal(t, 100, limit)
		if offset < 300 {
			return pageOf(100, offset), nil
		}
		return pageOf(40, offset), nil
	}, 100)

	require.NoError(t, err)
	assert.Len(t, rows, 340)
	assert.Equal(t, []int{0, 100, 200, 300}, offsets)
	assert.Equal(t, map[string]any{"n": 0}, rows[0])
	assert.Equal(t, map[string]any{"n": 339}, rows[339])
}

func Test_WalkAll_safety_bound(t *testing.T) {
	w := makeWalker()
	calls := 0
	last := -1

	rows, err := w.WalkAll("rows", func(offset int, limit int) (any, error) {
		calls++
		last = offset
		return pageOf(limit, offset), nil
	}, 100)

	require.NoError(t, err)
	assert.Equal(t, 101, calls)
	assert.Equal(t, 10000, last)
	assert.Len(t, rows, 10100)
}

func Test_WalkAll_safety_bound_has_more(t *testing.T) {
	w := makeWalker()
	calls := 0

	_, err := w.WalkAll("rows", func(offset int, limit int) (any, error) {
		calls++
		return map[string]any{"rows": []any{}, "has_more": true}, nil
	}, 500)

	require.NoError(t, err)
	assert.Equal(t, 21, calls)
}

func Test_WalkAll_has_more_flag_wins(t *testing.T) {
	w := makeWalker()

	calls := 0
	rows, err := w.WalkAll("rows", func(offset int, limit int) (any, error) {
		calls++
		// full page, but the endpoint says it is the last one
		return map[string]any{"rows": pageOf(10, offset), "has_more": false}, nil
	}, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Len(t, rows, 10)

	calls = 0
	rows, err = w.WalkAll("rows", func(offset int, limit int) (any, error) {
		calls++
		// short pages, but the endpoint says there are more
		if calls < 3 {
			return map[string]any{"data": pageOf(3, offset), "has_more": true}, nil
		}
		return map[string]any{"data": pageOf(3, offset)}, nil
	}, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Len(t, rows, 9)
}

func Test_WalkAll_default_page_size(t *testing.T) {
	w := makeWalker()
	_, err := w.WalkAll("rows", func(offset int, limit int) (any, error) {
		assert.Equal(t, DefaultPageSize, limit)
		return []any{}, nil
	}, 0)
	require.NoError(t, err)
}

func Test_WalkAll_empty(t *testing.T) {
	w := makeWalker()
	rows, err := w.WalkAll("rows", func(offset int, limit int) (any, error) {
		return map[string]any{}, nil
	}, 100)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func Test_WalkAll_retries_rate_limited_page(t *testing.T) {
	var sleeps []time.Duration
	w := NewWalker(retry.NewBackoffRetry(
		retry.WithPolicy(retry.NewPolicy(retry.WithJitter(func() int { return 0 }))),
		retry.WithSleep(func(d time.Duration) { sleeps = append(sleeps, d) }),
	), &logger.Noop{})

	var offsets []int
	rows, err := w.WalkAll("rows", func(offset int, limit int) (any, error) {
		offsets = append(offsets, offset)
		if len(offsets) == 2 {
			return nil, &datatables_errors.ApiError{
				HttpStatusCode: http.StatusTooManyRequests,
				Headers:        http.Header{"Retry-After": []string{"1"}},
			}
		}
		if offset == 0 {
			return pageOf(2, offset), nil
		}
		return pageOf(1, offset), nil
	}, 2)

	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 2}, offsets)
	assert.Len(t, rows, 3)
	assert.Equal(t, []time.Duration{time.Second}, sleeps)
}

func Test_WalkAll_error(t *testing.T) {
	w := makeWalker()
	calls := 0
	rows, err := w.WalkAll("rows", func(offset int, limit int) (any, error) {
		calls++
		if offset == 0 {
			return pageOf(limit, offset), nil
		}
		return nil, &datatables_errors.ApiError{HttpStatusCode: 500}
	}, 5)

	assert.Error(t, err)
	assert.Equal(t, 500, datatables_errors.StatusCode(err))
	assert.Nil(t, rows)
	assert.Equal(t, 2, calls)
}

func Test_Clamp(t *testing.T) {
	testCases := []struct {
		page, perPage, max int
		expect             Page
	}{
		{0, 0, 100, Page{1, 100}},
		{-3, 0, 100, Page{1, 100}},
		{2, 50, 100, Page{2, 50}},
		{1, 500, 100, Page{1, 100}},
		{1, -5, 100, Page{1, 1}},
		{1, 1, 100, Page{1, 1}},
		{3, 0, 20, Page{3, 20}},
		{1, 300, 0, Page{1, 300}},
	}

	for _, tt := range testCases {
		t.Run(fmt.Sprintf("%d/%d/%d", tt.page, tt.perPage, tt.max), func(t *testing.T) {
			assert.Equal(t, tt.expect, Clamp(tt.page, tt.perPage, tt.max))
		})
	}
}

func makeWalker() *Walker {
	return NewWalker(retry.NewBackoffRetry(
		retry.WithSleep(func(time.Duration) {}),
	), nil)
}

func pageOf(n int, offset int) []any {
	rows := make([]any, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, map[string]any{"n": offset + i})
	}
	return rows
}
