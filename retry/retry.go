package retry

// Retry wraps a single request-producing operation with the rate-limit
// retry policy of the Data Tables API.
//
// The operation is re-invoked as long as it fails with an HTTP 429 and the
// retry budget allows it (see Policy.Decide). Every other failure, and the
// last 429 once the budget is spent, is returned unchanged to the caller.
// The same operation is re-run on every attempt: idempotency is the
// caller's responsibility.
//
// Usage Example:
//
//	r := retry.NewBackoffRetry(
//	    retry.WithConfig(retry.Config{Enabled: true, MaxRetries: 3}),
//	    retry.WithLogger(myLogger),
//	)
//
//	err := r.Do("records.create", func(attempt int) error {
//	    return apiClient.MakeRequest()
//	})
//
// The RetriableFn function receives the current attempt number (0-based).
// Do blocks the calling goroutine while it waits between attempts.
type Retry interface {
	Do(fnName string, fn RetriableFn) error
}

type RetriableFn func(attempt int) error

// State is the per-call retry bookkeeping. It lives for the duration of a
// single Do call and is never shared between calls.
type State struct {
	Attempts int
}
