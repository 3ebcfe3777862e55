package rate

import "net/http"

// Limiter paces outbound requests to the Data Tables API.
//
// The service answers 429 once a client goes too fast, and the retry layer
// recovers from that. A Limiter keeps the client under the limit in the
// first place. Implementations can use different strategies such as:
//   - Token bucket algorithm (see NewTokenBucket)
//   - Fixed window counting
//   - Sliding window counting
//
// Example usage:
//
//	client := datatables_go.NewClient(token,
//	    datatables_go.WithRateLimiter(rate.NewTokenBucket(5, 1)),
//	)
//
// The Limit method is called before each request, including every retry
// and every item of a batch.
type Limiter interface {
	// Limit applies rate limiting to the given request. This method
	// should block if necessary to maintain the desired request rate.
	// The implementation can use the request information (method, host,
	// path) to apply different rate limits for different endpoints.
	Limit(req *http.Request)
}
