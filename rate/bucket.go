package rate

import (
	"net/http"

	"golang.org/x/time/rate"
)

type tokenBucket struct {
	limiter *rate.Limiter
}

var _ Limiter = &tokenBucket{}

// NewTokenBucket allows rps requests per second with bursts of up to burst
// requests. It is safe to share between goroutines.
func NewTokenBucket(rps float64, burst int) Limiter {
	if burst < 1 {
		burst = 1
	}
	return &tokenBucket{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Limit blocks until a token is available or the request context is done.
func (t *tokenBucket) Limit(req *http.Request) {
	_ = t.limiter.Wait(req.Context())
}
