package rate

import "net/http"

// NoopLimiter never delays a request. It is the client default.
type NoopLimiter struct {
}

var _ Limiter = &NoopLimiter{}

func (n NoopLimiter) Limit(_ *http.Request) {
}
