package retry

import (
	"errors"
	"math"
	"math/rand"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	datatables_errors "github.com/block/datatables-go/errors"
)

const (
	DefaultMaxRetries = 3
	MaxRetriesLimit   = 6

	// DefaultRetryAfter is used when a 429 carries no usable Retry-After.
	DefaultRetryAfter = 60 * time.Second

	// MaxJitterSeconds is the inclusive upper bound of the random jitter.
	MaxJitterSeconds = 3

	headerRetryAfter = "Retry-After"
)

// Config is the caller-controlled part of the retry policy.
type Config struct {
	// Enabled turns retries of rate-limited requests on or off.
	// default: true
	Enabled bool

	// MaxRetries is the number of retries (not attempts) allowed
	// per operation, clamped to [0, 6].
	// default: 3
	MaxRetries int
}

func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		MaxRetries: DefaultMaxRetries,
	}
}

func ClampMaxRetries(n int) int {
	return min(max(n, 0), MaxRetriesLimit)
}

type Decision struct {
	Retry bool
	Delay time.Duration
}

// Policy decides whether a failed attempt should be retried and for how long
// the caller must wait first. It holds no per-call state.
type Policy struct {
	now    func() time.Time
	jitter func() int
}

type PolicyOption func(p *Policy)

func WithNow(now func() time.Time) PolicyOption {
	return func(p *Policy) {
		p.now = now
	}
}

// WithJitter replaces the random jitter source; fn returns whole seconds.
func WithJitter(fn func() int) PolicyOption {
	return func(p *Policy) {
		p.jitter = fn
	}
}

func NewPolicy(opts ...PolicyOption) Policy {
	p := Policy{
		now: time.Now,
		jitter: func() int {
			return rand.Intn(MaxJitterSeconds + 1)
		},
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Decide only ever retries HTTP 429 responses. The wait is the larger of the
// server hint and 2^attempt seconds, plus 0-3 seconds of jitter.
func (p Policy) Decide(err error, attempt int, cfg Config) Decision {
	var apiErr *datatables_errors.ApiError
	if !errors.As(err, &apiErr) || apiErr == nil {
		return Decision{}
	}
	if apiErr.HttpStatusCode != http.StatusTooManyRequests {
		return Decision{}
	}
	if !cfg.Enabled || attempt >= ClampMaxRetries(cfg.MaxRetries) {
		return Decision{}
	}

	delay := RetryAfter(apiErr.Headers.Get(headerRetryAfter), p.now())
	floor := time.Duration(math.Pow(2, float64(attempt))) * time.Second
	delay = max(delay, floor)

	return Decision{
		Retry: true,
		Delay: delay + time.Duration(p.jitter())*time.Second,
	}
}

var digitsOnly = regexp.MustCompile(`^\d+$`)

// RetryAfter converts a Retry-After header value into a wait:
// an integer is taken as seconds, an HTTP date as the time left until then
// (at least one second), anything else as DefaultRetryAfter.
func RetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultRetryAfter
	}

	if digitsOnly.MatchString(value) {
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
		return DefaultRetryAfter
	}

	at, err := http.ParseTime(value)
	if err != nil {
		return DefaultRetryAfter
	}
	secs := int64(math.Ceil(at.Sub(now).Seconds()))
	return time.Duration(max(secs, 1)) * time.Second
}
