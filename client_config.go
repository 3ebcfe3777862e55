package datatables_go

import (
	"net/http"
	"time"

	"github.com/block/datatables-go/logger"
	"github.com/block/datatables-go/metrics"
	"github.com/block/datatables-go/rate"
	"github.com/block/datatables-go/retry"
)

const (
	DefaultRegion     = "app.eu"
	DefaultRecordsUrl = "https://data-tables.workato.com"
)

// Regions lists the data centers a workspace can live in.
var Regions = []string{"www", "app.eu", "app.jp", "app.sg", "app.au", "app.il"}

type config struct {
	// baseUrl is the region host serving the management API
	// (users, tables, folders, projects).
	// default: https://app.eu.workato.com
	baseUrl string

	// recordsUrl is the global host serving the v1 records API.
	// default: https://data-tables.workato.com
	recordsUrl string

	// retry configures the 429 retry loop shared by every call.
	// default: enabled, 3 retries
	retry retry.Config

	// transport specifies the HTTP transport mechanism
	// for making requests.
	// It's useful for mocking or if customers
	// want to add extra logging, headers, etc.
	// default: http.DefaultTransport
	transport http.RoundTripper

	// timeout sets the maximum duration for HTTP requests
	// before they are cancelled
	// default: 30 seconds
	timeout time.Duration

	// logger provides logging functionality for all internal
	// datatables-go client operations
	// default: logger.Noop
	logger logger.Logger

	// limiter paces outbound requests
	// default: rate.NoopLimiter
	limiter rate.Limiter

	// metrics receives request, retry and batch counters
	// default: metrics.Noop
	metrics metrics.Recorder

	// correlationId pins the x-correlation-id header of every request.
	// default: a fresh UUID per request
	correlationId string
}

func defaultConfig() *config {
	return &config{
		baseUrl:    regionUrl(DefaultRegion),
		recordsUrl: DefaultRecordsUrl,
		retry:      retry.DefaultConfig(),
		transport:  http.DefaultTransport,
		timeout:    30 * time.Second,
		logger:     logger.Noop{},
		limiter:    rate.NoopLimiter{},
		metrics:    metrics.Noop{},
	}
}

func regionUrl(region string) string {
	return "https://" + region + ".workato.com"
}

type ConfigOption func(c *config)

// WithRegion selects the region host, e.g. "app.eu" or "www".
func WithRegion(region string) ConfigOption {
	return func(c *config) {
		c.baseUrl = regionUrl(region)
	}
}

// WithBaseUrl overrides the region host entirely.
func WithBaseUrl(baseUrl string) ConfigOption {
	return func(c *config) {
		c.baseUrl = baseUrl
	}
}

func WithRecordsBaseUrl(recordsUrl string) ConfigOption {
	return func(c *config) {
		c.recordsUrl = recordsUrl
	}
}

// WithRetry turns the 429 retry loop on or off.
func WithRetry(enabled bool) ConfigOption {
	return func(c *config) {
		c.retry.Enabled = enabled
	}
}

// WithMaxRetries sets the retry budget; it is clamped to [0, 6].
func WithMaxRetries(maxRetries int) ConfigOption {
	return func(c *config) {
		c.retry.MaxRetries = retry.ClampMaxRetries(maxRetries)
	}
}

func WithTransport(transport http.RoundTripper) ConfigOption {
	return func(c *config) {
		c.transport = transport
	}
}

func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *config) {
		c.timeout = timeout
	}
}

func WithLogger(logger logger.Logger) ConfigOption {
	return func(c *config) {
		c.logger = logger
	}
}

func WithRateLimiter(limiter rate.Limiter) ConfigOption {
	return func(c *config) {
		c.limiter = limiter
	}
}

func WithMetrics(recorder metrics.Recorder) ConfigOption {
	return func(c *config) {
		c.metrics = recorder
	}
}

func WithCorrelationId(correlationId string) ConfigOption {
	return func(c *config) {
		c.correlationId = correlationId
	}
}
