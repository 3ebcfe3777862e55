package retry

import (
	"time"

	datatables_errors "github.com/block/datatables-go/errors"
	"github.com/block/datatables-go/logger"
	"github.com/block/datatables-go/metrics"
)

type backoffConfig struct {
	config  Config
	policy  Policy
	sleep   func(d time.Duration)
	logger  logger.Logger
	metrics metrics.Recorder
}

func defaultBackoffConfig() backoffConfig {
	return backoffConfig{
		config:  DefaultConfig(),
		policy:  NewPolicy(),
		sleep:   time.Sleep,
		logger:  &logger.Noop{},
		metrics: &metrics.Noop{},
	}
}

type BackoffOption func(c *backoffConfig)

func WithConfig(cfg Config) BackoffOption {
	return func(c *backoffConfig) {
		cfg.MaxRetries = ClampMaxRetries(cfg.MaxRetries)
		c.config = cfg
	}
}

func WithPolicy(p Policy) BackoffOption {
	return func(c *backoffConfig) {
		c.policy = p
	}
}

// WithSleep replaces time.Sleep, the only place where Do suspends.
func WithSleep(sleep func(d time.Duration)) BackoffOption {
	return func(c *backoffConfig) {
		c.sleep = sleep
	}
}

func WithLogger(log logger.Logger) BackoffOption {
	return func(c *backoffConfig) {
		c.logger = log
	}
}

func WithMetrics(m metrics.Recorder) BackoffOption {
	return func(c *backoffConfig) {
		c.metrics = m
	}
}

type backoffRetry struct {
	config backoffConfig
}

var _ Retry = &backoffRetry{}

func NewBackoffRetry(opts ...BackoffOption) Retry {
	var config = defaultBackoffConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return &backoffRetry{config}
}

// Do runs fn until:
// * fn returns no error
// * or fn fails with anything other than HTTP 429
// * or the retry budget (Config.MaxRetries) is spent
// Examples:
// Do("my-func", fn) with MaxRetries=3 and a server that keeps answering 429
// ^ calls fn 4 times, sleeping 3 times in between.
//
// Do("my-func", fn) with a 404 on the first call
// ^ calls fn once and returns the 404.
func (r *backoffRetry) Do(fnName string, fn RetriableFn) error {
	var state State

	for {
		err := fn(state.Attempts)
		if err == nil {
			return nil
		}

		decision := r.config.policy.Decide(err, state.Attempts, r.config.config)
		if !decision.Retry {
			if r.config.config.Enabled && datatables_errors.IsRateLimited(err) {
				r.config.logger.Warnf(
					"Exhausted all retry attempts for %s; giving up. attempt=%d, maxRetries=%d, error=%v",
					fnName, state.Attempts, r.config.config.MaxRetries, err,
				)
			}
			return err
		}

		r.config.logger.Warnf(
			"Rate limited during %s; retrying. attempt=%d, maxRetries=%d, backoff=%v",
			fnName, state.Attempts, r.config.config.MaxRetries, decision.Delay,
		)
		r.config.metrics.Retry(fnName, decision.Delay)

		r.config.sleep(decision.Delay)
		state.Attempts++
	}
}
