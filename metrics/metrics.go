// Package metrics records client-side counters for Data Tables calls:
// HTTP responses per host and status, rate-limit retries with their waits,
// and per-item batch outcomes.
//
// The default Recorder is Noop. NewPrometheus registers its collectors on the
// given registerer:
//
//	reg := prometheus.NewRegistry()
//	client := datatables_go.NewClient(apiToken,
//	    datatables_go.WithMetrics(metrics.NewPrometheus(reg)),
//	)
package metrics

import (
	"time"
)

type Recorder interface {
	// Request is called once per HTTP round trip. status is 0 when the
	// request never produced a response.
	Request(host string, method string, status int)

	// Retry is called before every backoff wait.
	Retry(fnName string, delay time.Duration)

	// BatchItem is called once per batch item after it completes.
	BatchItem(fnName string, ok bool)
}

type Noop struct {
}

var _ Recorder = &Noop{}

func (n Noop) Request(_ string, _ string, _ int) {
}

func (n Noop) Retry(_ string, _ time.Duration) {
}

func (n Noop) BatchItem(_ string, _ bool) {
}
