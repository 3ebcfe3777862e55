package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "datatables_client"

type promRecorder struct {
	requests   *prometheus.CounterVec
	retries    *prometheus.CounterVec
	retryWait  *prometheus.HistogramVec
	batchItems *prometheus.CounterVec
}

var _ Recorder = &promRecorder{}

// NewPrometheus creates a Recorder backed by Prometheus collectors and
// registers them on reg. It panics if the collectors are already registered.
func NewPrometheus(reg prometheus.Registerer) Recorder {
	r := &promRecorder{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "HTTP requests sent to the Data Tables API by host, method and status",
		}, []string{"host", "method", "status"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retries_total",
			Help:      "Rate-limited operations retried",
		}, []string{"operation"}),
		retryWait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "retry_wait_seconds",
			Help:      "Backoff waits before retrying a rate-limited operation",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128},
		}, []string{"operation"}),
		batchItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_items_total",
			Help:      "Batch items processed by outcome",
		}, []string{"operation", "result"}),
	}

	reg.MustRegister(r.requests, r.retries, r.retryWait, r.batchItems)
	return r
}

func (r *promRecorder) Request(host string, method string, status int) {
	r.requests.WithLabelValues(host, method, strconv.Itoa(status)).Inc()
}

func (r *promRecorder) Retry(fnName string, delay time.Duration) {
	r.retries.WithLabelValues(fnName).Inc()
	r.retryWait.WithLabelValues(fnName).Observe(delay.Seconds())
}

func (r *promRecorder) BatchItem(fnName string, ok bool) {
	result := "error"
	if ok {
		result = "success"
	}
	r.batchItems.WithLabelValues(fnName, result).Inc()
}
