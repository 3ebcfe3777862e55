package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func Test_Noop(t *testing.T) {
	n := Noop{}
	n.Request("data-tables.workato.com", "GET", 200)
	n.Retry("records.query", time.Second)
	n.BatchItem("records.batch_create", true)
}

func Test_Prometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewPrometheus(reg).(*promRecorder)

	r.Request("app.eu.workato.com", "GET", 200)
	r.Request("app.eu.workato.com", "GET", 200)
	r.Request("app.eu.workato.com", "GET", 429)
	r.Retry("tables.list", 3*time.Second)
	r.BatchItem("records.batch_delete", true)
	r.BatchItem("records.batch_delete", false)
	r.BatchItem("records.batch_delete", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.requests.WithLabelValues("app.eu.workato.com", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues("app.eu.workato.com", "GET", "429")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.retries.WithLabelValues("tables.list")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.batchItems.WithLabelValues("records.batch_delete", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.batchItems.WithLabelValues("records.batch_delete", "error")))

	count, err := testutil.GatherAndCount(reg, "datatables_client_retry_wait_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func Test_Prometheus_double_register(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheus(reg)
	assert.Panics(t, func() {
		NewPrometheus(reg)
	})
}
