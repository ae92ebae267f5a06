package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	metrics := NewMetrics()

	metrics.RecordRequest("/api/tickets", "GET", 200, time.Millisecond)
	metrics.RecordRequest("/api/tickets", "POST", 201, time.Millisecond)
	metrics.RecordRequest("/api/tickets/t1", "PUT", 409, time.Millisecond)
	metrics.RecordError("/api/tickets/t1", "PUT", "INVALID_TRANSITION")

	stats := metrics.Stats()
	assert.Equal(t, int64(3), stats.Requests)
	assert.Equal(t, int64(1), stats.Errors)
	assert.Equal(t, int64(1), stats.ErrorsByCode["INVALID_TRANSITION"])

	// The snapshot is a copy; mutating it leaves the counters alone.
	stats.ErrorsByCode["INVALID_TRANSITION"] = 99
	assert.Equal(t, int64(1), metrics.Stats().ErrorsByCode["INVALID_TRANSITION"])
}

func TestMetricsNilReceiver(t *testing.T) {
	var metrics *Metrics
	metrics.RecordRequest("/health/live", "GET", 200, 0)
	metrics.RecordError("/health/live", "GET", "INTERNAL_ERROR")
	assert.Equal(t, Snapshot{}, metrics.Stats())
}
