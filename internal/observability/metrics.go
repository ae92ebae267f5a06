package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps in-process request counters. Like the ticket state,
// counters live in memory and reset on restart; the readiness probe
// reports a snapshot.
type Metrics struct {
	mu            sync.Mutex
	totalRequests int64
	totalErrors   int64
	byRoute       map[string]int64
	byErrorCode   map[string]int64
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Requests     int64
	Errors       int64
	ErrorsByCode map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		byRoute:     make(map[string]int64),
		byErrorCode: make(map[string]int64),
	}
}

// RecordRequest counts a completed request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := method + " " + path + " " + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalRequests++
	m.byRoute[key]++
}

// RecordError counts a request that resolved to a taxonomy error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalErrors++
	m.byErrorCode[code]++
}

// Stats returns a copy of the current counters.
func (m *Metrics) Stats() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	byCode := make(map[string]int64, len(m.byErrorCode))
	for code, count := range m.byErrorCode {
		byCode[code] = count
	}
	return Snapshot{
		Requests:     m.totalRequests,
		Errors:       m.totalErrors,
		ErrorsByCode: byCode,
	}
}
