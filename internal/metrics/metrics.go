package metrics

import (
	"sync"
	"time"
)

// Counter metric names
const (
	CounterHTTPRequests        = "http_requests_total"
	CounterHTTPRequestsError   = "http_requests_error_total"
	CounterApprovalsResolved   = "approvals_resolved_total"
	CounterApprovalsRejected   = "approvals_rejected_total"
	CounterApprovalsEscalated  = "approvals_escalated_total"
	CounterStockReversals      = "stock_reversals_total"
	CounterEmailsSent          = "emails_sent_total"
	CounterEmailsFailed        = "emails_failed_total"
	CounterTokensIssued        = "approval_tokens_issued_total"
	CounterTokenLookupFailures = "approval_token_lookup_failures_total"
)

// TimerSnapshot summarizes a named duration series
type TimerSnapshot struct {
	Count     int64   `json:"count"`
	TotalMs   int64   `json:"total_ms"`
	AverageMs float64 `json:"average_ms"`
	MaxMs     int64   `json:"max_ms"`
}

// Snapshot is the point-in-time view served by the metrics endpoint
type Snapshot struct {
	UptimeSeconds int64                    `json:"uptime_seconds"`
	Counters      map[string]int64         `json:"counters"`
	Timers        map[string]TimerSnapshot `json:"timers"`
}

// Metrics is an in-process collector. It is deliberately simple: counters
// and timers behind one mutex, snapshotted on demand.
type Metrics struct {
	mu        sync.RWMutex
	counters  map[string]int64
	timers    map[string]*timerSeries
	startTime time.Time
}

type timerSeries struct {
	count   int64
	totalMs int64
	maxMs   int64
}

// New creates a new metrics collector
func New() *Metrics {
	return &Metrics{
		counters:  make(map[string]int64),
		timers:    make(map[string]*timerSeries),
		startTime: time.Now(),
	}
}

// Increment adds one to the named counter
func (m *Metrics) Increment(name string) {
	m.Add(name, 1)
}

// Add adds delta to the named counter
func (m *Metrics) Add(name string, delta int64) {
	m.mu.Lock()
	m.counters[name] += delta
	m.mu.Unlock()
}

// ObserveDuration records one sample for the named timer
func (m *Metrics) ObserveDuration(name string, d time.Duration) {
	ms := d.Milliseconds()
	m.mu.Lock()
	series, ok := m.timers[name]
	if !ok {
		series = &timerSeries{}
		m.timers[name] = series
	}
	series.count++
	series.totalMs += ms
	if ms > series.maxMs {
		series.maxMs = ms
	}
	m.mu.Unlock()
}

// Snapshot returns a copy of all current metric values
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counters := make(map[string]int64, len(m.counters))
	for name, value := range m.counters {
		counters[name] = value
	}

	timers := make(map[string]TimerSnapshot, len(m.timers))
	for name, series := range m.timers {
		snap := TimerSnapshot{
			Count:   series.count,
			TotalMs: series.totalMs,
			MaxMs:   series.maxMs,
		}
		if series.count > 0 {
			snap.AverageMs = float64(series.totalMs) / float64(series.count)
		}
		timers[name] = snap
	}

	return Snapshot{
		UptimeSeconds: int64(time.Since(m.startTime).Seconds()),
		Counters:      counters,
		Timers:        timers,
	}
}
