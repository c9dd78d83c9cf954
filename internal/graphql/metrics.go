package graphql

import (
	"sync/atomic"
	"time"
)

// Metrics tracks GraphQL call metrics
type Metrics struct {
	calls   int64
	errors  int64
	latency int64 // Total latency in nanoseconds
}

type MetricsSnapshot struct {
	Calls            int64   `json:"calls"`
	Errors           int64   `json:"errors"`
	AverageLatencyMs float64 `json:"avg_latency_ms"`
}

func (m *Metrics) record(duration time.Duration, err error) {
	atomic.AddInt64(&m.calls, 1)
	atomic.AddInt64(&m.latency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&m.errors, 1)
	}
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	calls := atomic.LoadInt64(&m.calls)
	s := MetricsSnapshot{
		Calls:  calls,
		Errors: atomic.LoadInt64(&m.errors),
	}
	if calls > 0 {
		s.AverageLatencyMs = float64(atomic.LoadInt64(&m.latency)) / float64(calls) / 1e6
	}
	return s
}

// ErrorRate returns the error rate as a percentage
func (s MetricsSnapshot) ErrorRate() float64 {
	if s.Calls == 0 {
		return 0
	}
	return float64(s.Errors) / float64(s.Calls) * 100
}
