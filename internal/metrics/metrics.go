package metrics

import (
	"sync"
	"time"
)

type operationStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about API calls, renders and
// rate limited requests, and forwards them to OpenTelemetry when configured.
type Recorder struct {
	mu          sync.Mutex
	stats       map[string]*operationStats
	renders     map[string]int
	rateLimited map[string]int
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:       make(map[string]*operationStats),
		renders:     make(map[string]int),
		rateLimited: make(map[string]int),
		otel:        otel,
	}
}

// RecordAPICall increments counters for an API operation and stores the last observed latency.
func (r *Recorder) RecordAPICall(operation string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.stats[operation]
	if !ok {
		stats = &operationStats{}
		r.stats[operation] = stats
	}
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordAPICall(operation, duration, err)
	}
}

// RecordRender counts a rebuild of the named view and the number of items it rendered.
func (r *Recorder) RecordRender(view string, items int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.renders[view]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRender(view, items)
	}
}

// RecordRateLimit tracks a request rejected by the rate limiter.
func (r *Recorder) RecordRateLimit(path string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.rateLimited[path]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(path)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// APICalls returns the total attempts recorded for an operation.
func (r *Recorder) APICalls(operation string) int {
	return r.Snapshot(operation).Calls
}

// APIErrors returns the total failed attempts recorded for an operation.
func (r *Recorder) APIErrors(operation string) int {
	return r.Snapshot(operation).Errors
}

// LastCallLatency returns the last recorded latency for an operation.
func (r *Recorder) LastCallLatency(operation string) time.Duration {
	return r.Snapshot(operation).LastCallLatency
}

// Renders returns how many times the view was rebuilt.
func (r *Recorder) Renders(view string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renders[view]
}

// RateLimitHits returns how many requests to path were rejected.
func (r *Recorder) RateLimitHits(path string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rateLimited[path]
}

// Snapshot returns a copy of the current stats for the operation.
type Snapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(operation string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[operation]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
	}
}
