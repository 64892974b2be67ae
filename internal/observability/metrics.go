package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu             sync.Mutex
	requestCount   map[string]int64
	requestLatency map[string]time.Duration
	errorCount     map[string]int64
	authRejections map[string]int64
	cacheHits      int64
	cacheMisses    int64
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Requests       map[string]int64 `json:"requests"`
	AvgLatencyMS   map[string]int64 `json:"avg_latency_ms"`
	Errors         map[string]int64 `json:"errors"`
	AuthRejections map[string]int64 `json:"auth_rejections"`
	CacheHits      int64            `json:"cache_hits"`
	CacheMisses    int64            `json:"cache_misses"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:   make(map[string]int64),
		requestLatency: make(map[string]time.Duration),
		errorCount:     make(map[string]int64),
		authRejections: make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.requestLatency[key] += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordAuthRejection counts a bearer token refused for reason.
func (m *Metrics) RecordAuthRejection(reason string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authRejections[reason]++
}

// RecordCacheLookup counts search cache hits and misses.
func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.cacheHits++
		return
	}
	m.cacheMisses++
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Requests:       copyCounts(m.requestCount),
		AvgLatencyMS:   make(map[string]int64, len(m.requestLatency)),
		Errors:         copyCounts(m.errorCount),
		AuthRejections: copyCounts(m.authRejections),
		CacheHits:      m.cacheHits,
		CacheMisses:    m.cacheMisses,
	}
	for key, total := range m.requestLatency {
		if n := m.requestCount[key]; n > 0 {
			snap.AvgLatencyMS[key] = (total / time.Duration(n)).Milliseconds()
		}
	}
	return snap
}

func copyCounts(src map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
