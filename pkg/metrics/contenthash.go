package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Lookup results recorded by ContentHashMetrics.RecordLookup.
const (
	LookupHit      = "hit"
	LookupMiss     = "miss"
	LookupErrorHit = "error_hit"
)

// ContentHashMetrics tracks the content hash cache.
//
// A nil *ContentHashMetrics is a valid no-op.
type ContentHashMetrics struct {
	// Lookups counts Get calls by result.
	// Labels: result=[hit, miss, error_hit]
	Lookups *prometheus.CounterVec

	// Computations counts hash computations by result.
	// Labels: result=[success, failure]
	Computations *prometheus.CounterVec

	// ComputeDuration tracks how long a single file takes to hash.
	ComputeDuration prometheus.Histogram

	// BytesHashed counts file bytes streamed through the hasher.
	BytesHashed prometheus.Counter

	// Evictions counts entries dropped by the LRU.
	Evictions prometheus.Counter

	// Entries is the current number of cached results.
	Entries prometheus.Gauge
}

// NewContentHashMetrics creates the cache metrics and registers them with
// registerer (nil means prometheus.DefaultRegisterer). Registering twice on
// the same registerer panics.
func NewContentHashMetrics(registerer prometheus.Registerer) *ContentHashMetrics {
	m := &ContentHashMetrics{
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "contenthash",
				Name:      "lookups_total",
				Help:      "Content hash lookups by result",
			},
			[]string{"result"},
		),
		Computations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "contenthash",
				Name:      "computations_total",
				Help:      "Content hash computations by result",
			},
			[]string{"result"},
		),
		ComputeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: "contenthash",
				Name:      "compute_duration_seconds",
				Help:      "Time spent hashing a single file",
				Buckets: []float64{
					0.0001, // 100us - small files
					0.001,  // 1ms
					0.01,   // 10ms
					0.1,    // 100ms
					0.5,    // 500ms
					1,      // 1s
					5,      // 5s - large files
					30,     // 30s
				},
			},
		),
		BytesHashed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "contenthash",
				Name:      "bytes_hashed_total",
				Help:      "Total file bytes read by the hasher",
			},
		),
		Evictions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "contenthash",
				Name:      "evictions_total",
				Help:      "Cache entries evicted by the LRU",
			},
		),
		Entries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Subsystem: "contenthash",
				Name:      "entries",
				Help:      "Current number of cached hash results",
			},
		),
	}

	registererOrDefault(registerer).MustRegister(
		m.Lookups,
		m.Computations,
		m.ComputeDuration,
		m.BytesHashed,
		m.Evictions,
		m.Entries,
	)
	return m
}

// RecordLookup counts a Get call with the given result.
func (m *ContentHashMetrics) RecordLookup(result string) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(result).Inc()
}

// RecordCompute records one hash computation.
func (m *ContentHashMetrics) RecordCompute(success bool, bytes int64, duration time.Duration) {
	if m == nil {
		return
	}
	result := "success"
	if !success {
		result = "failure"
	}
	m.Computations.WithLabelValues(result).Inc()
	m.ComputeDuration.Observe(duration.Seconds())
	if bytes > 0 {
		m.BytesHashed.Add(float64(bytes))
	}
}

// RecordEviction counts one LRU eviction.
func (m *ContentHashMetrics) RecordEviction() {
	if m == nil {
		return
	}
	m.Evictions.Inc()
}

// SetEntries updates the cached entry count.
func (m *ContentHashMetrics) SetEntries(n int) {
	if m == nil {
		return
	}
	m.Entries.Set(float64(n))
}
