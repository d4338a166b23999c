package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WatcherMetrics tracks the directory watcher.
//
// A nil *WatcherMetrics is a valid no-op.
type WatcherMetrics struct {
	// Events counts processed filesystem events by operation.
	// Labels: op=[create, write, remove, rename, chmod]
	Events *prometheus.CounterVec

	// EventDuration tracks the time spent enriching one event.
	EventDuration prometheus.Histogram

	// HandleErrors counts file handle failures by error code.
	// Labels: code=[OpenFailed, StatFailed, PathResolution, NotImplemented, ...]
	HandleErrors *prometheus.CounterVec

	// OpenHandles is the number of native handles currently held.
	OpenHandles prometheus.Gauge

	// Watches is the number of directories being watched.
	Watches prometheus.Gauge

	// Dropped counts events discarded because the consumer fell behind.
	Dropped prometheus.Counter
}

// NewWatcherMetrics creates the watcher metrics and registers them with
// registerer (nil means prometheus.DefaultRegisterer).
func NewWatcherMetrics(registerer prometheus.Registerer) *WatcherMetrics {
	m := &WatcherMetrics{
		Events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "watcher",
				Name:      "events_total",
				Help:      "Filesystem events processed by operation",
			},
			[]string{"op"},
		),
		EventDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: "watcher",
				Name:      "event_duration_seconds",
				Help:      "Time spent stat'ing, resolving and hashing one event",
				Buckets:   prometheus.DefBuckets,
			},
		),
		HandleErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "watcher",
				Name:      "handle_errors_total",
				Help:      "File handle failures by error code",
			},
			[]string{"code"},
		),
		OpenHandles: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Subsystem: "watcher",
				Name:      "open_handles",
				Help:      "Native file handles currently held by the watcher",
			},
		),
		Watches: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Subsystem: "watcher",
				Name:      "watches",
				Help:      "Directories currently watched",
			},
		),
		Dropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "watcher",
				Name:      "dropped_events_total",
				Help:      "Events dropped because the consumer fell behind",
			},
		),
	}

	registererOrDefault(registerer).MustRegister(
		m.Events,
		m.EventDuration,
		m.HandleErrors,
		m.OpenHandles,
		m.Watches,
		m.Dropped,
	)
	return m
}

// RecordEvent counts one processed event.
func (m *WatcherMetrics) RecordEvent(op string, duration time.Duration) {
	if m == nil {
		return
	}
	m.Events.WithLabelValues(op).Inc()
	m.EventDuration.Observe(duration.Seconds())
}

// RecordHandleError counts a handle failure with the given error code name.
func (m *WatcherMetrics) RecordHandleError(code string) {
	if m == nil {
		return
	}
	m.HandleErrors.WithLabelValues(code).Inc()
}

// HandleOpened increments the open handle gauge.
func (m *WatcherMetrics) HandleOpened() {
	if m == nil {
		return
	}
	m.OpenHandles.Inc()
}

// HandleClosed decrements the open handle gauge.
func (m *WatcherMetrics) HandleClosed() {
	if m == nil {
		return
	}
	m.OpenHandles.Dec()
}

// SetWatches updates the watched directory count.
func (m *WatcherMetrics) SetWatches(n int) {
	if m == nil {
		return
	}
	m.Watches.Set(float64(n))
}

// RecordDropped counts one dropped event.
func (m *WatcherMetrics) RecordDropped() {
	if m == nil {
		return
	}
	m.Dropped.Inc()
}
