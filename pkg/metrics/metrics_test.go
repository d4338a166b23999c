package metrics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsAreNoOps(t *testing.T) {
	var ch *ContentHashMetrics
	var w *WatcherMetrics

	assert.NotPanics(t, func() {
		ch.RecordLookup(LookupHit)
		ch.RecordCompute(true, 10, time.Millisecond)
		ch.RecordEviction()
		ch.SetEntries(3)

		w.RecordEvent("create", time.Millisecond)
		w.RecordHandleError("OpenFailed")
		w.HandleOpened()
		w.HandleClosed()
		w.SetWatches(2)
		w.RecordDropped()
	})
}

func TestContentHashMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewContentHashMetrics(reg)

	m.RecordLookup(LookupHit)
	m.RecordLookup(LookupHit)
	m.RecordLookup(LookupMiss)
	m.RecordCompute(true, 4096, 2*time.Millisecond)
	m.RecordCompute(false, 0, time.Millisecond)
	m.RecordEviction()
	m.SetEntries(7)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Lookups.WithLabelValues(LookupHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues(LookupMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Computations.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Computations.WithLabelValues("failure")))
	assert.Equal(t, 4096.0, testutil.ToFloat64(m.BytesHashed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Evictions))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.Entries))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ComputeDuration))
}

func TestWatcherMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWatcherMetrics(reg)

	m.RecordEvent("create", time.Millisecond)
	m.RecordEvent("write", time.Millisecond)
	m.RecordEvent("write", time.Millisecond)
	m.RecordHandleError("PathResolution")
	m.HandleOpened()
	m.HandleOpened()
	m.HandleClosed()
	m.SetWatches(5)
	m.RecordDropped()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Events.WithLabelValues("write")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Events.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HandleErrors.WithLabelValues("PathResolution")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OpenHandles))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.Watches))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Dropped))
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewWatcherMetrics(reg)
	assert.Panics(t, func() { NewWatcherMetrics(reg) })
}

func TestServer(t *testing.T) {
	reg := NewRegistry()
	m := NewContentHashMetrics(reg)
	m.RecordLookup(LookupMiss)

	srv, err := NewServer(0, reg)
	require.NoError(t, err)
	require.NotZero(t, srv.Port())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	base := fmt.Sprintf("http://127.0.0.1:%d", srv.Port())

	resp, err := http.Get(base + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `dittowatch_contenthash_lookups_total{result="miss"} 1`)
	assert.Contains(t, string(body), "go_goroutines")

	resp, err = http.Get(base + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}

	assert.NoError(t, srv.Stop(context.Background()), "second Stop is a no-op")
}

func TestNewServer_PortInUse(t *testing.T) {
	first, err := NewServer(0, NewRegistry())
	require.NoError(t, err)
	defer func() { _ = first.Stop(context.Background()) }()

	_, err = NewServer(first.Port(), NewRegistry())
	assert.Error(t, err)
}
