// Package contenthash caches SHA-1 digests of files below a root directory.
//
// Entries are keyed on (relative path, size, mtime), so a modified file
// simply misses the cache. Successful digests stay until the LRU evicts
// them; failures are remembered for a configurable TTL and then retried.
// Concurrent lookups of the same key share a single computation.
package contenthash

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/marmos91/dittowatch/internal/logger"
	"github.com/marmos91/dittowatch/internal/telemetry"
	"github.com/marmos91/dittowatch/pkg/metrics"
)

// DefaultWorkers bounds GetBatch concurrency when WithWorkers is not given.
const DefaultWorkers = 4

// Cache is a bounded content hash cache rooted at a directory. It is safe
// for concurrent use.
type Cache struct {
	root        string
	errorTTL    time.Duration
	maxFileSize int64
	workers     int
	metrics     *metrics.ContentHashMetrics
	now         func() time.Time

	mu    sync.Mutex
	lru   *lru.Cache
	stats Stats

	flight singleflight.Group
}

// node is one cached outcome. A failed computation carries err and the
// moment it stops being served.
type node struct {
	hash    HashValue
	err     error
	expires time.Time
}

// Stats is a snapshot of cache activity.
type Stats struct {
	Hits      uint64 `json:"hits" yaml:"hits"`
	ErrorHits uint64 `json:"error_hits" yaml:"error_hits"`
	Misses    uint64 `json:"misses" yaml:"misses"`
	Errors    uint64 `json:"errors" yaml:"errors"`
	Evictions uint64 `json:"evictions" yaml:"evictions"`
	Entries   int    `json:"entries" yaml:"entries"`
}

// Option configures a Cache.
type Option func(*Cache)

// WithMetrics records cache activity to m.
func WithMetrics(m *metrics.ContentHashMetrics) Option {
	return func(c *Cache) { c.metrics = m }
}

// WithMaxFileSize rejects files larger than n bytes with ErrTooLarge.
// Zero disables the limit.
func WithMaxFileSize(n int64) Option {
	return func(c *Cache) { c.maxFileSize = n }
}

// WithWorkers bounds the number of files GetBatch hashes concurrently.
func WithWorkers(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.workers = n
		}
	}
}

// New creates a cache for files below root holding at most maxItems
// results (zero means unbounded). Failed computations are served from the
// cache for errorTTL before being retried.
func New(root string, maxItems int, errorTTL time.Duration, opts ...Option) *Cache {
	c := &Cache{
		root:     root,
		errorTTL: errorTTL,
		workers:  DefaultWorkers,
		now:      time.Now,
		lru:      lru.New(maxItems),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lru.OnEvicted = func(lru.Key, interface{}) {
		c.stats.Evictions++
		c.metrics.RecordEviction()
	}
	return c
}

// RootPath returns the directory keys are relative to.
func (c *Cache) RootPath() string {
	return c.root
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Entries = c.lru.Len()
	return s
}

// Get returns the digest for key, computing it on a miss. A failure cached
// within the error TTL is returned without touching the file again.
//
// ctx only bounds how long the caller waits: an in-flight computation
// keeps running for the benefit of other callers.
func (c *Cache) Get(ctx context.Context, key Key) (HashValue, error) {
	ctx, span := telemetry.StartHashSpan(ctx, telemetry.SpanHash, c.root,
		telemetry.Path(key.RelativePath),
		telemetry.Size(key.FileSize),
	)
	defer span.End()

	if n, ok := c.lookup(key); ok {
		telemetry.SetAttributes(ctx, telemetry.CacheHit(true))
		if n.err != nil {
			telemetry.RecordError(ctx, n.err)
			return HashValue{}, n.err
		}
		telemetry.SetAttributes(ctx, telemetry.HashValue(n.hash.String()))
		return n.hash, nil
	}
	telemetry.SetAttributes(ctx, telemetry.CacheHit(false))

	ck := key.cacheKey()
	ch := c.flight.DoChan(flightKey(ck), func() (interface{}, error) {
		return c.compute(ctx, key), nil
	})

	select {
	case <-ctx.Done():
		return HashValue{}, ctx.Err()
	case res := <-ch:
		n := res.Val.(*node)
		if n.err != nil {
			telemetry.RecordError(ctx, n.err)
			return HashValue{}, n.err
		}
		telemetry.SetAttributes(ctx, telemetry.HashValue(n.hash.String()))
		return n.hash, nil
	}
}

// lookup returns a servable cached node. An expired failure counts as a
// miss and is overwritten by the recomputation.
func (c *Cache) lookup(key Key) (*node, bool) {
	ck := key.cacheKey()

	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.lru.Get(ck); ok {
		n := v.(*node)
		if n.err == nil {
			c.stats.Hits++
			c.metrics.RecordLookup(metrics.LookupHit)
			return n, true
		}
		if c.now().Before(n.expires) {
			c.stats.ErrorHits++
			c.metrics.RecordLookup(metrics.LookupErrorHit)
			return n, true
		}
	}

	c.stats.Misses++
	c.metrics.RecordLookup(metrics.LookupMiss)
	return nil, false
}

// compute hashes key and stores the outcome. It runs once per key no
// matter how many callers are waiting on it.
func (c *Cache) compute(ctx context.Context, key Key) *node {
	// Detach from the first caller's cancellation; the span link is kept.
	ctx = context.WithoutCancel(ctx)
	_, span := telemetry.StartHashSpan(ctx, telemetry.SpanHashCompute, c.root,
		telemetry.Path(key.RelativePath),
	)
	defer span.End()

	start := time.Now()
	hash, err := c.ComputeImmediate(key)
	c.metrics.RecordCompute(err == nil, hashedBytes(key, err), time.Since(start))

	n := &node{hash: hash, err: err}
	if err != nil {
		n.expires = c.now().Add(c.errorTTL)
		span.RecordError(err)
		logger.DebugCtx(ctx, "content hash failed",
			logger.RelPath(key.RelativePath),
			logger.Err(err),
		)
	} else {
		logger.DebugCtx(ctx, "content hash computed",
			logger.RelPath(key.RelativePath),
			logger.Size(key.FileSize),
			logger.Hash(hash.String()),
			logger.DurationMs(float64(time.Since(start).Microseconds())/1000.0),
		)
	}

	c.mu.Lock()
	if err != nil {
		c.stats.Errors++
	}
	c.lru.Add(key.cacheKey(), n)
	c.metrics.SetEntries(c.lru.Len())
	c.mu.Unlock()

	return n
}

func hashedBytes(key Key, err error) int64 {
	if err != nil {
		return 0
	}
	return key.FileSize
}

func flightKey(k cacheKey) string {
	return fmt.Sprintf("%d:%d:%t:%s", k.size, k.mtimeNs, k.follow, k.path)
}

// Result is the outcome of one key in a GetBatch call.
type Result struct {
	Key  Key
	Hash HashValue
	Err  error
}

// GetBatch looks up every key concurrently, bounded by the worker count.
// Results are returned in input order; a failure for one key does not stop
// the others.
func (c *Cache) GetBatch(ctx context.Context, keys []Key) []Result {
	ctx, span := telemetry.StartHashSpan(ctx, telemetry.SpanHashBatch, c.root,
		telemetry.BatchSize(len(keys)),
	)
	defer span.End()

	results := make([]Result, len(keys))

	var g errgroup.Group
	g.SetLimit(c.workers)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			hash, err := c.Get(ctx, key)
			results[i] = Result{Key: key, Hash: hash, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
