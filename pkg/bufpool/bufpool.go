// Package bufpool provides a tiered pool of read buffers.
//
// Content hashing reads whole files through a fixed-size buffer; reusing
// those buffers keeps a busy watcher from allocating one per file. Three
// tiers cover the common cases:
//   - Small (default 4KB): path and link buffers, tiny files
//   - Medium (default 64KB): the default hashing read size
//   - Large (default 1MB): bulk reads of big files
//
// Requests above the large tier are allocated directly and never pooled.
//
// All operations are safe for concurrent use.
//
//	buf := bufpool.Get(size)
//	defer bufpool.Put(buf)
package bufpool

import (
	"io"
	"sync"
	"sync/atomic"
)

// Default buffer size classes.
const (
	DefaultSmallSize  = 4 << 10
	DefaultMediumSize = 64 << 10
	DefaultLargeSize  = 1 << 20

	// CopySize is the buffer size used by Copy.
	CopySize = DefaultMediumSize
)

// Pool manages byte slice pools organized by size class.
type Pool struct {
	tiers [3]tier

	pooled   atomic.Uint64
	oversize atomic.Uint64
}

type tier struct {
	size int
	pool sync.Pool
}

// Config holds configuration for creating a custom buffer pool.
type Config struct {
	SmallSize  int
	MediumSize int
	LargeSize  int
}

// DefaultConfig returns the default pool configuration.
func DefaultConfig() Config {
	return Config{
		SmallSize:  DefaultSmallSize,
		MediumSize: DefaultMediumSize,
		LargeSize:  DefaultLargeSize,
	}
}

// Stats counts Get calls served from a tier versus allocated directly.
type Stats struct {
	Pooled   uint64
	Oversize uint64
}

// NewPool creates a buffer pool. Zero or negative sizes fall back to the
// defaults; a nil config means all defaults.
func NewPool(cfg *Config) *Pool {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.SmallSize > 0 {
			c.SmallSize = cfg.SmallSize
		}
		if cfg.MediumSize > 0 {
			c.MediumSize = cfg.MediumSize
		}
		if cfg.LargeSize > 0 {
			c.LargeSize = cfg.LargeSize
		}
	}

	p := &Pool{}
	for i, size := range []int{c.SmallSize, c.MediumSize, c.LargeSize} {
		t := &p.tiers[i]
		t.size = size
		t.pool.New = func() any {
			buf := make([]byte, t.size)
			return &buf
		}
	}
	return p
}

// Get returns a slice of length size. Its capacity is that of the smallest
// tier that fits, so Put can route it back. The caller must call Put when
// done.
func (p *Pool) Get(size int) []byte {
	if size < 0 {
		size = 0
	}
	for i := range p.tiers {
		t := &p.tiers[i]
		if size <= t.size {
			p.pooled.Add(1)
			return (*t.pool.Get().(*[]byte))[:size]
		}
	}
	p.oversize.Add(1)
	return make([]byte, size)
}

// Put returns a buffer obtained from Get. Buffers whose capacity matches no
// tier are left to the garbage collector.
func (p *Pool) Put(buf []byte) {
	if buf == nil {
		return
	}
	for i := range p.tiers {
		t := &p.tiers[i]
		if cap(buf) == t.size {
			full := buf[:cap(buf)]
			t.pool.Put(&full)
			return
		}
	}
}

// Copy copies src to dst through a pooled CopySize buffer.
func (p *Pool) Copy(dst io.Writer, src io.Reader) (int64, error) {
	buf := p.Get(CopySize)
	defer p.Put(buf)
	return io.CopyBuffer(dst, src, buf)
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() Stats {
	return Stats{Pooled: p.pooled.Load(), Oversize: p.oversize.Load()}
}

// =============================================================================
// Global Pool
// =============================================================================

var globalPool = NewPool(nil)

// Get returns a buffer of length size from the global pool.
func Get(size int) []byte {
	return globalPool.Get(size)
}

// Put returns a buffer to the global pool.
func Put(buf []byte) {
	globalPool.Put(buf)
}

// Copy copies src to dst through a buffer from the global pool.
func Copy(dst io.Writer, src io.Reader) (int64, error) {
	return globalPool.Copy(dst, src)
}
