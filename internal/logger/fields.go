package logger

import (
	"io/fs"
	"log/slog"
	"strconv"
)

// Standard field keys for structured logging. Use them consistently so log
// lines can be aggregated and queried across commands.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID
	KeySpanID  = "span_id"  // OpenTelemetry span ID

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyOperation  = "operation"   // stat, resolve, hash, watch
	KeyDurationMs = "duration_ms" // operation duration in milliseconds
	KeyError      = "error"       // error message
	KeyErrorCode  = "error_code"  // filehandle error code name
	KeyErrno      = "errno"       // numeric OS error

	// ========================================================================
	// File System
	// ========================================================================
	KeyPath       = "path"        // path as given by the caller
	KeyRelPath    = "rel_path"    // path relative to the watch or cache root
	KeyOpenedPath = "opened_path" // path resolved from an open handle
	KeyRoot       = "root"        // root directory
	KeyHandle     = "handle"      // native handle value
	KeyType       = "type"        // file, directory, symlink, ...
	KeySize       = "size"        // file size in bytes
	KeyMode       = "mode"        // file mode
	KeyInode      = "inode"       // inode number
	KeyDevice     = "device"      // device number

	// ========================================================================
	// Content Hashing
	// ========================================================================
	KeyHash     = "hash"      // content hash (hex)
	KeyCacheHit = "cache_hit" // cache hit indicator
	KeyEntries  = "entries"   // number of cached entries
	KeyEvicted  = "evicted"   // number of evicted entries
	KeyWorkers  = "workers"   // worker pool size

	// ========================================================================
	// Watcher
	// ========================================================================
	KeyEventID = "event_id" // watcher event ID
	KeyEventOp = "event_op" // create, write, remove, rename, chmod
	KeyWatches = "watches"  // number of watched directories
)

// TraceID returns a slog.Attr for OpenTelemetry trace ID
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// Operation returns a slog.Attr for the operation name
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error. A nil error yields an empty Attr,
// which handlers drop.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ErrorCode returns a slog.Attr for an error code name
func ErrorCode(code string) slog.Attr {
	return slog.String(KeyErrorCode, code)
}

// Errno returns a slog.Attr for a numeric OS error
func Errno(n uintptr) slog.Attr {
	return slog.Uint64(KeyErrno, uint64(n))
}

// Path returns a slog.Attr for a file path
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// RelPath returns a slog.Attr for a root-relative path
func RelPath(p string) slog.Attr {
	return slog.String(KeyRelPath, p)
}

// OpenedPath returns a slog.Attr for a handle's resolved path
func OpenedPath(p string) slog.Attr {
	return slog.String(KeyOpenedPath, p)
}

// Root returns a slog.Attr for a root directory
func Root(p string) slog.Attr {
	return slog.String(KeyRoot, p)
}

// Handle returns a slog.Attr for a native handle value
func Handle(v uint64) slog.Attr {
	return slog.Uint64(KeyHandle, v)
}

// Type returns a slog.Attr for a file type name
func Type(t string) slog.Attr {
	return slog.String(KeyType, t)
}

// Size returns a slog.Attr for size in bytes
func Size(s int64) slog.Attr {
	return slog.Int64(KeySize, s)
}

// Mode returns a slog.Attr for file mode, rendered like ls(1)
func Mode(m fs.FileMode) slog.Attr {
	return slog.String(KeyMode, m.String())
}

// Inode returns a slog.Attr for an inode number
func Inode(ino uint64) slog.Attr {
	return slog.Uint64(KeyInode, ino)
}

// Device returns a slog.Attr for a device number
func Device(dev uint64) slog.Attr {
	return slog.String(KeyDevice, "0x"+strconv.FormatUint(dev, 16))
}

// Hash returns a slog.Attr for a content hash
func Hash(h string) slog.Attr {
	return slog.String(KeyHash, h)
}

// CacheHit returns a slog.Attr for cache hit indicator
func CacheHit(hit bool) slog.Attr {
	return slog.Bool(KeyCacheHit, hit)
}

// Entries returns a slog.Attr for an entry count
func Entries(n int) slog.Attr {
	return slog.Int(KeyEntries, n)
}

// Evicted returns a slog.Attr for number of evicted entries
func Evicted(n int) slog.Attr {
	return slog.Int(KeyEvicted, n)
}

// Workers returns a slog.Attr for worker pool size
func Workers(n int) slog.Attr {
	return slog.Int(KeyWorkers, n)
}

// EventOp returns a slog.Attr for a watcher event operation
func EventOp(op string) slog.Attr {
	return slog.String(KeyEventOp, op)
}

// Watches returns a slog.Attr for the number of watched directories
func Watches(n int) slog.Attr {
	return slog.Int(KeyWatches, n)
}
