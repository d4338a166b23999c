package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys. Filesystem keys use the "fs." prefix.
const (
	AttrOperation  = "fs.operation"
	AttrPath       = "fs.path"
	AttrOpenedPath = "fs.opened_path"
	AttrHandle     = "fs.handle"
	AttrSize       = "fs.size"
	AttrType       = "fs.type"
	AttrErrorCode  = "fs.error_code"

	AttrHashRoot     = "hash.root"
	AttrHashValue    = "hash.value"
	AttrHashCacheHit = "hash.cache_hit"
	AttrHashBatch    = "hash.batch_size"

	AttrWatchRoot    = "watch.root"
	AttrWatchEventOp = "watch.event_op"
	AttrWatchEventID = "watch.event_id"
)

// Span names
const (
	SpanStat        = "filehandle.stat"
	SpanResolve     = "filehandle.resolve"
	SpanHash        = "contenthash.get"
	SpanHashCompute = "contenthash.compute"
	SpanHashBatch   = "contenthash.batch"
	SpanWatchEvent  = "watcher.event"
)

// Operation returns an attribute for the operation name.
func Operation(op string) attribute.KeyValue {
	return attribute.String(AttrOperation, op)
}

// Path returns an attribute for a caller-supplied path.
func Path(p string) attribute.KeyValue {
	return attribute.String(AttrPath, p)
}

// OpenedPath returns an attribute for a path resolved from a handle.
func OpenedPath(p string) attribute.KeyValue {
	return attribute.String(AttrOpenedPath, p)
}

// Handle returns an attribute for a native handle value.
func Handle(v int64) attribute.KeyValue {
	return attribute.Int64(AttrHandle, v)
}

// Size returns an attribute for a size in bytes.
func Size(n int64) attribute.KeyValue {
	return attribute.Int64(AttrSize, n)
}

// FileType returns an attribute for a file type name.
func FileType(t string) attribute.KeyValue {
	return attribute.String(AttrType, t)
}

// ErrorCode returns an attribute for a filehandle error code name.
func ErrorCode(code string) attribute.KeyValue {
	return attribute.String(AttrErrorCode, code)
}

// HashRoot returns an attribute for the hash cache root.
func HashRoot(root string) attribute.KeyValue {
	return attribute.String(AttrHashRoot, root)
}

// HashValue returns an attribute for a content hash.
func HashValue(h string) attribute.KeyValue {
	return attribute.String(AttrHashValue, h)
}

// CacheHit returns an attribute for a cache hit indicator.
func CacheHit(hit bool) attribute.KeyValue {
	return attribute.Bool(AttrHashCacheHit, hit)
}

// BatchSize returns an attribute for a hash batch size.
func BatchSize(n int) attribute.KeyValue {
	return attribute.Int(AttrHashBatch, n)
}

// WatchRoot returns an attribute for the watch root.
func WatchRoot(root string) attribute.KeyValue {
	return attribute.String(AttrWatchRoot, root)
}

// WatchEventOp returns an attribute for a watcher event operation.
func WatchEventOp(op string) attribute.KeyValue {
	return attribute.String(AttrWatchEventOp, op)
}

// WatchEventID returns an attribute for a watcher event ID.
func WatchEventID(id string) attribute.KeyValue {
	return attribute.String(AttrWatchEventID, id)
}

// StartHandleSpan starts a span for a filehandle operation on path.
func StartHandleSpan(ctx context.Context, name, path string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return StartSpan(ctx, name, trace.WithAttributes(append([]attribute.KeyValue{Path(path)}, attrs...)...))
}

// StartHashSpan starts a span for a content hash operation under root.
func StartHashSpan(ctx context.Context, name, root string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return StartSpan(ctx, name, trace.WithAttributes(append([]attribute.KeyValue{HashRoot(root)}, attrs...)...))
}

// StartWatchSpan starts a span for processing one watcher event.
func StartWatchSpan(ctx context.Context, root, eventID, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	base := []attribute.KeyValue{WatchRoot(root), WatchEventID(eventID), WatchEventOp(op)}
	return StartSpan(ctx, SpanWatchEvent, trace.WithAttributes(append(base, attrs...)...))
}
