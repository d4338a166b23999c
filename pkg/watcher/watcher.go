// Package watcher reports filesystem changes below a root directory.
//
// Each change is enriched through an owning file handle: the path is opened
// for metadata only, stat'ed, optionally resolved back to the path the
// kernel currently associates with it, and regular files are hashed through
// a content hash cache.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/marmos91/dittowatch/internal/logger"
	"github.com/marmos91/dittowatch/internal/telemetry"
	"github.com/marmos91/dittowatch/pkg/contenthash"
	"github.com/marmos91/dittowatch/pkg/filehandle"
	"github.com/marmos91/dittowatch/pkg/metrics"
)

// DefaultBufferSize is the event channel capacity used when Config leaves
// it unset.
const DefaultBufferSize = 256

// Config controls what the watcher observes and how events are enriched.
type Config struct {
	Root           string
	Recursive      bool
	FollowSymlinks bool
	ResolvePaths   bool
	HashFiles      bool
	Ignore         []string
	BufferSize     int
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithMetrics records watcher activity to m.
func WithMetrics(m *metrics.WatcherMetrics) Option {
	return func(w *Watcher) { w.metrics = m }
}

// Watcher turns fsnotify notifications into enriched Events.
type Watcher struct {
	cfg     Config
	root    string
	cache   *contenthash.Cache
	metrics *metrics.WatcherMetrics
	ignore  *matcher

	fsw    *fsnotify.Watcher
	events chan Event

	mu      sync.Mutex
	watches map[string]struct{}

	closeOnce sync.Once
	closeErr  error
}

// New creates a watcher for cfg.Root. cache may be nil, in which case files
// are not hashed; otherwise its root must be the watch root.
func New(cfg Config, cache *contenthash.Cache, opts ...Option) (*Watcher, error) {
	if cfg.Root == "" {
		return nil, errors.New("watch root is required")
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve watch root: %w", err)
	}

	if err := requireDir(root); err != nil {
		return nil, err
	}

	if cache != nil {
		cacheRoot, err := filepath.Abs(cache.RootPath())
		if err != nil || cacheRoot != root {
			return nil, fmt.Errorf("content hash cache root %q does not match watch root %q", cache.RootPath(), root)
		}
	}

	ignore, err := newMatcher(cfg.Ignore)
	if err != nil {
		return nil, err
	}

	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		cfg:     cfg,
		root:    root,
		cache:   cache,
		ignore:  ignore,
		fsw:     fsw,
		events:  make(chan Event, cfg.BufferSize),
		watches: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func requireDir(root string) error {
	var info *filehandle.FileInfo
	err := filehandle.WithOpen(root, followingQuery(), func(h *filehandle.Handle) error {
		var err error
		info, err = h.Info()
		return err
	})
	if err != nil {
		return fmt.Errorf("watch root %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch root %s is a %s, not a directory", root, info.FileType())
	}
	return nil
}

func followingQuery() filehandle.OpenOptions {
	opts := filehandle.QueryFileInfo()
	opts.FollowSymlinks = true
	return opts
}

// Root returns the absolute watch root.
func (w *Watcher) Root() string {
	return w.root
}

// Events returns the channel events are delivered on. It is closed when
// Run returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Watches returns the number of directories currently watched.
func (w *Watcher) Watches() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.watches)
}

// Run registers the watch set and processes notifications until ctx is
// done or the watcher is closed. Run must be called at most once.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.events)
	defer func() { _ = w.Close() }()

	if err := w.addTree(w.root); err != nil {
		return err
	}
	logger.Info("Watching directory",
		logger.Root(w.root),
		logger.Watches(w.Watches()),
		"recursive", w.cfg.Recursive,
	)

	for {
		select {
		case <-ctx.Done():
			return nil

		case fev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, fev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				logger.Warn("Watcher queue overflowed, events were lost", logger.Root(w.root))
				continue
			}
			logger.Warn("Watcher error", logger.Root(w.root), logger.Err(err))
		}
	}
}

// Close stops the underlying notifier. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.closeErr = w.fsw.Close()
	})
	return w.closeErr
}

// addTree watches dir and, when recursive, every directory below it that
// is not ignored.
func (w *Watcher) addTree(dir string) error {
	if !w.cfg.Recursive {
		return w.addWatch(dir)
	}
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// The tree changes under us; skip what vanished.
			if errors.Is(err, fs.ErrNotExist) && p != dir {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != w.root && w.ignore.ignored(w.relPath(p)) {
			return filepath.SkipDir
		}
		return w.addWatch(p)
	})
}

func (w *Watcher) addWatch(dir string) error {
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.mu.Lock()
	w.watches[dir] = struct{}{}
	n := len(w.watches)
	w.mu.Unlock()

	w.metrics.SetWatches(n)
	logger.Debug("Directory watched", logger.Path(dir))
	return nil
}

// forget drops p from the watch set if it was a watched directory.
func (w *Watcher) forget(p string) {
	w.mu.Lock()
	_, ok := w.watches[p]
	delete(w.watches, p)
	n := len(w.watches)
	w.mu.Unlock()

	if ok {
		_ = w.fsw.Remove(p)
		w.metrics.SetWatches(n)
	}
}

func (w *Watcher) relPath(p string) string {
	rel, err := filepath.Rel(w.root, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

// handle enriches one notification and delivers it.
func (w *Watcher) handle(ctx context.Context, fev fsnotify.Event) {
	op := opName(fev.Op)
	if op == "" {
		return
	}
	rel := w.relPath(fev.Name)
	if w.ignore.ignored(rel) {
		return
	}

	start := time.Now()
	ev := Event{
		ID:      uuid.NewString(),
		Time:    start,
		Op:      op,
		Path:    fev.Name,
		RelPath: rel,
	}

	ctx, span := telemetry.StartWatchSpan(ctx, w.root, ev.ID, op, telemetry.Path(rel))
	defer span.End()
	lc := logger.NewLogContext("watch").WithRoot(w.root).WithEvent(ev.ID)
	ctx = logger.WithContext(ctx, lc.WithTrace(telemetry.TraceID(ctx), telemetry.SpanID(ctx)))

	if pathExists(op) {
		w.inspect(ctx, &ev)
	} else {
		w.forget(fev.Name)
	}
	if ev.Err != nil {
		telemetry.RecordError(ctx, ev.Err)
	}

	w.metrics.RecordEvent(op, time.Since(start))
	logger.DebugCtx(ctx, "Filesystem event",
		logger.EventOp(op),
		logger.RelPath(rel),
		logger.DurationMs(logger.Duration(start)),
	)

	w.deliver(ctx, ev)
}

// inspect opens the event's path for metadata and fills in Info,
// OpenedPath and Hash. Failures are recorded on the event.
func (w *Watcher) inspect(ctx context.Context, ev *Event) {
	opts := filehandle.QueryFileInfo()
	opts.FollowSymlinks = w.cfg.FollowSymlinks

	h, err := filehandle.Open(ev.Path, opts)
	if err != nil {
		w.handleError(ctx, ev, err)
		return
	}
	w.metrics.HandleOpened()

	info, err := h.Info()
	if err != nil {
		w.closeHandle(h)
		w.handleError(ctx, ev, err)
		return
	}
	ev.Info = info
	telemetry.SetAttributes(ctx, telemetry.FileType(info.FileType()), telemetry.Size(info.Size))

	if w.cfg.ResolvePaths {
		w.resolve(ctx, h, ev)
	}
	w.closeHandle(h)

	if info.IsDir() && ev.Op == OpCreate && w.cfg.Recursive {
		if err := w.addTree(ev.Path); err != nil {
			logger.WarnCtx(ctx, "Failed to watch new directory", logger.Path(ev.Path), logger.Err(err))
		}
	}

	if w.cfg.HashFiles && w.cache != nil && info.IsRegular() && hashable(ev.Op) {
		w.hash(ctx, ev)
	}
}

func (w *Watcher) resolve(ctx context.Context, h *filehandle.Handle, ev *Event) {
	opened, err := h.OpenedPath()
	switch {
	case err == nil:
		ev.OpenedPath = opened
		telemetry.SetAttributes(ctx, telemetry.OpenedPath(opened))
	case filehandle.IsNotImplemented(err):
		logger.DebugCtx(ctx, "Opened path resolution unavailable", logger.Err(err))
	default:
		w.handleError(ctx, ev, err)
	}
}

func (w *Watcher) hash(ctx context.Context, ev *Event) {
	key := contenthash.Key{
		RelativePath:   ev.RelPath,
		FileSize:       ev.Info.Size,
		Mtime:          ev.Info.Mtime,
		FollowSymlinks: w.cfg.FollowSymlinks,
	}
	sum, err := w.cache.Get(ctx, key)
	switch {
	case err == nil:
		ev.Hash = sum.String()
	case errors.Is(err, contenthash.ErrMetadataChanged):
		// Still being written; a later write event hashes the final state.
		logger.DebugCtx(ctx, "File changed while hashing", logger.RelPath(ev.RelPath))
	default:
		ev.setErr(err)
		logger.WarnCtx(ctx, "Content hash failed", logger.RelPath(ev.RelPath), logger.Err(err))
	}
}

func (w *Watcher) handleError(ctx context.Context, ev *Event, err error) {
	code := filehandle.CodeOf(err)
	w.metrics.RecordHandleError(code.String())
	if ev.Err == nil {
		ev.setErr(err)
	}

	// A path that vanished between the notification and the open is normal.
	if errors.Is(err, fs.ErrNotExist) {
		logger.DebugCtx(ctx, "Path vanished before it could be opened", logger.Path(ev.Path))
		return
	}
	logger.WarnCtx(ctx, "File handle operation failed",
		logger.Path(ev.Path),
		logger.ErrorCode(code.String()),
		logger.Err(err),
	)
}

func (w *Watcher) closeHandle(h *filehandle.Handle) {
	_ = h.Close()
	w.metrics.HandleClosed()
}

// deliver hands ev to the consumer, dropping it if the buffer is full.
func (w *Watcher) deliver(ctx context.Context, ev Event) {
	select {
	case w.events <- ev:
	case <-ctx.Done():
	default:
		w.metrics.RecordDropped()
		logger.WarnCtx(ctx, "Event dropped, consumer is too slow",
			logger.EventOp(ev.Op),
			logger.RelPath(ev.RelPath),
		)
	}
}
