package commands

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/dittowatch/internal/cli/timeutil"
	"github.com/marmos91/dittowatch/internal/logger"
	"github.com/marmos91/dittowatch/pkg/config"
	"github.com/marmos91/dittowatch/pkg/contenthash"
	"github.com/marmos91/dittowatch/pkg/metrics"
	"github.com/marmos91/dittowatch/pkg/watcher"
)

var (
	watchRecursive bool
	watchFollow    bool
	watchNoHash    bool
	watchNoResolve bool
	watchIgnore    []string
)

var watchCmd = &cobra.Command{
	Use:   "watch [root]",
	Short: "Watch a directory tree and report enriched change events",
	Long: `Watch a directory for changes until interrupted.

Every event is stat'ed through a metadata-only handle, resolved back to the
path the kernel reports for the handle, and regular files are hashed
through the content hash cache. Settings come from the watch section of
the configuration; flags given on the command line take precedence.

When metrics.enabled is set, Prometheus metrics are served on
metrics.port at /metrics.

Examples:
  # Watch the current directory
  dwatch watch

  # Watch a tree without hashing, as JSON lines
  dwatch watch --no-hash -o json ~/src

  # Extra ignore patterns
  dwatch watch --ignore 'node_modules' --ignore '*.tmp' .`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchRecursive, "recursive", "r", true, "Watch subdirectories")
	watchCmd.Flags().BoolVarP(&watchFollow, "follow", "L", false, "Follow symbolic links when stat'ing events")
	watchCmd.Flags().BoolVar(&watchNoHash, "no-hash", false, "Do not hash regular files")
	watchCmd.Flags().BoolVar(&watchNoResolve, "no-resolve", false, "Do not resolve opened paths")
	watchCmd.Flags().StringSliceVar(&watchIgnore, "ignore", nil, "Additional ignore glob (repeatable)")
}

// watcherConfig merges the watch section of cfg with explicitly set flags.
func watcherConfig(cmd *cobra.Command, cfg config.WatchConfig, args []string) watcher.Config {
	wc := watcher.Config{
		Root:           cfg.Root,
		Recursive:      cfg.Recursive,
		FollowSymlinks: cfg.FollowSymlinks,
		ResolvePaths:   cfg.ResolvePaths,
		HashFiles:      cfg.HashFiles,
		Ignore:         append([]string(nil), cfg.Ignore...),
		BufferSize:     cfg.BufferSize,
	}
	if len(args) == 1 {
		wc.Root = args[0]
	}
	if wc.Root == "" {
		wc.Root = "."
	}

	flags := cmd.Flags()
	if flags.Changed("recursive") {
		wc.Recursive = watchRecursive
	}
	if flags.Changed("follow") {
		wc.FollowSymlinks = watchFollow
	}
	if flags.Changed("no-hash") {
		wc.HashFiles = !watchNoHash
	}
	if flags.Changed("no-resolve") {
		wc.ResolvePaths = !watchNoResolve
	}
	wc.Ignore = append(wc.Ignore, watchIgnore...)
	return wc
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	printer, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := InitTelemetry(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		shutdownTelemetry(flushCtx)
	}()

	started := time.Now()
	wc := watcherConfig(cmd, cfg.Watch, args)
	root, err := filepath.Abs(wc.Root)
	if err != nil {
		return fmt.Errorf("resolve watch root: %w", err)
	}
	wc.Root = root

	var (
		hashMetrics  *metrics.ContentHashMetrics
		watchMetrics *metrics.WatcherMetrics
		metricsDone  chan error
	)
	if cfg.Metrics.Enabled {
		reg := metrics.NewRegistry()
		hashMetrics = metrics.NewContentHashMetrics(reg)
		watchMetrics = metrics.NewWatcherMetrics(reg)

		srv, err := metrics.NewServer(cfg.Metrics.Port, reg)
		if err != nil {
			return err
		}
		metricsDone = make(chan error, 1)
		go func() { metricsDone <- srv.Start(ctx) }()
	}

	var cache *contenthash.Cache
	if wc.HashFiles {
		cache = contenthash.New(root, cfg.Hash.MaxItems, cfg.Hash.ErrorTTL,
			contenthash.WithMaxFileSize(cfg.Hash.MaxFileSize.Int64()),
			contenthash.WithWorkers(cfg.Hash.Workers),
			contenthash.WithMetrics(hashMetrics),
		)
	}

	w, err := watcher.New(wc, cache, watcher.WithMetrics(watchMetrics))
	if err != nil {
		return err
	}

	runDone := make(chan error, 1)
	go func() { runDone <- w.Run(ctx) }()

	logger.Info("Watcher is running. Press Ctrl+C to stop.", logger.Root(root))

	for ev := range w.Events() {
		if err := printer.Stream(ev); err != nil {
			stop()
			logger.ErrorCtx(ctx, "Failed to write event", logger.Err(err))
		}
	}

	runErr := <-runDone
	stop()
	if metricsDone != nil {
		select {
		case err := <-metricsDone:
			if err != nil {
				logger.Error("Metrics server error", logger.Err(err))
			}
		case <-time.After(cfg.ShutdownTimeout):
			logger.Warn("Metrics server did not stop within the shutdown timeout")
		}
	}

	if cache != nil {
		stats := cache.Stats()
		logger.Info("Watcher stopped",
			logger.Entries(stats.Entries),
			logger.Evicted(int(stats.Evictions)),
			"hits", stats.Hits,
			"misses", stats.Misses,
			"uptime", timeutil.FormatUptime(time.Since(started)),
		)
	} else {
		logger.Info("Watcher stopped", "uptime", timeutil.FormatUptime(time.Since(started)))
	}
	return runErr
}
