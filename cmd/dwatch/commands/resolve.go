package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/marmos91/dittowatch/internal/logger"
	"github.com/marmos91/dittowatch/internal/telemetry"
	"github.com/marmos91/dittowatch/pkg/filehandle"
)

var resolveFollow bool

var resolveCmd = &cobra.Command{
	Use:   "resolve <path>...",
	Short: "Print the path the kernel associates with an open handle",
	Long: `Open each path and ask the operating system which path the handle is
bound to. Linux reads /proc/self/fd, macOS uses F_GETPATH and Windows
GetFinalPathNameByHandle; other platforms report "not implemented".

The resolved path is canonical: symlinks in parent directories are
resolved and, on Windows, the drive letter form is used.

Examples:
  dwatch resolve ./docs/../README.md
  dwatch resolve --follow=false /var/run`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().BoolVarP(&resolveFollow, "follow", "L", true, "Follow a symbolic link in the final component")
}

// ResolveEntry pairs a requested path with its resolved form.
type ResolveEntry struct {
	Path       string `json:"path" yaml:"path"`
	OpenedPath string `json:"opened_path" yaml:"opened_path"`
}

// ResolveList renders resolve results as a table.
type ResolveList []ResolveEntry

// Headers implements output.TableRenderer.
func (l ResolveList) Headers() []string {
	return []string{"PATH", "OPENED PATH"}
}

// Rows implements output.TableRenderer.
func (l ResolveList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, e := range l {
		rows = append(rows, []string{e.Path, e.OpenedPath})
	}
	return rows
}

func runResolve(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}
	printer, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	var entries ResolveList
	failed := 0
	for _, path := range args {
		opened, err := resolvePath(cmd.Context(), path, resolveFollow)
		if err != nil {
			failed++
			PrintErr("%s: %s", path, describeError(err))
			continue
		}
		entries = append(entries, ResolveEntry{Path: path, OpenedPath: opened})
	}

	if len(entries) > 0 {
		if err := printer.Print(entries); err != nil {
			return err
		}
	}
	return pathFailures(failed, len(args))
}

func resolvePath(ctx context.Context, path string, follow bool) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := telemetry.StartHandleSpan(ctx, telemetry.SpanResolve, path)
	defer span.End()

	var opened string
	err := filehandle.WithOpen(path, queryOptions(follow), func(h *filehandle.Handle) error {
		var err error
		opened, err = h.OpenedPath()
		return err
	})
	if err != nil {
		telemetry.RecordError(ctx, err)
		telemetry.SetAttributes(ctx, telemetry.ErrorCode(filehandle.CodeOf(err).String()))
		return "", err
	}

	telemetry.SetAttributes(ctx, telemetry.OpenedPath(opened))
	logger.DebugCtx(ctx, "resolved", logger.Path(path), logger.OpenedPath(opened))
	return opened, nil
}
