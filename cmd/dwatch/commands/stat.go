package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/dittowatch/internal/bytesize"
	"github.com/marmos91/dittowatch/internal/cli/timeutil"
	"github.com/marmos91/dittowatch/internal/logger"
	"github.com/marmos91/dittowatch/internal/telemetry"
	"github.com/marmos91/dittowatch/pkg/filehandle"
)

var statFollow bool

var statCmd = &cobra.Command{
	Use:   "stat <path>...",
	Short: "Show file metadata read through a native handle",
	Long: `Open each path for metadata only and print what the handle reports.

Symbolic links are reported as links unless --follow is given.

Examples:
  # Show metadata as a table
  dwatch stat /etc/hosts /tmp

  # Follow symlinks and print JSON
  dwatch stat --follow -o json /var/run`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStat,
}

func init() {
	statCmd.Flags().BoolVarP(&statFollow, "follow", "L", false, "Follow symbolic links")
}

// StatEntry is the metadata reported for one path.
type StatEntry struct {
	Path  string    `json:"path" yaml:"path"`
	Type  string    `json:"type" yaml:"type"`
	Mode  string    `json:"mode" yaml:"mode"`
	Size  int64     `json:"size" yaml:"size"`
	Dev   uint64    `json:"dev" yaml:"dev"`
	Ino   uint64    `json:"ino" yaml:"ino"`
	Nlink uint64    `json:"nlink" yaml:"nlink"`
	UID   uint32    `json:"uid" yaml:"uid"`
	GID   uint32    `json:"gid" yaml:"gid"`
	Atime time.Time `json:"atime" yaml:"atime"`
	Mtime time.Time `json:"mtime" yaml:"mtime"`
	Ctime time.Time `json:"ctime" yaml:"ctime"`
}

// StatList renders stat results as a table.
type StatList []StatEntry

// Headers implements output.TableRenderer.
func (l StatList) Headers() []string {
	return []string{"PATH", "TYPE", "MODE", "SIZE", "INODE", "LINKS", "MODIFIED"}
}

// Rows implements output.TableRenderer.
func (l StatList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, e := range l {
		rows = append(rows, []string{
			e.Path,
			e.Type,
			e.Mode,
			bytesize.ByteSize(e.Size).String(),
			strconv.FormatUint(e.Ino, 10),
			strconv.FormatUint(e.Nlink, 10),
			timeutil.FormatLocal(e.Mtime),
		})
	}
	return rows
}

func runStat(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}
	printer, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	var entries StatList
	failed := 0
	for _, path := range args {
		entry, err := statPath(cmd.Context(), path, statFollow)
		if err != nil {
			failed++
			PrintErr("%s: %s", path, describeError(err))
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) > 0 {
		if err := printer.Print(entries); err != nil {
			return err
		}
	}
	return pathFailures(failed, len(args))
}

// statPath opens path for metadata and converts what the handle reports.
func statPath(ctx context.Context, path string, follow bool) (StatEntry, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := telemetry.StartHandleSpan(ctx, telemetry.SpanStat, path)
	defer span.End()

	var info *filehandle.FileInfo
	err := filehandle.WithOpen(path, queryOptions(follow), func(h *filehandle.Handle) error {
		var err error
		info, err = h.Info()
		return err
	})
	if err != nil {
		telemetry.RecordError(ctx, err)
		telemetry.SetAttributes(ctx, telemetry.ErrorCode(filehandle.CodeOf(err).String()))
		return StatEntry{}, err
	}

	telemetry.SetAttributes(ctx, telemetry.FileType(info.FileType()), telemetry.Size(info.Size))
	logger.DebugCtx(ctx, "stat",
		logger.Path(path),
		logger.Type(info.FileType()),
		logger.Size(info.Size),
		logger.Inode(info.Ino),
		logger.Device(info.Dev),
	)

	return StatEntry{
		Path:  path,
		Type:  info.FileType(),
		Mode:  info.Mode.String(),
		Size:  info.Size,
		Dev:   info.Dev,
		Ino:   info.Ino,
		Nlink: info.Nlink,
		UID:   info.UID,
		GID:   info.GID,
		Atime: info.Atime,
		Mtime: info.Mtime,
		Ctime: info.Ctime,
	}, nil
}

func queryOptions(follow bool) filehandle.OpenOptions {
	opts := filehandle.QueryFileInfo()
	opts.FollowSymlinks = follow
	return opts
}

func describeError(err error) string {
	if code := filehandle.CodeOf(err); code != 0 {
		return fmt.Sprintf("%s: %v", code, err)
	}
	return err.Error()
}
