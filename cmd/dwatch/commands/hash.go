package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marmos91/dittowatch/internal/bytesize"
	"github.com/marmos91/dittowatch/internal/logger"
	"github.com/marmos91/dittowatch/pkg/contenthash"
	"github.com/marmos91/dittowatch/pkg/filehandle"
)

var hashRoot string

var hashCmd = &cobra.Command{
	Use:   "hash <relpath>...",
	Short: "Compute SHA-1 content hashes of files below a root",
	Long: `Hash files below --root through the content hash cache.

Each file is stat'ed without following symlinks to build its cache key,
read in full, and stat'ed again; a file that changes while being read is
reported as an error. Files are hashed concurrently, bounded by
hash.workers, and files above hash.max_file_size are rejected.

Examples:
  dwatch hash --root ~/src/project go.mod go.sum
  dwatch hash -o json README.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHash,
}

func init() {
	hashCmd.Flags().StringVar(&hashRoot, "root", ".", "Directory the paths are relative to")
}

// HashEntry is the hash result for one path.
type HashEntry struct {
	Path  string `json:"path" yaml:"path"`
	Size  int64  `json:"size" yaml:"size"`
	SHA1  string `json:"sha1,omitempty" yaml:"sha1,omitempty"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// HashList renders hash results as a table.
type HashList []HashEntry

// Headers implements output.TableRenderer.
func (l HashList) Headers() []string {
	return []string{"PATH", "SIZE", "SHA1"}
}

// Rows implements output.TableRenderer.
func (l HashList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, e := range l {
		sum := e.SHA1
		if e.Error != "" {
			sum = "error: " + e.Error
		}
		rows = append(rows, []string{e.Path, bytesize.ByteSize(e.Size).String(), sum})
	}
	return rows
}

func runHash(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	printer, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	root, err := filepath.Abs(hashRoot)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}

	cache := contenthash.New(root, cfg.Hash.MaxItems, cfg.Hash.ErrorTTL,
		contenthash.WithMaxFileSize(cfg.Hash.MaxFileSize.Int64()),
		contenthash.WithWorkers(cfg.Hash.Workers),
	)

	entries := make(HashList, len(args))
	var keys []contenthash.Key
	var slots []int
	for i, arg := range args {
		rel := filepath.ToSlash(filepath.Clean(arg))
		entries[i].Path = rel

		if filepath.IsAbs(arg) || rel == ".." || strings.HasPrefix(rel, "../") {
			entries[i].Error = "path must be relative to the root"
			continue
		}

		key, err := keyFor(cache, rel)
		if err != nil {
			entries[i].Error = describeError(err)
			continue
		}
		entries[i].Size = key.FileSize
		keys = append(keys, key)
		slots = append(slots, i)
	}

	for j, res := range cache.GetBatch(cmd.Context(), keys) {
		i := slots[j]
		if res.Err != nil {
			entries[i].Error = res.Err.Error()
			continue
		}
		entries[i].SHA1 = res.Hash.String()
	}

	stats := cache.Stats()
	logger.Debug("hash batch complete",
		logger.Root(root),
		logger.Entries(stats.Entries),
		logger.Workers(cfg.Hash.Workers),
	)

	if err := printer.Print(entries); err != nil {
		return err
	}

	failed := 0
	for _, e := range entries {
		if e.Error != "" {
			failed++
		}
	}
	return pathFailures(failed, len(entries))
}

// keyFor stats rel below the cache root without following symlinks.
func keyFor(cache *contenthash.Cache, rel string) (contenthash.Key, error) {
	var info *filehandle.FileInfo
	err := filehandle.WithOpen(cache.FullPath(rel), queryOptions(false), func(h *filehandle.Handle) error {
		var err error
		info, err = h.Info()
		return err
	})
	if err != nil {
		return contenthash.Key{}, err
	}
	if !info.IsRegular() {
		return contenthash.Key{}, fmt.Errorf("%s is a %s, not a regular file", rel, info.FileType())
	}
	return contenthash.Key{RelativePath: rel, FileSize: info.Size, Mtime: info.Mtime}, nil
}
