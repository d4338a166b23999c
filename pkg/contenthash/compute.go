package contenthash

import (
	"crypto/sha1"
	"fmt"
	"path/filepath"

	"github.com/marmos91/dittowatch/pkg/bufpool"
	"github.com/marmos91/dittowatch/pkg/filehandle"
)

// FullPath returns the absolute location of rel below the cache root.
func (c *Cache) FullPath(rel string) string {
	return filepath.Join(c.root, filepath.FromSlash(rel))
}

// ComputeImmediate hashes the file named by key on the calling goroutine,
// bypassing the cache.
//
// Once the contents are read the file is stat'ed again, following symlinks
// only if key.FollowSymlinks is set. If its size or mtime no longer match
// the key, ErrMetadataChanged is returned rather than associating the
// digest with a stale key.
func (c *Cache) ComputeImmediate(key Key) (HashValue, error) {
	fullPath := c.FullPath(key.RelativePath)

	if c.maxFileSize > 0 && key.FileSize > c.maxFileSize {
		return HashValue{}, fmt.Errorf("%w: %s is %d bytes (limit %d)",
			ErrTooLarge, fullPath, key.FileSize, c.maxFileSize)
	}

	opts := filehandle.DefaultOpenOptions()
	opts.ReadContents = true
	opts.FollowSymlinks = true
	h, err := filehandle.Open(fullPath, opts)
	if err != nil {
		return HashValue{}, err
	}

	f := h.IntoFile(fullPath)
	defer func() { _ = f.Close() }()

	hasher := sha1.New()
	if _, err := bufpool.Copy(hasher, f); err != nil {
		return HashValue{}, fmt.Errorf("while reading from %s: %w", fullPath, err)
	}

	var result HashValue
	hasher.Sum(result[:0])

	if err := verifyUnchanged(fullPath, key); err != nil {
		return HashValue{}, err
	}
	return result, nil
}

func verifyUnchanged(fullPath string, key Key) error {
	opts := filehandle.QueryFileInfo()
	opts.FollowSymlinks = key.FollowSymlinks

	var info *filehandle.FileInfo
	err := filehandle.WithOpen(fullPath, opts, func(h *filehandle.Handle) error {
		var err error
		info, err = h.Info()
		return err
	})
	if err != nil {
		return fmt.Errorf("unable to stat %s after hashing; query again to get latest status: %w", fullPath, err)
	}

	if info.Size != key.FileSize || info.Mtime.UnixNano() != key.Mtime.UnixNano() {
		return fmt.Errorf("%w: %s; query again to get latest status", ErrMetadataChanged, fullPath)
	}
	return nil
}
