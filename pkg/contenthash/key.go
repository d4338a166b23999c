package contenthash

import (
	"encoding/hex"
	"time"
)

// Key identifies one version of a file below the cache root. Two keys are
// equal when the path, the size, the mtime (to the nanosecond) and the
// symlink mode match.
//
// FollowSymlinks records how FileSize and Mtime were obtained: set it when
// they describe the target of a symlink rather than the path itself. The
// post-read verification stats the path the same way.
type Key struct {
	RelativePath   string
	FileSize       int64
	Mtime          time.Time
	FollowSymlinks bool
}

// cacheKey is the comparable form of Key. time.Time is not safe to compare
// with == because of its location and monotonic clock reading.
type cacheKey struct {
	path    string
	size    int64
	mtimeNs int64
	follow  bool
}

func (k Key) cacheKey() cacheKey {
	return cacheKey{
		path:    k.RelativePath,
		size:    k.FileSize,
		mtimeNs: k.Mtime.UnixNano(),
		follow:  k.FollowSymlinks,
	}
}

// Equal reports whether k and other describe the same file version.
func (k Key) Equal(other Key) bool {
	return k.cacheKey() == other.cacheKey()
}

// HashValue is a SHA-1 content digest.
type HashValue [20]byte

// String returns the lowercase hex encoding of h.
func (h HashValue) String() string {
	return hex.EncodeToString(h[:])
}

// MarshalText implements encoding.TextMarshaler so digests render as hex in
// JSON and YAML output.
func (h HashValue) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// IsZero reports whether h is the zero digest.
func (h HashValue) IsZero() bool {
	return h == HashValue{}
}
