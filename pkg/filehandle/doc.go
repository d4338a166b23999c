// Package filehandle provides an owning wrapper around a native operating
// system file handle.
//
// A Handle owns exactly one native value: a file descriptor on POSIX systems
// or a HANDLE on Windows. Ownership is never duplicated, only transferred
// (Move, TakeFrom, Release, IntoFile), and Close releases the native value at
// most once. The package is intended for querying information from the
// filesystem (metadata, the path currently bound to an open handle) rather
// than as a general purpose I/O layer; callers that need to read contents
// transfer the handle into an *os.File.
//
// # Platform support
//
// The unix implementation targets darwin, dragonfly, freebsd, linux, netbsd
// and openbsd; Windows has its own implementation. Reverse path resolution
// (Handle.OpenedPath) is selected at build time:
//
//   - darwin: fcntl(F_GETPATH)
//   - windows: GetFinalPathNameByHandle
//   - linux: readlink of /proc/<pid>/fd/<fd> (requires /proc to be mounted)
//   - everything else: ErrNotImplemented
//
// # Concurrency
//
// A Handle is not internally synchronized. Lifecycle operations (Close,
// Release, Move, TakeFrom) on one Handle must be serialized by the caller.
//
// # Usage
//
//	h, err := filehandle.Open(path, filehandle.QueryFileInfo())
//	if err != nil {
//	    return err
//	}
//	defer h.Close()
//
//	info, err := h.Info()
//	...
//	resolved, err := h.OpenedPath()
package filehandle
