//go:build darwin

package filehandle

import "golang.org/x/sys/unix"

// metaDataOnlyFlags adapts a metadata-only open to darwin, which has no
// O_PATH. O_NONBLOCK keeps the open of a FIFO or device from waiting on a
// peer. When symlinks are not followed O_SYMLINK opens the link itself
// rather than failing with ELOOP.
func metaDataOnlyFlags(flags int, followSymlinks bool) int {
	flags |= unix.O_NONBLOCK
	if followSymlinks {
		return flags
	}
	return flags&^unix.O_NOFOLLOW | unix.O_SYMLINK
}
