//go:build dragonfly || freebsd || netbsd || openbsd

package filehandle

import "golang.org/x/sys/unix"

// metaDataOnlyFlags adapts a metadata-only open to platforms without a
// metadata-only mode: the read-only open gets O_NONBLOCK so a FIFO or
// device does not wait on a peer.
func metaDataOnlyFlags(flags int, _ bool) int {
	return flags | unix.O_NONBLOCK
}
