//go:build linux

package filehandle

import "golang.org/x/sys/unix"

// metaDataOnlyFlags requests an O_PATH descriptor: usable for fstat,
// fchdir and /proc lookups but not for content I/O.
func metaDataOnlyFlags(flags int, _ bool) int {
	return flags | unix.O_PATH
}
