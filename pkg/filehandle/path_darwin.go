//go:build darwin

package filehandle

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// maxPathLen is MAXPATHLEN; F_GETPATH never writes more than that, and the
// buffer it is given must hold at least that many bytes.
const maxPathLen = 1024

func (h *Handle) openedPath() (string, error) {
	// Heap allocated so the address handed to fcntl cannot move.
	buf := make([]byte, maxPathLen+1)
	_, err := unix.FcntlInt(uintptr(h.fd), unix.F_GETPATH, int(uintptr(unsafe.Pointer(&buf[0]))))
	runtime.KeepAlive(buf)
	if err != nil {
		return "", newPathResolutionError("fcntl for getOpenedPath", err)
	}
	return unix.ByteSliceToString(buf), nil
}
