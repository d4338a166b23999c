//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package filehandle

import "golang.org/x/sys/unix"

// NativeHandle is a POSIX file descriptor.
type NativeHandle = int

// InvalidNative is the descriptor value meaning "no handle owned".
const InvalidNative NativeHandle = -1

// closeNative is swapped out by tests to observe close calls.
var closeNative = unix.Close

// SetCloseOnExec sets FD_CLOEXEC. Best effort: failures are ignored.
func (h *Handle) SetCloseOnExec() {
	if !h.Valid() {
		return
	}
	unix.CloseOnExec(h.fd)
}

// SetNonBlocking sets or clears O_NONBLOCK. Best effort: failures are
// ignored.
func (h *Handle) SetNonBlocking(nonblocking bool) {
	if !h.Valid() {
		return
	}
	_ = unix.SetNonblock(h.fd, nonblocking)
}

// IsNonBlocking reports whether O_NONBLOCK is set. It returns false if the
// flags cannot be read.
func (h *Handle) IsNonBlocking() bool {
	if !h.Valid() {
		return false
	}
	flags, err := unix.FcntlInt(uintptr(h.fd), unix.F_GETFL, 0)
	if err != nil {
		return false
	}
	return flags&unix.O_NONBLOCK == unix.O_NONBLOCK
}
