//go:build linux

package filehandle

import (
	"errors"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

const (
	// procLinkFastBufSize bounds the speculative readlink that avoids an
	// extra fstat for the common case of short paths.
	procLinkFastBufSize = 512

	opReadlinkOpenedPath = "readlink for getOpenedPath"
	opFstatOpenedPath    = "fstat for getOpenedPath"
	opProcNotMounted     = "getOpenedPath: need /proc to be mounted!"
)

// procLinkSys is the subset of OS calls used to resolve /proc fd links.
type procLinkSys interface {
	Readlink(path string, buf []byte) (int, error)
	Fstat(fd int, st *unix.Stat_t) error
}

type procfs struct{}

func (procfs) Readlink(path string, buf []byte) (int, error) {
	return unix.Readlink(path, buf)
}

func (procfs) Fstat(fd int, st *unix.Stat_t) error {
	return unix.Fstat(fd, st)
}

func (h *Handle) openedPath() (string, error) {
	return resolveProcLink(procfs{}, os.Getpid(), h.fd)
}

// procFdPath returns /proc/<pid>/fd/<fd>.
func procFdPath(pid, fd int) string {
	return "/proc/" + strconv.Itoa(pid) + "/fd/" + strconv.Itoa(fd)
}

// resolveProcLink reads the /proc symlink for fd. readlink(2) truncates
// silently, so a result that fills the buffer is treated like
// ENAMETOOLONG: fstat the descriptor for a size hint and retry exactly once
// with a buffer large enough for that size (never below PATH_MAX).
func resolveProcLink(sys procLinkSys, pid, fd int) (string, error) {
	procPath := procFdPath(pid, fd)

	var fast [procLinkFastBufSize]byte
	n, err := sys.Readlink(procPath, fast[:])
	if err == nil && n < len(fast) {
		return string(fast[:n]), nil
	}
	if err != nil {
		if errors.Is(err, unix.ENOENT) {
			// The link can only be missing if /proc is not mounted.
			return "", newNotImplementedError(opProcNotMounted)
		}
		if !errors.Is(err, unix.ENAMETOOLONG) {
			return "", newPathResolutionError(opReadlinkOpenedPath, err)
		}
	}

	var st unix.Stat_t
	if err := sys.Fstat(fd, &st); err != nil {
		return "", newPathResolutionError(opFstatOpenedPath, err)
	}
	size := st.Size
	if size < unix.PathMax {
		size = unix.PathMax
	}

	buf := make([]byte, size+1)
	n, err = sys.Readlink(procPath, buf)
	if err != nil {
		return "", newPathResolutionError(opReadlinkOpenedPath, err)
	}
	if n >= len(buf) {
		return "", newPathResolutionError(opReadlinkOpenedPath, unix.ENAMETOOLONG)
	}
	return string(buf[:n]), nil
}
