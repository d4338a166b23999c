//go:build windows

package filehandle

import (
	"strings"

	"golang.org/x/sys/windows"
)

// GetFinalPathNameByHandle flags. x/sys/windows does not export them; both
// select the default (normalized name, drive letter form).
const (
	fileNameNormalized = 0x0
	volumeNameDOS      = 0x0
)

func (h *Handle) openedPath() (string, error) {
	buf := make([]uint16, windows.MAX_LONG_PATH)
	n, err := windows.GetFinalPathNameByHandle(h.fd, &buf[0], uint32(len(buf)), fileNameNormalized|volumeNameDOS)
	if err != nil {
		return "", newPathResolutionError("GetFinalPathNameByHandle for getOpenedPath", err)
	}
	if n >= uint32(len(buf)) {
		return "", newPathResolutionError("GetFinalPathNameByHandle for getOpenedPath", windows.ERROR_INSUFFICIENT_BUFFER)
	}
	return stripExtendedPrefix(windows.UTF16ToString(buf[:n])), nil
}

// stripExtendedPrefix turns \\?\C:\x into C:\x and \\?\UNC\srv\share into
// \\srv\share.
func stripExtendedPrefix(p string) string {
	if rest, ok := strings.CutPrefix(p, `\\?\UNC\`); ok {
		return `\\` + rest
	}
	if rest, ok := strings.CutPrefix(p, `\\?\`); ok {
		return rest
	}
	return p
}
