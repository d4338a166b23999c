//go:build dragonfly || freebsd || netbsd || openbsd

package filehandle

func (h *Handle) openedPath() (string, error) {
	return "", newNotImplementedError("getOpenedPath not implemented on this platform")
}
