package filehandle

import (
	"os"
	"syscall"
)

// noCopy lets `go vet` (copylocks) flag accidental copies of a Handle.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Handle owns exactly one native file handle, or none (the sentinel state).
//
// Ownership moves with Move, TakeFrom, Release and IntoFile; the source of a
// transfer is always left in the sentinel state. Always pass *Handle, never
// Handle: copying the struct would duplicate ownership.
type Handle struct {
	noCopy noCopy
	fd     NativeHandle
}

// FromNative wraps a raw native value without validation. Use it when the
// caller already checked that the call producing v succeeded.
func FromNative(v NativeHandle) *Handle {
	return &Handle{fd: v}
}

// FromNativeChecked wraps v, failing with ErrInvalidArgument if v is the
// invalid sentinel. cause is the error returned by the call that produced v
// and becomes the wrapped OS error; op labels the failing operation.
func FromNativeChecked(v NativeHandle, op string, cause error) (*Handle, error) {
	if v == InvalidNative {
		return nil, newInvalidArgumentError(op, cause)
	}
	return &Handle{fd: v}, nil
}

// Native returns the owned native value without transferring ownership.
func (h *Handle) Native() NativeHandle {
	if h == nil {
		return InvalidNative
	}
	return h.fd
}

// Valid reports whether h currently owns a native handle.
func (h *Handle) Valid() bool {
	return h != nil && h.fd != InvalidNative
}

// Release returns the native value and resets h to the sentinel state. The
// caller becomes responsible for closing the returned value.
func (h *Handle) Release() NativeHandle {
	if h == nil {
		return InvalidNative
	}
	v := h.fd
	h.fd = InvalidNative
	return v
}

// Close closes the owned native handle, if any, and resets h to the
// sentinel state. Close is idempotent and always returns nil: close(2)
// failures leave nothing for the caller to recover.
func (h *Handle) Close() error {
	if h == nil || h.fd == InvalidNative {
		return nil
	}
	_ = closeNative(h.fd)
	h.fd = InvalidNative
	return nil
}

// Move transfers ownership to a new Handle, leaving h in the sentinel state.
func (h *Handle) Move() *Handle {
	return &Handle{fd: h.Release()}
}

// TakeFrom moves src's native value into h. Any handle h previously owned
// is closed first; src is left in the sentinel state.
func (h *Handle) TakeFrom(src *Handle) {
	if h == src {
		return
	}
	_ = h.Close()
	h.fd = src.Release()
}

// IntoFile transfers ownership into an *os.File named name. It returns nil
// if h owns nothing.
func (h *Handle) IntoFile(name string) *os.File {
	if !h.Valid() {
		return nil
	}
	return os.NewFile(uintptr(h.Release()), name)
}

// OpenedPath returns the filesystem path currently bound to the handle.
// The strategy used depends on the platform; see the package documentation.
func (h *Handle) OpenedPath() (string, error) {
	if !h.Valid() {
		return "", newPathResolutionError(opGetOpenedPath, syscall.EBADF)
	}
	return h.openedPath()
}

// WithOpen opens path, passes the handle to fn and closes it on every exit
// path, including panics.
func WithOpen(path string, opts OpenOptions, fn func(*Handle) error) error {
	h, err := Open(path, opts)
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()
	return fn(h)
}

const opGetOpenedPath = "getOpenedPath"
