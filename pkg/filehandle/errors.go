package filehandle

import (
	"errors"
	"fmt"
	"syscall"
)

// ErrorCode identifies the kind of failure reported by this package.
type ErrorCode int

const (
	// ErrInvalidArgument indicates a raw native value handed to
	// FromNativeChecked was already the invalid sentinel.
	ErrInvalidArgument ErrorCode = iota + 1

	// ErrOpenFailed indicates the native open call failed.
	ErrOpenFailed

	// ErrStatFailed indicates metadata retrieval failed.
	ErrStatFailed

	// ErrPathResolution indicates reverse path lookup failed.
	ErrPathResolution

	// ErrNotImplemented indicates the environment cannot support the
	// operation: no platform strategy exists, or the introspection
	// filesystem (/proc) is not mounted. Always carries ENOSYS.
	ErrNotImplemented
)

// String returns a human-readable name for the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrInvalidArgument:
		return "InvalidArgument"
	case ErrOpenFailed:
		return "OpenFailed"
	case ErrStatFailed:
		return "StatFailed"
	case ErrPathResolution:
		return "PathResolution"
	case ErrNotImplemented:
		return "NotImplemented"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Error is the error type returned by every fallible operation in this
// package. Err holds the underlying OS error (usually a syscall.Errno), so
// errors.Is(err, fs.ErrNotExist) and friends see through it.
type Error struct {
	Code ErrorCode
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
// Format: "op path: cause", with path and cause omitted when empty.
func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying OS error.
func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the ErrorCode carried by err, or 0 if err does not wrap an
// *Error.
func CodeOf(err error) ErrorCode {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return 0
}

// IsNotImplemented reports whether err is an ErrNotImplemented failure.
func IsNotImplemented(err error) bool {
	return CodeOf(err) == ErrNotImplemented
}

// Errno extracts the OS error number wrapped by err.
func Errno(err error) (syscall.Errno, bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno, true
	}
	return 0, false
}

// ============================================================================
// Factory Functions
// ============================================================================

func newInvalidArgumentError(op string, cause error) *Error {
	if cause == nil {
		cause = syscall.EINVAL
	}
	return &Error{Code: ErrInvalidArgument, Op: op, Err: cause}
}

func newOpenError(path string, cause error) *Error {
	return &Error{Code: ErrOpenFailed, Op: "open", Path: path, Err: cause}
}

func newStatError(op string, cause error) *Error {
	return &Error{Code: ErrStatFailed, Op: op, Err: cause}
}

func newPathResolutionError(op string, cause error) *Error {
	return &Error{Code: ErrPathResolution, Op: op, Err: cause}
}

func newNotImplementedError(op string) *Error {
	return &Error{Code: ErrNotImplemented, Op: op, Err: syscall.ENOSYS}
}
