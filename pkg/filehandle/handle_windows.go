//go:build windows

package filehandle

import "golang.org/x/sys/windows"

// NativeHandle is a Win32 HANDLE.
type NativeHandle = windows.Handle

// InvalidNative is INVALID_HANDLE_VALUE.
const InvalidNative NativeHandle = windows.InvalidHandle

// closeNative is swapped out by tests to observe close calls.
var closeNative = windows.CloseHandle

// SetCloseOnExec is a no-op: Windows handle inheritance is chosen at open
// time through OpenOptions.CloseOnExec.
func (h *Handle) SetCloseOnExec() {}

// SetNonBlocking is a no-op on Windows.
func (h *Handle) SetNonBlocking(bool) {}

// IsNonBlocking always returns false on Windows.
func (h *Handle) IsNonBlocking() bool {
	return false
}
