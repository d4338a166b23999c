package filehandle

import (
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrInvalidArgument, "InvalidArgument"},
		{ErrOpenFailed, "OpenFailed"},
		{ErrStatFailed, "StatFailed"},
		{ErrPathResolution, "PathResolution"},
		{ErrNotImplemented, "NotImplemented"},
		{ErrorCode(99), "Unknown(99)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.String())
	}
}

func TestError_Message(t *testing.T) {
	err := newOpenError("/tmp/missing", syscall.ENOENT)
	assert.Equal(t, "open /tmp/missing: "+syscall.ENOENT.Error(), err.Error())

	err = newStatError("fstat", syscall.EBADF)
	assert.Equal(t, "fstat: "+syscall.EBADF.Error(), err.Error())

	assert.Equal(t, "op", (&Error{Op: "op"}).Error())
}

func TestError_Unwrap(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", newOpenError("/x", syscall.ENOENT))

	assert.ErrorIs(t, err, syscall.ENOENT)
	assert.Equal(t, ErrOpenFailed, CodeOf(err))

	errno, ok := Errno(err)
	assert.True(t, ok)
	assert.Equal(t, syscall.ENOENT, errno)
}

func TestNotImplementedCarriesENOSYS(t *testing.T) {
	err := newNotImplementedError("getOpenedPath")
	assert.True(t, IsNotImplemented(err))
	assert.ErrorIs(t, err, syscall.ENOSYS)
}

func TestCodeOf_ForeignError(t *testing.T) {
	assert.Equal(t, ErrorCode(0), CodeOf(fmt.Errorf("plain")))
	assert.False(t, IsNotImplemented(nil))

	_, ok := Errno(fmt.Errorf("plain"))
	assert.False(t, ok)
}
