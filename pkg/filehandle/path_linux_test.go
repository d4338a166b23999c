//go:build linux

package filehandle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// fakeProc scripts readlink results in call order.
type fakeProc struct {
	target    string
	errs      []error
	size      int64
	statErr   error
	calls     int
	bufSizes  []int
	statCalls int
}

func (f *fakeProc) Readlink(path string, buf []byte) (int, error) {
	f.bufSizes = append(f.bufSizes, len(buf))
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return -1, f.errs[i]
	}
	return copy(buf, f.target), nil
}

func (f *fakeProc) Fstat(fd int, st *unix.Stat_t) error {
	f.statCalls++
	if f.statErr != nil {
		return f.statErr
	}
	st.Size = f.size
	return nil
}

func TestProcFdPath(t *testing.T) {
	assert.Equal(t, "/proc/42/fd/7", procFdPath(42, 7))
}

func TestResolveProcLink_ShortPath(t *testing.T) {
	sys := &fakeProc{target: "/tmp/short"}
	got, err := resolveProcLink(sys, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/short", got)
	assert.Equal(t, 1, sys.calls)
	assert.Zero(t, sys.statCalls)
}

func TestResolveProcLink_ProcNotMounted(t *testing.T) {
	sys := &fakeProc{errs: []error{unix.ENOENT}}
	_, err := resolveProcLink(sys, 1, 3)
	require.Error(t, err)
	assert.True(t, IsNotImplemented(err))
	assert.ErrorIs(t, err, unix.ENOSYS)
	assert.Contains(t, err.Error(), "/proc to be mounted")
}

func TestResolveProcLink_OtherReadlinkError(t *testing.T) {
	sys := &fakeProc{errs: []error{unix.EACCES}}
	_, err := resolveProcLink(sys, 1, 3)
	require.Error(t, err)
	assert.Equal(t, ErrPathResolution, CodeOf(err))
	assert.ErrorIs(t, err, unix.EACCES)
	assert.Contains(t, err.Error(), "readlink for getOpenedPath")
	assert.Zero(t, sys.statCalls)
}

func TestResolveProcLink_RetryAfterTruncation(t *testing.T) {
	long := "/" + strings.Repeat("a", 700)
	sys := &fakeProc{target: long, size: 10}
	got, err := resolveProcLink(sys, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, long, got)
	assert.Equal(t, 2, sys.calls)
	assert.Equal(t, 1, sys.statCalls)
	assert.Equal(t, []int{procLinkFastBufSize, unix.PathMax + 1}, sys.bufSizes)
}

func TestResolveProcLink_RetryAfterENAMETOOLONG(t *testing.T) {
	sys := &fakeProc{target: "/resolved", errs: []error{unix.ENAMETOOLONG}, size: 8192}
	got, err := resolveProcLink(sys, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "/resolved", got)
	assert.Equal(t, []int{procLinkFastBufSize, 8193}, sys.bufSizes)
}

func TestResolveProcLink_FstatFailure(t *testing.T) {
	sys := &fakeProc{errs: []error{unix.ENAMETOOLONG}, statErr: unix.EBADF}
	_, err := resolveProcLink(sys, 1, 3)
	require.Error(t, err)
	assert.Equal(t, ErrPathResolution, CodeOf(err))
	assert.ErrorIs(t, err, unix.EBADF)
	assert.Contains(t, err.Error(), "fstat for getOpenedPath")
}

func TestResolveProcLink_RetryFailure(t *testing.T) {
	sys := &fakeProc{errs: []error{unix.ENAMETOOLONG, unix.EIO}}
	_, err := resolveProcLink(sys, 1, 3)
	require.Error(t, err)
	assert.Equal(t, ErrPathResolution, CodeOf(err))
	assert.ErrorIs(t, err, unix.EIO)
	assert.Equal(t, 2, sys.calls)
}

func TestResolveProcLink_StillTooLongAfterRetry(t *testing.T) {
	sys := &fakeProc{target: "/" + strings.Repeat("b", unix.PathMax+10)}
	_, err := resolveProcLink(sys, 1, 3)
	require.Error(t, err)
	assert.Equal(t, ErrPathResolution, CodeOf(err))
	assert.ErrorIs(t, err, unix.ENAMETOOLONG)
	assert.Equal(t, 2, sys.calls)
}

func TestOpenedPath_LongRealPath(t *testing.T) {
	if _, err := os.Stat("/proc/self/fd"); err != nil {
		t.Skip("/proc not mounted")
	}

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	for i := 0; i < 7; i++ {
		dir = filepath.Join(dir, strings.Repeat(string(rune('a'+i)), 100))
	}
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.Greater(t, len(path), procLinkFastBufSize)

	h, err := Open(path, QueryFileInfo())
	require.NoError(t, err)
	defer h.Close()

	got, err := h.OpenedPath()
	require.NoError(t, err)
	assert.Equal(t, path, got)
}
