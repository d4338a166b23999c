//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package filehandle

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestHandle_InfoRegularFile(t *testing.T) {
	path := writeTempFile(t, "info.txt", "twelve bytes")
	mtime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	require.NoError(t, os.Chmod(path, 0o640))

	h, err := Open(path, QueryFileInfo())
	require.NoError(t, err)
	defer h.Close()

	info, err := h.Info()
	require.NoError(t, err)
	assert.True(t, info.IsRegular())
	assert.False(t, info.IsDir())
	assert.Equal(t, "file", info.FileType())
	assert.Equal(t, int64(12), info.Size)
	assert.Equal(t, os.FileMode(0o640), info.Mode.Perm())
	assert.True(t, info.Mtime.Equal(mtime))
	assert.EqualValues(t, 1, info.Nlink)

	st, err := os.Stat(path)
	require.NoError(t, err)
	sys := st.Sys().(*syscall.Stat_t)
	assert.EqualValues(t, sys.Ino, info.Ino)
}

func TestHandle_InfoDirectory(t *testing.T) {
	dir := t.TempDir()
	h, err := Open(dir, QueryFileInfo())
	require.NoError(t, err)
	defer h.Close()

	info, err := h.Info()
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, "directory", info.FileType())
}

func TestHandle_InfoSameFile(t *testing.T) {
	path := writeTempFile(t, "same.txt", "x")
	link := filepath.Join(filepath.Dir(path), "hard")
	require.NoError(t, os.Link(path, link))

	a, err := Open(path, QueryFileInfo())
	require.NoError(t, err)
	defer a.Close()
	b, err := Open(link, QueryFileInfo())
	require.NoError(t, err)
	defer b.Close()

	ia, err := a.Info()
	require.NoError(t, err)
	ib, err := b.Info()
	require.NoError(t, err)
	assert.True(t, ia.SameFile(ib))
	assert.EqualValues(t, 2, ia.Nlink)
}

func TestHandle_InfoOnSentinel(t *testing.T) {
	_, err := FromNative(InvalidNative).Info()
	require.Error(t, err)
	assert.Equal(t, ErrStatFailed, CodeOf(err))
	assert.ErrorIs(t, err, unix.EBADF)
}
