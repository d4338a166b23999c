//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package filehandle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestOpenOptions_UnixFlags(t *testing.T) {
	tests := []struct {
		name   string
		opts   OpenOptions
		access int
		set    int
		notSet int
	}{
		{
			name:   "Defaults",
			opts:   DefaultOpenOptions(),
			access: unix.O_RDONLY,
			set:    unix.O_CLOEXEC | unix.O_NOFOLLOW,
			notSet: unix.O_CREAT | unix.O_EXCL | unix.O_TRUNC,
		},
		{
			name:   "FollowSymlinks",
			opts:   OpenOptions{FollowSymlinks: true},
			access: unix.O_RDONLY,
			notSet: unix.O_NOFOLLOW | unix.O_CLOEXEC,
		},
		{
			name:   "ReadWrite",
			opts:   OpenOptions{ReadContents: true, WriteContents: true},
			access: unix.O_RDWR,
		},
		{
			name:   "WriteOnly",
			opts:   OpenOptions{WriteContents: true},
			access: unix.O_WRONLY,
		},
		{
			name:   "ReadOnly",
			opts:   OpenOptions{ReadContents: true},
			access: unix.O_RDONLY,
		},
		{
			name:   "CreateExclusiveTruncate",
			opts:   OpenOptions{WriteContents: true, Create: true, ExclusiveCreate: true, Truncate: true},
			access: unix.O_WRONLY,
			set:    unix.O_CREAT | unix.O_EXCL | unix.O_TRUNC,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := tt.opts.unixFlags()
			assert.Equal(t, tt.access, flags&unix.O_ACCMODE)
			assert.Equal(t, tt.set, flags&tt.set)
			assert.Zero(t, flags&tt.notSet)
		})
	}
}
