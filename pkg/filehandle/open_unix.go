//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package filehandle

import "golang.org/x/sys/unix"

// Open is the equivalent of open(2). It is meant for obtaining a handle to
// query a file, not for general purpose file creation or writing, although
// the Create, ExclusiveCreate and Truncate intents are honoured.
func Open(path string, opts OpenOptions) (*Handle, error) {
	fd, err := unix.Open(path, opts.unixFlags(), defaultCreateMode)
	if err != nil {
		return nil, newOpenError(path, err)
	}
	return FromNative(fd), nil
}
