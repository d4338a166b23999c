//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package filehandle

import "golang.org/x/sys/unix"

// defaultCreateMode is the permission passed to open(2); the umask applies.
const defaultCreateMode = 0o666

// unixFlags translates the options into an open(2) flag set.
func (o OpenOptions) unixFlags() int {
	flags := 0
	if !o.FollowSymlinks {
		flags |= unix.O_NOFOLLOW
	}
	if o.CloseOnExec {
		flags |= unix.O_CLOEXEC
	}

	switch {
	case o.ReadContents && o.WriteContents:
		flags |= unix.O_RDWR
	case o.WriteContents:
		flags |= unix.O_WRONLY
	default:
		flags |= unix.O_RDONLY
	}

	if o.Create {
		flags |= unix.O_CREAT
	}
	if o.ExclusiveCreate {
		flags |= unix.O_EXCL
	}
	if o.Truncate {
		flags |= unix.O_TRUNC
	}

	if o.MetaDataOnly {
		flags = metaDataOnlyFlags(flags, o.FollowSymlinks)
	}
	return flags
}
