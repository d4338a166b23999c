//go:build windows

package filehandle

import "golang.org/x/sys/windows"

// win32OpenParams is the CreateFile argument set derived from OpenOptions.
type win32OpenParams struct {
	access   uint32
	share    uint32
	creation uint32
	flags    uint32
	inherit  bool
}

// win32Params translates the options into CreateFile arguments.
func (o OpenOptions) win32Params() win32OpenParams {
	p := win32OpenParams{
		share: windows.FILE_SHARE_READ | windows.FILE_SHARE_WRITE | windows.FILE_SHARE_DELETE,
		// Required to obtain a handle to a directory.
		flags:   windows.FILE_FLAG_BACKUP_SEMANTICS,
		inherit: !o.CloseOnExec,
	}

	switch {
	case o.ReadContents && o.WriteContents:
		p.access = windows.GENERIC_READ | windows.GENERIC_WRITE
	case o.WriteContents:
		p.access = windows.GENERIC_WRITE
	case o.ReadContents:
		p.access = windows.GENERIC_READ
	case o.MetaDataOnly:
		p.access = windows.FILE_READ_ATTRIBUTES
	default:
		p.access = windows.GENERIC_READ
	}

	switch {
	case o.Create && o.ExclusiveCreate:
		p.creation = windows.CREATE_NEW
	case o.Create && o.Truncate:
		p.creation = windows.CREATE_ALWAYS
	case o.Create:
		p.creation = windows.OPEN_ALWAYS
	case o.Truncate:
		p.creation = windows.TRUNCATE_EXISTING
	default:
		p.creation = windows.OPEN_EXISTING
	}

	if !o.FollowSymlinks {
		p.flags |= windows.FILE_FLAG_OPEN_REPARSE_POINT
	}
	return p
}
