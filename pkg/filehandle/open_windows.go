//go:build windows

package filehandle

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Open is the CreateFile equivalent of open(2). It is meant for obtaining a
// handle to query a file, not for general purpose file creation or writing,
// although the Create, ExclusiveCreate and Truncate intents are honoured.
func Open(path string, opts OpenOptions) (*Handle, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, newOpenError(path, err)
	}

	p := opts.win32Params()

	var sa *windows.SecurityAttributes
	if p.inherit {
		sa = &windows.SecurityAttributes{InheritHandle: 1}
		sa.Length = uint32(unsafe.Sizeof(*sa))
	}

	h, err := windows.CreateFile(name, p.access, p.share, sa, p.creation, p.flags, 0)
	if err != nil {
		return nil, newOpenError(path, err)
	}
	return FromNative(h), nil
}
