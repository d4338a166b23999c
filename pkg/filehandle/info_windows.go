//go:build windows

package filehandle

import (
	"io/fs"
	"time"

	"golang.org/x/sys/windows"
)

// Info returns the metadata of the file the handle refers to
// (GetFileInformationByHandle).
func (h *Handle) Info() (*FileInfo, error) {
	var d windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(h.Native(), &d); err != nil {
		return nil, newStatError("fstat", err)
	}
	return fileInfoFromByHandle(&d), nil
}

func fileInfoFromByHandle(d *windows.ByHandleFileInformation) *FileInfo {
	return &FileInfo{
		Mode:           fileModeFromAttributes(d.FileAttributes),
		Size:           int64(d.FileSizeHigh)<<32 | int64(d.FileSizeLow),
		Dev:            uint64(d.VolumeSerialNumber),
		Ino:            uint64(d.FileIndexHigh)<<32 | uint64(d.FileIndexLow),
		Nlink:          uint64(d.NumberOfLinks),
		Atime:          time.Unix(0, d.LastAccessTime.Nanoseconds()),
		Mtime:          time.Unix(0, d.LastWriteTime.Nanoseconds()),
		Ctime:          time.Unix(0, d.CreationTime.Nanoseconds()),
		FileAttributes: d.FileAttributes,
	}
}

// fileModeFromAttributes approximates POSIX mode bits from Win32 attributes.
func fileModeFromAttributes(attrs uint32) fs.FileMode {
	var mode fs.FileMode
	if attrs&windows.FILE_ATTRIBUTE_READONLY != 0 {
		mode = 0o444
	} else {
		mode = 0o666
	}
	switch {
	case attrs&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0:
		mode |= fs.ModeSymlink
	case attrs&windows.FILE_ATTRIBUTE_DIRECTORY != 0:
		mode |= fs.ModeDir | 0o111
	}
	return mode
}
