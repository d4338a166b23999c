package filehandle

import (
	"io/fs"
	"time"
)

// FileInfo is the platform independent view of a native stat structure. It
// is produced by Handle.Info and never mutated afterwards.
type FileInfo struct {
	Mode  fs.FileMode `json:"mode" yaml:"mode"`
	Size  int64       `json:"size" yaml:"size"`
	Dev   uint64      `json:"dev" yaml:"dev"`
	Ino   uint64      `json:"ino" yaml:"ino"`
	Nlink uint64      `json:"nlink" yaml:"nlink"`
	UID   uint32      `json:"uid" yaml:"uid"`
	GID   uint32      `json:"gid" yaml:"gid"`
	Atime time.Time   `json:"atime" yaml:"atime"`
	Mtime time.Time   `json:"mtime" yaml:"mtime"`
	Ctime time.Time   `json:"ctime" yaml:"ctime"`

	// FileAttributes holds the raw Win32 attribute bits; zero elsewhere.
	FileAttributes uint32 `json:"file_attributes,omitempty" yaml:"file_attributes,omitempty"`
}

// IsDir reports whether the handle refers to a directory.
func (fi *FileInfo) IsDir() bool {
	return fi.Mode.IsDir()
}

// IsRegular reports whether the handle refers to a regular file.
func (fi *FileInfo) IsRegular() bool {
	return fi.Mode.IsRegular()
}

// IsSymlink reports whether the handle refers to a symbolic link. This is
// only possible when the handle was opened without following symlinks.
func (fi *FileInfo) IsSymlink() bool {
	return fi.Mode&fs.ModeSymlink != 0
}

// SameFile reports whether fi and other describe the same underlying file.
func (fi *FileInfo) SameFile(other *FileInfo) bool {
	if fi == nil || other == nil {
		return false
	}
	return fi.Dev == other.Dev && fi.Ino == other.Ino
}

// FileType returns a short name for the file type: file, directory,
// symlink, fifo, socket, device or unknown.
func (fi *FileInfo) FileType() string {
	switch {
	case fi.Mode.IsRegular():
		return "file"
	case fi.Mode.IsDir():
		return "directory"
	case fi.Mode&fs.ModeSymlink != 0:
		return "symlink"
	case fi.Mode&fs.ModeNamedPipe != 0:
		return "fifo"
	case fi.Mode&fs.ModeSocket != 0:
		return "socket"
	case fi.Mode&fs.ModeDevice != 0:
		return "device"
	default:
		return "unknown"
	}
}
