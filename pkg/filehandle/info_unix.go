//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package filehandle

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// Info returns the metadata of the file the handle refers to (fstat).
func (h *Handle) Info() (*FileInfo, error) {
	var st unix.Stat_t
	if err := unix.Fstat(h.Native(), &st); err != nil {
		return nil, newStatError("fstat", err)
	}
	return fileInfoFromStat(&st), nil
}

func fileInfoFromStat(st *unix.Stat_t) *FileInfo {
	return &FileInfo{
		Mode:  fileModeFromUnix(uint32(st.Mode)),
		Size:  st.Size,
		Dev:   uint64(st.Dev),
		Ino:   uint64(st.Ino),
		Nlink: uint64(st.Nlink),
		UID:   st.Uid,
		GID:   st.Gid,
		Atime: time.Unix(st.Atim.Unix()),
		Mtime: time.Unix(st.Mtim.Unix()),
		Ctime: time.Unix(st.Ctim.Unix()),
	}
}

// fileModeFromUnix converts st_mode bits to an fs.FileMode.
func fileModeFromUnix(m uint32) fs.FileMode {
	mode := fs.FileMode(m & 0o777)
	switch m & unix.S_IFMT {
	case unix.S_IFBLK:
		mode |= fs.ModeDevice
	case unix.S_IFCHR:
		mode |= fs.ModeDevice | fs.ModeCharDevice
	case unix.S_IFDIR:
		mode |= fs.ModeDir
	case unix.S_IFIFO:
		mode |= fs.ModeNamedPipe
	case unix.S_IFLNK:
		mode |= fs.ModeSymlink
	case unix.S_IFSOCK:
		mode |= fs.ModeSocket
	}
	if m&unix.S_ISGID != 0 {
		mode |= fs.ModeSetgid
	}
	if m&unix.S_ISUID != 0 {
		mode |= fs.ModeSetuid
	}
	if m&unix.S_ISVTX != 0 {
		mode |= fs.ModeSticky
	}
	return mode
}
