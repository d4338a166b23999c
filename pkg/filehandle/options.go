package filehandle

// OpenOptions describes the intent of an Open call. Windows has no direct
// equivalent for several open(2) flags, so intent is expressed as semantic
// booleans and translated per platform.
//
// The zero value leaves CloseOnExec off; start from DefaultOpenOptions or
// QueryFileInfo instead.
type OpenOptions struct {
	FollowSymlinks  bool // !O_NOFOLLOW
	CloseOnExec     bool // O_CLOEXEC
	MetaDataOnly    bool // avoid accessing file contents
	ReadContents    bool // the read half of O_RDONLY or O_RDWR
	WriteContents   bool // the write half of O_WRONLY or O_RDWR
	Create          bool // O_CREAT
	ExclusiveCreate bool // O_EXCL
	Truncate        bool // O_TRUNC
}

// DefaultOpenOptions returns options with CloseOnExec set and everything
// else off.
func DefaultOpenOptions() OpenOptions {
	return OpenOptions{CloseOnExec: true}
}

// QueryFileInfo returns the preset used to open a handle only to query its
// metadata.
func QueryFileInfo() OpenOptions {
	opts := DefaultOpenOptions()
	opts.MetaDataOnly = true
	return opts
}
