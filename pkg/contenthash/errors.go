package contenthash

import "errors"

var (
	// ErrMetadataChanged is returned when the file's size or mtime no longer
	// match the key once hashing finished. Query again to get the latest
	// status.
	ErrMetadataChanged = errors.New("metadata changed during hashing")

	// ErrTooLarge is returned for files above the configured size limit.
	ErrTooLarge = errors.New("file exceeds maximum hash size")
)
