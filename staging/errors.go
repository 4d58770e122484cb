package staging

import "errors"

var (
	// ErrInvalidName indicates an empty file name or one containing a path separator.
	ErrInvalidName = errors.New("invalid staging file name")

	// ErrDirectoryTraversal indicates a file name that would escape the staging directory.
	ErrDirectoryTraversal = errors.New("path contains directory traversal")

	// ErrNameTooLong indicates a file name above MaxNameLength bytes.
	ErrNameTooLong = errors.New("staging file name too long")
)
