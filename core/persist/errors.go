package persist

import "errors"

var (
	// ErrNotFound is returned by Load when no snapshot has been saved.
	ErrNotFound = errors.New("session snapshot not found")
	// ErrMissingPath is returned when a file store is created without a path.
	ErrMissingPath = errors.New("state file path is required")
)
