package mirror

import "errors"

var (
	// ErrConcurrentModification is returned when optimistic lock fails (version mismatch).
	ErrConcurrentModification = errors.New("roster: record was modified concurrently")

	// ErrCorruptItem is returned when a mirrored item no longer passes record validation.
	ErrCorruptItem = errors.New("roster: corrupt mirrored item")
)
