package component

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a missing component source. Non-fatal to a run.
	ErrNotFound = errors.New("component not found")

	// ErrIO marks a copy, link, delete, read, or write failure.
	ErrIO = errors.New("i/o failure")

	// ErrMalformedConfig marks a shared JSON file or fragment that cannot be
	// merged.
	ErrMalformedConfig = errors.New("malformed config")

	// ErrInvalidSelection marks an unknown preset, backup, or kind/target
	// combination. Nothing is mutated when it is returned.
	ErrInvalidSelection = errors.New("invalid selection")
)

// IOError wraps err as an ErrIO for the given operation and path.
func IOError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}

// IsFatal reports whether err should fail a run. Not-found sources are
// reported but do not count against the run.
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, ErrNotFound)
}
