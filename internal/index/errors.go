package index

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a lookup for a path that is not in the index.
var ErrNotFound = errors.New("project not found")

// FormatError indicates the index file exists but cannot be parsed. It is
// surfaced instead of discarding the file: silently wiping a user's access
// history is worse than a visible failure.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid index file %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
