package store

import "errors"

// ErrNotFound is returned when no row matches the requested identifier,
// including writes that touched zero rows.
var ErrNotFound = errors.New("not found")
