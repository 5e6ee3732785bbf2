// Package repository defines error values that are reused across the
// reservation and block repositories.  These sentinels allow higher
// layers such as handlers to distinguish between failure scenarios
// without inspecting driver-specific errors.
package repository

import "errors"

// ErrNotFound is returned when a delete or lookup targets a row that
// does not exist.  Handlers should translate this into an HTTP 404
// response.
var ErrNotFound = errors.New("not found")
