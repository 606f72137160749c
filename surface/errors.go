// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "errors"

// Errors.
var (
	// ErrNoBackendAvailable is returned when no registered backend
	// accepts the options.
	ErrNoBackendAvailable = errors.New("surface: no backend available")

	// ErrInvalidDimensions is returned for a non-positive width or height.
	ErrInvalidDimensions = errors.New("surface: invalid dimensions")

	// ErrNilProvider is returned when a GPU native is requested without
	// a device provider.
	ErrNilProvider = errors.New("surface: nil DeviceProvider")
)

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}
