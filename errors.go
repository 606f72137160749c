package canvas2d

import (
	"errors"
	"fmt"
)

// Errors.
var (
	// ErrConfiguration is fatal at setup: an unresolvable surface id, an
	// invalid configuration file or an inconsistent shape kind.
	ErrConfiguration = errors.New("canvas2d: configuration error")

	// ErrDuplicateName is returned when a shape with the same base name
	// already exists on a sheet. The add is skipped.
	ErrDuplicateName = errors.New("canvas2d: duplicate shape name")

	// ErrUnknownStyle is reported when a sheet style is neither "static"
	// nor "dynamic". The sheet falls back to static.
	ErrUnknownStyle = errors.New("canvas2d: unknown sheet style")

	// ErrMalformedInput is returned by property converters for values they
	// cannot accept.
	ErrMalformedInput = errors.New("canvas2d: malformed input")
)

// UnknownKindError reports a lookup of an unregistered shape kind.
type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string {
	return "canvas2d: unknown shape kind: " + e.Name
}

// PropertyError reports a rejected property value.
type PropertyError struct {
	Kind     string
	Property string
	Value    any
	Err      error
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("canvas2d: %s.%s: invalid value %v: %v", e.Kind, e.Property, e.Value, e.Err)
}

func (e *PropertyError) Unwrap() error { return e.Err }
