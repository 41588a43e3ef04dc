package warptext

import "errors"

// Errors returned by the warptext package. More context is attached at the
// point of failure; match with errors.Is.
var (
	// ErrConfig is returned for invalid constructor arguments, and at render
	// time when a text callback produces an unusable value.
	ErrConfig = errors.New("invalid configuration")

	// ErrFontLoad is returned when a font resource is missing or unparseable.
	ErrFontLoad = errors.New("font load failed")

	// ErrEncode is returned for unknown output formats and encoder failures.
	ErrEncode = errors.New("image encode failed")
)
