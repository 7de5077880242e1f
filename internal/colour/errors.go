package colour

import "errors"

var (
	// ErrNotAColor is returned when a value cannot be used as a concrete colour.
	ErrNotAColor = errors.New("not a color")

	// ErrUnknownContrastStandard is returned for a threshold name outside the WCAG table.
	ErrUnknownContrastStandard = errors.New("unknown contrast standard")

	// ErrInsufficientContrastOptions is returned when fewer than two candidates are available.
	ErrInsufficientContrastOptions = errors.New("insufficient contrast options")
)
