package raster

import "errors"

var (
	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("raster: invalid dimensions")

	// ErrReleased is returned by operations on a released backend.
	ErrReleased = errors.New("raster: backend released")
)
