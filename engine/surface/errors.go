package surface

import "errors"

var (
	// ErrInvalidDimensions is returned when a surface is created or resized with a zero width or height.
	ErrInvalidDimensions = errors.New("surface: width and height must be greater than zero")

	// ErrSizeMismatch is returned when bulk pixel data does not match width*height*4 bytes.
	ErrSizeMismatch = errors.New("surface: data length does not match surface size")
)
