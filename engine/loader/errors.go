package loader

import "errors"

var (
	// ErrUnsupportedImage is returned when no registered decoder recognises the image data.
	ErrUnsupportedImage = errors.New("loader: unsupported image format")

	// ErrLoaderClosed is returned by operations on a closed Loader.
	ErrLoaderClosed = errors.New("loader: closed")
)
