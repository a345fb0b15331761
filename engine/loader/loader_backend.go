package loader

import (
	"image"
	"io"
)

// loaderBackend decodes an encoded image stream. Concrete implementations handle the
// format-specific details.
type loaderBackend interface {
	// Decode reads one image from r.
	//
	// Parameters:
	//   - r: the encoded image data
	//
	// Returns:
	//   - image.Image: the decoded image in its native colour model
	//   - string: the format name (e.g. "png")
	//   - error: ErrUnsupportedImage if no decoder recognises the data, or the decoder error
	Decode(r io.Reader) (image.Image, string, error)

	// Formats returns the format names the backend can decode.
	//
	// Returns:
	//   - []string: the format names
	Formats() []string
}
