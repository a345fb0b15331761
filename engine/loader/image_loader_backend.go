package loader

import (
	"errors"
	"fmt"
	"image"
	"io"

	// Decoders register themselves with the image package.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// imageLoaderBackend decodes every format registered with the image package.
type imageLoaderBackend struct{}

var _ loaderBackend = imageLoaderBackend{}

func newImageLoaderBackend() loaderBackend {
	return imageLoaderBackend{}
}

func (imageLoaderBackend) Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if errors.Is(err, image.ErrFormat) {
		return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if err != nil {
		return nil, format, err
	}
	return img, format, nil
}

func (imageLoaderBackend) Formats() []string {
	return []string{"png", "jpeg", "gif", "bmp", "tiff", "webp"}
}
