package renderer

import "errors"

// ErrFrameInFlight is returned by BeginFrame when the previous frame was not presented yet.
var ErrFrameInFlight = errors.New("renderer: previous frame surface not yet presented")

// ErrSurfaceUnavailable is returned by BeginFrame while the surface has a zero size, for
// example while the window is minimized.
var ErrSurfaceUnavailable = errors.New("renderer: surface has zero size")

// ErrTextureTooLarge is returned by NewTextureQuad for sizes beyond MaxTextureDimension.
var ErrTextureTooLarge = errors.New("renderer: texture exceeds the device size limit")
