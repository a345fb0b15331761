package canvas

import (
	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/renderer"
)

// Status is the interaction status a Style is resolved for.
type Status int

const (
	StatusNone Status = iota
	StatusHovered
)

// Style is the appearance of the frame drawn around the image.
type Style struct {
	Background      common.Color
	BorderColor     common.Color
	BorderThickness float32
	// Shadow offset and blur are in image pixels; they are multiplied by the scale when drawn.
	Shadow renderer.Shadow
}

// StyleFunc resolves the Style of a canvas for a Status.
type StyleFunc func(status Status) Style

// DefaultStyle is a transparent image with a one pixel black border and no shadow.
func DefaultStyle() Style {
	return Style{
		Background:      common.ColorTransparent,
		BorderColor:     common.ColorBlack,
		BorderThickness: 1,
	}
}

// Primary is the default StyleFunc. It ignores the status.
func Primary(Status) Style {
	return DefaultStyle()
}
