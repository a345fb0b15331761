package renderer

import (
	"fmt"
	"strings"
)

// RendererBackendType selects the GPU API behind a Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU draws through WebGPU.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls when finished frames reach the display.
type PresentMode int

const (
	// PresentModeVSync waits for vertical blank. Canvas redraws are capped at the refresh rate.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents immediately, trading tearing for the lowest drag latency.
	PresentModeUncapped
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeVSync:
		return "vsync"
	case PresentModeUncapped:
		return "uncapped"
	default:
		return fmt.Sprintf("PresentMode(%d)", int(m))
	}
}

// ParsePresentMode parses "vsync" or "uncapped", ignoring case.
//
// Parameters:
//   - s: the mode name
//
// Returns:
//   - PresentMode: the mode
//   - error: error if s names no mode
func ParsePresentMode(s string) (PresentMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vsync", "":
		return PresentModeVSync, nil
	case "uncapped":
		return PresentModeUncapped, nil
	default:
		return PresentModeVSync, fmt.Errorf("unknown present mode %q", s)
	}
}

// RendererBackend is the backend a Renderer delegates to; one interface per supported GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}
