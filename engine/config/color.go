package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-canvas/common"
)

// ParseColor parses "#rgb", "#rrggbb", "#rrggbbaa" or "transparent". The leading # is optional.
//
// Parameters:
//   - s: the colour string
//
// Returns:
//   - common.Color: the colour with straight alpha
//   - error: ErrInvalidConfig if s is malformed
func ParseColor(s string) (common.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" {
		return common.ColorTransparent, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return common.Color{}, fmt.Errorf("%w: colour %q", ErrInvalidConfig, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return common.Color{}, fmt.Errorf("%w: colour %q", ErrInvalidConfig, s)
	}
	channel := func(shift uint) float32 {
		return float32((v>>shift)&0xff) / 255
	}
	return common.Color{R: channel(24), G: channel(16), B: channel(8), A: channel(0)}, nil
}
