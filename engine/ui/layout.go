package ui

import "github.com/Carmen-Shannon/oxy-canvas/common"

// Length is the sizing policy of a widget along one axis.
type Length struct {
	fixed float32
	fill  bool
}

// Fill makes the widget take all available space, shared evenly with other Fill siblings.
var Fill = Length{fill: true}

// Fixed makes the widget exactly px pixels long. Negative values are treated as zero.
func Fixed(px float32) Length {
	return Length{fixed: max(px, 0)}
}

// IsFill reports whether the length is Fill.
func (l Length) IsFill() bool { return l.fill }

// Pixels returns the fixed length, zero for Fill.
func (l Length) Pixels() float32 { return l.fixed }

// resolve returns the length along an axis with avail pixels available.
func (l Length) resolve(avail float32) float32 {
	if l.fill {
		return avail
	}
	return min(l.fixed, avail)
}

// Column stacks children vertically inside bounds. Fixed heights are honoured first; the
// remaining height is split evenly between Fill children. Widths are resolved against the full
// width of bounds.
//
// Parameters:
//   - bounds: the area to lay out in
//   - sizes: the width and height policy of each child, in order
//
// Returns:
//   - []common.Rect: the bounds of each child, in order
func Column(bounds common.Rect, sizes [][2]Length) []common.Rect {
	var fixed float32
	fills := 0
	for _, s := range sizes {
		if s[1].IsFill() {
			fills++
		} else {
			fixed += s[1].Pixels()
		}
	}

	share := float32(0)
	if fills > 0 {
		share = max(bounds.Height-fixed, 0) / float32(fills)
	}

	out := make([]common.Rect, len(sizes))
	y := bounds.Y
	for i, s := range sizes {
		h := share
		if !s[1].IsFill() {
			h = min(s[1].Pixels(), max(bounds.Y+bounds.Height-y, 0))
		}
		out[i] = common.Rect{X: bounds.X, Y: y, Width: s[0].resolve(bounds.Width), Height: h}
		y += h
	}
	return out
}
