package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestOrthoMapsScreenCornersToClipSpace(t *testing.T) {
	m := make([]float32, 16)
	Ortho(m, 0, 200, 100, 0, 0, 1)

	cases := []struct {
		name   string
		screen Vec2
		clip   Vec2
	}{
		{"top-left", Vec2{0, 0}, Vec2{-1, 1}},
		{"bottom-right", Vec2{200, 100}, Vec2{1, -1}},
		{"center", Vec2{100, 50}, Vec2{0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := transformPoint(m, tc.screen)
			assert.True(t, got.ApproxEqual(tc.clip, 1e-5), "got %v want %v", got, tc.clip)
		})
	}
}

func TestMul4AppliesRightHandSideFirst(t *testing.T) {
	tr := make([]float32, 16)
	sc := make([]float32, 16)
	out := make([]float32, 16)
	Translation(tr, 10, 20, 0)
	Scaling(sc, 2, 3, 1)

	Mul4(out, tr, sc)

	got := transformPoint(out, Vec2{1, 1})
	assert.Equal(t, Vec2{12, 23}, got)
}

func TestClampAndCoalesce(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(float32(-1000), 1, 1600))
	assert.Equal(t, float32(1600), Clamp(float32(5000), 1, 1600))
	assert.Equal(t, 3, Clamp(3, 1, 5))
	assert.Equal(t, float32(1), Clamp(math32.NaN(), 1, 1600), "NaN clamps to the lower bound")
	assert.Equal(t, float32(1600), Clamp(math32.Inf(1), 1, 1600))

	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}

func TestPackRGBA(t *testing.T) {
	assert.Equal(t, uint32(0xff000000), ColorBlack.PackRGBA())
	assert.Equal(t, uint32(0xffffffff), ColorWhite.PackRGBA())
	assert.Equal(t, uint32(0x000000ff), Color{R: 1}.PackRGBA())
}

func TestRectContainsIsHalfOpen(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 5, Height: 5}
	assert.True(t, r.Contains(Vec2{10, 10}))
	assert.True(t, r.Contains(Vec2{14.9, 14.9}))
	assert.False(t, r.Contains(Vec2{15, 12}))
	assert.False(t, r.Contains(Vec2{9.9, 12}))
	assert.Equal(t, Vec2{12.5, 12.5}, r.Center())
	assert.Equal(t, Rect{X: 9, Y: 9, Width: 7, Height: 7}, r.Expand(1))
}

// transformPoint multiplies the point (x, y, 0, 1) by the column-major matrix m.
func transformPoint(m []float32, p Vec2) Vec2 {
	x := m[0]*p.X + m[4]*p.Y + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[13]
	w := m[3]*p.X + m[7]*p.Y + m[15]
	if w != 0 && w != 1 {
		x /= w
		y /= w
	}
	return Vec2{X: x, Y: y}
}
