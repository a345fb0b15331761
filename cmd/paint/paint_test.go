package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/config"
	"github.com/Carmen-Shannon/oxy-canvas/engine/input"
	"github.com/Carmen-Shannon/oxy-canvas/engine/surface"
	"github.com/Carmen-Shannon/oxy-canvas/engine/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPaint(t *testing.T, width, height uint32) *paint {
	t.Helper()
	b, err := openBitmap(nil, config.ImageConfig{Width: width, Height: height}, 0)
	require.NoError(t, err)
	return newPaint(b, config.Default().Canvas)
}

func pixel(t *testing.T, p *paint, x, y int) uint32 {
	t.Helper()
	v, ok := p.bitmap.Pixel(x, y)
	require.True(t, ok)
	return v
}

func TestLineIncludesBothEnds(t *testing.T) {
	var got [][2]int
	line(0, 0, 3, 1, func(x, y int) { got = append(got, [2]int{x, y}) })
	assert.Equal(t, [][2]int{{0, 0}, {1, 0}, {2, 1}, {3, 1}}, got)

	got = nil
	line(2, 2, 2, 2, func(x, y int) { got = append(got, [2]int{x, y}) })
	assert.Equal(t, [][2]int{{2, 2}}, got)

	got = nil
	line(0, 3, 0, 0, func(x, y int) { got = append(got, [2]int{x, y}) })
	assert.Equal(t, [][2]int{{0, 3}, {0, 2}, {0, 1}, {0, 0}}, got)
}

func TestLeftButtonPaintsLines(t *testing.T) {
	p := newTestPaint(t, 20, 20)
	assert.Equal(t, colorWhite, pixel(t, p, 5, 5), "blank canvases start white")

	p.Update(message{kind: msgPress, pos: common.Vec2{X: 2.5, Y: 5.9}, button: input.ButtonLeft})
	p.Update(message{kind: msgMove, pos: common.Vec2{X: 6, Y: 5}})
	p.Update(message{kind: msgRelease, button: input.ButtonLeft})
	p.Update(message{kind: msgMove, pos: common.Vec2{X: 6, Y: 15}})

	for x := 2; x <= 6; x++ {
		assert.Equal(t, colorBlack, pixel(t, p, x, 5), "x=%d", x)
	}
	assert.Equal(t, colorWhite, pixel(t, p, 1, 5))
	assert.Equal(t, colorWhite, pixel(t, p, 6, 10), "moves after release do not paint")
}

func TestOtherButtonsDoNotPaint(t *testing.T) {
	p := newTestPaint(t, 10, 10)
	p.Update(message{kind: msgPress, pos: common.Vec2{X: 1, Y: 1}, button: input.ButtonRight})
	p.Update(message{kind: msgMove, pos: common.Vec2{X: 4, Y: 1}})
	assert.False(t, p.bitmap.IsModified())
}

func TestStrokeOutsideBitmapIsClipped(t *testing.T) {
	p := newTestPaint(t, 4, 4)
	p.brush = 3
	p.stroke([2]int{-5, 0}, [2]int{0, 0})
	assert.Equal(t, colorBlack, pixel(t, p, 0, 0))
	assert.Equal(t, colorBlack, pixel(t, p, 1, 1))
	assert.Equal(t, colorWhite, pixel(t, p, 2, 2))
}

func TestColourKeys(t *testing.T) {
	p := newTestPaint(t, 4, 4)
	p.Update(message{kind: msgKey, key: common.KeyW})
	assert.Equal(t, colorWhite, p.color)
	p.Update(message{kind: msgKey, key: common.KeyB})
	assert.Equal(t, colorBlack, p.color)
}

func TestScaleKeys(t *testing.T) {
	p := newTestPaint(t, 4, 4)

	ops := p.Update(message{kind: msgKey, key: common.Key7})
	assert.Len(t, ops, 1)
	assert.Equal(t, float32(7), p.scale)

	p.Update(message{kind: msgKey, key: common.Key0})
	assert.Equal(t, float32(10), p.scale)
	p.Update(message{kind: msgKey, key: common.KeyEqual})
	assert.Equal(t, float32(10), p.scale, "the slider stops at 10")

	p.Update(message{kind: msgZoom, scale: 2.5})
	p.Update(message{kind: msgKey, key: common.KeyMinus})
	assert.Equal(t, float32(2), p.scale)
	p.Update(message{kind: msgKey, key: common.KeyKPSubtract})
	p.Update(message{kind: msgKey, key: common.KeyKPSubtract})
	assert.Equal(t, float32(1), p.scale, "the slider stops at 1")

	assert.Len(t, p.Update(message{kind: msgKey, key: common.KeyC}), 1)
	assert.Len(t, p.Update(message{kind: msgKey, key: common.KeyR}), 2)
	assert.Empty(t, p.Update(message{kind: msgKey, key: common.KeySpace}))
}

func TestReloadAppliesOnRedraw(t *testing.T) {
	p := newTestPaint(t, 4, 4)
	_, ok := p.Subscribe(input.RedrawRequested())
	assert.False(t, ok, "nothing to reload")

	next := surface.MustBitmap(2, 3)
	next.SetPixel(1, 2, 0xff0000ff)
	p.reloaded(nil, os.ErrNotExist)
	p.reloaded(next, nil)

	m, ok := p.Subscribe(input.RedrawRequested())
	require.True(t, ok)
	p.Update(m)

	assert.Equal(t, common.Size{Width: 2, Height: 3}, p.bitmap.Size())
	assert.Equal(t, uint32(0xff0000ff), pixel(t, p, 1, 2))
	_, ok = p.Subscribe(input.RedrawRequested())
	assert.False(t, ok)
}

func TestHostDrivesPainting(t *testing.T) {
	p := newTestPaint(t, 50, 50)
	host := ui.NewHost[message](p)
	host.Layout(common.Size{Width: 200, Height: 200})

	at := common.Vec2{X: 3, Y: 4}
	host.Dispatch(input.CursorMoved(at), input.CursorAt(at))
	host.Dispatch(input.ButtonPressed(input.ButtonLeft), input.CursorAt(at))
	to := common.Vec2{X: 10, Y: 4}
	host.Dispatch(input.CursorMoved(to), input.CursorAt(to))

	for x := 3; x <= 10; x++ {
		assert.Equal(t, colorBlack, pixel(t, p, x, 4), "x=%d", x)
	}
	assert.Equal(t, colorWhite, pixel(t, p, 11, 4))
}

func TestResolveConfigLayersFlagsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paint.toml")
	require.NoError(t, os.WriteFile(path, []byte("[image]\nwidth = 64\nwatch = true\n\n[canvas]\ndefault_scale = 3.0\n"), 0o644))

	cmd := newRootCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--scale", "5", "--watch=false"}))
	var f flags
	f.config, _ = cmd.Flags().GetString("config")
	f.scale, _ = cmd.Flags().GetFloat32("scale")
	f.watch, _ = cmd.Flags().GetBool("watch")

	cfg, err := resolveConfig(cmd, f, []string{"cat.png"})
	require.NoError(t, err)
	assert.Equal(t, "cat.png", cfg.Image.Path)
	assert.Equal(t, uint32(64), cfg.Image.Width)
	assert.Equal(t, float32(5), cfg.Canvas.DefaultScale)
	assert.False(t, cfg.Image.Watch)
}

func TestPrintConfig(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--print-config", "toml", "--width", "32"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "width = 32")

	cmd = newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--print-config", "json"})
	assert.ErrorIs(t, cmd.Execute(), config.ErrUnsupportedFormat)
}

func TestOpenBitmapClampsBlankCanvasToTextureLimit(t *testing.T) {
	b, err := openBitmap(nil, config.ImageConfig{Width: 100, Height: 20}, 64)
	require.NoError(t, err)
	assert.Equal(t, [2]uint32{64, 20}, [2]uint32{b.Width(), b.Height()})

	b, err = openBitmap(nil, config.ImageConfig{Width: 100, Height: 20}, 0)
	require.NoError(t, err)
	assert.Equal(t, [2]uint32{100, 20}, [2]uint32{b.Width(), b.Height()})
}
