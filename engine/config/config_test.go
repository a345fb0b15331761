package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/camera"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, Default(), c, "validating the defaults changes nothing")
}

func TestLoadYAMLOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window:
  title: paint
canvas:
  default_scale: 4
  border_color: "#ff0000"
image:
  path: ~/pictures/cat.png
  watch: true
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "paint", c.Window.Title)
	assert.Equal(t, 1280, c.Window.Width, "missing keys keep their defaults")
	assert.Equal(t, float32(4), c.Canvas.DefaultScale)
	assert.True(t, c.Image.Watch)

	border, background := c.Canvas.Colors()
	assert.Equal(t, common.Color{R: 1, A: 1}, border)
	assert.Equal(t, common.ColorTransparent, background)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paint.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[renderer]
present_mode = "Uncapped"

[engine]
tick_rate = 120.0
profiling = true
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "uncapped", c.Renderer.PresentMode)
	assert.Equal(t, 120.0, c.Engine.TickRate)
	assert.True(t, c.Engine.Profiling)
}

func TestLoadExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	require.NoError(t, os.WriteFile(filepath.Join(home, "canvas.yml"), []byte("log:\n  level: debug\n"), 0o644))
	c, err := Load("~/canvas.yml")
	require.NoError(t, err)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "paint.json"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestValidateClampsScaleSettings(t *testing.T) {
	c := Default()
	c.Canvas.MinScale = 8
	c.Canvas.MaxScale = 2
	c.Canvas.DefaultScale = -3
	c.Canvas.ZoomSpeed = 0
	c.Engine.TickRate = -1
	c.Window.Width = 0

	require.NoError(t, c.Validate())
	assert.Equal(t, float32(2), c.Canvas.MinScale)
	assert.Equal(t, float32(8), c.Canvas.MaxScale)
	assert.Equal(t, float32(2), c.Canvas.DefaultScale)
	assert.Equal(t, float32(1), c.Canvas.ZoomSpeed)
	assert.Equal(t, 60.0, c.Engine.TickRate)
	assert.Equal(t, 1280, c.Window.Width)

	cam := camera.NewCameraController(c.Canvas.CameraOptions()...)
	lo, hi := cam.ScaleBounds()
	assert.Equal(t, [2]float32{2, 8}, [2]float32{lo, hi})
	assert.Equal(t, float32(2), cam.Scale())
}

func TestValidateReplacesNonFiniteScales(t *testing.T) {
	cases := []struct {
		name     string
		yaml     string
		scale    float32
		min, max float32
	}{
		{"nan default", "canvas:\n  default_scale: .nan\n", 1, camera.MinScale, camera.MaxScale},
		{"nan min", "canvas:\n  min_scale: .nan\n  default_scale: 4\n", 4, camera.MinScale, camera.MaxScale},
		{"nan max", "canvas:\n  max_scale: .nan\n  min_scale: 2\n", 2, 2, camera.MaxScale},
		{"infinite max", "canvas:\n  max_scale: .inf\n  default_scale: .inf\n", camera.MaxScale, camera.MinScale, camera.MaxScale},
		{"nan zoom speed", "canvas:\n  zoom_speed: .nan\n", 1, camera.MinScale, camera.MaxScale},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Parse([]byte(tc.yaml), FormatYAML)
			require.NoError(t, err)
			assert.Equal(t, tc.scale, c.Canvas.DefaultScale)
			assert.Equal(t, tc.min, c.Canvas.MinScale)
			assert.Equal(t, tc.max, c.Canvas.MaxScale)
			assert.Equal(t, float32(1), c.Canvas.ZoomSpeed)

			cam := camera.NewCameraController(c.Canvas.CameraOptions()...)
			cam.ZoomAt(common.Vec2{X: 50, Y: 50}, 1, common.Rect{Width: 100, Height: 100}, common.Size{Width: 10, Height: 10})
			lo, hi := cam.ScaleBounds()
			assert.Equal(t, [2]float32{tc.min, tc.max}, [2]float32{lo, hi})
			assert.GreaterOrEqual(t, cam.Scale(), lo)
			assert.LessOrEqual(t, cam.Scale(), hi)
		})
	}
}

func TestValidateReplacesNaNRates(t *testing.T) {
	c, err := Parse([]byte("engine:\n  tick_rate: .nan\n  frame_limit: .nan\ncanvas:\n  pixels_per_line: .nan\n  border_thickness: .nan\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 60.0, c.Engine.TickRate)
	assert.Equal(t, 0.0, c.Engine.FrameLimit)
	assert.Equal(t, Default().Canvas.PixelsPerLine, c.Canvas.PixelsPerLine)
	assert.Equal(t, float32(0), c.Canvas.BorderThickness)
}

func TestValidateReportsEveryInvalidValue(t *testing.T) {
	c := Default()
	c.Renderer.PresentMode = "triple"
	c.Canvas.Background = "#12"
	c.Log.Level = "loud"

	err := c.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "present_mode")
	assert.Contains(t, err.Error(), "canvas.background")
	assert.Contains(t, err.Error(), "log.level")
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want common.Color
		ok   bool
	}{
		{"transparent", common.ColorTransparent, true},
		{"#000", common.ColorBlack, true},
		{"#ffffff", common.ColorWhite, true},
		{"00ff0080", common.Color{G: 1, A: 128.0 / 255}, true},
		{"#12", common.Color{}, false},
		{"#gggggg", common.Color{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLoggerHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	l := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestMarshalYAML(t *testing.T) {
	data, err := Default().Marshal(FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "present_mode: vsync")
}
