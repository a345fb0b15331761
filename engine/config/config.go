// Package config loads the settings of a canvas application from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/camera"
	"github.com/Carmen-Shannon/oxy-canvas/engine/input"
	"github.com/chewxy/math32"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedFormat is returned for config files that are neither YAML nor TOML.
	ErrUnsupportedFormat = errors.New("config: unsupported file format")

	// ErrInvalidConfig is returned by Validate for values that cannot be normalised.
	ErrInvalidConfig = errors.New("config: invalid value")
)

// Format is a config file encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// FormatFromPath picks the format from the file extension.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Format: the format
//   - error: ErrUnsupportedFormat for unknown extensions
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Config is the full application configuration.
type Config struct {
	Window   WindowConfig   `yaml:"window" toml:"window"`
	Renderer RendererConfig `yaml:"renderer" toml:"renderer"`
	Engine   EngineConfig   `yaml:"engine" toml:"engine"`
	Canvas   CanvasConfig   `yaml:"canvas" toml:"canvas"`
	Image    ImageConfig    `yaml:"image" toml:"image"`
	Log      LogConfig      `yaml:"log" toml:"log"`
}

type WindowConfig struct {
	Title  string `yaml:"title" toml:"title"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
}

type RendererConfig struct {
	// PresentMode is "vsync" or "uncapped".
	PresentMode   string `yaml:"present_mode" toml:"present_mode"`
	ForceSoftware bool   `yaml:"force_software" toml:"force_software"`
	// Pixelated magnifies the image with nearest filtering.
	Pixelated bool `yaml:"pixelated" toml:"pixelated"`
}

type EngineConfig struct {
	TickRate   float64 `yaml:"tick_rate" toml:"tick_rate"`
	FrameLimit float64 `yaml:"frame_limit" toml:"frame_limit"`
	Profiling  bool    `yaml:"profiling" toml:"profiling"`
}

type CanvasConfig struct {
	DefaultScale    float32 `yaml:"default_scale" toml:"default_scale"`
	MinScale        float32 `yaml:"min_scale" toml:"min_scale"`
	MaxScale        float32 `yaml:"max_scale" toml:"max_scale"`
	ZoomSpeed       float32 `yaml:"zoom_speed" toml:"zoom_speed"`
	PixelsPerLine   float32 `yaml:"pixels_per_line" toml:"pixels_per_line"`
	BorderThickness float32 `yaml:"border_thickness" toml:"border_thickness"`
	// BorderColor and Background are "#rgb", "#rrggbb", "#rrggbbaa" or "transparent".
	BorderColor string `yaml:"border_color" toml:"border_color"`
	Background  string `yaml:"background" toml:"background"`
}

type ImageConfig struct {
	// Path is the image to open; empty for a blank canvas of Width x Height.
	Path   string `yaml:"path" toml:"path"`
	Watch  bool   `yaml:"watch" toml:"watch"`
	Width  uint32 `yaml:"width" toml:"width"`
	Height uint32 `yaml:"height" toml:"height"`
}

type LogConfig struct {
	// Level is a slog level name: debug, info, warn or error.
	Level string `yaml:"level" toml:"level"`
	// Format is "text" or "json".
	Format string `yaml:"format" toml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{Title: "oxy-canvas", Width: 1280, Height: 720},
		Renderer: RendererConfig{
			PresentMode: "vsync",
		},
		Engine: EngineConfig{TickRate: 60},
		Canvas: CanvasConfig{
			DefaultScale:    1,
			MinScale:        camera.MinScale,
			MaxScale:        camera.MaxScale,
			ZoomSpeed:       1,
			PixelsPerLine:   input.DefaultPixelsPerLine,
			BorderThickness: 1,
			BorderColor:     "#000000",
			Background:      "transparent",
		},
		Image: ImageConfig{Width: 512, Height: 512},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads a YAML or TOML file over the defaults and validates the result. Keys missing from
// the file keep their default values. A leading ~ in path is expanded to the home directory.
//
// Parameters:
//   - path: the config file
//
// Returns:
//   - *Config: the configuration
//   - error: ErrUnsupportedFormat, ErrInvalidConfig, or the read or parse error
func Load(path string) (*Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand %s: %w", path, err)
	}
	format, err := FormatFromPath(expanded)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", expanded, err)
	}

	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", expanded, err)
	}
	common.Logger().Info("config loaded", "path", expanded)
	return c, nil
}

// Parse decodes data over the defaults and validates the result.
//
// Parameters:
//   - data: the encoded configuration
//   - format: the encoding of data
//
// Returns:
//   - *Config: the configuration
//   - error: ErrInvalidConfig or the parse error
func Parse(data []byte, format Format) (*Config, error) {
	c := Default()
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, c)
	default:
		err = yaml.Unmarshal(data, c)
	}
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Marshal encodes the configuration.
//
// Parameters:
//   - format: the encoding to produce
//
// Returns:
//   - []byte: the encoded configuration
//   - error: the encoder error
func (c *Config) Marshal(format Format) ([]byte, error) {
	if format == FormatTOML {
		return toml.Marshal(c)
	}
	return yaml.Marshal(c)
}

// Validate normalises the configuration in place. Sizes and rates that are out of range fall
// back to their defaults and scale settings are clamped, never rejected. Unknown enumerations
// and malformed colours are errors.
//
// Returns:
//   - error: ErrInvalidConfig wrapping every problem found, nil if none
func (c *Config) Validate() error {
	d := Default()
	var errs []error

	if c.Window.Width <= 0 {
		c.Window.Width = d.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = d.Window.Height
	}

	c.Renderer.PresentMode = strings.ToLower(strings.TrimSpace(c.Renderer.PresentMode))
	switch c.Renderer.PresentMode {
	case "":
		c.Renderer.PresentMode = d.Renderer.PresentMode
	case "vsync", "uncapped":
	default:
		errs = append(errs, fmt.Errorf("%w: renderer.present_mode %q", ErrInvalidConfig, c.Renderer.PresentMode))
	}

	if !positive(c.Engine.TickRate) {
		c.Engine.TickRate = d.Engine.TickRate
	}
	if !(c.Engine.FrameLimit > 0) || math.IsInf(c.Engine.FrameLimit, 1) {
		c.Engine.FrameLimit = 0
	}

	cv := &c.Canvas
	if !positive(cv.MinScale) {
		cv.MinScale = d.Canvas.MinScale
	}
	if !positive(cv.MaxScale) {
		cv.MaxScale = d.Canvas.MaxScale
	}
	if cv.MaxScale < cv.MinScale {
		cv.MinScale, cv.MaxScale = cv.MaxScale, cv.MinScale
	}
	if math32.IsNaN(cv.DefaultScale) {
		cv.DefaultScale = d.Canvas.DefaultScale
	}
	cv.DefaultScale = common.Clamp(cv.DefaultScale, cv.MinScale, cv.MaxScale)
	if !positive(cv.ZoomSpeed) {
		cv.ZoomSpeed = d.Canvas.ZoomSpeed
	}
	if !positive(cv.PixelsPerLine) {
		cv.PixelsPerLine = d.Canvas.PixelsPerLine
	}
	if !(cv.BorderThickness > 0) || math32.IsInf(cv.BorderThickness, 1) {
		cv.BorderThickness = 0
	}
	if _, err := ParseColor(cv.BorderColor); err != nil {
		errs = append(errs, fmt.Errorf("canvas.border_color: %w", err))
	}
	if _, err := ParseColor(cv.Background); err != nil {
		errs = append(errs, fmt.Errorf("canvas.background: %w", err))
	}

	if c.Image.Width == 0 {
		c.Image.Width = d.Image.Width
	}
	if c.Image.Height == 0 {
		c.Image.Height = d.Image.Height
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level))
	}
	c.Log.Format = strings.ToLower(c.Log.Format)
	switch c.Log.Format {
	case "":
		c.Log.Format = d.Log.Format
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: log.format %q", ErrInvalidConfig, c.Log.Format))
	}

	return errors.Join(errs...)
}

// positive reports whether v is a finite number greater than zero. NaN is not positive.
func positive[T float32 | float64](v T) bool {
	return v > 0 && float64(v) <= math.MaxFloat64
}

// CameraOptions returns the camera settings of a new canvas occurrence.
func (cv CanvasConfig) CameraOptions() []camera.CameraControllerOption {
	return []camera.CameraControllerOption{
		camera.WithScaleBounds(cv.MinScale, cv.MaxScale),
		camera.WithScale(cv.DefaultScale),
		camera.WithZoomSpeed(cv.ZoomSpeed),
	}
}

// Colors returns the parsed border and background colours. Invalid values, which Validate
// reports, fall back to black and transparent.
func (cv CanvasConfig) Colors() (border, background common.Color) {
	border, err := ParseColor(cv.BorderColor)
	if err != nil {
		border = common.ColorBlack
	}
	background, err = ParseColor(cv.Background)
	if err != nil {
		background = common.ColorTransparent
	}
	return border, background
}

// NewLogger builds the logger described by the configuration.
//
// Parameters:
//   - w: where records are written
//
// Returns:
//   - *slog.Logger: the logger
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	_ = level.UnmarshalText([]byte(l.Level))
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
