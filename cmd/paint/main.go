// Command paint opens an image on a pannable, zoomable canvas and lets the left mouse button
// draw on it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine"
	"github.com/Carmen-Shannon/oxy-canvas/engine/config"
	"github.com/Carmen-Shannon/oxy-canvas/engine/loader"
	"github.com/Carmen-Shannon/oxy-canvas/engine/profiler"
	"github.com/Carmen-Shannon/oxy-canvas/engine/renderer"
	"github.com/Carmen-Shannon/oxy-canvas/engine/surface"
	"github.com/Carmen-Shannon/oxy-canvas/engine/ui"
	"github.com/Carmen-Shannon/oxy-canvas/engine/window"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type flags struct {
	config      string
	watch       bool
	width       uint32
	height      uint32
	scale       float32
	logLevel    string
	profile     bool
	software    bool
	pixelated   bool
	printConfig string
}

func newRootCommand() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "paint [image]",
		Short: "Paint on an image with a pannable, zoomable canvas",
		Long: `Paint opens an image, or a blank canvas, in a window.

  left button      draw
  middle button    drag the image
  wheel            zoom at the pointer
  B / W            black / white brush
  C                center the image
  R                reset scale and center
  + / - / 1..0     set the scale (1..10)`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f, args)
			if err != nil {
				return err
			}
			if f.printConfig != "" {
				return printConfig(cmd, cfg, f.printConfig)
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "YAML or TOML config file")
	fs.BoolVar(&f.watch, "watch", false, "reload the image when the file changes")
	fs.Uint32Var(&f.width, "width", 0, "width of a blank canvas")
	fs.Uint32Var(&f.height, "height", 0, "height of a blank canvas")
	fs.Float32Var(&f.scale, "scale", 0, "initial scale")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	fs.BoolVar(&f.profile, "profile", false, "log frame and upload statistics")
	fs.BoolVar(&f.software, "software", false, "force the software renderer")
	fs.BoolVar(&f.pixelated, "pixelated", false, "show single pixels as sharp squares when zoomed in")
	fs.StringVar(&f.printConfig, "print-config", "", "print the effective config as yaml or toml and exit")
	return cmd
}

// resolveConfig layers the defaults, the config file and the flags the user set, in that order.
func resolveConfig(cmd *cobra.Command, f flags, args []string) (*config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		loaded, err := config.Load(f.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if len(args) == 1 {
		cfg.Image.Path = args[0]
	}
	if changed("watch") {
		cfg.Image.Watch = f.watch
	}
	if changed("width") {
		cfg.Image.Width = f.width
	}
	if changed("height") {
		cfg.Image.Height = f.height
	}
	if changed("scale") {
		cfg.Canvas.DefaultScale = f.scale
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if changed("profile") {
		cfg.Engine.Profiling = f.profile
	}
	if changed("software") {
		cfg.Renderer.ForceSoftware = f.software
	}
	if changed("pixelated") {
		cfg.Renderer.Pixelated = f.pixelated
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printConfig(cmd *cobra.Command, cfg *config.Config, format string) error {
	var ft config.Format
	switch format {
	case "yaml", "yml":
		ft = config.FormatYAML
	case "toml":
		ft = config.FormatTOML
	default:
		return fmt.Errorf("%w: %q", config.ErrUnsupportedFormat, format)
	}
	data, err := cfg.Marshal(ft)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func run(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	logger := cfg.Log.NewLogger(os.Stderr)
	common.SetLogger(logger)

	// ── Image ───────────────────────────────────────────────────────────
	maxDim := renderer.MaxTextureDimension()
	ld := loader.NewLoader(loader.BackendTypeImage,
		loader.WithCache(false),
		loader.WithMaxSize(int(maxDim), int(maxDim)),
	)
	defer ld.Close()

	bitmap, err := openBitmap(ld, cfg.Image, maxDim)
	if err != nil {
		logger.Error("failed to open image", "path", cfg.Image.Path, "error", err)
		return err
	}
	program := newPaint(bitmap, cfg.Canvas)

	if cfg.Image.Watch && cfg.Image.Path != "" {
		if err := ld.Watch(ctx, cfg.Image.Path, program.reloaded); err != nil {
			logger.Error("failed to watch image", "path", cfg.Image.Path, "error", err)
			return err
		}
	}

	// ── Window + Renderer ───────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		logger.Error("failed to create window", "error", err)
		return err
	}

	presentMode, err := renderer.ParsePresentMode(cfg.Renderer.PresentMode)
	if err != nil {
		_ = win.Close()
		return err
	}
	r, err := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(presentMode),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
		renderer.WithPixelated(cfg.Renderer.Pixelated),
		renderer.WithClearColor(common.Color{R: 0.18, G: 0.18, B: 0.2, A: 1}),
	)
	if err != nil {
		logger.Error("failed to create renderer", "error", err)
		_ = win.Close()
		return err
	}
	defer r.Release()

	// ── Engine ──────────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithApplication(ui.NewHost[message](program)),
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithRenderFrameLimit(cfg.Engine.FrameLimit),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithProfiler(profiler.NewProfiler(
			profiler.WithStats(r.Storage().Stats()),
			profiler.WithLogger(logger),
		)),
	)

	// GLFW windows must be destroyed on the thread running the message loop.
	win.SetUpdateCallback(func() {
		if ctx.Err() != nil {
			eng.Quit()
		}
	})
	return eng.Run()
}

// openBitmap loads the configured image, or creates a white canvas when no path is set. The blank
// canvas is clamped to maxDim on both axes; 0 means unlimited. Loaded images are capped by the loader.
func openBitmap(ld loader.Loader, img config.ImageConfig, maxDim uint32) (*surface.Bitmap, error) {
	if img.Path != "" {
		return ld.Load(img.Path)
	}
	if maxDim > 0 && (img.Width > maxDim || img.Height > maxDim) {
		common.Logger().Warn("canvas size exceeds the texture limit, clamping",
			"width", img.Width, "height", img.Height, "limit", maxDim)
		img.Width, img.Height = min(img.Width, maxDim), min(img.Height, maxDim)
	}
	b, err := surface.NewBitmap(img.Width, img.Height)
	if err != nil {
		return nil, err
	}
	b.Edit(func(buffer []uint32) {
		for i := range buffer {
			buffer[i] = colorWhite
		}
	})
	return b, nil
}
