// Command oxy-cube opens a window and renders one of the built-in scenes: a rotating cube,
// a triangle, or a clear-only surface. Arrow keys orbit the camera and Escape quits.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-cube/engine"
	"github.com/Carmen-Shannon/oxy-cube/engine/config"
	"github.com/Carmen-Shannon/oxy-cube/engine/logging"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/wgpubackend"
	"github.com/Carmen-Shannon/oxy-cube/engine/window/glfwwindow"
)

// GLFW must run on the main thread.
func init() {
	runtime.LockOSThread()
}

type flags struct {
	configPath string
	scene      string
	pacing     string
	fpsLimit   float64
	debug      bool
	watch      bool
	logLevel   string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(-1)
	}
}

func newRootCommand() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:           "oxy-cube",
		Short:         "Render a rotating cube, a triangle or a clear colour with WebGPU",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}
			overlay := func(c *config.Config) { applyFlags(cmd, f, c) }
			if err := run(cfg, f, overlay); err != nil {
				logging.Error("fatal", "err", err)
				return err
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "path to a TOML config file")
	fl.StringVar(&f.scene, "scene", "", "scene to render: clear, triangle or cube")
	fl.StringVar(&f.pacing, "pacing", "", "frame pacing: none, yield or sleep")
	fl.Float64Var(&f.fpsLimit, "fps-limit", 0, "target frames per second for sleep pacing")
	fl.BoolVar(&f.debug, "debug", false, "report live GPU objects at device release")
	fl.BoolVar(&f.watch, "watch", false, "reload the config file when it changes")
	fl.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	return cmd
}

// loadConfig reads the config file, if any, and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	applyFlags(cmd, f, cfg)

	if f.watch && f.configPath == "" {
		return nil, fmt.Errorf("--watch requires --config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags copies the explicitly set flags onto cfg. Reloaded configs go through it too so
// the command line keeps winning over the file.
func applyFlags(cmd *cobra.Command, f *flags, cfg *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("scene") {
		cfg.Scene.Name = f.scene
	}
	if fl.Changed("pacing") {
		cfg.Loop.Pacing = f.pacing
	}
	if fl.Changed("fps-limit") {
		cfg.Loop.FrameLimit = f.fpsLimit
	}
	if fl.Changed("debug") {
		cfg.Renderer.Debug = f.debug
	}
	if fl.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
}

func run(cfg *config.Config, f *flags, overlay func(*config.Config)) error {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, level)
	logging.SetDefault(logger)

	win, err := glfwwindow.New(
		glfwwindow.WithTitle(cfg.Window.Title),
		glfwwindow.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return err
	}

	backend, err := wgpubackend.New(win.SurfaceDescriptor(), wgpubackend.WithLogger(logger))
	if err != nil {
		win.Close()
		return err
	}

	rendererOptions, err := engine.RendererOptions(cfg, logger)
	if err != nil {
		backend.Release()
		win.Close()
		return err
	}

	options := []engine.EngineBuilderOption{
		engine.WithWindow(win),
		engine.WithRenderer(renderer.NewRenderer(backend, rendererOptions...)),
		engine.WithConfig(cfg),
		engine.WithLogger(logger),
		engine.WithCleanup(backend.Release),
	}
	var watcher *config.Watcher
	if f.watch {
		watcher, err = config.Watch(f.configPath, logger, config.WithOverlay(overlay))
		if err != nil {
			backend.Release()
			win.Close()
			return err
		}
		options = append(options, engine.WithWatcher(watcher))
	}

	e, err := engine.NewEngine(options...)
	if err != nil {
		if watcher != nil {
			watcher.Close()
		}
		backend.Release()
		win.Close()
		return err
	}
	logger.Info("starting", "scene", cfg.Scene.Name, "pacing", cfg.Loop.Pacing, "present_mode", cfg.Renderer.PresentMode, "debug", cfg.Renderer.Debug)
	if err := e.Run(); err != nil {
		return err
	}
	logger.Info("bye")
	return nil
}
