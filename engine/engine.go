// Package engine runs the single-threaded event and render loop. The engine owns the window,
// renderer, camera, clock, scene and configuration for the lifetime of Run.
package engine

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-cube/engine/camera"
	"github.com/Carmen-Shannon/oxy-cube/engine/clock"
	"github.com/Carmen-Shannon/oxy-cube/engine/config"
	"github.com/Carmen-Shannon/oxy-cube/engine/logging"
	"github.com/Carmen-Shannon/oxy-cube/engine/profiler"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer"
	"github.com/Carmen-Shannon/oxy-cube/engine/scene"
	"github.com/Carmen-Shannon/oxy-cube/engine/window"
	"github.com/charmbracelet/log"
)

// engine implements the Engine interface.
type engine struct {
	window   window.Window
	renderer renderer.Renderer
	camera   camera.Camera
	clock    *clock.FrameClock
	scene    scene.Scene
	config   *config.Config
	watcher  *config.Watcher
	logger   *log.Logger
	cleanup  []func()

	profiler         *profiler.Profiler
	profilingEnabled *bool

	pacing        string
	frameInterval time.Duration
	now           func() time.Time
	sleep         func(time.Duration)

	running bool
	frames  uint64
}

// Engine is the main entry point. It drives the loop: each iteration either dispatches one
// pending window event or renders one frame.
type Engine interface {
	// Run initializes the renderer at the window size, loads the scene and loops until a quit
	// event or Quit. Everything the engine owns is released before it returns.
	//
	// Returns:
	//   - error: an initialization failure or a fatal frame error
	Run() error

	// Quit stops the loop after the current iteration.
	Quit()

	// Reload applies the reloadable settings of cfg: pacing, frame limit, clear colour,
	// profiling and log level. Without a clear colour override the scene's own colour returns.
	//
	// Parameters:
	//   - cfg: a validated configuration
	Reload(cfg *config.Config)

	// Config returns the active configuration.
	Config() *config.Config

	// Camera returns the orbit camera.
	Camera() camera.Camera

	// Scene returns the loaded scene.
	Scene() scene.Scene

	// Renderer returns the renderer.
	Renderer() renderer.Renderer

	// Frames returns the number of frames presented so far.
	Frames() uint64
}

// NewEngine creates an Engine from the provided options. The camera and scene are built
// from the configuration; the window and renderer must be supplied.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: ErrNoWindow, ErrNoRenderer, or an invalid configuration
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		config: config.Default(),
		logger: logging.Default(),
		now:    time.Now,
		sleep:  time.Sleep,
	}
	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		return nil, ErrNoWindow
	}
	if e.renderer == nil {
		return nil, ErrNoRenderer
	}
	if err := e.config.Validate(); err != nil {
		return nil, err
	}
	if e.clock == nil {
		e.clock = clock.NewFrameClock(clock.WithNowFunc(e.now))
	}

	s, err := NewScene(e.config)
	if err != nil {
		return nil, err
	}
	e.scene = s
	e.camera = NewCamera(e.config)
	e.applyLoop(e.config)
	return e, nil
}

// NewCamera builds the orbit camera described by cfg.
//
// Parameters:
//   - cfg: the configuration
//
// Returns:
//   - camera.Camera: the camera
func NewCamera(cfg *config.Config) camera.Camera {
	c := cfg.Camera
	ctrl := camera.NewOrbitController(
		camera.WithAzimuth(c.Azimuth),
		camera.WithDistance(c.Distance),
		camera.WithStep(c.Step),
		camera.WithEpsilon(c.Epsilon),
		camera.WithPolar(c.Polar),
	)
	return camera.NewCamera(
		camera.WithFov(c.FovY),
		camera.WithNear(c.Near),
		camera.WithFar(c.Far),
		camera.WithController(ctrl),
	)
}

// NewScene builds the configured scene with its overrides applied.
//
// Parameters:
//   - cfg: the configuration
//
// Returns:
//   - scene.Scene: the scene
//   - error: if the scene name is unknown
func NewScene(cfg *config.Config) (scene.Scene, error) {
	var opts []scene.SceneBuilderOption
	if cfg.Scene.AngularVelocity != nil {
		opts = append(opts, scene.WithAngularVelocity(*cfg.Scene.AngularVelocity))
	}
	if color, ok := cfg.ClearColor(); ok {
		opts = append(opts, scene.WithClearColor(color))
	}
	return scene.New(cfg.Scene.Name, opts...)
}

// RendererOptions translates the renderer section of cfg into renderer options.
//
// Parameters:
//   - cfg: the configuration
//   - logger: the logger handed to the renderer
//
// Returns:
//   - []renderer.RendererBuilderOption: the options
//   - error: if the present mode is unknown
func RendererOptions(cfg *config.Config, logger *log.Logger) ([]renderer.RendererBuilderOption, error) {
	mode, err := renderer.ParsePresentMode(cfg.Renderer.PresentMode)
	if err != nil {
		return nil, err
	}
	return []renderer.RendererBuilderOption{
		renderer.WithPresentMode(mode),
		renderer.WithBufferCount(cfg.Renderer.BufferCount),
		renderer.WithDebug(cfg.Renderer.Debug),
		renderer.WithSkipAdapters(cfg.Renderer.SkipAdapters...),
		renderer.WithLogger(logger),
	}, nil
}

func (e *engine) Run() error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer e.shutdown()

	width, height := e.window.Size()
	if err := e.renderer.Init(width, height); err != nil {
		return fmt.Errorf("engine: init renderer: %w", err)
	}
	info := e.renderer.Adapter()
	e.logger.Info("renderer ready", "adapter", info.Name, "backend", info.Backend, "width", width, "height", height)

	if err := e.renderer.LoadScene(e.scene); err != nil {
		return fmt.Errorf("engine: load scene %s: %w", e.scene.Name(), err)
	}
	e.logger.Info("scene loaded", "scene", e.scene.Name())

	e.clock.Reset()
	e.running = true
	for e.running {
		if err := e.step(); err != nil {
			return err
		}
	}
	e.logger.Info("loop stopped", "frames", e.frames)
	return nil
}

// step runs one loop iteration: a pending event is dispatched, otherwise a frame is rendered
// and paced.
func (e *engine) step() error {
	if e.watcher != nil {
		if cfg, ok := e.watcher.Poll(); ok {
			e.Reload(cfg)
		}
	}

	if ev, ok := e.window.PollEvent(); ok {
		e.dispatch(ev)
		return nil
	}

	start := e.now()
	presented, err := e.renderFrame()
	if err != nil {
		return err
	}
	if presented {
		e.frames++
		if e.profiler != nil {
			e.profiler.Tick()
		}
	}
	e.pace(start)
	return nil
}

func (e *engine) dispatch(ev window.Event) {
	switch ev := ev.(type) {
	case window.ResizeEvent:
		if err := e.renderer.Resize(ev.Width, ev.Height); err != nil {
			e.logger.Warn("resize failed, frames are skipped until the next resize", "width", ev.Width, "height", ev.Height, "err", err)
		}
	case window.KeyDownEvent:
		e.camera.Controller().HandleKeyDown(ev.Key)
	case window.QuitEvent:
		e.logger.Debug("quit requested")
		e.running = false
	}
}

func (e *engine) renderFrame() (bool, error) {
	dt := e.clock.Tick()
	rotation := e.scene.Rotation()
	rotation.Advance(dt)

	frame := renderer.Frame{
		Model:          rotation.ModelMatrix(),
		ViewProjection: e.camera.ViewProjectionMatrix(e.renderer.Aspect()),
	}
	presented, err := e.renderer.RenderFrame(frame)
	if err != nil {
		return false, fmt.Errorf("engine: frame %d: %w", e.frames, err)
	}
	return presented, nil
}

func (e *engine) pace(start time.Time) {
	switch e.pacing {
	case config.PacingYield:
		runtime.Gosched()
	case config.PacingSleep:
		if remaining := e.frameInterval - e.now().Sub(start); remaining > 0 {
			e.sleep(remaining)
		}
	}
}

func (e *engine) applyLoop(cfg *config.Config) {
	e.pacing = cfg.Loop.Pacing
	e.frameInterval = 0
	if cfg.Loop.FrameLimit > 0 {
		e.frameInterval = time.Duration(float64(time.Second) / cfg.Loop.FrameLimit)
	}

	enabled := cfg.Loop.Profiler
	if e.profilingEnabled != nil {
		enabled = *e.profilingEnabled
	}
	switch {
	case enabled && e.profiler == nil:
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger), profiler.WithNowFunc(e.now))
	case !enabled:
		e.profiler = nil
	}
}

func (e *engine) Reload(cfg *config.Config) {
	e.applyLoop(cfg)

	color, ok := cfg.ClearColor()
	if !ok {
		color = e.scene.DefaultClearColor()
	}
	e.scene.SetClearColor(color)
	e.renderer.SetClearColor(color)
	if level, err := logging.ParseLevel(cfg.Log.Level); err == nil {
		e.logger.SetLevel(level)
	} else {
		e.logger.Warn("ignoring log level", "err", err)
	}

	e.config = cfg
	e.logger.Info("config reloaded", "pacing", e.pacing, "frame_limit", cfg.Loop.FrameLimit, "log_level", cfg.Log.Level)
}

func (e *engine) shutdown() {
	e.renderer.Shutdown()
	for _, fn := range e.cleanup {
		fn()
	}
	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil && !errors.Is(err, config.ErrWatcherClosed) {
			e.logger.Warn("config watcher close failed", "err", err)
		}
	}
	if err := e.window.Close(); err != nil {
		e.logger.Warn("window close failed", "err", err)
	}
}

func (e *engine) Quit() {
	e.running = false
}

func (e *engine) Config() *config.Config {
	return e.config
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Frames() uint64 {
	return e.frames
}
