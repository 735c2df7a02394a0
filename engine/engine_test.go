package engine

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-cube/common"
	"github.com/Carmen-Shannon/oxy-cube/engine/clock"
	"github.com/Carmen-Shannon/oxy-cube/engine/config"
	"github.com/Carmen-Shannon/oxy-cube/engine/logging"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-cube/engine/scene"
	"github.com/Carmen-Shannon/oxy-cube/engine/window"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow replays queued events, then reports idle for a fixed number of polls before
// sending a quit.
type fakeWindow struct {
	queue      *window.EventQueue
	width      int
	height     int
	idleBudget int
	idlePolls  int
	closes     int
}

func newFakeWindow(idleBudget int, events ...window.Event) *fakeWindow {
	w := &fakeWindow{queue: window.NewEventQueue(), width: 800, height: 600, idleBudget: idleBudget}
	for _, e := range events {
		w.queue.Push(e)
	}
	return w
}

func (w *fakeWindow) PollEvent() (window.Event, bool) {
	if e, ok := w.queue.Pop(); ok {
		return e, true
	}
	if w.idlePolls >= w.idleBudget {
		return window.QuitEvent{}, true
	}
	w.idlePolls++
	return nil, false
}

func (w *fakeWindow) Size() (int, int) {
	return w.width, w.height
}

func (w *fakeWindow) Close() error {
	w.closes++
	return nil
}

type harness struct {
	backend *gputest.Backend
	window  *fakeWindow
	engine  Engine
	logs    *bytes.Buffer
}

func newHarness(t *testing.T, win *fakeWindow, cfg *config.Config, options ...EngineBuilderOption) *harness {
	t.Helper()
	var out bytes.Buffer
	logger := logging.New(&out, log.DebugLevel)
	backend := gputest.NewBackend()
	if cfg == nil {
		cfg = config.Default()
	}
	rendererOptions, err := RendererOptions(cfg, logger)
	require.NoError(t, err)

	options = append([]EngineBuilderOption{
		WithWindow(win),
		WithRenderer(renderer.NewRenderer(backend, rendererOptions...)),
		WithConfig(cfg),
		WithLogger(logger),
		WithProfiling(false),
	}, options...)
	e, err := NewEngine(options...)
	require.NoError(t, err)
	return &harness{backend: backend, window: win, engine: e, logs: &out}
}

func TestRunRendersUntilQuit(t *testing.T) {
	h := newHarness(t, newFakeWindow(5), nil)
	require.NoError(t, h.engine.Run())

	assert.Equal(t, uint64(5), h.engine.Frames())
	assert.Len(t, h.backend.Device.Context().Frames, 5)
	for _, f := range h.backend.Device.Context().Frames {
		require.Len(t, f.Draws, 1)
		assert.Equal(t, uint32(36), f.Draws[0].IndexCount)
	}
	assert.Equal(t, 1, h.window.closes)
	assert.False(t, h.engine.Renderer().Initialized(), "renderer is shut down when Run returns")

	releases := h.backend.Releases
	require.NotEmpty(t, releases)
	assert.Equal(t, gpu.KindDevice, releases[len(releases)-1].Kind)
}

func TestQuitEventStopsBeforeRendering(t *testing.T) {
	h := newHarness(t, newFakeWindow(100, window.QuitEvent{}), nil)
	require.NoError(t, h.engine.Run())
	assert.Zero(t, h.engine.Frames())
	assert.Empty(t, h.backend.Device.Context().Frames)
}

func TestEventsAreDispatchedBeforeIdleFrames(t *testing.T) {
	h := newHarness(t, newFakeWindow(1,
		window.ResizeEvent{Width: 1024, Height: 768},
		window.KeyDownEvent{Key: common.KeyRight},
		window.KeyDownEvent{Key: common.KeyUp},
	), nil)
	require.NoError(t, h.engine.Run())

	assert.Equal(t, [][2]int{{1024, 768}}, h.backend.Device.Swapchain.Resizes)
	ctrl := h.engine.Camera().Controller()
	assert.InDelta(t, 0.1, ctrl.Azimuth(), 1e-6)
	assert.InDelta(t, float32(1.5707964)-0.1, ctrl.Polar(), 1e-6)

	frames := h.backend.Device.Context().Frames
	require.Len(t, frames, 1)
	assert.Equal(t, gpu.Viewport{Width: 1024, Height: 768, MaxDepth: 1}, frames[0].Draws[0].Viewport)
}

func TestZeroSizeSkipsFramesUntilRestored(t *testing.T) {
	win := newFakeWindow(3, window.ResizeEvent{Width: 0, Height: 0})
	h := newHarness(t, win, nil)
	require.NoError(t, h.engine.Run())

	assert.Zero(t, h.engine.Frames())
	assert.Empty(t, h.backend.Device.Context().Frames)
	assert.NotContains(t, h.logs.String(), "resize failed")
}

func TestResizeFailureIsLoggedAndFramesSkipped(t *testing.T) {
	win := newFakeWindow(2, window.ResizeEvent{Width: 640, Height: 480})
	h := newHarness(t, win, nil)
	h.backend.FailOn(gputest.OpResizeBuffers, errors.New("device removed"))

	require.NoError(t, h.engine.Run())
	assert.Contains(t, h.logs.String(), "resize failed")
	assert.Zero(t, h.engine.Frames())
}

func TestInitFailureReleasesEverything(t *testing.T) {
	var out bytes.Buffer
	logger := logging.New(&out, log.DebugLevel)
	backend := gputest.NewBackend(gpu.AdapterInfo{Index: 0, Name: "Microsoft Basic Render Driver", Software: true})
	win := newFakeWindow(5)

	e, err := NewEngine(WithWindow(win), WithRenderer(renderer.NewRenderer(backend, renderer.WithLogger(logger))), WithLogger(logger))
	require.NoError(t, err)

	err = e.Run()
	require.ErrorIs(t, err, gpu.ErrNoHardwareAdapter)
	assert.Equal(t, 1, win.closes)
	assert.Zero(t, win.idlePolls, "the loop never starts")
}

func TestModelRotationFollowsClock(t *testing.T) {
	var ticks int
	fake := func() time.Time {
		ticks++
		return time.Unix(int64(ticks), 0)
	}
	h := newHarness(t, newFakeWindow(2), nil, WithClock(clock.NewFrameClock(clock.WithNowFunc(fake))))
	require.NoError(t, h.engine.Run())

	// Reset at t=1, then two one-second ticks at the cube's 0.5 rad/s.
	assert.InDelta(t, 1.0, h.engine.Scene().Rotation().Angle(), 1e-6)
}

func TestTriangleDoesNotRotateByDefault(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.Name = scene.NameTriangle
	var ticks int
	fake := func() time.Time {
		ticks++
		return time.Unix(int64(ticks), 0)
	}
	h := newHarness(t, newFakeWindow(3), cfg, WithClock(clock.NewFrameClock(clock.WithNowFunc(fake))))
	require.NoError(t, h.engine.Run())

	assert.Zero(t, h.engine.Scene().Rotation().Angle())
	frames := h.backend.Device.Context().Frames
	require.Len(t, frames, 3)
	assert.Equal(t, uint32(3), frames[0].Draws[0].IndexCount)
}

func TestPacing(t *testing.T) {
	tests := []struct {
		name       string
		pacing     string
		frameLimit float64
		wantSleeps []time.Duration
	}{
		{"none", config.PacingNone, 0, nil},
		{"yield", config.PacingYield, 0, nil},
		{"sleep", config.PacingSleep, 100, []time.Duration{10 * time.Millisecond, 10 * time.Millisecond}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Loop.Pacing = tt.pacing
			cfg.Loop.FrameLimit = tt.frameLimit

			frozen := time.Unix(1000, 0)
			var sleeps []time.Duration
			h := newHarness(t, newFakeWindow(2), cfg, WithTimeSource(
				func() time.Time { return frozen },
				func(d time.Duration) { sleeps = append(sleeps, d) },
			))
			require.NoError(t, h.engine.Run())
			assert.Equal(t, tt.wantSleeps, sleeps)
			assert.Equal(t, uint64(2), h.engine.Frames())
		})
	}
}

func TestReloadAppliesTunables(t *testing.T) {
	h := newHarness(t, newFakeWindow(0), nil)

	cfg := config.Default()
	cfg.Loop.Pacing = config.PacingSleep
	cfg.Loop.FrameLimit = 30
	cfg.Scene.ClearColor = []float32{1, 0, 0, 1}
	cfg.Log.Level = "warn"
	require.NoError(t, cfg.Validate())

	h.engine.Reload(cfg)
	assert.Same(t, cfg, h.engine.Config())
	assert.Equal(t, [4]float32{1, 0, 0, 1}, h.engine.Renderer().ClearColor())
	assert.Equal(t, [4]float32{1, 0, 0, 1}, h.engine.Scene().ClearColor())

	e := h.engine.(*engine)
	assert.Equal(t, config.PacingSleep, e.pacing)
	assert.Equal(t, time.Second/30, e.frameInterval)
	assert.Equal(t, log.WarnLevel, e.logger.GetLevel())
}

func TestReloadWithoutClearColorRestoresSceneColor(t *testing.T) {
	h := newHarness(t, newFakeWindow(0), nil)
	base := h.engine.Scene().DefaultClearColor()
	require.NotEqual(t, [4]float32{1, 0, 0, 1}, base)

	red := config.Default()
	red.Scene.ClearColor = []float32{1, 0, 0, 1}
	h.engine.Reload(red)
	require.Equal(t, [4]float32{1, 0, 0, 1}, h.engine.Renderer().ClearColor())

	h.engine.Reload(config.Default())
	assert.Equal(t, base, h.engine.Renderer().ClearColor())
	assert.Equal(t, base, h.engine.Scene().ClearColor())
	assert.Equal(t, base, h.engine.Scene().DefaultClearColor())
}

func TestReloadTogglesProfiler(t *testing.T) {
	var out bytes.Buffer
	logger := logging.New(&out, log.DebugLevel)
	e, err := NewEngine(
		WithWindow(newFakeWindow(0)),
		WithRenderer(renderer.NewRenderer(gputest.NewBackend(), renderer.WithLogger(logger))),
		WithLogger(logger),
	)
	require.NoError(t, err)
	impl := e.(*engine)
	assert.NotNil(t, impl.profiler, "profiler follows the default loop config")

	cfg := config.Default()
	cfg.Loop.Profiler = false
	e.Reload(cfg)
	assert.Nil(t, impl.profiler)
}

func TestWatcherIsClosedOnShutdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxy-cube.toml")
	require.NoError(t, os.WriteFile(path, []byte("[loop]\npacing = \"yield\"\n"), 0o644))
	w, err := config.Watch(path, logging.New(&bytes.Buffer{}, log.DebugLevel))
	require.NoError(t, err)

	h := newHarness(t, newFakeWindow(1), nil, WithWatcher(w))
	require.NoError(t, h.engine.Run())
	assert.ErrorIs(t, w.Close(), config.ErrWatcherClosed)
}

func TestCleanupRunsBetweenRendererAndWindow(t *testing.T) {
	win := newFakeWindow(1)
	var order []string
	var h *harness
	h = newHarness(t, win, nil, WithCleanup(func() {
		order = append(order, "cleanup")
		assert.False(t, h.engine.Renderer().Initialized())
		assert.Zero(t, win.closes)
	}))
	require.NoError(t, h.engine.Run())
	assert.Equal(t, []string{"cleanup"}, order)
	assert.Equal(t, 1, win.closes)
}

func TestNewEngineRequiresCollaborators(t *testing.T) {
	_, err := NewEngine(WithRenderer(renderer.NewRenderer(gputest.NewBackend())))
	assert.ErrorIs(t, err, ErrNoWindow)

	_, err = NewEngine(WithWindow(newFakeWindow(0)))
	assert.ErrorIs(t, err, ErrNoRenderer)

	cfg := config.Default()
	cfg.Loop.Pacing = "spin"
	_, err = NewEngine(WithWindow(newFakeWindow(0)), WithRenderer(renderer.NewRenderer(gputest.NewBackend())), WithConfig(cfg))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestNewCameraFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Polar = 0
	cfg.Camera.Distance = 5
	c := NewCamera(cfg)

	assert.Equal(t, cfg.Camera.Epsilon, c.Controller().Polar(), "initial polar is clamped")
	assert.Equal(t, float32(5), c.Controller().Distance())
	assert.Equal(t, cfg.Camera.FovY, c.Fov())
}

func TestNewSceneOverrides(t *testing.T) {
	cfg := config.Default()
	velocity := float32(2)
	cfg.Scene.AngularVelocity = &velocity
	cfg.Scene.ClearColor = []float32{0, 1, 0, 1}

	s, err := NewScene(cfg)
	require.NoError(t, err)
	assert.Equal(t, float32(2), s.Rotation().Velocity())
	assert.Equal(t, [4]float32{0, 1, 0, 1}, s.ClearColor())
}
