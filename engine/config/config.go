package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/chewxy/math32"
	"github.com/pelletier/go-toml/v2"

	"github.com/Carmen-Shannon/oxy-cube/engine/scene"
)

// Frame pacing policies understood by the render loop.
const (
	PacingNone  = "none"
	PacingYield = "yield"
	PacingSleep = "sleep"
)

// Present modes understood by the renderer.
const (
	PresentModeVSync    = "vsync"
	PresentModeUncapped = "uncapped"
)

// Config is the full runtime configuration. Every field has a default from Default;
// a TOML file only needs to name the values it overrides.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Renderer RendererConfig `toml:"renderer"`
	Camera   CameraConfig   `toml:"camera"`
	Scene    SceneConfig    `toml:"scene"`
	Loop     LoopConfig     `toml:"loop"`
	Log      LogConfig      `toml:"log"`
}

// WindowConfig holds the initial window parameters.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// RendererConfig holds device and swapchain parameters.
type RendererConfig struct {
	// PresentMode is "uncapped" (present interval 0, the default) or "vsync" (interval 1).
	PresentMode string `toml:"present_mode"`
	// BufferCount is the number of swapchain images, 1 or 2.
	BufferCount int `toml:"buffer_count"`
	// Debug enables live object tracking and the leak report on shutdown.
	Debug bool `toml:"debug"`
	// SkipAdapters lists adapter names that are never selected, matched case-insensitively as substrings.
	SkipAdapters []string `toml:"skip_adapters"`
}

// CameraConfig holds the orbit camera's initial state and projection.
type CameraConfig struct {
	Azimuth  float32 `toml:"azimuth"`
	Polar    float32 `toml:"polar"`
	Distance float32 `toml:"distance"`
	Step     float32 `toml:"step"`
	Epsilon  float32 `toml:"epsilon"`
	FovY     float32 `toml:"fov_y"`
	Near     float32 `toml:"near"`
	Far      float32 `toml:"far"`
}

// SceneConfig selects the scene and tunes its animation.
type SceneConfig struct {
	Name string `toml:"name"`
	// AngularVelocity overrides the scene's model rotation speed in radians per second when set.
	AngularVelocity *float32 `toml:"angular_velocity"`
	// ClearColor overrides the scene's clear colour when set; it must hold four components.
	ClearColor []float32 `toml:"clear_color"`
}

// LoopConfig holds render loop pacing.
type LoopConfig struct {
	Pacing     string  `toml:"pacing"`
	FrameLimit float64 `toml:"frame_limit"`
	Profiler   bool    `toml:"profiler"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - *Config: a fully populated configuration
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "oxy-cube",
			Width:  800,
			Height: 600,
		},
		Renderer: RendererConfig{
			PresentMode:  PresentModeUncapped,
			BufferCount:  2,
			SkipAdapters: []string{"Microsoft Basic Render Driver", "llvmpipe", "SwiftShader"},
		},
		Camera: CameraConfig{
			Azimuth:  0,
			Polar:    math32.Pi / 2,
			Distance: 3,
			Step:     0.1,
			Epsilon:  0.1,
			FovY:     math32.Pi / 4,
			Near:     0.1,
			Far:      100,
		},
		Scene: SceneConfig{
			Name: scene.NameCube,
		},
		Loop: LoopConfig{
			Pacing:     PacingNone,
			FrameLimit: 0,
			Profiler:   true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a TOML file and overlays it on Default. Unknown keys are rejected.
// The result is validated before it is returned.
//
// Parameters:
//   - path: path to the TOML file
//
// Returns:
//   - *Config: the merged configuration
//   - error: if the file cannot be read, parsed or validated
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML bytes over Default and validates the result.
//
// Parameters:
//   - data: TOML document
//
// Returns:
//   - *Config: the merged configuration
//   - error: if the document is malformed, names unknown keys, or fails validation
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("unknown keys: %s", strict.String())
		}
		return nil, fmt.Errorf("failed to decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting for range and membership.
//
// Returns:
//   - error: wrapping ErrInvalidConfig describing the first problem found
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if !slices.Contains([]string{PresentModeVSync, PresentModeUncapped}, c.Renderer.PresentMode) {
		return invalid("unknown present mode %q", c.Renderer.PresentMode)
	}
	if c.Renderer.BufferCount < 1 || c.Renderer.BufferCount > 2 {
		return invalid("buffer count %d must be 1 or 2", c.Renderer.BufferCount)
	}
	if c.Camera.Distance <= 0 {
		return invalid("camera distance %v must be positive", c.Camera.Distance)
	}
	if c.Camera.Epsilon <= 0 || c.Camera.Epsilon >= math32.Pi/2 {
		return invalid("camera epsilon %v must be in (0, pi/2)", c.Camera.Epsilon)
	}
	if c.Camera.Step <= 0 {
		return invalid("camera step %v must be positive", c.Camera.Step)
	}
	if c.Camera.FovY <= 0 || c.Camera.FovY >= math32.Pi {
		return invalid("field of view %v must be in (0, pi)", c.Camera.FovY)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return invalid("clip planes near=%v far=%v must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far)
	}
	if !slices.Contains([]string{scene.NameClear, scene.NameTriangle, scene.NameCube}, c.Scene.Name) {
		return invalid("unknown scene %q", c.Scene.Name)
	}
	if c.Scene.ClearColor != nil && len(c.Scene.ClearColor) != 4 {
		return invalid("clear colour needs 4 components, got %d", len(c.Scene.ClearColor))
	}
	if !slices.Contains([]string{PacingNone, PacingYield, PacingSleep}, c.Loop.Pacing) {
		return invalid("unknown pacing policy %q", c.Loop.Pacing)
	}
	if c.Loop.FrameLimit < 0 {
		return invalid("frame limit %v must not be negative", c.Loop.FrameLimit)
	}
	if c.Loop.Pacing == PacingSleep && c.Loop.FrameLimit == 0 {
		return invalid("sleep pacing requires a frame limit")
	}
	return nil
}

// ClearColor returns the configured clear colour override, if any.
//
// Returns:
//   - [4]float32: the RGBA colour
//   - bool: false when no override is configured
func (c *Config) ClearColor() ([4]float32, bool) {
	if len(c.Scene.ClearColor) != 4 {
		return [4]float32{}, false
	}
	return [4]float32(c.Scene.ClearColor), true
}
