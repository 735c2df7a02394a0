package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-cube/engine/config"
	"github.com/Carmen-Shannon/oxy-cube/engine/scene"
)

func parse(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	cmd := newRootCommand()
	require.NoError(t, cmd.ParseFlags(args))
	f := &flags{}
	f.configPath, _ = cmd.Flags().GetString("config")
	f.scene, _ = cmd.Flags().GetString("scene")
	f.pacing, _ = cmd.Flags().GetString("pacing")
	f.fpsLimit, _ = cmd.Flags().GetFloat64("fps-limit")
	f.debug, _ = cmd.Flags().GetBool("debug")
	f.watch, _ = cmd.Flags().GetBool("watch")
	f.logLevel, _ = cmd.Flags().GetString("log-level")
	return loadConfig(cmd, f)
}

func TestDefaultsWithoutFlags(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxy-cube.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scene]\nname = \"triangle\"\n[loop]\npacing = \"yield\"\n"), 0o644))

	cfg, err := parse(t, "--config", path)
	require.NoError(t, err)
	assert.Equal(t, scene.NameTriangle, cfg.Scene.Name)
	assert.Equal(t, config.PacingYield, cfg.Loop.Pacing)

	cfg, err = parse(t, "--config", path, "--scene", "clear", "--pacing", "sleep", "--fps-limit", "60", "--debug", "--log-level", "debug")
	require.NoError(t, err)
	assert.Equal(t, scene.NameClear, cfg.Scene.Name)
	assert.Equal(t, config.PacingSleep, cfg.Loop.Pacing)
	assert.Equal(t, 60.0, cfg.Loop.FrameLimit)
	assert.True(t, cfg.Renderer.Debug)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInvalidFlagsAreRejected(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown scene", []string{"--scene", "teapot"}},
		{"unknown pacing", []string{"--pacing", "spin"}},
		{"sleep without limit", []string{"--pacing", "sleep"}},
		{"negative limit", []string{"--fps-limit", "-1"}},
		{"unknown log level", []string{"--log-level", "chatty"}},
		{"watch without config", []string{"--watch"}},
		{"missing config file", []string{"--config", "does-not-exist.toml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestFlagsSurviveConfigReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxy-cube.toml")
	require.NoError(t, os.WriteFile(path, []byte("[loop]\npacing = \"yield\"\n"), 0o644))

	cmd := newRootCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--pacing", "sleep", "--fps-limit", "60"}))
	f := &flags{configPath: path, pacing: "sleep", fpsLimit: 60}

	require.NoError(t, os.WriteFile(path, []byte("[loop]\npacing = \"none\"\n[log]\nlevel = \"warn\"\n"), 0o644))
	reloaded, err := config.Load(path)
	require.NoError(t, err)
	applyFlags(cmd, f, reloaded)

	assert.Equal(t, config.PacingSleep, reloaded.Loop.Pacing)
	assert.Equal(t, 60.0, reloaded.Loop.FrameLimit)
	assert.Equal(t, "warn", reloaded.Log.Level, "settings without a flag still come from the file")
	assert.NoError(t, reloaded.Validate())
}
