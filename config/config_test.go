package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/keyclack/dispatch"
	"github.com/lixenwraith/keyclack/keycode"
	"github.com/lixenwraith/keyclack/playback"
)

// isolate points the default config location at an empty directory
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load(viper.New(), "", nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Devices)
	cfg.Devices = nil
	assert.Equal(t, Defaults(), cfg)

	pc := cfg.Playback()
	assert.InDelta(t, 1.0, pc.Volume, 1e-9)
	assert.Equal(t, playback.BackendAuto, pc.Backend)
	assert.Equal(t, dispatch.Overlap, cfg.RetriggerPolicy())
	assert.Equal(t, keycode.Standard(), cfg.Table())
}

func TestLoadConfigFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "keyclack.yaml", `
policy: stop-previous
keymap: legacy
volume: 40
buffer: 50ms
backend: none
devices:
  - /dev/input/event3
repeat: true
`)

	cfg, err := Load(viper.New(), path, nil)
	require.NoError(t, err)

	assert.Equal(t, dispatch.StopPrevious, cfg.RetriggerPolicy())
	assert.Equal(t, keycode.Legacy(), cfg.Table())
	assert.Equal(t, 50*time.Millisecond, cfg.Buffer)
	assert.Equal(t, []string{"/dev/input/event3"}, cfg.HookOptions().Devices)
	assert.True(t, cfg.HookOptions().Repeat)
	assert.InDelta(t, 0.4, cfg.Playback().Volume, 1e-9)
	assert.Equal(t, playback.BackendNone, cfg.Playback().Backend)
}

func TestLoadDefaultLocation(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "keyclack"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keyclack", "config.toml"), []byte("volume = 25\n"), 0o644))

	cfg, err := Load(viper.New(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Volume)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "c.json", `{"volume": 40, "sample_rate": 44100}`)
	t.Setenv("KEYCLACK_VOLUME", "70")
	t.Setenv("KEYCLACK_POLICY", "stop-previous")

	cfg, err := Load(viper.New(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, 70, cfg.Volume)
	assert.Equal(t, 44100, cfg.SampleRate)
	assert.Equal(t, dispatch.StopPrevious, cfg.RetriggerPolicy())
}

func TestFlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("KEYCLACK_VOLUME", "70")

	fs := pflag.NewFlagSet("keyclack", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--volume=10", "--sample-rate=96000", "--source=terminal"}))

	cfg, err := Load(viper.New(), "", fs)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Volume)
	assert.Equal(t, 96000, cfg.SampleRate)
	assert.Equal(t, "terminal", cfg.Source)
	// Unset flags keep defaults
	assert.Equal(t, "standard", cfg.Keymap)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"policy", func(c *Config) { c.Policy = "choke" }},
		{"keymap", func(c *Config) { c.Keymap = "dvorak" }},
		{"volume high", func(c *Config) { c.Volume = 101 }},
		{"volume low", func(c *Config) { c.Volume = -1 }},
		{"source", func(c *Config) { c.Source = "x11" }},
		{"backend", func(c *Config) { c.Backend = "jack" }},
		{"sample rate", func(c *Config) { c.SampleRate = 100 }},
		{"queue", func(c *Config) { c.QueueSize = 0 }},
	}

	require.NoError(t, Defaults().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	isolate(t)
	t.Setenv("KEYCLACK_VOLUME", "250")
	_, err := Load(viper.New(), "", nil)
	assert.ErrorContains(t, err, "volume")
}
