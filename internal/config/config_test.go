package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, 500*time.Millisecond, cfg.CPUWindow)
	assert.Equal(t, 100*time.Millisecond, cfg.NetWindow)
	assert.Equal(t, ColorAlways, cfg.Color)
	assert.False(t, cfg.Hogs)
	assert.Equal(t, 5, cfg.HogLimit)
	assert.False(t, cfg.TUI)
	assert.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
interval: 2s
cpu_window: 750ms
color: never
hogs: true
hog_limit: 3
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Interval)
	assert.Equal(t, 750*time.Millisecond, cfg.CPUWindow)
	assert.Equal(t, 100*time.Millisecond, cfg.NetWindow, "unset keys keep defaults")
	assert.Equal(t, ColorNever, cfg.Color)
	assert.True(t, cfg.Hogs)
	assert.Equal(t, 3, cfg.HogLimit)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PULSE_INTERVAL", "3s")
	t.Setenv("PULSE_COLOR", "AUTO")
	t.Setenv("PULSE_TUI", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.Interval)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.True(t, cfg.TUI)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("interval: [unclosed"), 0644))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFind(t *testing.T) {
	t.Run("explicit path that exists", func(t *testing.T) {
		dir := t.TempDir()
		p := filepath.Join(dir, "pulse.yaml")
		require.NoError(t, os.WriteFile(p, []byte("interval: 1s\n"), 0644))

		got, err := Find(p)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	})

	t.Run("explicit path that is missing", func(t *testing.T) {
		_, err := Find(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("global config under home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		require.NoError(t, os.MkdirAll(filepath.Dir(global), 0755))
		require.NoError(t, os.WriteFile(global, []byte("hogs: true\n"), 0644))

		got, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, global, got)

		cfg, err := LoadOrDefault("")
		require.NoError(t, err)
		assert.True(t, cfg.Hogs)
	})

	t.Run("nothing configured", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		got, err := Find("")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults pass", func(c *Config) {}, ""},
		{"interval at minimum", func(c *Config) {
			c.Interval = MinInterval
			c.CPUWindow = 300 * time.Millisecond
		}, ""},
		{"interval too short", func(c *Config) { c.Interval = 100 * time.Millisecond }, "Interval too short"},
		{"short interval names the window minimum", func(c *Config) { c.Interval = 100 * time.Millisecond }, "longer than 600ms"},
		{"interval equal to windows", func(c *Config) { c.Interval = 600 * time.Millisecond }, "longer than 600ms"},
		{"interval just over windows", func(c *Config) { c.Interval = 601 * time.Millisecond }, ""},
		{"small windows fall back to floor", func(c *Config) {
			c.Interval = 400 * time.Millisecond
			c.CPUWindow = 100 * time.Millisecond
		}, "Minimum interval is 500ms"},
		{"zero cpu window", func(c *Config) { c.CPUWindow = 0 }, "must be positive"},
		{"windows exceed tick", func(c *Config) { c.CPUWindow = 950 * time.Millisecond }, "don't fit"},
		{"unknown color", func(c *Config) { c.Color = "rainbow" }, "Unknown color mode"},
		{"color typo suggests", func(c *Config) { c.Color = "alway" }, "Did you mean 'always'?"},
		{"hog limit zero", func(c *Config) {
			c.Hogs = true
			c.HogLimit = 0
		}, "hog_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
		})
	}
}

func TestUseColor(t *testing.T) {
	tty := func() bool { return true }
	pipe := func() bool { return false }

	assert.True(t, (&Config{Color: ColorAlways}).UseColor(pipe))
	assert.False(t, (&Config{Color: ColorNever}).UseColor(tty))
	assert.True(t, (&Config{Color: ColorAuto}).UseColor(tty))
	assert.False(t, (&Config{Color: ColorAuto}).UseColor(pipe))
	assert.False(t, (&Config{Color: ColorAuto}).UseColor(nil))
}
