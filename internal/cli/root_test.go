package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/pulse/internal/config"
	pulseerrors "github.com/rileyhilliard/pulse/internal/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUnknownCommandError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unknown command error",
			err:  errors.New(`unknown command "foo" for "pulse"`),
			want: true,
		},
		{
			name: "unknown flag error",
			err:  errors.New(`unknown flag: --foo`),
			want: true,
		},
		{
			name: "other error",
			err:  errors.New("interval too short"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnknownCommandError(tt.err))
		})
	}
}

func TestExtractUnknownCommand(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "standard cobra format",
			err:  errors.New(`unknown command "foo" for "pulse"`),
			want: "foo",
		},
		{
			name: "command with hyphen",
			err:  errors.New(`unknown command "snap-shot" for "pulse"`),
			want: "snap-shot",
		},
		{
			name: "no quotes returns empty",
			err:  errors.New("unknown command foo"),
			want: "",
		},
		{
			name: "single quote returns empty",
			err:  errors.New(`unknown command "foo`),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractUnknownCommand(tt.err))
		})
	}
}

// withFlags sets the global flag variables for one test and restores them.
func withFlags(t *testing.T, interval string, color bool, hogs, tui bool) {
	t.Helper()
	oldInterval, oldNoColor, oldHogs, oldTUI := intervalFlag, noColor, hogsFlag, tuiFlag
	t.Cleanup(func() {
		intervalFlag, noColor, hogsFlag, tuiFlag = oldInterval, oldNoColor, oldHogs, oldTUI
	})
	intervalFlag, noColor, hogsFlag, tuiFlag = interval, !color, hogs, tui
}

func changedSet(names ...string) func(string) bool {
	set := map[string]bool{}
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestApplyFlags(t *testing.T) {
	t.Run("unchanged flags leave config alone", func(t *testing.T) {
		withFlags(t, "3s", false, true, true)
		cfg := config.DefaultConfig()

		require.NoError(t, applyFlags(cfg, changedSet()))
		assert.Equal(t, config.DefaultConfig(), cfg)
	})

	t.Run("changed flags override", func(t *testing.T) {
		withFlags(t, "2s", false, true, true)
		cfg := config.DefaultConfig()

		require.NoError(t, applyFlags(cfg, changedSet("interval", "no-color", "hogs", "tui")))
		assert.Equal(t, 2*time.Second, cfg.Interval)
		assert.Equal(t, config.ColorNever, cfg.Color)
		assert.True(t, cfg.Hogs)
		assert.True(t, cfg.TUI)
	})

	t.Run("bad interval", func(t *testing.T) {
		withFlags(t, "soon", true, false, false)
		cfg := config.DefaultConfig()

		err := applyFlags(cfg, changedSet("interval"))
		require.Error(t, err)
		assert.True(t, pulseerrors.IsCode(err, pulseerrors.ErrConfig))
		assert.Contains(t, err.Error(), "Invalid interval: soon")
	})
}

// newFlagCmd builds a command with the same flags as root, for resolveConfig.
func newFlagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "pulse"}
	cmd.Flags().StringVar(&cfgFile, "config", "", "")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "")
	cmd.Flags().StringVar(&intervalFlag, "interval", "", "")
	cmd.Flags().BoolVar(&hogsFlag, "hogs", false, "")
	cmd.Flags().BoolVar(&tuiFlag, "tui", false, "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestResolveConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	withFlags(t, "", true, false, false)
	oldCfgFile := cfgFile
	t.Cleanup(func() { cfgFile = oldCfgFile })

	t.Run("file then flags", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pulse.yaml")
		require.NoError(t, os.WriteFile(path, []byte("interval: 3s\ncolor: auto\n"), 0o644))

		cmd := newFlagCmd(t, "--config", path, "--interval", "2s")
		cfg, err := resolveConfig(cmd)
		require.NoError(t, err)

		assert.Equal(t, 2*time.Second, cfg.Interval, "flag beats file")
		assert.Equal(t, config.ColorAuto, cfg.Color, "file beats default")
	})

	t.Run("validation runs after flags", func(t *testing.T) {
		cmd := newFlagCmd(t, "--interval", "100ms")
		_, err := resolveConfig(cmd)
		require.Error(t, err)
		assert.True(t, pulseerrors.IsCode(err, pulseerrors.ErrConfig))
	})

	t.Run("missing explicit config", func(t *testing.T) {
		cmd := newFlagCmd(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := resolveConfig(cmd)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestRootCommandFlags(t *testing.T) {
	for _, name := range []string{"config", "no-color", "interval", "hogs"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "--%s should be persistent", name)
	}
	assert.NotNil(t, rootCmd.Flags().Lookup("tui"))
	assert.True(t, rootCmd.SilenceUsage)
}
