package config

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/rileyhilliard/pulse/internal/util"
)

// MinInterval is the floor for the tick. The sampling windows can push the
// real minimum higher; see intervalHint.
const MinInterval = 500 * time.Millisecond

// Validate checks the config and returns a structured error for the first problem.
func Validate(cfg *Config) error {
	if cfg.CPUWindow <= 0 || cfg.NetWindow <= 0 {
		return errors.New(errors.ErrConfig,
			"Sampling windows must be positive",
			"Set cpu_window and net_window to durations like 500ms and 100ms")
	}

	if cfg.Interval < MinInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval too short (%s)", cfg.Interval),
			intervalHint(cfg))
	}

	if cfg.CPUWindow+cfg.NetWindow >= cfg.Interval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Sampling windows (%s + %s) don't fit in a %s tick", cfg.CPUWindow, cfg.NetWindow, cfg.Interval),
			intervalHint(cfg))
	}

	switch cfg.Color {
	case ColorAlways, ColorNever, ColorAuto:
	default:
		suggestion := "Use always, never or auto"
		if match := util.ClosestMatch(cfg.Color, []string{ColorAlways, ColorNever, ColorAuto}, 2); match != "" {
			suggestion = fmt.Sprintf("Did you mean '%s'? Use always, never or auto", match)
		}
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown color mode '%s'", cfg.Color),
			suggestion)
	}

	if cfg.Hogs && cfg.HogLimit < 1 {
		return errors.New(errors.ErrConfig,
			"hog_limit must be at least 1",
			"Set hog_limit to the number of processes to list")
	}

	return nil
}

// intervalHint states the shortest interval cfg accepts.
func intervalHint(cfg *Config) string {
	if windows := cfg.CPUWindow + cfg.NetWindow; windows >= MinInterval {
		return fmt.Sprintf("Use an interval longer than %s (cpu_window + net_window), or shorten the windows", windows)
	}
	return fmt.Sprintf("Minimum interval is %s", MinInterval)
}
