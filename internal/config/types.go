package config

import "time"

// Color modes accepted by the color setting.
const (
	ColorAlways = "always"
	ColorNever  = "never"
	ColorAuto   = "auto"
)

// Config holds the dashboard's runtime settings.
type Config struct {
	// Interval is the length of one tick. Sampling windows are consumed inside it.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// CPUWindow is how long the CPU percent read blocks while averaging.
	CPUWindow time.Duration `yaml:"cpu_window" mapstructure:"cpu_window"`

	// NetWindow separates the two network counter reads.
	NetWindow time.Duration `yaml:"net_window" mapstructure:"net_window"`

	// Color is one of always, never, auto.
	Color string `yaml:"color" mapstructure:"color"`

	// Hogs enables the I/O-heavy process section.
	Hogs     bool `yaml:"hogs" mapstructure:"hogs"`
	HogLimit int  `yaml:"hog_limit" mapstructure:"hog_limit"`

	// TUI runs the Bubble Tea dashboard instead of the raw ANSI loop.
	TUI bool `yaml:"tui" mapstructure:"tui"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Interval:  time.Second,
		CPUWindow: 500 * time.Millisecond,
		NetWindow: 100 * time.Millisecond,
		Color:     ColorAlways,
		Hogs:      false,
		HogLimit:  5,
		TUI:       false,
	}
}

// UseColor resolves the color mode. isTTY is only consulted for auto.
func (c *Config) UseColor(isTTY func() bool) bool {
	switch c.Color {
	case ColorNever:
		return false
	case ColorAuto:
		return isTTY != nil && isTTY()
	default:
		return true
	}
}
