package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rileyhilliard/pulse/internal/config"
	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile      string
	noColor      bool
	intervalFlag string
	hogsFlag     bool
	tuiFlag      bool
)

// rootCmd runs the dashboard when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Live health dashboard for this machine",
	Long: `pulse redraws a one-screen health report once per second: uptime,
CPU load and clock, memory, battery, network throughput, disk I/O wait,
zombie processes and kernel threads.

Percentages are green below 50%, yellow from 50% and red from 85%.
Press Ctrl+C to stop.

Examples:
  pulse
  pulse --interval 2s --no-color
  pulse --hogs
  pulse --tui`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		return dashboardCommand(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/pulse/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&intervalFlag, "interval", "", "refresh interval (e.g., 1s, 2s); must exceed cpu_window + net_window (600ms by default)")
	rootCmd.PersistentFlags().BoolVar(&hogsFlag, "hogs", false, "list the processes with the most disk I/O")
	rootCmd.Flags().BoolVar(&tuiFlag, "tui", false, "run the interactive full-screen dashboard")
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context rather than killing the process.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if isUnknownCommandError(err) {
			if name := extractUnknownCommand(err); name != "" {
				fmt.Fprintf(os.Stderr, "'%s' is not a pulse command.\n", name)
			}
			fmt.Fprintln(os.Stderr, "Run 'pulse --help' to see what's available.")
		}
		os.Exit(1)
	}
}

// flagChanged reports whether a local or inherited flag was set on the command line.
func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}

// resolveConfig loads the config file and environment, layers explicitly
// set flags on top, and validates the result.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cfg, func(name string) bool { return flagChanged(cmd, name) }); err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags copies every flag that changed reports as set into cfg.
func applyFlags(cfg *config.Config, changed func(name string) bool) error {
	if changed("interval") {
		interval, err := parseInterval(intervalFlag)
		if err != nil {
			return err
		}
		cfg.Interval = interval
	}
	if changed("no-color") && noColor {
		cfg.Color = config.ColorNever
	}
	if changed("hogs") {
		cfg.Hogs = hogsFlag
	}
	if changed("tui") {
		cfg.TUI = tuiFlag
	}
	return nil
}

func parseInterval(flag string) (time.Duration, error) {
	parsed, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Invalid interval: %s", flag),
			"Use a valid duration like 1s, 2s, or 1m")
	}
	return parsed, nil
}

// isUnknownCommandError checks if the error is from an unknown command or flag.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "unknown command") || strings.Contains(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "pulse"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
