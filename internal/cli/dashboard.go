package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/pulse/internal/config"
	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/rileyhilliard/pulse/internal/logger"
	"github.com/rileyhilliard/pulse/internal/monitor"
	"github.com/rileyhilliard/pulse/internal/provider"
	"golang.org/x/term"
)

// stdoutIsTerminal reports whether stdout is attached to a terminal.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// newSampler builds the long-lived provider and the sampler that reads it.
func newSampler(cfg *config.Config) *monitor.Sampler {
	p := provider.NewSystem(provider.WithLogger(logger.NewEnvLogger("[provider]")))
	sampler := monitor.NewSampler(p, monitor.SamplerConfig{
		CPUWindow: cfg.CPUWindow,
		NetWindow: cfg.NetWindow,
		Hogs:      cfg.Hogs,
		HogLimit:  cfg.HogLimit,
	})
	sampler.SetLogger(logger.NewEnvLogger("[sampler]"))
	return sampler
}

// dashboardCommand runs the ANSI loop or the TUI until ctx is cancelled.
func dashboardCommand(ctx context.Context, cfg *config.Config) error {
	sampler := newSampler(cfg)

	if cfg.TUI {
		return tuiCommand(ctx, sampler, cfg)
	}

	loop := monitor.NewLoop(sampler, os.Stdout, monitor.CodesFor(cfg.UseColor(stdoutIsTerminal)), cfg.Interval)
	loop.SetLogger(logger.NewEnvLogger("[loop]"))
	return loop.Run(ctx)
}

// tuiCommand runs the Bubble Tea dashboard.
func tuiCommand(ctx context.Context, sampler *monitor.Sampler, cfg *config.Config) error {
	if !stdoutIsTerminal() {
		return errors.New(errors.ErrTerminal,
			"The TUI needs an interactive terminal",
			"Run without --tui to stream the dashboard to a pipe or file")
	}

	if !cfg.UseColor(stdoutIsTerminal) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	return runProgram(ctx, monitor.NewModel(ctx, sampler, cfg.Interval), os.Stdout)
}

func runProgram(ctx context.Context, model tea.Model, out io.Writer) error {
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return programExited(out, err)
}

// programExited prints the closing message once the alt screen is gone.
// A kill through ctx is a normal exit.
func programExited(out io.Writer, err error) error {
	if err != nil && !stderrors.Is(err, tea.ErrProgramKilled) {
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"Dashboard exited unexpectedly",
			"Try running without --tui")
	}
	_, _ = fmt.Fprintln(out, monitor.ClosingMessage)
	return nil
}
