package monitor

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the Bubble Tea model for TUI mode. It draws the same frame as
// Loop, styled with lipgloss.
type Model struct {
	ctx      context.Context
	sampler  *Sampler
	interval time.Duration

	latest   *Sample
	sampling bool
	seq      int // invalidates ticks scheduled before a manual refresh
	quitting bool

	cpuHistory []float64
	memHistory []float64
	width      int

	keys keyMap
	help help.Model
}

// sampleMsg carries a finished Sample and how long it took to collect.
type sampleMsg struct {
	sample Sample
	took   time.Duration
	err    error
}

// tickMsg asks for the next sample; seq must match the model's current seq.
type tickMsg struct {
	seq int
}

// NewModel creates the TUI model. Sampling stops when ctx is cancelled.
func NewModel(ctx context.Context, sampler *Sampler, interval time.Duration) Model {
	return Model{
		ctx:      ctx,
		sampler:  sampler,
		interval: interval,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
}

// Init starts the first sample immediately.
func (m Model) Init() tea.Cmd {
	return m.sampleCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			if m.sampling {
				return m, nil
			}
			m.sampling = true
			return m, m.sampleCmd()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case sampleMsg:
		m.sampling = false
		if msg.err != nil {
			// Collect only fails on cancellation.
			m.quitting = true
			return m, tea.Quit
		}
		s := msg.sample
		m.latest = &s
		m.cpuHistory = pushHistory(m.cpuHistory, s.CPU.Percent)
		m.memHistory = pushHistory(m.memHistory, s.Memory.Percent)
		m.seq++
		return m, m.tickCmd(m.interval - msg.took)

	case tickMsg:
		if msg.seq != m.seq || m.sampling {
			return m, nil
		}
		m.sampling = true
		return m, m.sampleCmd()
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.latest == nil {
		return HeaderStyle.Render(Header) + "\n\n" + LabelStyle.Render("Sampling...") + "\n"
	}

	lines := FrameLines(*m.latest, stylePaint)
	lines[0] = HeaderStyle.Render(lines[0])
	lines = append(lines, "",
		m.historyLine("CPU history", m.cpuHistory),
		m.historyLine("RAM history", m.memHistory))

	var b strings.Builder
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
	b.WriteString(FooterStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// historyLine renders a labelled sparkline colored by the newest value.
func (m Model) historyLine(label string, h []float64) string {
	width := HistorySize
	if avail := m.width - len(label) - 2; m.width > 0 && avail < width {
		width = max(avail, 1)
	}
	spark := Sparkline(h, width)
	if len(h) > 0 {
		spark = stylePaint(Classify(h[len(h)-1]), spark)
	}
	return LabelStyle.Render(label+": ") + spark
}

// Latest returns the most recent sample, if any.
func (m Model) Latest() (Sample, bool) {
	if m.latest == nil {
		return Sample{}, false
	}
	return *m.latest, true
}

func (m Model) sampleCmd() tea.Cmd {
	ctx, sampler := m.ctx, m.sampler
	return func() tea.Msg {
		start := time.Now()
		s, err := sampler.Collect(ctx)
		return sampleMsg{sample: s, took: time.Since(start), err: err}
	}
}

func (m Model) tickCmd(wait time.Duration) tea.Cmd {
	if wait < time.Millisecond {
		wait = time.Millisecond
	}
	seq := m.seq
	return tea.Tick(wait, func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}
