package monitor

import "github.com/charmbracelet/lipgloss"

// Dashboard palette for TUI mode. The severity colors are the same bright
// ANSI entries the raw loop uses.
const (
	ColorHealthy  = lipgloss.Color("10") // Bright green
	ColorWarning  = lipgloss.Color("11") // Bright yellow
	ColorCritical = lipgloss.Color("9")  // Bright red

	ColorTextPrimary = lipgloss.Color("15")
	ColorTextMuted   = lipgloss.Color("8")
	ColorAccent      = lipgloss.Color("6")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			MarginTop(1)
)

// SeverityColor returns the palette color for a severity.
func SeverityColor(s Severity) lipgloss.Color {
	switch s {
	case SeverityCritical:
		return ColorCritical
	case SeverityWarning:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// MetricColor returns the appropriate color for a percentage-based metric.
func MetricColor(percent float64) lipgloss.Color {
	return SeverityColor(Classify(percent))
}

// MetricStyle returns a style with the appropriate foreground color for the metric.
func MetricStyle(percent float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(MetricColor(percent))
}

// stylePaint is the Painter used by the TUI.
func stylePaint(s Severity, text string) string {
	return lipgloss.NewStyle().Foreground(SeverityColor(s)).Render(text)
}
