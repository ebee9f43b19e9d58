package monitor

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/pulse/internal/util"
)

// Header is the first line of every frame.
const Header = "--- LINUX HEALTH MONITOR ---"

// Messages printed around the ANSI loop.
const (
	StartMessage   = "Starting Linux Health Monitor... (Press Ctrl+C to stop)"
	ClosingMessage = "Dashboard closed cleanly. Goodbye!"
)

// Painter colors text for a severity. Codes.Paint and the TUI's lipgloss
// styles both satisfy it.
type Painter func(s Severity, text string) string

// FrameLines lays out a Sample in the fixed dashboard order. Blank lines
// separate the sections.
func FrameLines(s Sample, paint Painter) []string {
	lines := []string{
		Header,
		"",
		"Uptime: " + FormatUptime(s.Uptime),
		"",
		fmt.Sprintf("CPU: %s || %s",
			paintPercent(paint, s.CPU.Percent),
			FormatFrequency(s.CPU.FrequencyMHz, s.CPU.HasFrequency)),
		"",
		fmt.Sprintf("RAM: %s || %s / %s GB",
			paintPercent(paint, s.Memory.Percent),
			FormatGB(s.Memory.UsedBytes), FormatGB(s.Memory.TotalBytes)),
		"",
		"Battery: " + FormatBattery(s.Battery),
		"",
		fmt.Sprintf("Network: ↓ %.1f KB/s | ↑ %.1f KB/s", s.Network.DownKBs, s.Network.UpKBs),
		"",
		fmt.Sprintf("Disk: %s (I/O wait %.1f%%)", s.Disk, s.IOWait),
		"",
		fmt.Sprintf("Zombies: %d", len(s.Zombies)),
	}

	for _, z := range s.Zombies {
		lines = append(lines, fmt.Sprintf("  PID %d: %s", z.PID, z.Name))
	}

	lines = append(lines, "", kernelThreadLine(s))

	if s.IOHogs != nil {
		lines = append(lines, "", "I/O heavy:")
		if len(s.IOHogs) == 0 {
			lines = append(lines, "  (no per-process I/O data)")
		}
		for _, h := range s.IOHogs {
			lines = append(lines, fmt.Sprintf("  PID %d: %s (read %s, written %s)",
				h.PID, h.Name, FormatBytes(h.ReadBytes), FormatBytes(h.WriteBytes)))
		}
	}

	return lines
}

// paintPercent colors the value as printed, not the raw reading.
func paintPercent(paint Painter, v float64) string {
	v = round1(v)
	return paint(Classify(v), FormatPercent(v))
}

func kernelThreadLine(s Sample) string {
	return fmt.Sprintf("Kernel threads (%d): %s", s.KernelThreadCount, util.JoinOrDefault(s.KernelThreads, "none"))
}

// RenderFrame builds one in-place ANSI frame: cursor home, every line with
// its tail erased, then everything below erased so a shorter frame leaves
// nothing behind.
func RenderFrame(s Sample, codes Codes) string {
	var b strings.Builder
	b.WriteString(codes.Home)
	for _, line := range FrameLines(s, codes.Paint) {
		b.WriteString(line)
		b.WriteString(codes.EraseLine)
		b.WriteString("\n")
	}
	b.WriteString(codes.EraseBelow)
	return b.String()
}
