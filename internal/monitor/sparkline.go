package monitor

import (
	"math"
	"strings"
)

// Sparkline block characters representing 8 vertical levels (lowest to highest).
const sparklineBlocks = "▁▂▃▄▅▆▇█"

var sparklineBlockRunes = []rune(sparklineBlocks)

// HistorySize is how many samples the TUI keeps for its sparklines.
const HistorySize = 60

// Sparkline draws the most recent width percentages on a fixed 0-100 scale,
// so a flat line at 90% looks different from a flat line at 10%.
func Sparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}

	top := len(sparklineBlockRunes) - 1
	var sb strings.Builder
	sb.Grow(len(data) * 3)
	for _, v := range data {
		v = math.Max(0, math.Min(100, v))
		sb.WriteRune(sparklineBlockRunes[int(math.Round(v/100*float64(top)))])
	}
	return sb.String()
}

// pushHistory appends v and drops the oldest values beyond HistorySize.
func pushHistory(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > HistorySize {
		h = h[len(h)-HistorySize:]
	}
	return h
}
