package monitor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rileyhilliard/pulse/internal/provider"
)

// Thresholds for metric severity levels
const (
	WarningThreshold  = 50.0
	CriticalThreshold = 85.0
)

// Thresholds for disk status, in percent of CPU time spent in iowait.
const (
	BusyIOWait       = 1.0
	BottleneckIOWait = 5.0
)

// KernelThreadSampleSize caps how many kernel thread names a Sample keeps.
const KernelThreadSampleSize = 5

// Placeholders for readings the machine doesn't provide.
const (
	FrequencyUnavailable = "N/A"
	NoBattery            = "AC Power (No Battery Detected)"
)

const bytesPerGiB = 1024 * 1024 * 1024

// Severity is the color band of a percentage.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityWarning
	SeverityCritical
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityNormal:
		return "normal"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Classify maps a percentage to its severity. Boundaries belong to the upper band.
func Classify(percent float64) Severity {
	switch {
	case percent >= CriticalThreshold:
		return SeverityCritical
	case percent >= WarningThreshold:
		return SeverityWarning
	default:
		return SeverityNormal
	}
}

// DiskStatus summarizes I/O wait.
type DiskStatus string

const (
	DiskSmooth     DiskStatus = "Smooth"
	DiskBusy       DiskStatus = "Busy"
	DiskBottleneck DiskStatus = "Bottleneck"
)

// DiskStatusFor classifies an iowait percentage.
func DiskStatusFor(iowait float64) DiskStatus {
	switch {
	case iowait < BusyIOWait:
		return DiskSmooth
	case iowait < BottleneckIOWait:
		return DiskBusy
	default:
		return DiskBottleneck
	}
}

// FormatUptime renders whole hours and minutes; seconds are dropped.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%dh %dm", total/3600, (total%3600)/60)
}

// ComputeNetRate converts two counter reads taken window apart into KB/s.
// A counter that went backwards (reset or wrap) reads as zero.
func ComputeNetRate(first, second provider.NetCounters, window time.Duration) NetworkRate {
	if window <= 0 {
		return NetworkRate{}
	}
	scale := 1 / window.Seconds()
	return NetworkRate{
		DownKBs: round1(float64(counterDelta(first.BytesRecv, second.BytesRecv)) * scale / 1024),
		UpKBs:   round1(float64(counterDelta(first.BytesSent, second.BytesSent)) * scale / 1024),
	}
}

func counterDelta(a, b uint64) uint64 {
	if b < a {
		return 0
	}
	return b - a
}

// BytesToGB converts bytes to GiB rounded to one decimal.
func BytesToGB(b uint64) float64 {
	return round1(float64(b) / bytesPerGiB)
}

// FormatGB renders BytesToGB with exactly one decimal.
func FormatGB(b uint64) string {
	return fmt.Sprintf("%.1f", BytesToGB(b))
}

// FormatFrequency renders MHz as GHz rounded to two decimals, or N/A.
// Trailing zeros are dropped but at least one decimal is kept.
func FormatFrequency(mhz float64, ok bool) string {
	if !ok {
		return FrequencyUnavailable
	}
	ghz := strconv.FormatFloat(math.Round(mhz/10)/100, 'f', -1, 64)
	if !strings.Contains(ghz, ".") {
		ghz += ".0"
	}
	return ghz + " GHz"
}

// FormatBattery renders "87.3% (Discharging)" or the no-battery placeholder.
func FormatBattery(b *BatteryMetrics) string {
	if b == nil {
		return NoBattery
	}
	state := "Discharging"
	if b.Plugged {
		state = "Charging"
	}
	return fmt.Sprintf("%.1f%% (%s)", b.Percent, state)
}

// FormatPercent renders a percentage with one decimal.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatBytes renders a byte count in the largest fitting binary unit.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
