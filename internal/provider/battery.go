package provider

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// readBattery reports the first battery under dir, or nil when there is none.
// Adapter online state wins over the battery's own status for plugged-in.
func readBattery(dir string) (*BatteryStats, error) {
	capPaths, err := filepath.Glob(filepath.Join(dir, "BAT*", "capacity"))
	if err != nil {
		return nil, err
	}

	for _, capPath := range capPaths {
		pct, ok := readFloat(capPath)
		if !ok {
			continue
		}

		stats := &BatteryStats{Percent: clampPercent(pct)}
		if online, ok := adapterOnline(dir); ok {
			stats.PowerPlugged = online
		} else {
			stats.PowerPlugged = pluggedFromStatus(readTrimmed(filepath.Join(filepath.Dir(capPath), "status")))
		}
		return stats, nil
	}
	return nil, nil
}

func adapterOnline(dir string) (bool, bool) {
	for _, pattern := range []string{"AC*", "ADP*"} {
		matches, _ := filepath.Glob(filepath.Join(dir, pattern, "online"))
		for _, m := range matches {
			switch readTrimmed(m) {
			case "1":
				return true, true
			case "0":
				return false, true
			}
		}
	}
	return false, false
}

// pluggedFromStatus maps the sysfs battery status string. Only an explicit
// discharging state counts as running on battery.
func pluggedFromStatus(status string) bool {
	switch strings.ToLower(status) {
	case "discharging", "":
		return false
	default:
		return true
	}
}

func readTrimmed(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func readFloat(path string) (float64, bool) {
	s := readTrimmed(path)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
