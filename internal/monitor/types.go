package monitor

import "time"

// Sample is every reading captured within one tick. It is built once and
// never modified.
type Sample struct {
	Timestamp time.Time
	Uptime    time.Duration
	CPU       CPUMetrics
	Memory    MemoryMetrics
	Battery   *BatteryMetrics // nil if no battery
	Network   NetworkRate
	IOWait    float64
	Disk      DiskStatus

	Zombies           []ProcessEntry
	KernelThreads     []string // first KernelThreadSampleSize names
	KernelThreadCount int

	IOHogs []IOHog // only populated when hog detection is enabled
}

// CPUMetrics contains CPU usage information.
type CPUMetrics struct {
	Percent      float64
	FrequencyMHz float64
	HasFrequency bool
}

// MemoryMetrics contains memory usage information.
type MemoryMetrics struct {
	UsedBytes  uint64
	TotalBytes uint64
	Percent    float64
}

// BatteryMetrics contains battery state.
type BatteryMetrics struct {
	Percent float64
	Plugged bool
}

// NetworkRate is throughput over the net window in KB/s, rounded to 0.1.
type NetworkRate struct {
	DownKBs float64 `yaml:"down_kbs" json:"down_kbs"`
	UpKBs   float64 `yaml:"up_kbs" json:"up_kbs"`
}

// ProcessEntry is a pid and name pair.
type ProcessEntry struct {
	PID  int32  `yaml:"pid" json:"pid"`
	Name string `yaml:"name" json:"name"`
}

// IOHog is a process ranked by cumulative disk I/O.
type IOHog struct {
	PID        int32  `yaml:"pid" json:"pid"`
	Name       string `yaml:"name" json:"name"`
	ReadBytes  uint64 `yaml:"read_bytes" json:"read_bytes"`
	WriteBytes uint64 `yaml:"write_bytes" json:"write_bytes"`
}

// TotalBytes returns read plus write bytes.
func (h IOHog) TotalBytes() uint64 {
	return h.ReadBytes + h.WriteBytes
}
