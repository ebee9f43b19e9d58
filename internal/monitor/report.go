package monitor

import "time"

// Report is the formatted view of a Sample used by the snapshot command.
type Report struct {
	Timestamp     time.Time           `yaml:"timestamp" json:"timestamp"`
	Uptime        string              `yaml:"uptime" json:"uptime"`
	CPU           CPUReport           `yaml:"cpu" json:"cpu"`
	Memory        MemoryReport        `yaml:"memory" json:"memory"`
	Battery       string              `yaml:"battery" json:"battery"`
	Network       NetworkRate         `yaml:"network" json:"network"`
	Disk          DiskReport          `yaml:"disk" json:"disk"`
	Zombies       []ProcessEntry      `yaml:"zombies" json:"zombies"`
	KernelThreads KernelThreadsReport `yaml:"kernel_threads" json:"kernel_threads"`
	IOHogs        []IOHog             `yaml:"io_hogs,omitempty" json:"io_hogs,omitempty"`
}

// CPUReport is the CPU section of a Report.
type CPUReport struct {
	Percent   float64 `yaml:"percent" json:"percent"`
	Severity  string  `yaml:"severity" json:"severity"`
	Frequency string  `yaml:"frequency" json:"frequency"`
}

// MemoryReport is the memory section of a Report.
type MemoryReport struct {
	Percent  float64 `yaml:"percent" json:"percent"`
	Severity string  `yaml:"severity" json:"severity"`
	UsedGB   float64 `yaml:"used_gb" json:"used_gb"`
	TotalGB  float64 `yaml:"total_gb" json:"total_gb"`
}

// DiskReport is the disk section of a Report.
type DiskReport struct {
	Status DiskStatus `yaml:"status" json:"status"`
	IOWait float64    `yaml:"iowait" json:"iowait"`
}

// KernelThreadsReport is the kernel thread section of a Report.
type KernelThreadsReport struct {
	Count  int      `yaml:"count" json:"count"`
	Sample []string `yaml:"sample" json:"sample"`
}

// NewReport formats a Sample with the same rules the dashboard uses.
func NewReport(s Sample) Report {
	zombies := s.Zombies
	if zombies == nil {
		zombies = []ProcessEntry{}
	}
	threads := s.KernelThreads
	if threads == nil {
		threads = []string{}
	}

	cpuPct := round1(s.CPU.Percent)
	memPct := round1(s.Memory.Percent)

	return Report{
		Timestamp: s.Timestamp,
		Uptime:    FormatUptime(s.Uptime),
		CPU: CPUReport{
			Percent:   cpuPct,
			Severity:  Classify(cpuPct).String(),
			Frequency: FormatFrequency(s.CPU.FrequencyMHz, s.CPU.HasFrequency),
		},
		Memory: MemoryReport{
			Percent:  memPct,
			Severity: Classify(memPct).String(),
			UsedGB:   BytesToGB(s.Memory.UsedBytes),
			TotalGB:  BytesToGB(s.Memory.TotalBytes),
		},
		Battery: FormatBattery(s.Battery),
		Network: s.Network,
		Disk: DiskReport{
			Status: s.Disk,
			IOWait: round1(s.IOWait),
		},
		Zombies: zombies,
		KernelThreads: KernelThreadsReport{
			Count:  s.KernelThreadCount,
			Sample: threads,
		},
		IOHogs: s.IOHogs,
	}
}
