// Package provider reads point-in-time operating-system metrics for the
// dashboard. The System type delegates to gopsutil; tests use the fake in
// the testing subpackage.
package provider

import (
	"context"
	"iter"
	"time"
)

// StatusZombie is the exact process status value that marks a zombie.
const StatusZombie = "zombie"

// Provider is the set of readings the sampler consumes each tick.
// Implementations are long-lived: construct once and reuse for every tick.
type Provider interface {
	// CPUPercent blocks for interval and returns average utilization in [0,100].
	CPUPercent(ctx context.Context, interval time.Duration) (float64, error)
	// CPUFrequency returns the current frequency in MHz; ok is false when unknown.
	CPUFrequency(ctx context.Context) (mhz float64, ok bool)
	BootTime(ctx context.Context) (time.Time, error)
	Memory(ctx context.Context) (MemoryStats, error)
	// Battery returns nil when no battery is present.
	Battery(ctx context.Context) (*BatteryStats, error)
	NetCounters(ctx context.Context) (NetCounters, error)
	// IOWait returns the iowait share of CPU time since the previous call,
	// or 0 where the platform doesn't report it.
	IOWait(ctx context.Context) float64
	// Processes lazily enumerates processes. An element carrying a non-nil
	// error is a record that could not be read; consumers skip it.
	Processes(ctx context.Context, opts ProcessOptions) iter.Seq2[ProcessInfo, error]
}

// MemoryStats holds virtual memory usage in bytes.
type MemoryStats struct {
	Total   uint64
	Used    uint64
	Percent float64
}

// BatteryStats is the state of the first battery found.
type BatteryStats struct {
	Percent      float64
	PowerPlugged bool
}

// NetCounters are cumulative byte counters summed over all interfaces.
type NetCounters struct {
	BytesSent uint64
	BytesRecv uint64
}

// ProcessOptions selects optional per-process fields.
type ProcessOptions struct {
	// IO requests per-process I/O counters. Often needs elevated privileges.
	IO bool
}

// IOCounters are cumulative per-process disk byte counters.
type IOCounters struct {
	ReadBytes  uint64
	WriteBytes uint64
}

// Total returns read plus write bytes.
func (c IOCounters) Total() uint64 {
	return c.ReadBytes + c.WriteBytes
}

// ProcessInfo is one enumerated process record.
type ProcessInfo struct {
	PID    int32
	Name   string
	Status string

	// Exe is the executable path. ExeKnown is false when the path could not
	// be read for a reason other than the process having no image.
	Exe      string
	ExeKnown bool

	// IO is nil when counters were not requested or are unavailable.
	IO *IOCounters
}

// IsZombie reports whether the process has exited but not been reaped.
func (p ProcessInfo) IsZombie() bool {
	return p.Status == StatusZombie
}

// IsKernelThread reports whether the process has no user-space executable image.
// Zombies also lose their image, so they are excluded.
func (p ProcessInfo) IsKernelThread() bool {
	return p.ExeKnown && p.Exe == "" && !p.IsZombie()
}
