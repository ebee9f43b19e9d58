// Package testing provides test doubles for the provider package.
package testing

import (
	"context"
	"iter"
	"sync"
	"time"

	"github.com/rileyhilliard/pulse/internal/provider"
)

// ProcessRecord is one element the fake enumerates: a record or a read error.
type ProcessRecord struct {
	Info provider.ProcessInfo
	Err  error
}

// FakeProvider returns canned readings. It never sleeps, even when asked
// to block, but it records the windows it was given.
type FakeProvider struct {
	mu sync.Mutex

	CPU      float64
	CPUErr   error
	Mhz      float64
	HasMhz   bool
	Boot     time.Time
	Mem      provider.MemoryStats
	MemErr   error
	Batt     *provider.BatteryStats
	Wait     float64
	Procs    []ProcessRecord
	ProcsErr error

	// Net is consumed in order; the last entry repeats once exhausted.
	Net []provider.NetCounters

	// Tracking for assertions
	CPUIntervals   []time.Duration
	NetCalls       int
	ProcessOptions []provider.ProcessOptions
}

// NewFakeProvider creates a fake with a booted-now clock and no battery.
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{Boot: time.Now()}
}

// WithProcesses appends successful process records.
func (f *FakeProvider) WithProcesses(infos ...provider.ProcessInfo) *FakeProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, info := range infos {
		f.Procs = append(f.Procs, ProcessRecord{Info: info})
	}
	return f
}

// WithProcessError appends a record that fails to read.
func (f *FakeProvider) WithProcessError(err error) *FakeProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Procs = append(f.Procs, ProcessRecord{Err: err})
	return f
}

// CPUPercent implements provider.Provider.
func (f *FakeProvider) CPUPercent(ctx context.Context, interval time.Duration) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CPUIntervals = append(f.CPUIntervals, interval)
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return f.CPU, f.CPUErr
}

// CPUFrequency implements provider.Provider.
func (f *FakeProvider) CPUFrequency(ctx context.Context) (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Mhz, f.HasMhz
}

// BootTime implements provider.Provider.
func (f *FakeProvider) BootTime(ctx context.Context) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Boot, nil
}

// Memory implements provider.Provider.
func (f *FakeProvider) Memory(ctx context.Context) (provider.MemoryStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Mem, f.MemErr
}

// Battery implements provider.Provider.
func (f *FakeProvider) Battery(ctx context.Context) (*provider.BatteryStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Batt, nil
}

// NetCounters implements provider.Provider.
func (f *FakeProvider) NetCounters(ctx context.Context) (provider.NetCounters, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.NetCalls++
	if len(f.Net) == 0 {
		return provider.NetCounters{}, nil
	}
	c := f.Net[0]
	if len(f.Net) > 1 {
		f.Net = f.Net[1:]
	}
	return c, nil
}

// IOWait implements provider.Provider.
func (f *FakeProvider) IOWait(ctx context.Context) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Wait
}

// Processes implements provider.Provider.
func (f *FakeProvider) Processes(ctx context.Context, opts provider.ProcessOptions) iter.Seq2[provider.ProcessInfo, error] {
	f.mu.Lock()
	f.ProcessOptions = append(f.ProcessOptions, opts)
	records := append([]ProcessRecord(nil), f.Procs...)
	procsErr := f.ProcsErr
	f.mu.Unlock()

	return func(yield func(provider.ProcessInfo, error) bool) {
		if procsErr != nil {
			yield(provider.ProcessInfo{}, procsErr)
			return
		}
		for _, r := range records {
			info := r.Info
			if !opts.IO {
				info.IO = nil
			}
			if !yield(info, r.Err) {
				return
			}
		}
	}
}

var _ provider.Provider = (*FakeProvider)(nil)
