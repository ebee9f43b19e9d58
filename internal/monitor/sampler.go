package monitor

import (
	"context"
	"time"

	"github.com/rileyhilliard/pulse/internal/logger"
	"github.com/rileyhilliard/pulse/internal/provider"
)

// SamplerConfig holds the sampling windows and optional sections.
type SamplerConfig struct {
	CPUWindow time.Duration
	NetWindow time.Duration
	Hogs      bool
	HogLimit  int
}

// DefaultSamplerConfig returns a 500ms CPU window and a 100ms net window.
func DefaultSamplerConfig() SamplerConfig {
	return SamplerConfig{
		CPUWindow: 500 * time.Millisecond,
		NetWindow: 100 * time.Millisecond,
		HogLimit:  5,
	}
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sampler builds Samples from a long-lived provider.
type Sampler struct {
	provider provider.Provider
	cfg      SamplerConfig
	log      logger.Logger
	sleep    SleepFunc
	now      func() time.Time
}

// NewSampler creates a sampler. The provider is owned by the caller and
// reused for every tick.
func NewSampler(p provider.Provider, cfg SamplerConfig) *Sampler {
	return &Sampler{
		provider: p,
		cfg:      cfg,
		log:      logger.Noop(),
		sleep:    sleepContext,
		now:      time.Now,
	}
}

// SetLogger sets the logger used for debug output.
func (s *Sampler) SetLogger(l logger.Logger) {
	s.log = l
}

// Collect takes one Sample. Read failures degrade to zero values or
// placeholders; only cancellation of ctx is returned as an error.
// Percentages are rounded to the one decimal they are shown with, so the
// color band always matches the printed number.
func (s *Sampler) Collect(ctx context.Context) (Sample, error) {
	p := s.provider

	cpuPct, err := p.CPUPercent(ctx, s.cfg.CPUWindow)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Sample{}, ctxErr
		}
		s.log.Debug("cpu percent: %v", err)
		cpuPct = 0
	}

	mhz, hasMhz := p.CPUFrequency(ctx)

	now := s.now()
	var uptime time.Duration
	if boot, err := p.BootTime(ctx); err != nil {
		s.log.Debug("boot time: %v", err)
	} else if !boot.IsZero() {
		uptime = now.Sub(boot)
	}

	memStats, err := p.Memory(ctx)
	if err != nil {
		s.log.Debug("memory: %v", err)
	}

	var battery *BatteryMetrics
	if b, err := p.Battery(ctx); err != nil {
		s.log.Debug("battery: %v", err)
	} else if b != nil {
		battery = &BatteryMetrics{Percent: b.Percent, Plugged: b.PowerPlugged}
	}

	procs, err := s.scanProcesses(ctx)
	if err != nil {
		return Sample{}, err
	}

	iowait := round1(p.IOWait(ctx))

	net, err := s.netRate(ctx)
	if err != nil {
		return Sample{}, err
	}

	return Sample{
		Timestamp: now,
		Uptime:    uptime,
		CPU: CPUMetrics{
			Percent:      round1(cpuPct),
			FrequencyMHz: mhz,
			HasFrequency: hasMhz,
		},
		Memory: MemoryMetrics{
			UsedBytes:  memStats.Used,
			TotalBytes: memStats.Total,
			Percent:    round1(memStats.Percent),
		},
		Battery:           battery,
		Network:           net,
		IOWait:            iowait,
		Disk:              DiskStatusFor(iowait),
		Zombies:           procs.zombies,
		KernelThreads:     procs.kernelThreads,
		KernelThreadCount: procs.kernelThreadCount,
		IOHogs:            procs.hogs,
	}, nil
}

// netRate reads the counters twice, one net window apart.
func (s *Sampler) netRate(ctx context.Context) (NetworkRate, error) {
	first, err := s.provider.NetCounters(ctx)
	if err != nil {
		s.log.Debug("net counters: %v", err)
		return NetworkRate{}, s.sleep(ctx, s.cfg.NetWindow)
	}
	if err := s.sleep(ctx, s.cfg.NetWindow); err != nil {
		return NetworkRate{}, err
	}
	second, err := s.provider.NetCounters(ctx)
	if err != nil {
		s.log.Debug("net counters: %v", err)
		return NetworkRate{}, nil
	}
	return ComputeNetRate(first, second, s.cfg.NetWindow), nil
}

type processScan struct {
	zombies           []ProcessEntry
	kernelThreads     []string
	kernelThreadCount int
	hogs              []IOHog
}

// scanProcesses walks the process table once. Records that fail to read
// are skipped.
func (s *Sampler) scanProcesses(ctx context.Context) (processScan, error) {
	var scan processScan
	var candidates []provider.ProcessInfo
	skipped := 0

	for info, err := range s.provider.Processes(ctx, provider.ProcessOptions{IO: s.cfg.Hogs}) {
		if err != nil {
			skipped++
			continue
		}
		if info.IsZombie() {
			scan.zombies = append(scan.zombies, ProcessEntry{PID: info.PID, Name: info.Name})
		}
		if info.IsKernelThread() {
			scan.kernelThreadCount++
			if len(scan.kernelThreads) < KernelThreadSampleSize {
				scan.kernelThreads = append(scan.kernelThreads, info.Name)
			}
		}
		if s.cfg.Hogs && info.IO != nil {
			candidates = append(candidates, info)
		}
	}
	if err := ctx.Err(); err != nil {
		return processScan{}, err
	}
	if skipped > 0 {
		s.log.Debug("skipped %d unreadable process records", skipped)
	}

	if s.cfg.Hogs {
		scan.hogs = TopIO(candidates, s.cfg.HogLimit)
	}
	return scan, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
