package provider

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"path/filepath"
	"sync"
	"time"

	"github.com/rileyhilliard/pulse/internal/logger"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// DefaultPowerSupplyDir is where Linux exposes battery and adapter state.
const DefaultPowerSupplyDir = "/sys/class/power_supply"

// System reads metrics from the local machine through gopsutil.
type System struct {
	powerSupplyDir string
	cpuDir         string
	cpuinfoPath    string
	procRoot       string
	log            logger.Logger

	// prevTimes primes the iowait delta; guarded because TUI mode samples
	// from a command goroutine.
	mu        sync.Mutex
	prevTimes *cpu.TimesStat
}

// Option configures a System.
type Option func(*System)

// WithPowerSupplyDir overrides the sysfs power supply directory.
func WithPowerSupplyDir(dir string) Option {
	return func(s *System) {
		s.powerSupplyDir = dir
	}
}

// WithSysRoot overrides the sysfs root used for cpufreq readings.
func WithSysRoot(dir string) Option {
	return func(s *System) {
		s.cpuDir = filepath.Join(dir, "devices", "system", "cpu")
	}
}

// WithProcRoot overrides the procfs root used for cpuinfo and per-process
// stat reads.
func WithProcRoot(dir string) Option {
	return func(s *System) {
		s.procRoot = dir
		s.cpuinfoPath = filepath.Join(dir, "cpuinfo")
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l logger.Logger) Option {
	return func(s *System) {
		s.log = l
	}
}

// NewSystem creates the provider and takes the priming CPU times reading,
// so the first IOWait call measures from construction rather than boot.
func NewSystem(opts ...Option) *System {
	procRoot := hostRoot("HOST_PROC", defaultProcRoot)
	s := &System{
		powerSupplyDir: DefaultPowerSupplyDir,
		cpuDir:         filepath.Join(hostRoot("HOST_SYS", defaultSysRoot), "devices", "system", "cpu"),
		cpuinfoPath:    filepath.Join(procRoot, "cpuinfo"),
		procRoot:       procRoot,
		log:            logger.Noop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if t, err := aggregateTimes(context.Background()); err == nil {
		s.prevTimes = &t
	}
	return s
}

// CPUPercent implements Provider.
func (s *System) CPUPercent(ctx context.Context, interval time.Duration) (float64, error) {
	pcts, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		return 0, err
	}
	if len(pcts) == 0 {
		return 0, nil
	}
	return clampPercent(pcts[0]), nil
}

// CPUFrequency implements Provider. The reading is the mean current clock
// across logical CPUs.
func (s *System) CPUFrequency(ctx context.Context) (float64, bool) {
	mhz, ok := readCurrentMHz(s.cpuDir, s.cpuinfoPath)
	if !ok {
		s.log.Debug("cpu frequency: no cpufreq or cpuinfo reading")
	}
	return mhz, ok
}

// BootTime implements Provider.
func (s *System) BootTime(ctx context.Context) (time.Time, error) {
	secs, err := host.BootTimeWithContext(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(secs), 0), nil
}

// Memory implements Provider.
func (s *System) Memory(ctx context.Context) (MemoryStats, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryStats{}, err
	}
	return MemoryStats{
		Total:   vm.Total,
		Used:    vm.Used,
		Percent: clampPercent(vm.UsedPercent),
	}, nil
}

// Battery implements Provider.
func (s *System) Battery(ctx context.Context) (*BatteryStats, error) {
	return readBattery(s.powerSupplyDir)
}

// NetCounters implements Provider.
func (s *System) NetCounters(ctx context.Context) (NetCounters, error) {
	stats, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return NetCounters{}, err
	}
	if len(stats) == 0 {
		return NetCounters{}, nil
	}
	return NetCounters{
		BytesSent: stats[0].BytesSent,
		BytesRecv: stats[0].BytesRecv,
	}, nil
}

// IOWait implements Provider.
func (s *System) IOWait(ctx context.Context) float64 {
	cur, err := aggregateTimes(ctx)
	if err != nil {
		s.log.Debug("cpu times: %v", err)
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := cpu.TimesStat{}
	if s.prevTimes != nil {
		prev = *s.prevTimes
	}
	s.prevTimes = &cur
	return iowaitPercent(prev, cur)
}

// Processes implements Provider.
func (s *System) Processes(ctx context.Context, opts ProcessOptions) iter.Seq2[ProcessInfo, error] {
	return func(yield func(ProcessInfo, error) bool) {
		pids, err := process.PidsWithContext(ctx)
		if err != nil {
			yield(ProcessInfo{}, err)
			return
		}
		for _, pid := range pids {
			if err := ctx.Err(); err != nil {
				yield(ProcessInfo{}, err)
				return
			}
			if !yield(s.readProcess(ctx, pid, opts)) {
				return
			}
		}
	}
}

func (s *System) readProcess(ctx context.Context, pid int32, opts ProcessOptions) (ProcessInfo, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return ProcessInfo{}, err
	}

	name, err := p.NameWithContext(ctx)
	if err != nil {
		return ProcessInfo{}, err
	}

	statuses, err := p.StatusWithContext(ctx)
	if err != nil {
		return ProcessInfo{}, err
	}

	info := ProcessInfo{PID: pid, Name: name}
	if len(statuses) > 0 {
		info.Status = statuses[0]
	}

	exe, exeErr := p.ExeWithContext(ctx)
	info.Exe, info.ExeKnown = classifyExe(exe, exeErr, func() (bool, error) {
		return kernelThreadFlag(s.procRoot, pid)
	})

	if opts.IO {
		if c, err := p.IOCountersWithContext(ctx); err == nil && c != nil {
			info.IO = &IOCounters{ReadBytes: c.ReadBytes, WriteBytes: c.WriteBytes}
		}
	}
	return info, nil
}

// classifyExe maps an exe lookup to (path, known). A missing link means the
// process has no image. When the link is unreadable for lack of privilege,
// kthread decides: kernel threads have no image, anything else stays unknown.
func classifyExe(exe string, err error, kthread func() (bool, error)) (string, bool) {
	switch {
	case err == nil:
		return exe, true
	case errors.Is(err, fs.ErrNotExist):
		return "", true
	case errors.Is(err, fs.ErrPermission):
		if yes, kerr := kthread(); kerr == nil && yes {
			return "", true
		}
		return "", false
	default:
		return "", false
	}
}

func aggregateTimes(ctx context.Context) (cpu.TimesStat, error) {
	times, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return cpu.TimesStat{}, err
	}
	if len(times) == 0 {
		return cpu.TimesStat{}, errors.New("no cpu times reported")
	}
	return times[0], nil
}

func busyTotal(t cpu.TimesStat) float64 {
	return t.User + t.System + t.Idle + t.Nice + t.Iowait + t.Irq + t.Softirq + t.Steal
}

// iowaitPercent is the iowait share of the CPU time elapsed between two readings.
func iowaitPercent(prev, cur cpu.TimesStat) float64 {
	total := busyTotal(cur) - busyTotal(prev)
	if total <= 0 {
		return 0
	}
	wait := cur.Iowait - prev.Iowait
	if wait <= 0 {
		return 0
	}
	return clampPercent(wait / total * 100)
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
