package monitor

import (
	"sort"

	"github.com/rileyhilliard/pulse/internal/provider"
)

// TopIO ranks processes by cumulative read+write bytes and keeps the top n.
// Records without counters, or with nothing read or written, are ignored.
func TopIO(procs []provider.ProcessInfo, n int) []IOHog {
	if n <= 0 {
		return nil
	}

	hogs := make([]IOHog, 0, len(procs))
	for _, p := range procs {
		if p.IO == nil || p.IO.Total() == 0 {
			continue
		}
		hogs = append(hogs, IOHog{
			PID:        p.PID,
			Name:       p.Name,
			ReadBytes:  p.IO.ReadBytes,
			WriteBytes: p.IO.WriteBytes,
		})
	}

	sort.Slice(hogs, func(i, j int) bool {
		if hogs[i].TotalBytes() != hogs[j].TotalBytes() {
			return hogs[i].TotalBytes() > hogs[j].TotalBytes()
		}
		return hogs[i].PID < hogs[j].PID
	})

	if len(hogs) > n {
		hogs = hogs[:n]
	}
	return hogs
}
