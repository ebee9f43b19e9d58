package monitor

import (
	"testing"

	"github.com/rileyhilliard/pulse/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func proc(pid int32, name string, read, write uint64) provider.ProcessInfo {
	return provider.ProcessInfo{
		PID:  pid,
		Name: name,
		IO:   &provider.IOCounters{ReadBytes: read, WriteBytes: write},
	}
}

func TestTopIO(t *testing.T) {
	procs := []provider.ProcessInfo{
		proc(10, "small", 100, 0),
		proc(20, "big", 5000, 5000),
		{PID: 30, Name: "no-counters"},
		proc(40, "idle", 0, 0),
		proc(50, "medium", 0, 2000),
		proc(5, "medium-tie", 1000, 1000),
	}

	t.Run("sorted descending with pid tie break", func(t *testing.T) {
		hogs := TopIO(procs, 10)
		require.Len(t, hogs, 4)
		assert.Equal(t, int32(20), hogs[0].PID)
		assert.Equal(t, int32(5), hogs[1].PID)
		assert.Equal(t, int32(50), hogs[2].PID)
		assert.Equal(t, int32(10), hogs[3].PID)
	})

	t.Run("truncates to n", func(t *testing.T) {
		hogs := TopIO(procs, 2)
		require.Len(t, hogs, 2)
		assert.Equal(t, "big", hogs[0].Name)
		assert.Equal(t, uint64(10000), hogs[0].TotalBytes())
	})

	t.Run("non-positive n", func(t *testing.T) {
		assert.Nil(t, TopIO(procs, 0))
	})

	t.Run("nothing qualifies", func(t *testing.T) {
		hogs := TopIO([]provider.ProcessInfo{{PID: 1, Name: "init"}}, 5)
		assert.NotNil(t, hogs)
		assert.Empty(t, hogs)
	})
}
