package provider

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"syscall"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIowaitPercent(t *testing.T) {
	tests := []struct {
		name string
		prev cpu.TimesStat
		cur  cpu.TimesStat
		want float64
	}{
		{
			name: "ten percent wait",
			prev: cpu.TimesStat{User: 100, Idle: 100, Iowait: 10},
			cur:  cpu.TimesStat{User: 140, Idle: 150, Iowait: 20},
			want: 10,
		},
		{
			name: "since boot when prev is zero",
			prev: cpu.TimesStat{},
			cur:  cpu.TimesStat{User: 50, System: 25, Idle: 20, Iowait: 5},
			want: 5,
		},
		{
			name: "no elapsed time",
			prev: cpu.TimesStat{User: 10, Iowait: 1},
			cur:  cpu.TimesStat{User: 10, Iowait: 1},
			want: 0,
		},
		{
			name: "counter went backwards",
			prev: cpu.TimesStat{User: 10, Idle: 10, Iowait: 5},
			cur:  cpu.TimesStat{User: 20, Idle: 20, Iowait: 4},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, iowaitPercent(tt.prev, tt.cur), 1e-9)
		})
	}
}

func TestClassifyExe(t *testing.T) {
	notExist := &fs.PathError{Op: "readlink", Path: "/proc/2/exe", Err: fs.ErrNotExist}
	denied := &fs.PathError{Op: "readlink", Path: "/proc/2/exe", Err: syscall.EACCES}

	isKthread := func() (bool, error) { return true, nil }
	notKthread := func() (bool, error) { return false, nil }
	statGone := func() (bool, error) { return false, fs.ErrNotExist }

	tests := []struct {
		name      string
		exe       string
		err       error
		kthread   func() (bool, error)
		wantExe   string
		wantKnown bool
	}{
		{"readable image", "/usr/bin/bash", nil, notKthread, "/usr/bin/bash", true},
		{"missing link means no image", "", notExist, notKthread, "", true},
		{"denied kernel thread", "", denied, isKthread, "", true},
		{"denied wrapped", "", fmt.Errorf("readlink: %w", fs.ErrPermission), isKthread, "", true},
		{"denied user process stays unknown", "", denied, notKthread, "", false},
		{"denied and stat unreadable", "", denied, statGone, "", false},
		{"other failure", "", errors.New("boom"), isKthread, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exe, known := classifyExe(tt.exe, tt.err, tt.kthread)
			assert.Equal(t, tt.wantExe, exe)
			assert.Equal(t, tt.wantKnown, known)
		})
	}
}

func TestClassifyExe_DeniedKernelThreadCounts(t *testing.T) {
	procRoot := writeSysfs(t, map[string]string{
		"2/stat": "2 (kthreadd) S 0 0 0 0 -1 2129984 0 0 0 0 0 0 0 0 20 0 1 0 3 0 0\n",
	})
	denied := &fs.PathError{Op: "readlink", Path: "/proc/2/exe", Err: syscall.EACCES}

	exe, known := classifyExe("", denied, func() (bool, error) {
		return kernelThreadFlag(procRoot, 2)
	})
	info := ProcessInfo{PID: 2, Name: "kthreadd", Status: "sleep", Exe: exe, ExeKnown: known}
	assert.True(t, info.IsKernelThread())
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0.0, clampPercent(-3))
	assert.Equal(t, 42.5, clampPercent(42.5))
	assert.Equal(t, 100.0, clampPercent(100.0001))
}

func TestProcessInfoClassification(t *testing.T) {
	tests := []struct {
		name       string
		info       ProcessInfo
		wantZombie bool
		wantKernel bool
	}{
		{"user process", ProcessInfo{Exe: "/bin/sh", ExeKnown: true, Status: "sleep"}, false, false},
		{"kernel thread", ProcessInfo{ExeKnown: true, Status: "idle"}, false, true},
		{"zombie", ProcessInfo{ExeKnown: true, Status: "zombie"}, true, false},
		{"status match is exact", ProcessInfo{Exe: "/bin/x", ExeKnown: true, Status: "Zombie"}, false, false},
		{"unknown image", ProcessInfo{ExeKnown: false, Status: "sleep"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantZombie, tt.info.IsZombie())
			assert.Equal(t, tt.wantKernel, tt.info.IsKernelThread())
		})
	}
}

func TestIOCountersTotal(t *testing.T) {
	assert.Equal(t, uint64(300), IOCounters{ReadBytes: 100, WriteBytes: 200}.Total())
}

func TestSystem_Live(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("live readings are only checked on linux")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s := NewSystem()

	pct, err := s.CPUPercent(ctx, 50*time.Millisecond)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pct, 0.0)
	assert.LessOrEqual(t, pct, 100.0)

	m, err := s.Memory(ctx)
	require.NoError(t, err)
	assert.Greater(t, m.Total, uint64(0))

	boot, err := s.BootTime(ctx)
	require.NoError(t, err)
	assert.True(t, boot.Before(time.Now()))

	wait := s.IOWait(ctx)
	assert.GreaterOrEqual(t, wait, 0.0)
	assert.LessOrEqual(t, wait, 100.0)

	seen := 0
	for info, err := range s.Processes(ctx, ProcessOptions{}) {
		if err != nil {
			continue
		}
		assert.Greater(t, info.PID, int32(0))
		seen++
	}
	assert.Greater(t, seen, 0, "at least this test process is visible")
}
