package provider

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Default locations; HOST_SYS and HOST_PROC override the roots the same way
// they do for gopsutil.
const (
	defaultSysRoot  = "/sys"
	defaultProcRoot = "/proc"
)

// pfKthread is the PF_KTHREAD bit of the per-task flags word.
const pfKthread = 0x00200000

func hostRoot(env, fallback string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return fallback
}

// readCurrentMHz is the mean current clock across logical CPUs. The cpufreq
// governor's scaling_cur_freq (kHz) is preferred; without cpufreq the
// "cpu MHz" lines of cpuinfo are used.
func readCurrentMHz(cpuDir, cpuinfoPath string) (float64, bool) {
	paths, _ := filepath.Glob(filepath.Join(cpuDir, "cpu[0-9]*", "cpufreq", "scaling_cur_freq"))
	var sum float64
	var n int
	for _, p := range paths {
		if khz, ok := readFloat(p); ok && khz > 0 {
			sum += khz / 1000
			n++
		}
	}
	if n > 0 {
		return sum / float64(n), true
	}
	return cpuinfoMHz(cpuinfoPath)
}

func cpuinfoMHz(path string) (float64, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer f.Close()

	var sum float64
	var n int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		key, val, ok := strings.Cut(sc.Text(), ":")
		if !ok || strings.TrimSpace(key) != "cpu MHz" {
			continue
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil && v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// kernelThreadFlag reports whether /proc/<pid>/stat carries PF_KTHREAD.
// The stat file stays world-readable when the exe link does not.
func kernelThreadFlag(procRoot string, pid int32) (bool, error) {
	b, err := os.ReadFile(filepath.Join(procRoot, strconv.Itoa(int(pid)), "stat"))
	if err != nil {
		return false, err
	}
	flags, err := statFlags(string(b))
	if err != nil {
		return false, fmt.Errorf("pid %d: %w", pid, err)
	}
	return flags&pfKthread != 0, nil
}

// statFlags pulls field 9 out of a stat line. The command name can hold
// spaces and parens, so fields are counted from its last closing paren.
func statFlags(stat string) (uint64, error) {
	end := strings.LastIndexByte(stat, ')')
	if end < 0 {
		return 0, errors.New("malformed stat line")
	}
	// state ppid pgrp session tty_nr tpgid flags
	fields := strings.Fields(stat[end+1:])
	if len(fields) < 7 {
		return 0, errors.New("short stat line")
	}
	return strconv.ParseUint(fields[6], 10, 64)
}
