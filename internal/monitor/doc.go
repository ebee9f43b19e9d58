// Package monitor implements the local health dashboard: sampling, formatting
// and the two ways of drawing a frame.
//
// # Tick
//
// Every tick the Sampler builds one immutable Sample from a provider.Provider:
//
//  1. CPU percent, blocking for the CPU window (default 500ms)
//  2. CPU frequency, boot time, memory and battery
//  3. One pass over the process table for zombies, kernel threads and,
//     when enabled, I/O-heavy processes
//  4. I/O wait since the previous tick
//  5. Two network counter reads one net window apart (default 100ms)
//
// The blocking windows are part of the tick. The caller sleeps only for
// what remains of the interval.
//
// # Output
//
// Loop redraws an ANSI frame in place: the screen is cleared once, then the
// cursor is homed before each frame. Model runs the same frame inside a
// Bubble Tea program with lipgloss styling.
//
// # Severity
//
// Percentages below 50 are normal, below 85 warning, otherwise critical.
// I/O wait below 1% is Smooth, below 5% Busy, otherwise Bottleneck.
package monitor
