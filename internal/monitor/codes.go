package monitor

import (
	"fmt"

	"github.com/muesli/termenv"
)

// Codes is the escape sequence table the ANSI loop writes.
type Codes struct {
	Clear      string // full-screen clear, written once at startup
	Home       string // cursor to row 1, column 1, written before every frame
	EraseLine  string // clear the rest of the current line
	EraseBelow string // clear everything after the cursor

	Normal   string
	Warning  string
	Critical string
	Reset    string
}

func csi(seq string) string {
	return termenv.CSI + seq
}

func sgr(seq string) string {
	return csi(seq + "m")
}

// DefaultCodes returns the colored table: bright green, yellow and red.
func DefaultCodes() Codes {
	c := PlainCodes()
	c.Normal = sgr(termenv.ANSIBrightGreen.Sequence(false))
	c.Warning = sgr(termenv.ANSIBrightYellow.Sequence(false))
	c.Critical = sgr(termenv.ANSIBrightRed.Sequence(false))
	c.Reset = sgr(termenv.ResetSeq)
	return c
}

// PlainCodes keeps cursor control but drops every color.
func PlainCodes() Codes {
	return Codes{
		Clear:      csi(fmt.Sprintf(termenv.EraseDisplaySeq, 2)),
		Home:       csi(fmt.Sprintf(termenv.CursorPositionSeq, 1, 1)),
		EraseLine:  csi(fmt.Sprintf(termenv.EraseLineSeq, 0)),
		EraseBelow: csi(fmt.Sprintf(termenv.EraseDisplaySeq, 0)),
	}
}

// CodesFor picks the colored or plain table.
func CodesFor(color bool) Codes {
	if color {
		return DefaultCodes()
	}
	return PlainCodes()
}

// Color returns the start sequence for a severity.
func (c Codes) Color(s Severity) string {
	switch s {
	case SeverityCritical:
		return c.Critical
	case SeverityWarning:
		return c.Warning
	default:
		return c.Normal
	}
}

// Paint wraps text in the severity color and a reset. With no color codes
// the text comes back unchanged.
func (c Codes) Paint(s Severity, text string) string {
	start := c.Color(s)
	if start == "" {
		return text
	}
	return start + text + c.Reset
}
