package recovery

import (
	"fmt"
	"io"
)

// Logger is a context-scoped replacement for a global debug level: every
// recursion frame carries the one it was given rather than reading a
// mutable package variable.
type Logger struct {
	w         io.Writer
	verbosity int
}

// NewLogger returns a Logger writing to w at the given verbosity.
// Verbosity 0 disables all output; 1 enables Dbg (the per-depth branching
// order and progress reports), 2 adds Vdbg (per-index prune shrink
// factors), 3 adds Vvdbg, which no caller in this module uses.
func NewLogger(w io.Writer, verbosity int) *Logger {
	return &Logger{w: w, verbosity: verbosity}
}

func (l *Logger) enabled(level int) bool {
	return l != nil && l.w != nil && l.verbosity >= level
}

// Dbg logs at verbosity level 1.
func (l *Logger) Dbg(format string, args ...any) { l.logAt(1, format, args...) }

// Vdbg logs at verbosity level 2.
func (l *Logger) Vdbg(format string, args ...any) { l.logAt(2, format, args...) }

// Vvdbg logs at verbosity level 3.
func (l *Logger) Vvdbg(format string, args ...any) { l.logAt(3, format, args...) }

func (l *Logger) logAt(level int, format string, args ...any) {
	if !l.enabled(level) {
		return
	}
	fmt.Fprintf(l.w, format+"\n", args...)
}
