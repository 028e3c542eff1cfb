// Package logger provides the leveled logger shared by every FreshFridge
// component. Levels are off, normal (info/warn/error) and verbose (adds
// debug). Named children share their parent's level and output, so a
// single SetLevel call affects the whole tree.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Level controls the verbosity of the logger.
type Level int

const (
	// LevelOff disables all log output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose enables all output including debug.
	LevelVerbose
)

// String returns the flag-friendly level name.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelNormal:
		return "normal"
	case LevelVerbose:
		return "verbose"
	default:
		return "unknown"
	}
}

// levelState is shared between a logger and its named children.
type levelState struct {
	mu    sync.RWMutex
	level Level
}

// Logger is a leveled logger. All methods are safe for concurrent use.
type Logger struct {
	state  *levelState
	out    io.Writer
	scope  string
	debug  *log.Logger
	info   *log.Logger
	warn   *log.Logger
	errLog *log.Logger
}

// New creates a logger with the given level, writing to the given output.
// If out is nil, os.Stderr is used.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return build(&levelState{level: level}, out, "")
}

func build(state *levelState, out io.Writer, scope string) *Logger {
	flags := log.Ltime
	suffix := " "
	if scope != "" {
		suffix = " " + scope + ": "
	}
	return &Logger{
		state:  state,
		out:    out,
		scope:  scope,
		debug:  log.New(out, "[DBG]"+suffix, flags|log.Lmsgprefix),
		info:   log.New(out, "[INF]"+suffix, flags|log.Lmsgprefix),
		warn:   log.New(out, "[WRN]"+suffix, flags|log.Lmsgprefix),
		errLog: log.New(out, "[ERR]"+suffix, flags|log.Lmsgprefix),
	}
}

// Named returns a child logger whose lines are tagged with name.
// Nested names are joined with a dot ("web.session").
func (l *Logger) Named(name string) *Logger {
	scope := name
	if l.scope != "" {
		scope = l.scope + "." + name
	}
	return build(l.state, l.out, scope)
}

// SetLevel changes the log level at runtime for this logger and every
// logger derived from the same root.
func (l *Logger) SetLevel(level Level) {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()
	l.state.level = level
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Level {
	l.state.mu.RLock()
	defer l.state.mu.RUnlock()
	return l.state.level
}

func (l *Logger) emit(min Level, dst *log.Logger, format string, args []any) {
	if l.GetLevel() < min {
		return
	}
	dst.Output(3, fmt.Sprintf(format, args...))
}

// Debug logs a message at debug level (only visible in verbose mode).
func (l *Logger) Debug(format string, args ...any) {
	l.emit(LevelVerbose, l.debug, format, args)
}

// Info logs a message at info level.
func (l *Logger) Info(format string, args ...any) {
	l.emit(LevelNormal, l.info, format, args)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.emit(LevelNormal, l.warn, format, args)
}

// Error logs a message at error level.
func (l *Logger) Error(format string, args ...any) {
	l.emit(LevelNormal, l.errLog, format, args)
}
