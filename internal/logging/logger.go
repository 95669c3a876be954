package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a log line
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the tag printed in front of each line
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Fields are key/value pairs appended to a log line in key order
type Fields map[string]interface{}

// Logger writes leveled, single-line messages to an io.Writer
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	min   Level
	clock func() time.Time
}

// NewLogger creates a logger writing lines at or above min to out
func NewLogger(out io.Writer, min Level) *Logger {
	return &Logger{
		out:   out,
		min:   min,
		clock: time.Now,
	}
}

// Default returns a stderr logger; verbose or TASKFLOW_DEBUG lowers the threshold to debug
func Default(verbose bool) *Logger {
	min := LevelWarn
	if verbose {
		min = LevelInfo
	}
	if DebugEnabled() {
		min = LevelDebug
	}
	return NewLogger(os.Stderr, min)
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewLogger(io.Discard, LevelError+1)
}

// Enabled reports whether lines of the given level are written
func (l *Logger) Enabled(level Level) bool {
	return l != nil && level >= l.min
}

// Debug logs at debug level
func (l *Logger) Debug(msg string, fields Fields) { l.log(LevelDebug, msg, fields) }

// Info logs at info level
func (l *Logger) Info(msg string, fields Fields) { l.log(LevelInfo, msg, fields) }

// Warn logs at warn level
func (l *Logger) Warn(msg string, fields Fields) { l.log(LevelWarn, msg, fields) }

// Error logs at error level
func (l *Logger) Error(msg string, fields Fields) { l.log(LevelError, msg, fields) }

func (l *Logger) log(level Level, msg string, fields Fields) {
	if !l.Enabled(level) {
		return
	}

	var b strings.Builder
	b.WriteString(l.clock().Format(time.RFC3339))
	b.WriteString(" ")
	b.WriteString(level.String())
	b.WriteString(" ")
	b.WriteString(msg)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	b.WriteString("\n")

	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.out, b.String())
}
