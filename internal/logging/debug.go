package logging

import (
	"fmt"
	"io"
	"os"
)

// debugOutput is where debug lines go; tests swap it out.
var debugOutput io.Writer = os.Stderr

// SetDebugOutput redirects debug lines to w and returns the previous writer
func SetDebugOutput(w io.Writer) io.Writer {
	previous := debugOutput
	debugOutput = w
	return previous
}

// DebugEnabled returns true if debug mode is enabled via TASKFLOW_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("TASKFLOW_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(debugOutput, format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintln(debugOutput, args...)
	}
}
