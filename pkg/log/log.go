// Package log provides logging utilities including colored console output
// and session transcript capture.
package log

import (
	"os"

	"github.com/fatih/color"
)

var red = color.New(color.FgRed).FprintfFunc()
var blue = color.New(color.FgBlue).FprintfFunc()
var faint = color.New(color.Faint).FprintfFunc()

// ErrorMsg prints an error message to stderr in red color.
func ErrorMsg(format string, a ...interface{}) {
	red(os.Stderr, "[!] Error: "+format, a...)
}

// InfoMsg prints an informational message to stderr in blue color.
func InfoMsg(format string, a ...interface{}) {
	blue(os.Stderr, "[+] "+format, a...)
}

// Logger adds a verbosity switch on top of the package-level printers.
// A nil *Logger is safe to use everywhere and suppresses verbose output,
// so components can take an optional trace hook without nil checks.
type Logger struct {
	Verbose bool
}

// NewLogger returns a Logger that prints verbose messages only when verbose is set.
func NewLogger(verbose bool) *Logger {
	return &Logger{Verbose: verbose}
}

// ErrorMsg prints an error message to stderr in red color.
func (l *Logger) ErrorMsg(format string, a ...interface{}) {
	ErrorMsg(format, a...)
}

// InfoMsg prints an informational message to stderr in blue color.
func (l *Logger) InfoMsg(format string, a ...interface{}) {
	InfoMsg(format, a...)
}

// VerboseMsg prints a dim diagnostic message to stderr, with a trailing
// newline, when the logger is verbose. On a nil or quiet logger it is a no-op.
func (l *Logger) VerboseMsg(format string, a ...interface{}) {
	if l == nil || !l.Verbose {
		return
	}
	faint(os.Stderr, "[*] "+format+"\n", a...)
}
