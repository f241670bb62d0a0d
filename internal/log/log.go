// Package log wraps the standard library logger with verbosity levels.
package log

import (
	"io"
	"log"
	"os"
)

func init() {
	log.SetFlags(0)
	log.SetPrefix("")
	log.SetOutput(os.Stderr)
}

// Level determines the level of verbose for logging messages.
type Level int

// Logging levels can be used to define verboseness.
const (
	Debug Level = iota
	Info
	None Level = 99
)

var level = None

// SetLevel sets the logging level.
func SetLevel(l Level) {
	level = l
}

// SetOutput sets the destination of all log messages.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// Enabled returns true if messages at the given level are currently printed.
func Enabled(l Level) bool {
	return level <= l
}

// Debugf prints logging messages in Debug level.
// Arguments are handled in the manner of fmt.Printf.
func Debugf(format string, v ...interface{}) {
	if level > Debug {
		return
	}

	log.Printf(format, v...)
}

// Infof prints logging messages in Info level.
// Arguments are handled in the manner of fmt.Printf.
func Infof(format string, v ...interface{}) {
	if level > Info {
		return
	}

	log.Printf(format, v...)
}

// Printf prints regardless of the logging level.
// Arguments are handled in the manner of fmt.Printf.
func Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}
