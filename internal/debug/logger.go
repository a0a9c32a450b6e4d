package debug

import (
	"log"
	"os"
)

// Logger writes diagnostic lines to a side file when enabled. It keeps
// its own log.Logger so process logging on stderr is left alone.
type Logger struct {
	enabled bool
	logger  *log.Logger
}

// NewLogger opens path for appending when enabled is true. A file that
// cannot be opened degrades to a disabled logger rather than failing
// the program.
func NewLogger(enabled bool, path string) *Logger {
	if !enabled {
		return &Logger{}
	}
	if path == "" {
		path = "debug.log"
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return &Logger{}
	}

	logger := log.New(logFile, "", log.LstdFlags|log.Lmicroseconds)
	logger.Printf("=== DEBUG MODE ENABLED ===")
	return &Logger{enabled: true, logger: logger}
}

func (d *Logger) Printf(format string, args ...interface{}) {
	if d.enabled {
		d.logger.Printf(format, args...)
	}
}

func (d *Logger) Println(args ...interface{}) {
	if d.enabled {
		d.logger.Println(args...)
	}
}
