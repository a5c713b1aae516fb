package logging

import (
	"fmt"
	"io"
	"os"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger. The TUI owns the terminal, so output
// stays discarded until Init points the logger at a file.
var L = clog.New(io.Discard)

// Init routes the package logger to the given file, creating it when
// missing and appending otherwise. The returned closer detaches the
// file; callers defer it around program exit.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger := clog.New(f)
	logger.SetReportTimestamp(true)
	logger.SetLevel(L.GetLevel())
	L = logger
	return func() { f.Close() }, nil
}

// SetVerbose lowers the level so debug output is kept.
func SetVerbose() {
	L.SetLevel(clog.DebugLevel)
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...interface{}) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...interface{}) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...interface{}) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...interface{}) {
	L.Error(fmt.Sprintf(format, v...))
}
