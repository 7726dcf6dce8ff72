package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// setupLogger configures console logging for a command.
func setupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

// discardLogger silences a subsystem, used while the TUI owns the terminal.
func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
