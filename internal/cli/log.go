// Package cli implements the graphedit command-line interface.
//
// Commands open one editor session over a diagram file and drive it from a
// gesture script, the terminal, or HTTP. The CLI is built using cobra and
// logs through charmbracelet/log to stderr.
//
// # Commands
//
// The main commands are:
//   - replay: Run a TOML gesture script against a diagram
//   - export: Write a snapshot as DOT or SVG
//   - shapes: List the configured node, subtype and edge types
//   - edit: Edit a diagram with the mouse in the terminal
//   - serve: Host an editing session over HTTP
//   - config, cache: Inspect configuration and the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// shared through the [CLI] value and handed to every package it drives.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
// The returned progress should call done when the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Replayed 12 steps (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
