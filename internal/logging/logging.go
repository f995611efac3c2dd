// Package logging sets up the two log sinks used by the application: a
// daily log file under the configured log directory and the console.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// FileName returns the log file name for the given day, e.g.
// api_calls_20260824.log.
func FileName(t time.Time) string {
	return fmt.Sprintf("api_calls_%s.log", t.Format("20060102"))
}

// OpenLogFile creates the log directory if needed and opens (appending)
// today's log file inside it.
func OpenLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	path := filepath.Join(dir, FileName(time.Now()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// NewLogger builds a slog.Logger writing to every given sink through a
// single handler. Format is "json" or "text".
func NewLogger(level slog.Level, format string, sinks ...io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	w := io.MultiWriter(sinks...)

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
