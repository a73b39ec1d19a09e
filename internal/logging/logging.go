// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options selects where and how logs are written.
type Options struct {
	// File, when set, receives logs (appended). Otherwise Fallback is used.
	File string

	// Fallback is the writer used without a file: stderr for line-based
	// commands, io.Discard for the TUI, which owns the terminal.
	Fallback io.Writer

	Level  string
	Format string
}

// ParseLevel maps debug/info/warn/error to a slog.Level; anything else is Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger writing to w.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup installs the default logger and returns a func that closes the log
// file, if one was opened.
func Setup(o Options) (func() error, error) {
	w := o.Fallback
	if w == nil {
		w = os.Stderr
	}
	closer := func() error { return nil }

	if o.File != "" {
		if err := os.MkdirAll(filepath.Dir(o.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(o.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = f.Close
	}

	slog.SetDefault(New(w, o.Level, o.Format))
	return closer, nil
}
