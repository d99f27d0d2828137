// Package logger owns the process-wide slog logger for the hexkit CLI.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// L is the global logger instance. It discards all output until Init is called.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures the logger initialization.
type Options struct {
	Quiet   bool      // discard everything
	Verbose bool      // debug level instead of warn
	File    string    // if set, log JSON lines to this file instead of Stderr
	Stderr  io.Writer // default: os.Stderr
}

// Init configures logging and returns a func that releases any log file.
// Call from the command's pre-run before any log calls.
func Init(opts Options) (func() error, error) {
	closeFn := func() error { return nil }
	if opts.Quiet && opts.File == "" {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return closeFn, nil
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return closeFn, err
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return closeFn, err
		}
		L = slog.New(slog.NewJSONHandler(f, hopts))
		return f.Close, nil
	}

	w := opts.Stderr
	if w == nil {
		w = os.Stderr
	}
	L = slog.New(slog.NewTextHandler(w, hopts))
	return closeFn, nil
}
