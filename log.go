package kibi

import (
	"log/slog"
	"os"
)

// NewLogger returns a logger writing to path, or one that drops everything
// when path is empty. The terminal is never written to. The returned
// function closes the log file.
func NewLogger(path string) (*slog.Logger, func() error, error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, &IOError{Op: "open", Path: path, Err: err}
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), f.Close, nil
}
