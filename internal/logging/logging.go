// Package logging builds the application logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	clog "github.com/charmbracelet/log"

	"github.com/xvierd/kicks-cli/internal/config"
)

// New returns a logger writing to w at the configured level. An unknown
// level falls back to info.
func New(cfg config.LogConfig, w io.Writer) *clog.Logger {
	level, err := clog.ParseLevel(cfg.Level)
	if err != nil {
		level = clog.InfoLevel
	}
	return clog.NewWithOptions(w, clog.Options{
		Prefix:          "kicks",
		Level:           level,
		ReportTimestamp: true,
	})
}

// OpenFile opens path for appending, creating parent directories as needed.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// Discard returns a logger that drops everything.
func Discard() *clog.Logger {
	return clog.New(io.Discard)
}
