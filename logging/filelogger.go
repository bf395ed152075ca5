// Package logging sets up the per-run execution log: one file per run,
// mirrored to the console. The logger is constructed once at run start and
// handed down through configuration; there is no ambient global.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// FileLogger owns the execution log file for one run.
type FileLogger struct {
	log  *slog.Logger
	file *os.File
}

// NewFileLogger opens (or creates) path and returns a logger writing to
// both the file and stdout. verbose lowers the level to debug.
func NewFileLogger(path string, verbose bool) (*FileLogger, error) {
	if path == "" {
		return nil, fmt.Errorf("log file path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(io.MultiWriter(os.Stdout, file), &slog.HandlerOptions{Level: level})

	return &FileLogger{
		log:  slog.New(handler),
		file: file,
	}, nil
}

// Logger returns the run logger.
func (l *FileLogger) Logger() *slog.Logger {
	return l.log
}

// Close flushes and closes the log file. Call at run end.
func (l *FileLogger) Close() error {
	return l.file.Close()
}
