package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// setupLogging returns a text logger writing to stderr or to logFile.
// The returned close func is never nil. On error the logger still works
// and writes to stderr.
func setupLogging(level, logFile string) (*slog.Logger, func(), error) {
	var parsed slog.Level
	levelErr := parsed.UnmarshalText([]byte(strings.TrimSpace(level)))
	if levelErr != nil {
		parsed = slog.LevelInfo
	}

	var (
		out     io.Writer = os.Stderr
		closeFn           = func() {}
		fileErr error
	)
	if logFile != "" {
		file, err := openLogFile(logFile)
		if err != nil {
			fileErr = err
		} else {
			out = file
			closeFn = func() { _ = file.Close() }
		}
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: parsed}))
	if levelErr != nil {
		return logger, closeFn, fmt.Errorf("parse log level %q: %w", level, levelErr)
	}
	return logger, closeFn, fileErr
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}
