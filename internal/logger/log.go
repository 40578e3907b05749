// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

// Package logger provides a thin wrapper around log/slog for the skycast service.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps a slog.Logger so that callers only depend on this package.
type Logger struct {
	*slog.Logger
}

// New returns a new Logger writing to STDERR at the given level.
func New(level slog.Level) *Logger {
	return NewLogger(level, os.Stderr)
}

// NewLogger returns a new Logger writing to the given writer at the given level.
func NewLogger(level slog.Level, output io.Writer) *Logger {
	return &Logger{slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))}
}

// Err returns a slog.Attr holding the given error under the "error" key.
func Err(err error) slog.Attr {
	return slog.Any("error", err)
}
