// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the process-wide zerolog logger.
//
// The terminal UI owns stdout, so logs default to a file under ~/.harold.
// Packages derive their own loggers with
//
//	log.With().Str("component", "client").Logger()
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/harold-tui/internal/config"
)

// StderrFile selects console output on stderr instead of a log file.
const StderrFile = "-"

// DefaultFileName is the log file created in the config directory.
const DefaultFileName = "harold.log"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel converts a level name to a zerolog level, defaulting to info.
func ParseLevel(raw string) zerolog.Level {
	if raw == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// New builds a logger writing to w at the given level.
func New(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).
		With().
		Timestamp().
		Str("service", "harold").
		Logger().
		Level(ParseLevel(level))
}

// Setup installs the global logger described by cfg. The returned closer
// releases the log file, if one was opened.
func Setup(cfg config.LogConfig) (io.Closer, error) {
	level := ParseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	if cfg.File == StderrFile {
		out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		log.Logger = New(out, cfg.Level)
		return nopCloser{}, nil
	}

	path := cfg.File
	if path == "" {
		p, err := config.DataPath(DefaultFileName)
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log.Logger = New(f, cfg.Level)
	return f, nil
}

// Discard silences the global logger.
func Discard() {
	log.Logger = zerolog.Nop()
}
