// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package logging builds the structured pterm logger shared by the CLI,
// the HTTP server and the pipeline.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

// ErrUnknownLevel is returned for a level name that is not recognized.
var ErrUnknownLevel = errors.New("unknown log level")

// Formats accepted by Config.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config selects the level, format and destination of log output.
type Config struct {
	Level  string    // trace, debug, info, warn, error; default info
	Format string    // text or json; default text
	Writer io.Writer // Default os.Stderr
}

// New returns a logger for cfg.
func New(cfg Config) (*pterm.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	logger := pterm.DefaultLogger.
		WithLevel(level).
		WithWriter(w).
		WithTime(true)

	switch strings.ToLower(cfg.Format) {
	case "", FormatText:
		logger = logger.WithFormatter(pterm.LogFormatterColorful)
	case FormatJSON:
		logger = logger.WithFormatter(pterm.LogFormatterJSON)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return logger, nil
}

// Discard returns a logger that prints nothing. Tests inject it.
func Discard() *pterm.Logger {
	return pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled).WithWriter(io.Discard)
}

// ParseLevel maps a level name to a pterm level.
func ParseLevel(s string) (pterm.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return pterm.LogLevelInfo, nil
	case "trace":
		return pterm.LogLevelTrace, nil
	case "debug":
		return pterm.LogLevelDebug, nil
	case "warn", "warning":
		return pterm.LogLevelWarn, nil
	case "error":
		return pterm.LogLevelError, nil
	case "off", "disabled", "none":
		return pterm.LogLevelDisabled, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}
