// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logging contains the structured logging settings.
type Logging struct {
	Level  string // debug, info (default), warn, or error
	Format string // text (default) or json

	level slog.Level
}

// ValidateAndNormalize parses the logging level and fills defaults.
func (l *Logging) ValidateAndNormalize() error {
	if l.Level == "" {
		l.Level = "info"
	}
	if err := l.level.UnmarshalText([]byte(l.Level)); err != nil {
		return fmt.Errorf("parsing level: %w", err)
	}
	l.Format = strings.ToLower(l.Format)
	switch l.Format {
	case "":
		l.Format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("unknown format: %q", l.Format)
	}
	return nil
}

// NewHandler creates a slog handler which writes to w.
func (l Logging) NewHandler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     l.level,
	}
	if l.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Install makes a handler writing to w the default slog handler.
func (l Logging) Install(w io.Writer) {
	slog.SetDefault(slog.New(l.NewHandler(w)))
}
