// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm/logger"
)

// Option is a functional option for the NewPool function.
type Option func(pc *poolConfig) error

// WithSlowThreshold option configures the minimum duration of SQL
// statements which should be logged as slow queries.
func WithSlowThreshold(d time.Duration) Option {
	return func(pc *poolConfig) error {
		if d <= 0 {
			return fmt.Errorf("slow threshold (%v) is not positive", d)
		}
		if pc.slowThreshold != 0 {
			return errors.New("slow threshold is already configured")
		}
		pc.slowThreshold = d
		return nil
	}
}

// WithLogLevel option configures the GORM SQL logger level.
// Acceptable levels are silent, error, warn, and info.
func WithLogLevel(level string) Option {
	return func(pc *poolConfig) error {
		if pc.logLevel != 0 {
			return errors.New("log level is already configured")
		}
		switch level {
		case "silent":
			pc.logLevel = logger.Silent
		case "error":
			pc.logLevel = logger.Error
		case "warn":
			pc.logLevel = logger.Warn
		case "info":
			pc.logLevel = logger.Info
		default:
			return fmt.Errorf("unknown log level: %q", level)
		}
		return nil
	}
}
