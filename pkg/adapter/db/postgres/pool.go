// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres adapts the GORM framework (with its pgx based
// PostgreSQL driver) to the repo.Pool, repo.Conn, and repo.Tx
// interfaces. Repository packages, such as fooditemsrp, unwrap these
// types in order to run their queries with GORM.
package postgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/momeni/fastfood/pkg/core/repo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Pool struct {
	*gorm.DB
}

// NewPool opens a connection pool for the given PostgreSQL url and
// tests it by acquiring one connection. The SQL statements logging
// may be tuned by the functional options.
func NewPool(ctx context.Context, url string, opts ...Option) (*Pool, error) {
	return open(ctx, postgres.Open(url), opts...)
}

// NewPoolWithDialector is like NewPool, but takes a ready dialector
// instead of a connection URL. It is mainly useful for wrapping an
// existing *sql.DB with postgres.New(postgres.Config{Conn: db}).
func NewPoolWithDialector(
	ctx context.Context, d gorm.Dialector, opts ...Option,
) (*Pool, error) {
	return open(ctx, d, opts...)
}

func open(ctx context.Context, d gorm.Dialector, opts ...Option) (*Pool, error) {
	cfg := &poolConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	cfg.setDefaults()
	gdb, err := gorm.Open(d, &gorm.Config{
		// each repository query is a single statement, so it does not
		// need an implicit transaction around it
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}
	gdb = gdb.Session(&gorm.Session{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
				SlowThreshold:             cfg.slowThreshold,
				LogLevel:                  cfg.logLevel,
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
				// Set to false in order to log with replaced vars
				ParameterizedQueries: true,
			}),
	})
	pool := &Pool{DB: gdb}
	err = pool.Conn(ctx, NoOpConnHandler)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("testing connection: %w", err)
	}
	return pool, nil
}

type ConnHandler = repo.ConnHandler

func NoOpConnHandler(context.Context, repo.Conn) error {
	return nil
}

func (p *Pool) Conn(ctx context.Context, f ConnHandler) error {
	return p.DB.WithContext(ctx).Connection(func(c *gorm.DB) error {
		cc := &Conn{DB: c}
		return f(ctx, cc)
	})
}

func (p *Pool) Close() error {
	db, err := p.DB.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

type poolConfig struct {
	slowThreshold time.Duration
	logLevel      logger.LogLevel
}

func (pc *poolConfig) setDefaults() {
	if pc.slowThreshold == 0 {
		pc.slowThreshold = 200 * time.Millisecond
	}
	if pc.logLevel == 0 {
		pc.logLevel = logger.Warn
	}
}
