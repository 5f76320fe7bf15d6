// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/momeni/fastfood/pkg/adapter/db/postgres"
	"github.com/momeni/fastfood/pkg/adapter/db/postgres/migration"
	"github.com/momeni/fastfood/pkg/adapter/db/postgres/schemarp"
	"github.com/momeni/fastfood/pkg/adapter/hash/scram"
	"github.com/momeni/fastfood/pkg/core/log"
	"github.com/momeni/fastfood/pkg/core/repo"
	scrami "github.com/momeni/fastfood/pkg/core/scram"
	"github.com/momeni/fastfood/pkg/core/usecase/initdbuc"
)

// DefaultSchema is the default database schema name which holds the
// food_items table.
const DefaultSchema = "fastfood"

// Database contains the database related configuration settings.
type Database struct {
	Host    string // domain name or IP address of the DBMS server
	Port    int    // port number of the DBMS server
	Name    string // database name, like fastfood
	Schema  string `yaml:"schema,omitempty"` // application schema name
	PassDir string `yaml:"pass-dir"`         // path of the passwords dir

	// RoleSuffix specifies a possibly empty suffix for the database
	// role names. Normally, repo.AdminRole and repo.NormalRole roles
	// are used. In the parallel test cases, it is required to create
	// multiple non-colliding roles in the same database cluster and
	// so having a unique (per test) role suffix helps with parallelism.
	RoleSuffix repo.Role `yaml:"role-suffix,omitempty"`

	// AuthMethod specifies the database authentication method name.
	// This method indicates how passwords should be hashed and stored
	// in the database, so they may be used by an authentication
	// operation successfully.
	// Currently, only scram-sha-1 and scram-sha-256 methods are
	// supported. The scram-sha-256 is the default value.
	AuthMethod string `yaml:"auth-method,omitempty"`

	// SlowThreshold is the minimum duration of SQL statements which
	// are logged as slow queries. It defaults to 200ms.
	SlowThreshold *Duration `yaml:"slow-threshold,omitempty"`

	// LogLevel is the SQL statements logging level, i.e., silent,
	// error, warn (default), or info.
	LogLevel string `yaml:"log-level,omitempty"`

	// URL is a complete connection URL which is taken from the
	// DATABASE_URL environment variable. When it is set, the pass-dir
	// files are not consulted for connecting to the database.
	URL string `yaml:"-"`

	// hasher is instantiated based on the AuthMethod and is used by
	// the NewSchemaRepo method, so Schema repo instances may hash
	// passwords properly (as expected by the DBMS).
	hasher scrami.Hasher
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx, r)
	if err != nil {
		return nil, fmt.Errorf(
			"connecting to %s:%d/%s: %w",
			c.Database.Host, c.Database.Port, c.Database.Name, err,
		)
	}
	return p, nil
}

// NewSchemaRepo instantiates a fresh Schema repository.
// See Database.NewSchemaRepo for details.
func (c *Config) NewSchemaRepo() repo.Schema {
	return c.Database.NewSchemaRepo()
}

// SchemaInitializer creates a repo.SchemaInitializer instance which
// wraps the given transaction argument and can be used to initialize
// the database with development or production suitable data.
// All table creation and data insertion operations will be performed
// in the given transaction and will be persisted only if that
// transaction could commit successfully.
func (c *Config) SchemaInitializer(tx repo.Tx) (
	repo.SchemaInitializer, error,
) {
	return migration.NewInitializer(tx), nil
}

// RenewPasswords generates new secure passwords for the given roles.
// See Database.RenewPasswords for details.
func (c *Config) RenewPasswords(
	ctx context.Context,
	change initdbuc.PasswordChanger,
	roles ...repo.Role,
) (finalizer func() error, err error) {
	return c.Database.RenewPasswords(ctx, change, roles...)
}

// SchemaName returns the database schema name which holds the
// application tables.
func (c *Config) SchemaName() string {
	return c.Database.Schema
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `d` settings.
// If `d.URL` is set, it is used as is (ignoring the `r` role).
// Otherwise, the .pgpass file in the d.PassDir folder is checked
// which should conform with the pgpass format with lines like this:
//
//	host:port:dbname:role:password
//
// If a database connection could be established, created pool and nil
// error will be returned. Otherwise, passwords might have been updated
// during a previous incomplete initialization operation. So the
// .pgpass.new file in the same d.PassDir folder is checked too. If a
// connection could be established successfully, the .pgpass.new will
// be moved to the .pgpass file, so the .pgpass.new file may be
// overwritten safely by the subsequent initialization operations.
//
// The `d.RoleSuffix` will be appended to the given `r` role name too.
func (d Database) ConnectionPool(
	ctx context.Context, r repo.Role,
) (*postgres.Pool, error) {
	opts := d.poolOptions()
	log.Debug(
		ctx, "connecting to the database",
		slog.String("role", string(r)),
		log.Valuer("slow_threshold", d.SlowThreshold),
	)
	if d.URL != "" {
		return postgres.NewPool(ctx, d.URL, opts...)
	}
	path := filepath.Join(d.PassDir, ".pgpass")
	u, err := d.ConnectionURL(r, path)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", path, err)
	}
	p, err := postgres.NewPool(ctx, u, opts...)
	if err == nil {
		return p, nil
	}
	log.Warn(
		ctx, "cannot connect with the pass-file",
		log.Err("err", err), slog.String("path", path),
	)
	newPath := filepath.Join(d.PassDir, ".pgpass.new")
	u, err = d.ConnectionURL(r, newPath)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", newPath, err)
	}
	p, err = postgres.NewPool(ctx, u, opts...)
	if err != nil {
		return nil, fmt.Errorf("can use neither pass-file: %w", err)
	}
	if err = os.Rename(newPath, path); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("os.Rename: %w", err)
	}
	log.Info(ctx, "recovered the renewed pass-file", slog.String("path", newPath))
	return p, nil
}

func (d Database) poolOptions() []postgres.Option {
	opts := make([]postgres.Option, 0, 2)
	if d.SlowThreshold != nil {
		opts = append(opts, postgres.WithSlowThreshold(
			time.Duration(*d.SlowThreshold),
		))
	}
	if d.LogLevel != "" {
		opts = append(opts, postgres.WithLogLevel(d.LogLevel))
	}
	return opts
}

// ConnectionURL returns the database connection URL embedding the host,
// port, role name, database name, and password value. These items are
// directly taken from the `d` settings, but the role name which is
// specified by the `r` argument and the password value which is read
// from the given `path` file. Returned URL has the postgresql scheme.
// The `path` file may contain empty or `#`-commented lines in addition
// to the password specifying lines which should conform with the pgpass
// files format with lines like this:
//
//	host:port:dbname:role:password
//
// If the `path` file could be read and a password for the asked `r`
// role could be identified, a URL and a nil error will be returned.
// Otherwise, returned string will be empty and error will describe the
// wrapped error condition.
func (d Database) ConnectionURL(
	r repo.Role, path string,
) (string, error) {
	passLines, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	r = r + d.RoleSuffix
	prfx := fmt.Sprintf("%s:%d:%s:%s:", d.Host, d.Port, d.Name, r)
	var pass string
	for _, line := range strings.Split(string(passLines), "\n") {
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, prfx) {
			pass = line[len(prfx):]
			break
		}
	}
	if pass == "" {
		return "", errors.New("no matching password line")
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(string(r), pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String(), nil
}

// NewSchemaRepo instantiates a fresh Schema repository.
// Role names may be optionally suffixed based on the settings and
// in that case, repo.Role role names which are passed to the
// ConnectionPool method or RenewPasswords will be suffixed
// automatically. Since the Schema repository has methods for
// creation of roles or asking to grant specific privileges to
// them, it needs to obtain the same role name suffix.
//
// The ValidateAndNormalize method is expected to be called beforehand,
// so it can create a hasher instance based on the `d.AuthMethod`.
func (d Database) NewSchemaRepo() repo.Schema {
	return schemarp.New(d.RoleSuffix, d.hasher)
}

// RenewPasswords generates new secure passwords for the given roles
// and after recording them in a temporary file (i.e., .pgpass.new file
// in the `d.PassDir` directory), will use the `change` function in
// order to update the passwords of those `roles` in the database too.
// The `change` function argument should perform the update operation
// in a transaction which may or may not be committed when the
// RenewPasswords function returns. In case of a successful commitment,
// the temporary passwords file should be moved over the main passwords
// file (i.e., .pgpass file in the `d.PassDir` directory) using the
// returned finalizer function.
//
// The `d.RoleSuffix` will be appended to the given role names in the
// passwords file. The `change` function must add the same suffix to
// `roles` roles names in order to remain consistent with the in-file
// recorded information.
func (d Database) RenewPasswords(
	ctx context.Context,
	change initdbuc.PasswordChanger,
	roles ...repo.Role,
) (finalizer func() error, err error) {
	passwords := make([]string, len(roles))
	b := make([]byte, 16) // 128 bits
	enc := base64.RawStdEncoding
	p := make([]byte, enc.EncodedLen(len(b))) // for each password
	prfx := fmt.Sprintf("%s:%d:%s", d.Host, d.Port, d.Name)
	lines := make([]string, len(passwords))
	for i, r := range roles {
		if _, err = rand.Read(b); err != nil {
			return nil, fmt.Errorf("rand.Read for i=%d: %w", i, err)
		}
		enc.Encode(p, b)
		passwords[i] = string(p)
		r = r + d.RoleSuffix
		lines[i] = fmt.Sprintf("%s:%s:%s\n", prfx, r, passwords[i])
	}
	orgPath := filepath.Join(d.PassDir, ".pgpass")
	newPath := filepath.Join(d.PassDir, ".pgpass.new")
	finalizer = func() error {
		return os.Rename(newPath, orgPath)
	}
	err = os.WriteFile(newPath, []byte(strings.Join(lines, "")), 0o600)
	if err != nil {
		return nil, fmt.Errorf("writing %q file: %w", newPath, err)
	}
	if err = change(ctx, roles, passwords); err != nil {
		return nil, fmt.Errorf("passwords change callback: %w", err)
	}
	return finalizer, nil
}

// ValidateAndNormalize validates the database settings and returns an
// error if they were not acceptable. It can also modify settings in
// order to normalize them or replace some zero values with their
// expected default values (if any). So, it takes a pointer receiver
// instead of a non-reference receiver (in contrast to other methods).
func (d *Database) ValidateAndNormalize() error {
	h, err := scram.ByAuthMethod(d.AuthMethod)
	if err != nil {
		return err
	}
	d.hasher = h
	if d.AuthMethod == "" {
		d.AuthMethod = "scram-sha-256"
	}
	if d.Schema == "" {
		d.Schema = DefaultSchema
	}
	if d.URL == "" {
		switch {
		case d.Host == "":
			return errors.New("host must be non-empty")
		case d.Port <= 0 || d.Port > 65535:
			return fmt.Errorf("invalid port: %d", d.Port)
		case d.Name == "":
			return errors.New("database name must be non-empty")
		}
	}
	if d.SlowThreshold != nil && *d.SlowThreshold <= 0 {
		return fmt.Errorf(
			"slow-threshold (%s) is not positive",
			*d.SlowThreshold.Marshal(),
		)
	}
	switch d.LogLevel {
	case "", "silent", "error", "warn", "info":
	default:
		return fmt.Errorf("unknown log-level: %q", d.LogLevel)
	}
	return nil
}
