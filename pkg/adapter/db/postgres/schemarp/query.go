// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemarp

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/momeni/fastfood/pkg/adapter/db/postgres"
	"github.com/momeni/fastfood/pkg/core/repo"
	"github.com/momeni/fastfood/pkg/core/scram"
)

// PasswordIterations is the PBKDF2 iterations count which is used
// for hashing of the database role passwords, as recommended by
// RFC 7677.
const PasswordIterations = 15000

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// DropIfExists drops the `schema` schema with cascading if it exists.
// That is, if `schema` does not exist, a nil error will be returned
// without any change. Otherwise, the schema and all of its tables
// will be dropped.
func DropIfExists[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	_, err := q.Exec(ctx, "DROP SCHEMA IF EXISTS "+ident(schema)+" CASCADE")
	if err != nil {
		return fmt.Errorf("drop schema %q: %w", schema, err)
	}
	return nil
}

// CreateSchema tries to create the `schema` schema.
// There must be no other schema with the `schema` name, otherwise,
// this operation will fail.
func CreateSchema[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	if _, err := q.Exec(ctx, "CREATE SCHEMA "+ident(schema)); err != nil {
		return fmt.Errorf("create schema %q: %w", schema, err)
	}
	return nil
}

// CreateRoleIfNotExists creates the `role` role if it does not
// exist right now. Although the login option is enabled for the
// created role, but no specific password will be set for it.
//
// The `role` role name is suffixed by `roleSuffix` if it is not empty.
func CreateRoleIfNotExists[Q postgres.Queryer](
	ctx context.Context, q Q, roleSuffix repo.Role, role repo.Role,
) error {
	r := string(role + roleSuffix)
	rows, err := q.Query(
		ctx, "SELECT count(*) FROM pg_roles WHERE rolname = ?", r,
	)
	if err != nil {
		return fmt.Errorf("query pg_roles: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return fmt.Errorf("query pg_roles: %w", err)
		}
		return errors.New("query pg_roles: no rows")
	}
	var n int64
	if err := rows.Scan(&n); err != nil {
		return fmt.Errorf("scanning count: %w", err)
	}
	rows.Close()
	if n > 0 {
		return nil
	}
	if _, err := q.Exec(ctx, "CREATE ROLE "+ident(r)+" LOGIN"); err != nil {
		return fmt.Errorf("create role %q: %w", r, err)
	}
	return nil
}

// GrantPrivileges grants ALL privileges on the `schema` schema
// to the `role` role, so it may create or access tables in that schema
// and run relevant queries.
func GrantPrivileges[Q postgres.Queryer](
	ctx context.Context,
	q Q,
	roleSuffix repo.Role,
	schema string,
	role repo.Role,
) error {
	r := string(role + roleSuffix)
	_, err := q.Exec(ctx, fmt.Sprintf(
		"GRANT ALL ON SCHEMA %s TO %s", ident(schema), ident(r),
	))
	if err != nil {
		return fmt.Errorf("grant on %q to %q: %w", schema, r, err)
	}
	return nil
}

// SetSearchPath alters the given database role and sets its default
// search_path to the given schema name alone.
func SetSearchPath[Q postgres.Queryer](
	ctx context.Context,
	q Q,
	roleSuffix repo.Role,
	schema string,
	role repo.Role,
) error {
	r := string(role + roleSuffix)
	_, err := q.Exec(ctx, fmt.Sprintf(
		"ALTER ROLE %s SET search_path TO %s", ident(r), ident(schema),
	))
	if err != nil {
		return fmt.Errorf("alter role %q: %w", r, err)
	}
	return nil
}

// ChangePasswords updates the passwords of the given roles in the
// current transaction. The roles and passwords slices must have the
// same number of entries, so they can be used in pair.
//
// The `roles` role names are suffixed by `roleSuffix` if it is not
// empty. The `hasher` will be used for hashing of the `passwords`
// before sending them to the DBMS (so they may not leak in plaintext).
func ChangePasswords(
	ctx context.Context,
	tx *postgres.Tx,
	roleSuffix repo.Role,
	hasher scram.Hasher,
	roles []repo.Role,
	passwords []string,
) error {
	if len(roles) != len(passwords) {
		return fmt.Errorf(
			"got %d roles and %d passwords", len(roles), len(passwords),
		)
	}
	for i, role := range roles {
		r := string(role + roleSuffix)
		h, err := hasher.Hash(passwords[i], "", PasswordIterations)
		if err != nil {
			return fmt.Errorf("hashing password of %q: %w", r, err)
		}
		_, err = tx.Exec(ctx, fmt.Sprintf(
			"ALTER ROLE %s WITH PASSWORD '%s'", ident(r), h,
		))
		if err != nil {
			return fmt.Errorf("alter role %q password: %w", r, err)
		}
	}
	return nil
}
