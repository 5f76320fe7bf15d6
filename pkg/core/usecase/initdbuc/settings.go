// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package initdbuc

import (
	"context"

	"github.com/momeni/fastfood/pkg/core/repo"
)

// PasswordChanger is a function which updates the passwords of the
// given roles. The roles and passwords slices have the same length.
type PasswordChanger func(
	ctx context.Context, roles []repo.Role, passwords []string,
) error

// Settings represents the expectations of the database initialization
// use case from the configuration settings. It is implemented by the
// adapter layer, so the use case may find the target database without
// depending on the configuration file format.
type Settings interface {
	// ConnectionPool creates a database connection pool for the
	// given role using the connection information of settings.
	ConnectionPool(ctx context.Context, r repo.Role) (repo.Pool, error)

	// NewSchemaRepo instantiates a fresh Schema repository which
	// uses the same role names suffix (if any) and the same password
	// hashing method as expected by the target database.
	NewSchemaRepo() repo.Schema

	// SchemaInitializer creates a repo.SchemaInitializer instance
	// which wraps the given transaction and can be used to create
	// tables and fill them with initial data.
	SchemaInitializer(tx repo.Tx) (repo.SchemaInitializer, error)

	// RenewPasswords generates new secure passwords for the given
	// roles and records them in a temporary passwords file before
	// calling the `change` function in order to update them in the
	// database too. The `change` function is expected to perform the
	// update in a transaction which is not committed yet. After that
	// transaction commits, the returned finalizer must be called in
	// order to replace the main passwords file with the temporary one.
	// If the finalizer could not run (e.g., because of a crash), the
	// ConnectionPool method should still be able to connect using the
	// temporary passwords file.
	RenewPasswords(
		ctx context.Context, change PasswordChanger, roles ...repo.Role,
	) (finalizer func() error, err error)

	// SchemaName returns the database schema name which should hold
	// the application tables.
	SchemaName() string
}
