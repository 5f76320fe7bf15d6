// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// Queryer runs raw SQL statements. Arguments are passed positionally
// using the ? placeholders. It is embedded by Conn and Tx, while most
// use cases use the typed repositories instead and raw statements are
// only required for the schema creation and administration.
type Queryer interface {
	// Exec runs a statement and returns the number of affected rows.
	Exec(ctx context.Context, sql string, args ...any) (count int64, err error)

	// Query runs a statement and returns its result rows which must be
	// closed by the caller.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Rows iterates over the result of a Query.
type Rows interface {
	Close()
	Err() error
	Next() bool
	Scan(dest ...any) error
}
