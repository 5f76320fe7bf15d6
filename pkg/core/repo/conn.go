// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// TxHandler is a callback which runs in a transaction. Returning a nil
// error commits the transaction, while other errors roll it back and
// are returned to the caller of the Conn.Tx method.
type TxHandler func(context.Context, Tx) error

// Conn represents a database connection which is acquired from a Pool
// for the duration of a use case (e.g., loading and updating a food
// item). Statements which are executed on a Conn directly are
// auto-committed one by one. Use the Tx method when a group of them
// should be committed (or rolled back) together.
type Conn interface {
	Queryer

	// Tx begins a transaction, passes it to the handler, and commits
	// or rolls it back based on the handler result.
	Tx(ctx context.Context, handler TxHandler) error

	// IsConn method prevents a non-Conn object (such as a Tx) to
	// mistakenly implement the Conn interface.
	IsConn()
}
