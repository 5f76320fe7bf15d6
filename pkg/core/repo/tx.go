// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Tx represents a database transaction.
// It is unsafe to be used concurrently. Statements are executed one at
// a time, either by the Queryer methods or by the repositories which
// wrap the Tx (see FoodItems.Tx and Schema.Tx).
//
// A READ-COMMITTED isolation level is expected from the PostgreSQL DBMS
// server. That is, the food type existence check and the placeholder
// insertion of AddFoodType are atomic, but two concurrent requests for
// the same new food type may both pass their checks. Food types are
// not unique in the food_items table, so the outcome is two
// placeholder items having the same food type.
type Tx interface {
	Queryer

	// IsTx method prevents a non-Tx object (such as a Conn) to
	// mistakenly implement the Tx interface.
	IsTx()
}
