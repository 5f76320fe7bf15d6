// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"

	"github.com/momeni/fastfood/pkg/core/repo"
	"gorm.io/gorm"
)

// Queryer is the type constraint of the generic query functions, such
// as the fooditemsrp.Get[Q] function, so the same query can be used
// on both connections and transactions.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer

	// GORM returns a session which is bound to ctx. Methods which are
	// common among *Conn and *Tx must be declared here explicitly, so
	// they may be called on a type parameter value.
	GORM(ctx context.Context) *gorm.DB
}
