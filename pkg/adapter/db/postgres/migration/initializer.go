// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package migration creates the ffweb tables in an existing (and empty)
// database schema and fills them with the development or production
// suitable initial data. The schema itself is created by the schemarp
// package using the admin role, while tables are created by the normal
// role, so it owns them and may query them later.
package migration

import (
	"context"
	"fmt"

	"github.com/momeni/fastfood/pkg/core/repo"
)

const createFoodItems = `CREATE TABLE food_items (
	id bigserial PRIMARY KEY,
	name text NOT NULL DEFAULT '',
	description text NOT NULL DEFAULT '',
	price numeric(10,2) NOT NULL DEFAULT 0,
	img_url text NOT NULL DEFAULT '',
	food_type text NOT NULL DEFAULT '',
	version bigint NOT NULL DEFAULT 1
)`

const createFoodTypeIndex = `CREATE INDEX food_items_food_type_idx
	ON food_items (food_type)`

const insertFoodItem = `INSERT INTO food_items
	(name, description, price, img_url, food_type)
	VALUES (?, ?, ?, ?, ?)`

type sampleItem struct {
	name, description, price, imgURL, foodType string
}

var devItems = []sampleItem{
	{
		"Classic Burger", "Beef patty with cheddar and pickles",
		"8.50", "https://via.placeholder.com/150?text=burger",
		"Burger",
	},
	{
		"Chicken Burger", "Crispy chicken with lettuce and mayo",
		"7.90", "https://via.placeholder.com/150?text=chicken",
		"Burger",
	},
	{
		"Margherita", "Tomato, mozzarella and basil",
		"11.00", "https://via.placeholder.com/150?text=pizza",
		"Pizza",
	},
	{
		"Cola", "Chilled 330ml can",
		"2.00", "https://via.placeholder.com/150?text=cola",
		"Drinks",
	},
}

// Initializer implements the repo.SchemaInitializer interface.
// Each instance wraps and uses a single transaction, but the caller
// is responsible to commit that transaction in order to persist
// the initialization results.
type Initializer struct {
	tx repo.Tx
}

// NewInitializer creates a new Initializer instance, wrapping the
// given `tx` database transaction. The database schema must exist and
// be the first item in the search_path of the `tx` connection role.
func NewInitializer(tx repo.Tx) *Initializer {
	return &Initializer{tx: tx}
}

// InitDevSchema creates the food_items table and fills it with a few
// sample items of the Burger, Pizza, and Drinks food types.
func (i *Initializer) InitDevSchema(ctx context.Context) error {
	if err := i.createTables(ctx); err != nil {
		return err
	}
	for _, item := range devItems {
		_, err := i.tx.Exec(
			ctx, insertFoodItem,
			item.name, item.description, item.price, item.imgURL,
			item.foodType,
		)
		if err != nil {
			return fmt.Errorf("inserting %q: %w", item.name, err)
		}
	}
	return nil
}

// InitProdSchema creates the food_items table without any rows.
func (i *Initializer) InitProdSchema(ctx context.Context) error {
	return i.createTables(ctx)
}

func (i *Initializer) createTables(ctx context.Context) error {
	if _, err := i.tx.Exec(ctx, createFoodItems); err != nil {
		return fmt.Errorf("creating food_items table: %w", err)
	}
	if _, err := i.tx.Exec(ctx, createFoodTypeIndex); err != nil {
		return fmt.Errorf("creating food_type index: %w", err)
	}
	return nil
}
