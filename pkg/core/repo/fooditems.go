// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"
	"errors"

	"github.com/momeni/fastfood/pkg/core/model"
)

// These errors are returned by the FoodItemsQueryer methods (possibly
// after wrapping) and may be checked with errors.Is.
var (
	// ErrNotFound indicates that no food item has the asked ID.
	ErrNotFound = errors.New("food item not found")

	// ErrConcurrentUpdate indicates that a food item could not be
	// saved because its stored version was not the expected one, or
	// the item was deleted meanwhile.
	ErrConcurrentUpdate = errors.New("food item was changed concurrently")
)

type FoodItemsConnQueryer interface {
	FoodItemsQueryer
}

type FoodItemsTxQueryer interface {
	FoodItemsQueryer
}

// FoodItemsQueryer lists the food items queries which may run either
// on a connection or in a transaction.
type FoodItemsQueryer interface {
	// List returns all food items ordered by their IDs.
	List(ctx context.Context) ([]model.FoodItem, error)

	// Get returns the food item with the given id or ErrNotFound.
	Get(ctx context.Context, id int64) (*model.FoodItem, error)

	// Create inserts the given item, ignoring its ID and Version, and
	// returns the stored item with its assigned ID and first version.
	Create(ctx context.Context, fi *model.FoodItem) (*model.FoodItem, error)

	// Update saves the mutable fields of the given item if its stored
	// version equals fi.Version, returning the item with the increased
	// version. Otherwise (including when the item does not exist
	// anymore) it returns ErrConcurrentUpdate.
	Update(ctx context.Context, fi *model.FoodItem) (*model.FoodItem, error)

	// Delete removes the food item with the given id or returns
	// ErrNotFound if there was no such item.
	Delete(ctx context.Context, id int64) error

	// Exists reports if a food item with the given id is stored.
	Exists(ctx context.Context, id int64) (bool, error)

	// FoodTypes returns the distinct food types of all stored items.
	FoodTypes(ctx context.Context) ([]string, error)

	// HasFoodType reports if any stored item has exactly the given
	// food type.
	HasFoodType(ctx context.Context, foodType string) (bool, error)
}

type FoodItems interface {
	Conn(Conn) FoodItemsConnQueryer
	Tx(Tx) FoodItemsTxQueryer
}
