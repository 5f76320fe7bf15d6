// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package fooditemsuc contains the food items UseCase which supports
// the menu related use cases:
//  1. Listing, reading, creating, updating, and deleting food items,
//  2. Listing the food types and registering a new food type.
//
// Food types are not stored separately. They are the distinct food
// type values of the stored food items, so registering a new food type
// creates a placeholder food item.
package fooditemsuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/momeni/fastfood/pkg/core/cerr"
	"github.com/momeni/fastfood/pkg/core/log"
	"github.com/momeni/fastfood/pkg/core/model"
	"github.com/momeni/fastfood/pkg/core/repo"
)

// ErrConcurrencyConflict is reported when a food item was changed by
// another writer after it was loaded by the Update use case. This is
// not a client error and it is not retried.
var ErrConcurrencyConflict = errors.New(
	"food item was modified by another request",
)

// UseCase represents the food items use case. It holds a database
// connection pool, the food items repository instance (to be guided
// with the DB pool), and the placeholder values which are used when
// registering a new food type.
type UseCase struct {
	pool        repo.Pool
	foodItemsrp repo.FoodItems

	placeholder model.Placeholder
}

// New instantiates a food items use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(p repo.Pool, fi repo.FoodItems, opts ...Option) (*UseCase, error) {
	uc := &UseCase{pool: p, foodItemsrp: fi}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	def := model.DefaultPlaceholder()
	if uc.placeholder.Name == "" {
		uc.placeholder.Name = def.Name
	}
	if uc.placeholder.Description == "" {
		uc.placeholder.Description = def.Description
	}
	if uc.placeholder.ImgURL == "" {
		uc.placeholder.ImgURL = def.ImgURL
	}
	return uc, nil
}

// List use case returns all food items ordered by their IDs.
// An empty slice is returned when there is no food item.
func (fiuc *UseCase) List(ctx context.Context) (items []model.FoodItem, err error) {
	err = fiuc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		items, err = fiuc.foodItemsrp.Conn(c).List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.FoodItem{}
	}
	return items, nil
}

// Get use case returns the food item with the given id. If there is
// no such item, a NotFound error will be returned.
func (fiuc *UseCase) Get(ctx context.Context, id int64) (fi *model.FoodItem, err error) {
	err = fiuc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		fi, err = fiuc.foodItemsrp.Conn(c).Get(ctx, id)
		return err
	})
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return nil, cerr.NotFound(notFoundError(id))
	case err != nil:
		return nil, err
	}
	return fi, nil
}

// Create use case stores the given food item as a new item, ignoring
// its ID and Version fields, and returns the stored item which carries
// the store-assigned ID.
func (fiuc *UseCase) Create(ctx context.Context, fi *model.FoodItem) (created *model.FoodItem, err error) {
	item := &model.FoodItem{}
	item.CopyMutable(fi)
	err = fiuc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		created, err = fiuc.foodItemsrp.Conn(c).Create(ctx, item)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "food item is created", log.ID("id", created.ID))
	return created, nil
}

// Update use case replaces the mutable fields of the `id` food item
// by the `fi` fields. The `fi.ID` must be equal to `id`, otherwise,
// a BadRequest error wrapping a cerr.MismatchingIDError is returned.
// If `fi.Version` is non-zero, it is taken as the expected version of
// the stored item; otherwise, the version which is loaded right before
// saving is expected.
//
// Missing items and concurrent modifications are not reported as
// errors. They are reported by the returned UpdateResult status. If
// the item is deleted between its lookup and saving, the NotFound
// status is reported (with the Vanished flag), while any other version
// mismatch is reported as the ConcurrencyConflict status.
func (fiuc *UseCase) Update(ctx context.Context, id int64, fi *model.FoodItem) (*model.UpdateResult, error) {
	if fi.ID != id {
		return nil, cerr.BadRequest(&cerr.MismatchingIDError{id, fi.ID})
	}
	res := &model.UpdateResult{}
	err := fiuc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := fiuc.foodItemsrp.Conn(c)
		stored, err := q.Get(ctx, id)
		switch {
		case errors.Is(err, repo.ErrNotFound):
			res.Status = model.UpdateStatusNotFound
			return nil
		case err != nil:
			return fmt.Errorf("loading food item: %w", err)
		}
		stored.CopyMutable(fi)
		if fi.Version != 0 {
			stored.Version = fi.Version
		}
		updated, err := q.Update(ctx, stored)
		switch {
		case err == nil:
			res.Status = model.UpdateStatusUpdated
			res.Item = updated
			return nil
		case !errors.Is(err, repo.ErrConcurrentUpdate):
			return fmt.Errorf("saving food item: %w", err)
		}
		exists, err := q.Exists(ctx, id)
		if err != nil {
			return fmt.Errorf("checking food item existence: %w", err)
		}
		if exists {
			res.Status = model.UpdateStatusConcurrencyConflict
		} else {
			res.Status = model.UpdateStatusNotFound
			res.Vanished = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if res.Status != model.UpdateStatusUpdated {
		log.Warn(
			ctx, "food item is not updated",
			log.ID("id", id),
			slog.String("status", res.Status.String()),
		)
	}
	return res, nil
}

// Delete use case removes the food item with the given id. If there
// is no such item, a NotFound error will be returned.
func (fiuc *UseCase) Delete(ctx context.Context, id int64) error {
	err := fiuc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return fiuc.foodItemsrp.Conn(c).Delete(ctx, id)
	})
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return cerr.NotFound(errors.New("FoodItem not found."))
	case err != nil:
		return err
	}
	log.Info(ctx, "food item is deleted", log.ID("id", id))
	return nil
}

func notFoundError(id int64) error {
	return fmt.Errorf("FoodItem with ID %d not found.", id)
}
