// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package fooditemsuc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/momeni/fastfood/pkg/core/cerr"
	"github.com/momeni/fastfood/pkg/core/log"
	"github.com/momeni/fastfood/pkg/core/model"
	"github.com/momeni/fastfood/pkg/core/repo"
)

// These errors are returned by AddFoodType after being wrapped by
// the cerr.BadRequest and cerr.Conflict respectively.
var (
	ErrFoodTypeRequired = errors.New("Food type is required.")
	ErrFoodTypeExists   = errors.New("Food type already exists.")
)

// FoodTypes use case returns the distinct food types of the current
// food items. An empty slice is returned when there is no food item.
func (fiuc *UseCase) FoodTypes(ctx context.Context) (types []string, err error) {
	err = fiuc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		types, err = fiuc.foodItemsrp.Conn(c).FoodTypes(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if types == nil {
		types = []string{}
	}
	return types, nil
}

// AddFoodType use case registers the requested food type by creating
// a placeholder food item which carries it. Blank food types are
// rejected with a BadRequest error and food types which are carried by
// any stored item (compared exactly) are rejected with a Conflict
// error. The existence check and insertion run in one transaction.
func (fiuc *UseCase) AddFoodType(ctx context.Context, req *model.FoodTypeRequest) error {
	if req.IsBlank() {
		return cerr.BadRequest(ErrFoodTypeRequired)
	}
	var created *model.FoodItem
	err := fiuc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := fiuc.foodItemsrp.Tx(tx)
			found, err := q.HasFoodType(ctx, req.FoodType)
			switch {
			case err != nil:
				return err
			case found:
				return cerr.Conflict(ErrFoodTypeExists)
			}
			created, err = q.Create(ctx, fiuc.placeholder.Item(req.FoodType))
			return err
		})
	})
	if err != nil {
		return err
	}
	log.Info(
		ctx, "food type is registered",
		slog.String("food_type", req.FoodType),
		log.ID("placeholder_id", created.ID),
	)
	return nil
}
