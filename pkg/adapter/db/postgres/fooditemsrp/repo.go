// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package fooditemsrp provides a reification of the repo.FoodItems
// interface, storing food items in the food_items PostgreSQL table
// with help of GORM. Each query is implemented as a generic function
// which accepts either a *postgres.Conn or a *postgres.Tx.
package fooditemsrp

import (
	"context"

	"github.com/momeni/fastfood/pkg/adapter/db/postgres"
	"github.com/momeni/fastfood/pkg/core/model"
	"github.com/momeni/fastfood/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

// Conn unwraps the given repo.Conn instance, expecting to find an
// instance of *postgres.Conn as created by this adapter layer.
// Otherwise, it will panic.
func (fis *Repo) Conn(c repo.Conn) repo.FoodItemsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) List(ctx context.Context) ([]model.FoodItem, error) {
	return List(ctx, cq.Conn)
}

func (cq connQueryer) Get(ctx context.Context, id int64) (*model.FoodItem, error) {
	return Get(ctx, cq.Conn, id)
}

func (cq connQueryer) Create(ctx context.Context, fi *model.FoodItem) (*model.FoodItem, error) {
	return Create(ctx, cq.Conn, fi)
}

func (cq connQueryer) Update(ctx context.Context, fi *model.FoodItem) (*model.FoodItem, error) {
	return Update(ctx, cq.Conn, fi)
}

func (cq connQueryer) Delete(ctx context.Context, id int64) error {
	return Delete(ctx, cq.Conn, id)
}

func (cq connQueryer) Exists(ctx context.Context, id int64) (bool, error) {
	return Exists(ctx, cq.Conn, id)
}

func (cq connQueryer) FoodTypes(ctx context.Context) ([]string, error) {
	return FoodTypes(ctx, cq.Conn)
}

func (cq connQueryer) HasFoodType(ctx context.Context, foodType string) (bool, error) {
	return HasFoodType(ctx, cq.Conn, foodType)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx unwraps the given repo.Tx instance, expecting to find an instance
// of *postgres.Tx as created by this adapter layer. Otherwise, it will
// panic.
func (fis *Repo) Tx(tx repo.Tx) repo.FoodItemsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) List(ctx context.Context) ([]model.FoodItem, error) {
	return List(ctx, tq.Tx)
}

func (tq txQueryer) Get(ctx context.Context, id int64) (*model.FoodItem, error) {
	return Get(ctx, tq.Tx, id)
}

func (tq txQueryer) Create(ctx context.Context, fi *model.FoodItem) (*model.FoodItem, error) {
	return Create(ctx, tq.Tx, fi)
}

func (tq txQueryer) Update(ctx context.Context, fi *model.FoodItem) (*model.FoodItem, error) {
	return Update(ctx, tq.Tx, fi)
}

func (tq txQueryer) Delete(ctx context.Context, id int64) error {
	return Delete(ctx, tq.Tx, id)
}

func (tq txQueryer) Exists(ctx context.Context, id int64) (bool, error) {
	return Exists(ctx, tq.Tx, id)
}

func (tq txQueryer) FoodTypes(ctx context.Context) ([]string, error) {
	return FoodTypes(ctx, tq.Tx)
}

func (tq txQueryer) HasFoodType(ctx context.Context, foodType string) (bool, error) {
	return HasFoodType(ctx, tq.Tx, foodType)
}
