// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package fooditemsrp

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/fastfood/pkg/adapter/db/postgres"
	"github.com/momeni/fastfood/pkg/core/model"
	"github.com/momeni/fastfood/pkg/core/repo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TableName is the name of the food items table.
const TableName = "food_items"

type gFoodItem struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	Name        string          `gorm:"column:name"`
	Description string          `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	ImgURL      string          `gorm:"column:img_url"`
	FoodType    string          `gorm:"column:food_type"`
	Version     int64           `gorm:"column:version"`
}

func (g *gFoodItem) TableName() string {
	return TableName
}

func (g *gFoodItem) Model() *model.FoodItem {
	return &model.FoodItem{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Price:       g.Price,
		ImgURL:      g.ImgURL,
		FoodType:    g.FoodType,
		Version:     g.Version,
	}
}

func List[Q postgres.Queryer](ctx context.Context, q Q) ([]model.FoodItem, error) {
	var gs []gFoodItem
	if err := q.GORM(ctx).Order("id").Find(&gs).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	items := make([]model.FoodItem, 0, len(gs))
	for i := range gs {
		items = append(items, *gs[i].Model())
	}
	return items, nil
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, id int64) (*model.FoodItem, error) {
	g := &gFoodItem{}
	err := q.GORM(ctx).Where("id = ?", id).Take(g).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, repo.ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return g.Model(), nil
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, fi *model.FoodItem) (*model.FoodItem, error) {
	g := &gFoodItem{
		Name:        fi.Name,
		Description: fi.Description,
		Price:       fi.Price,
		ImgURL:      fi.ImgURL,
		FoodType:    fi.FoodType,
		Version:     1,
	}
	// stored row is read back because numeric(10,2) rounds the price
	err := q.GORM(ctx).Clauses(clause.Returning{}).Create(g).Error
	if err != nil {
		return nil, fmt.Errorf("insert: %w", err)
	}
	return g.Model(), nil
}

// Update saves the mutable fields of `fi` if the stored version of
// that item is equal to `fi.Version`, increasing the stored version.
// If no row is updated, repo.ErrConcurrentUpdate is returned because
// the item was either updated or deleted since it was loaded.
// The returned item holds the stored values, e.g., the rounded price.
func Update[Q postgres.Queryer](ctx context.Context, q Q, fi *model.FoodItem) (*model.FoodItem, error) {
	g := &gFoodItem{}
	tt := q.GORM(ctx).Model(g).Clauses(clause.Returning{}).Where(
		"id = ? AND version = ?", fi.ID, fi.Version,
	).Updates(map[string]any{
		"name":        fi.Name,
		"description": fi.Description,
		"price":       fi.Price,
		"img_url":     fi.ImgURL,
		"food_type":   fi.FoodType,
		"version":     fi.Version + 1,
	})
	if err := tt.Error; err != nil {
		return nil, fmt.Errorf("update: %w", err)
	}
	if tt.RowsAffected == 0 {
		return nil, repo.ErrConcurrentUpdate
	}
	return g.Model(), nil
}

func Delete[Q postgres.Queryer](ctx context.Context, q Q, id int64) error {
	tt := q.GORM(ctx).Where("id = ?", id).Delete(&gFoodItem{})
	if err := tt.Error; err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if tt.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func Exists[Q postgres.Queryer](ctx context.Context, q Q, id int64) (bool, error) {
	var n int64
	err := q.GORM(ctx).Model(&gFoodItem{}).Where("id = ?", id).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return n > 0, nil
}

func FoodTypes[Q postgres.Queryer](ctx context.Context, q Q) ([]string, error) {
	types := []string{}
	err := q.GORM(ctx).Model(&gFoodItem{}).Distinct().Order(
		"food_type",
	).Pluck("food_type", &types).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return types, nil
}

// HasFoodType checks for an exact (case-sensitive) food type match.
func HasFoodType[Q postgres.Queryer](ctx context.Context, q Q, foodType string) (bool, error) {
	var n int64
	err := q.GORM(ctx).Model(&gFoodItem{}).Where(
		"food_type = ?", foodType,
	).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return n > 0, nil
}
