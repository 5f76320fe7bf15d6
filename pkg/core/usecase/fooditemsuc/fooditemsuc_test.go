// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package fooditemsuc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/momeni/fastfood/internal/test/memrepo"
	"github.com/momeni/fastfood/pkg/core/cerr"
	"github.com/momeni/fastfood/pkg/core/model"
	"github.com/momeni/fastfood/pkg/core/usecase/fooditemsuc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type FoodItemsUseCaseTestSuite struct {
	suite.Suite

	Ctx   context.Context
	Pool  *memrepo.Pool
	Store *memrepo.Store
	UC    *fooditemsuc.UseCase
}

func TestFoodItemsUseCaseTestSuite(t *testing.T) {
	suite.Run(t, &FoodItemsUseCaseTestSuite{Ctx: context.Background()})
}

func (fts *FoodItemsUseCaseTestSuite) SetupTest() {
	fts.Pool = memrepo.NewPool()
	fts.Store = fts.Pool.Store
	uc, err := fooditemsuc.New(fts.Pool, memrepo.New())
	fts.Require().NoError(err, "cannot instantiate use case")
	fts.UC = uc
}

func burger(name string) model.FoodItem {
	return model.FoodItem{
		Name:        name,
		Description: "grilled",
		Price:       decimal.RequireFromString("5.50"),
		ImgURL:      "/img/" + name + ".png",
		FoodType:    "Burger",
	}
}

func (fts *FoodItemsUseCaseTestSuite) requireStatus(err error, code int) {
	fts.Require().Error(err)
	fts.Equal(code, cerr.StatusCode(err), "unexpected error: %v", err)
}

func (fts *FoodItemsUseCaseTestSuite) TestListEmpty() {
	items, err := fts.UC.List(fts.Ctx)
	fts.Require().NoError(err)
	fts.NotNil(items)
	fts.Empty(items)
}

func (fts *FoodItemsUseCaseTestSuite) TestCreateThenGet() {
	in := burger("Classic")
	in.ID = 99
	in.Version = 42
	created, err := fts.UC.Create(fts.Ctx, &in)
	fts.Require().NoError(err)
	fts.NotEqual(int64(99), created.ID, "caller ID must be ignored")
	fts.Equal(int64(1), created.Version)

	got, err := fts.UC.Get(fts.Ctx, created.ID)
	fts.Require().NoError(err)
	expected := in
	expected.ID = created.ID
	expected.Version = created.Version
	fts.Equal(expected, *got)

	items, err := fts.UC.List(fts.Ctx)
	fts.Require().NoError(err)
	fts.Equal([]model.FoodItem{*got}, items)
}

func (fts *FoodItemsUseCaseTestSuite) TestGetMissing() {
	_, err := fts.UC.Get(fts.Ctx, 404)
	fts.requireStatus(err, http.StatusNotFound)
	fts.ErrorContains(err, "FoodItem with ID 404 not found.")
}

func (fts *FoodItemsUseCaseTestSuite) TestUpdateMismatch() {
	stored := fts.Store.Seed(burger("Classic"))[0]
	in := burger("Renamed")
	in.ID = stored.ID + 1
	res, err := fts.UC.Update(fts.Ctx, stored.ID, &in)
	fts.Nil(res)
	fts.requireStatus(err, http.StatusBadRequest)
	var mie *cerr.MismatchingIDError
	fts.Require().True(errors.As(err, &mie))
	fts.Equal(cerr.MismatchingIDError{stored.ID, stored.ID + 1}, *mie)
	fts.Equal([]model.FoodItem{stored}, fts.Store.Items(), "no mutation")
}

func (fts *FoodItemsUseCaseTestSuite) TestUpdateMissing() {
	stored := fts.Store.Seed(burger("Classic"))[0]
	in := burger("Ghost")
	in.ID = 77
	res, err := fts.UC.Update(fts.Ctx, 77, &in)
	fts.Require().NoError(err)
	fts.Equal(model.UpdateStatusNotFound, res.Status)
	fts.False(res.Vanished)
	fts.Nil(res.Item)
	fts.Equal([]model.FoodItem{stored}, fts.Store.Items(), "no mutation")
}

func (fts *FoodItemsUseCaseTestSuite) TestUpdate() {
	stored := fts.Store.Seed(burger("Classic"))[0]
	in := burger("Deluxe")
	in.ID = stored.ID
	in.FoodType = "Premium"
	res, err := fts.UC.Update(fts.Ctx, stored.ID, &in)
	fts.Require().NoError(err)
	fts.Equal(model.UpdateStatusUpdated, res.Status)
	fts.Equal("Deluxe", res.Item.Name)
	fts.Equal("Premium", res.Item.FoodType)
	fts.Equal(stored.ID, res.Item.ID)
	fts.Equal(stored.Version+1, res.Item.Version)
	fts.Equal([]model.FoodItem{*res.Item}, fts.Store.Items())
}

func (fts *FoodItemsUseCaseTestSuite) TestUpdateStaleVersion() {
	stored := fts.Store.Seed(burger("Classic"))[0]
	first := burger("First")
	first.ID = stored.ID
	first.Version = stored.Version
	res, err := fts.UC.Update(fts.Ctx, stored.ID, &first)
	fts.Require().NoError(err)
	fts.Require().Equal(model.UpdateStatusUpdated, res.Status)

	second := burger("Second")
	second.ID = stored.ID
	second.Version = stored.Version // stale now
	res, err = fts.UC.Update(fts.Ctx, stored.ID, &second)
	fts.Require().NoError(err)
	fts.Equal(model.UpdateStatusConcurrencyConflict, res.Status)
	fts.Equal("First", fts.Store.Items()[0].Name)
}

func (fts *FoodItemsUseCaseTestSuite) TestUpdateRaceWithWriter() {
	stored := fts.Store.Seed(burger("Classic"))[0]
	fts.Store.BeforeUpdate = func(s *memrepo.Store, fi *model.FoodItem) {
		s.BeforeUpdate = nil
		s.Touch(fi.ID)
	}
	in := burger("Mine")
	in.ID = stored.ID
	res, err := fts.UC.Update(fts.Ctx, stored.ID, &in)
	fts.Require().NoError(err)
	fts.Equal(model.UpdateStatusConcurrencyConflict, res.Status)
	fts.Nil(res.Item)
	fts.Equal("Classic", fts.Store.Items()[0].Name)
}

func (fts *FoodItemsUseCaseTestSuite) TestUpdateRaceWithDelete() {
	stored := fts.Store.Seed(burger("Classic"))[0]
	fts.Store.BeforeUpdate = func(s *memrepo.Store, fi *model.FoodItem) {
		s.BeforeUpdate = nil
		s.Remove(fi.ID)
	}
	in := burger("Mine")
	in.ID = stored.ID
	res, err := fts.UC.Update(fts.Ctx, stored.ID, &in)
	fts.Require().NoError(err)
	fts.Equal(model.UpdateStatusNotFound, res.Status)
	fts.True(res.Vanished)
	fts.Empty(fts.Store.Items())
}

func (fts *FoodItemsUseCaseTestSuite) TestDelete() {
	stored := fts.Store.Seed(burger("Classic"))[0]
	fts.Require().NoError(fts.UC.Delete(fts.Ctx, stored.ID))
	_, err := fts.UC.Get(fts.Ctx, stored.ID)
	fts.requireStatus(err, http.StatusNotFound)

	err = fts.UC.Delete(fts.Ctx, stored.ID)
	fts.requireStatus(err, http.StatusNotFound)
	fts.ErrorContains(err, "FoodItem not found.")
	fts.Empty(fts.Store.Items())
}

func (fts *FoodItemsUseCaseTestSuite) TestFoodTypes() {
	pizza := burger("Margherita")
	pizza.FoodType = "Pizza"
	fts.Store.Seed(burger("Classic"), burger("Deluxe"), pizza)
	types, err := fts.UC.FoodTypes(fts.Ctx)
	fts.Require().NoError(err)
	fts.ElementsMatch([]string{"Burger", "Pizza"}, types)
}

func (fts *FoodItemsUseCaseTestSuite) TestAddExistingFoodType() {
	pizza := burger("Margherita")
	pizza.FoodType = "Pizza"
	fts.Store.Seed(pizza)
	err := fts.UC.AddFoodType(fts.Ctx, &model.FoodTypeRequest{
		FoodType: "Pizza",
	})
	fts.requireStatus(err, http.StatusConflict)
	fts.ErrorIs(err, fooditemsuc.ErrFoodTypeExists)
	fts.Len(fts.Store.Items(), 1)
}

func (fts *FoodItemsUseCaseTestSuite) TestAddFoodTypeIsCaseSensitive() {
	pizza := burger("Margherita")
	pizza.FoodType = "Pizza"
	fts.Store.Seed(pizza)
	err := fts.UC.AddFoodType(fts.Ctx, &model.FoodTypeRequest{
		FoodType: "pizza",
	})
	fts.Require().NoError(err)
	fts.Len(fts.Store.Items(), 2)
}

func (fts *FoodItemsUseCaseTestSuite) TestAddNewFoodType() {
	fts.Store.Seed(burger("Classic"))
	err := fts.UC.AddFoodType(fts.Ctx, &model.FoodTypeRequest{
		FoodType: "Tacos",
	})
	fts.Require().NoError(err)
	items := fts.Store.Items()
	fts.Require().Len(items, 2)
	tacos := items[1]
	fts.Equal("Tacos", tacos.FoodType)
	fts.Equal(model.PlaceholderName, tacos.Name)
	fts.Equal(model.PlaceholderDescription, tacos.Description)
	fts.Equal(model.PlaceholderImgURL, tacos.ImgURL)
	fts.True(tacos.Price.IsZero())
}

func (fts *FoodItemsUseCaseTestSuite) TestAddBlankFoodType() {
	for _, ft := range []string{"", "   ", "\t"} {
		err := fts.UC.AddFoodType(fts.Ctx, &model.FoodTypeRequest{
			FoodType: ft,
		})
		fts.requireStatus(err, http.StatusBadRequest)
		fts.ErrorIs(err, fooditemsuc.ErrFoodTypeRequired)
	}
	fts.Empty(fts.Store.Items())
}

func (fts *FoodItemsUseCaseTestSuite) TestPlaceholderOptions() {
	uc, err := fooditemsuc.New(
		fts.Pool, memrepo.New(),
		fooditemsuc.WithPlaceholderName("Coming soon"),
		fooditemsuc.WithPlaceholderImgURL("https://cdn.example.com/soon.png"),
	)
	fts.Require().NoError(err)
	err = uc.AddFoodType(fts.Ctx, &model.FoodTypeRequest{FoodType: "Wraps"})
	fts.Require().NoError(err)
	items := fts.Store.Items()
	fts.Require().Len(items, 1)
	fts.Equal("Coming soon", items[0].Name)
	fts.Equal(model.PlaceholderDescription, items[0].Description)
	fts.Equal("https://cdn.example.com/soon.png", items[0].ImgURL)
}

func (fts *FoodItemsUseCaseTestSuite) TestInvalidOptions() {
	for name, opt := range map[string]fooditemsuc.Option{
		"blank name":        fooditemsuc.WithPlaceholderName(" "),
		"blank description": fooditemsuc.WithPlaceholderDescription(""),
		"relative image":    fooditemsuc.WithPlaceholderImgURL("/img.png"),
	} {
		_, err := fooditemsuc.New(fts.Pool, memrepo.New(), opt)
		fts.Error(err, name)
	}
	_, err := fooditemsuc.New(
		fts.Pool, memrepo.New(),
		fooditemsuc.WithPlaceholderName("a"),
		fooditemsuc.WithPlaceholderName("b"),
	)
	fts.Error(err, "duplicate option")
}
