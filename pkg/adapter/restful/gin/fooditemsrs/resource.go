// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package fooditemsrs realizes the food items resource, allowing the
// food items REST APIs to be accepted and delegated to the food items
// use cases respectively.
package fooditemsrs

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/fastfood/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/fastfood/pkg/core/cerr"
	"github.com/momeni/fastfood/pkg/core/model"
	"github.com/momeni/fastfood/pkg/core/usecase/fooditemsuc"
)

// FoodTypeAddedMessage is reported when a new food type is added.
const FoodTypeAddedMessage = "Food type added successfully."

type resource struct {
	foodItems *fooditemsuc.UseCase
	basePath  string
}

// Register instantiates a resource adapting the food items use case
// instance with the relevant REST APIs including:
//  1. GET request to fooditems (on the `public` group) in order to
//     list all food items,
//  2. GET, PUT, and DELETE requests to fooditems/:id in order to
//     fetch, update, or delete one food item,
//  3. POST request to fooditems in order to create a food item,
//  4. GET and POST requests to fooditems/foodtypes in order to list
//     the distinct food types or add a new one.
//
// Except the listing of food items, all routes are registered on the
// `protected` group which is expected to authenticate its requests.
// Both groups must have the same base path.
func Register(
	public, protected *gin.RouterGroup, foodItems *fooditemsuc.UseCase,
) {
	rs := &resource{
		foodItems: foodItems,
		basePath:  public.BasePath(),
	}
	public.GET("fooditems", rs.List)
	protected.GET("fooditems/foodtypes", rs.FoodTypes)
	protected.POST("fooditems/foodtypes", rs.AddFoodType)
	protected.GET("fooditems/:id", rs.Get)
	protected.POST("fooditems", rs.Create)
	protected.PUT("fooditems/:id", rs.Update)
	protected.DELETE("fooditems/:id", rs.Delete)
}

func (rs *resource) List(c *gin.Context) {
	items, err := rs.foodItems.List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (rs *resource) Get(c *gin.Context) {
	id, ok := rs.DserID(c)
	if !ok {
		return
	}
	fi, err := rs.foodItems.Get(c, id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, fi)
}

func (rs *resource) Create(c *gin.Context) {
	fi := rs.DserFoodItem(c)
	if fi == nil {
		return
	}
	created, err := rs.foodItems.Create(c, fi)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Header("Location", rs.itemPath(created.ID))
	c.JSON(http.StatusCreated, created)
}

func (rs *resource) Update(c *gin.Context) {
	id, ok := rs.DserID(c)
	if !ok {
		return
	}
	fi := rs.DserFoodItem(c)
	if fi == nil {
		return
	}
	res, err := rs.foodItems.Update(c, id, fi)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	switch res.Status {
	case model.UpdateStatusUpdated:
		c.JSON(http.StatusOK, res.Item)
	case model.UpdateStatusNotFound:
		err := fmt.Errorf("FoodItem with ID %d not found.", id)
		if res.Vanished {
			err = fmt.Errorf(
				"FoodItem with ID %d not found during update.", id,
			)
		}
		serdser.SerErr(c, cerr.NotFound(err))
	case model.UpdateStatusConcurrencyConflict:
		serdser.SerErr(c, fooditemsuc.ErrConcurrencyConflict)
	default:
		panic(res.Status.Validate())
	}
}

func (rs *resource) Delete(c *gin.Context) {
	id, ok := rs.DserID(c)
	if !ok {
		return
	}
	if err := rs.foodItems.Delete(c, id); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *resource) FoodTypes(c *gin.Context) {
	types, err := rs.foodItems.FoodTypes(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (rs *resource) AddFoodType(c *gin.Context) {
	req := rs.DserFoodTypeReq(c)
	if req == nil {
		return
	}
	if err := rs.foodItems.AddFoodType(c, req); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": FoodTypeAddedMessage})
}

func (rs *resource) itemPath(id int64) string {
	return fmt.Sprintf("%s/fooditems/%d", rs.basePath, id)
}
