// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package fooditemsrs

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/fastfood/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/fastfood/pkg/core/model"
	"github.com/shopspring/decimal"
)

func init() {
	// prices are written as JSON numbers, e.g., 8.5 instead of "8.5"
	decimal.MarshalJSONWithoutQuotes = true
}

// rawFoodItemReq fields are pointers, so a missing (or null) field
// can be told apart from an empty string or zero price.
type rawFoodItemReq struct {
	ID          int64            `json:"id"`
	Name        *string          `json:"name" binding:"required"`
	Description *string          `json:"description" binding:"required"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	ImgURL      *string          `json:"imgUrl" binding:"required"`
	FoodType    *string          `json:"foodType" binding:"required"`
	Version     int64            `json:"version" binding:"min=0"`
}

type rawFoodTypeReq struct {
	FoodType *string `json:"foodType"`
}

// DserID parses the id path param. Zero and negative identifiers are
// accepted, so their lookups fail with NotFound like other missing items.
func (rs *resource) DserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	var errs map[string][]string
	if !serdser.Assert(
		&errs, err == nil, "id", "Path param id must be an integer.",
	) {
		c.JSON(http.StatusBadRequest, errs)
		return 0, false
	}
	return id, true
}

func (rs *resource) DserFoodItem(c *gin.Context) *model.FoodItem {
	req := &rawFoodItemReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return &model.FoodItem{
		ID:          req.ID,
		Name:        *req.Name,
		Description: *req.Description,
		Price:       *req.Price,
		ImgURL:      *req.ImgURL,
		FoodType:    *req.FoodType,
		Version:     req.Version,
	}
}

// DserFoodTypeReq accepts a missing foodType field, so the use case
// may report it as a blank food type.
func (rs *resource) DserFoodTypeReq(c *gin.Context) *model.FoodTypeRequest {
	req := &rawFoodTypeReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	ftr := &model.FoodTypeRequest{}
	if req.FoodType != nil {
		ftr.FoodType = *req.FoodType
	}
	return ftr
}
