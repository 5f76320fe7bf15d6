// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., as required by JSON
// serialization) since adding more tags does not complicate definition
// of a struct, but can prevent unnecessary structs duplication.
package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FoodItem models a menu entry which may be persisted in a database.
// The ID is assigned by the store when an item is created and never
// changes afterwards. There is no separate food type entity; the set
// of food types is the set of distinct FoodType values among all
// stored items.
//
// Version is increased by the store whenever an item is updated and
// is used for detecting the concurrent updates (optimistic locking).
// For the persisted representation, see the unexported gFoodItem
// struct in the pkg/adapter/db/postgres/fooditemsrp/query.go file.
type FoodItem struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImgURL      string          `json:"imgUrl"`
	FoodType    string          `json:"foodType"`
	Version     int64           `json:"version"`
}

// CopyMutable copies the mutable fields of `src` into `fi`, keeping
// the ID and Version of `fi` intact.
func (fi *FoodItem) CopyMutable(src *FoodItem) {
	fi.Name = src.Name
	fi.Description = src.Description
	fi.Price = src.Price
	fi.ImgURL = src.ImgURL
	fi.FoodType = src.FoodType
}

// FoodTypeRequest asks for a new food type to be registered. It is not
// persisted by itself; registering a food type creates a placeholder
// FoodItem carrying that type.
type FoodTypeRequest struct {
	FoodType string `json:"foodType"`
}

// IsBlank reports if the requested food type is empty or consists of
// white space characters only.
func (ftr *FoodTypeRequest) IsBlank() bool {
	return strings.TrimSpace(ftr.FoodType) == ""
}

// These constants are the default field values of placeholder items
// which are created in order to register a new food type.
const (
	PlaceholderName        = "New Food Type"
	PlaceholderDescription = "Description for new food type"
	PlaceholderImgURL      = "https://via.placeholder.com/150"
)

// Placeholder holds the field values which are used for synthesizing
// a placeholder FoodItem. Its zero value is not useful; the
// DefaultPlaceholder function returns the default values.
type Placeholder struct {
	Name        string
	Description string
	ImgURL      string
}

// DefaultPlaceholder returns a Placeholder with the default sentinel
// name, description, and image URL.
func DefaultPlaceholder() Placeholder {
	return Placeholder{
		Name:        PlaceholderName,
		Description: PlaceholderDescription,
		ImgURL:      PlaceholderImgURL,
	}
}

// Item creates a new (not yet persisted) placeholder FoodItem which
// carries the given foodType, a zero price, and the `p` sentinel values.
func (p Placeholder) Item(foodType string) *FoodItem {
	return &FoodItem{
		Name:        p.Name,
		Description: p.Description,
		Price:       decimal.Zero,
		ImgURL:      p.ImgURL,
		FoodType:    foodType,
	}
}
