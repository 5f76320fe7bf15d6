// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"github.com/momeni/fastfood/pkg/core/repo"
	"github.com/momeni/fastfood/pkg/core/usecase/fooditemsuc"
)

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	FoodItems FoodItems `yaml:"food-items"`
}

// FoodItems contains the configuration settings for the food items
// use cases. All items are optional and the use case falls back to
// its own defaults for the missing ones.
type FoodItems struct {
	// PlaceholderName is the name of food items which are created in
	// order to register a new food type.
	PlaceholderName *string `yaml:"placeholder-name,omitempty"`

	// PlaceholderDescription is the description of such food items.
	PlaceholderDescription *string `yaml:"placeholder-description,omitempty"`

	// PlaceholderImgURL is the image URL of such food items.
	PlaceholderImgURL *string `yaml:"placeholder-img-url,omitempty"`
}

// NewUseCase instantiates a new food items use case based on the
// `fi` settings. Settings are validated by the use case options.
func (fi FoodItems) NewUseCase(
	p repo.Pool, r repo.FoodItems,
) (*fooditemsuc.UseCase, error) {
	var opts []fooditemsuc.Option
	if fi.PlaceholderName != nil {
		opts = append(opts, fooditemsuc.WithPlaceholderName(
			*fi.PlaceholderName,
		))
	}
	if fi.PlaceholderDescription != nil {
		opts = append(opts, fooditemsuc.WithPlaceholderDescription(
			*fi.PlaceholderDescription,
		))
	}
	if fi.PlaceholderImgURL != nil {
		opts = append(opts, fooditemsuc.WithPlaceholderImgURL(
			*fi.PlaceholderImgURL,
		))
	}
	return fooditemsuc.New(p, r, opts...)
}
