// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package fooditemsuc

import (
	"errors"
	"net/url"
	"strings"
)

// Option is a functional option for the food items use case.
type Option func(uc *UseCase) error

// WithPlaceholderName option configures the name of placeholder food
// items which are created by the AddFoodType use case.
func WithPlaceholderName(name string) Option {
	return func(uc *UseCase) error {
		if strings.TrimSpace(name) == "" {
			return errors.New("placeholder name is blank")
		}
		if uc.placeholder.Name != "" {
			return errors.New("placeholder name is already configured")
		}
		uc.placeholder.Name = name
		return nil
	}
}

// WithPlaceholderDescription option configures the description of
// placeholder food items which are created by the AddFoodType use case.
func WithPlaceholderDescription(desc string) Option {
	return func(uc *UseCase) error {
		if strings.TrimSpace(desc) == "" {
			return errors.New("placeholder description is blank")
		}
		if uc.placeholder.Description != "" {
			return errors.New(
				"placeholder description is already configured",
			)
		}
		uc.placeholder.Description = desc
		return nil
	}
}

// WithPlaceholderImgURL option configures the image URL of placeholder
// food items which are created by the AddFoodType use case.
// The imgURL must be an absolute URL.
func WithPlaceholderImgURL(imgURL string) Option {
	return func(uc *UseCase) error {
		u, err := url.Parse(imgURL)
		if err != nil {
			return err
		}
		if !u.IsAbs() {
			return errors.New("placeholder image URL is not absolute")
		}
		if uc.placeholder.ImgURL != "" {
			return errors.New("placeholder image URL is already configured")
		}
		uc.placeholder.ImgURL = imgURL
		return nil
	}
}
