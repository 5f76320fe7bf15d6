// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the ffweb to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// The parsed and validated configurations are passed to their ultimate
// components as a series of individual params (for the mandatory items)
// and a series of functional options (for the optional items), so they
// may be validated again in the relevant end-component such as a
// UseCase instance.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/momeni/fastfood/pkg/adapter/db/postgres/fooditemsrp"
	"github.com/momeni/fastfood/pkg/core/repo"
	"github.com/momeni/fastfood/pkg/core/usecase/fooditemsuc"
	"gopkg.in/yaml.v3"
)

// These environment variables override their corresponding settings
// from the configuration file.
const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvAuthSecret  = "FFWEB_AUTH_SECRET"
)

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is preferred to
// implement Config with primitive fields or other structs which are
// defined locally, not models or structs which are defined in lower
// layers, so the configuration format can be kept intact while other
// layers change freely.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Auth     Auth     // Bearer tokens verification settings
	Logging  Logging  // Structured logging settings
	Usecases Usecases // Supported use cases configuration settings
}

// Load function reads the `path` configuration file and parses it
// using the Parse function. A .env file in the current working
// directory (if any) is loaded beforehand, so its variables may
// override the configuration file settings too. Already set
// environment variables are not overwritten by the .env file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	return c, nil
}

// Parse unmarshals the data byte slice and loads a Config instance
// assuming that it contains the Config settings. Extra items in the
// data will be ignored and missing items will take their default
// values. Thereafter, the environment variables overrides are applied
// and the loaded Config will be validated and normalized in order to
// ensure that provided settings are acceptable.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	c.overrideFromEnv()
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

func (c *Config) overrideFromEnv() {
	if u, ok := os.LookupEnv(EnvDatabaseURL); ok && u != "" {
		c.Database.URL = u
	}
	if s, ok := os.LookupEnv(EnvAuthSecret); ok && s != "" {
		c.Auth.Secret = s
	}
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some zero values with
// their expected default values (if any).
func (c *Config) ValidateAndNormalize() error {
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	c.Gin.Normalize()
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("validating auth settings: %w", err)
	}
	if err := c.Logging.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating logging settings: %w", err)
	}
	return nil
}

// NewFoodItemsUseCase instantiates a new food items use case based on
// the settings in the `c` struct.
func (c *Config) NewFoodItemsUseCase(
	p repo.Pool, r repo.FoodItems,
) (*fooditemsuc.UseCase, error) {
	return c.Usecases.FoodItems.NewUseCase(p, r)
}

// NewFoodItemsRepo instantiates the PostgreSQL food items repository.
func (c *Config) NewFoodItemsRepo() repo.FoodItems {
	return fooditemsrp.New()
}
