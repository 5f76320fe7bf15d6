// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/fastfood/pkg/adapter/config"
	"github.com/momeni/fastfood/pkg/adapter/restful/gin/fooditemsrs"
	"github.com/momeni/fastfood/pkg/adapter/restful/gin/metrics"
	"github.com/momeni/fastfood/pkg/core/repo"
)

// BasePath is the common prefix of all REST API routes.
const BasePath = "/api"

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries on
// them and accomplish those use cases. Each use case package is named
// like fooditemsuc and each repository package is named like
// fooditemsrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like fooditemsrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance.
// Possible errors will be returned after possible wrapping.
func Register(e *gin.Engine, p repo.Pool, c *config.Config) error {
	return RegisterWithRepo(e, p, c.NewFoodItemsRepo(), c)
}

// RegisterWithRepo is similar to Register, but takes the food items
// repository instead of creating the PostgreSQL one, so the routes
// may be served on top of other repository implementations.
func RegisterWithRepo(
	e *gin.Engine, p repo.Pool, r repo.FoodItems, c *config.Config,
) error {
	foodItemsUseCase, err := c.NewFoodItemsUseCase(p, r)
	if err != nil {
		return fmt.Errorf("creating food items use case: %w", err)
	}
	verifier, err := c.Auth.NewVerifier()
	if err != nil {
		return fmt.Errorf("creating token verifier: %w", err)
	}
	if c.Gin.Metrics != nil && *c.Gin.Metrics {
		m := metrics.New()
		e.Use(m.Middleware())
		e.GET("/metrics", m.Handler())
	}
	public := e.Group(BasePath)
	protected := e.Group(BasePath, verifier.Middleware())
	fooditemsrs.Register(public, protected, foodItemsUseCase)
	return nil
}
