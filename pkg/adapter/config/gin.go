// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"github.com/momeni/fastfood/pkg/adapter/restful/gin"
)

// DefaultAddress is the default listening address of the web server.
const DefaultAddress = ":8080"

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized. Missing items are replaced by their
// default values by the Normalize method.
type Gin struct {
	Logger   *bool // Whether to register the gin.Logger() middleware
	Recovery *bool // Whether to register the gin.Recovery() middleware
	Metrics  *bool // Whether to collect and expose Prometheus metrics

	// Address is the host:port which the web server listens on.
	Address string `yaml:"address,omitempty"`
}

// Normalize fills the missing gin settings with their defaults.
// Logger and Recovery middlewares are enabled by default, while
// metrics should be enabled explicitly.
func (g *Gin) Normalize() {
	nil2Value(&g.Logger, true)
	nil2Value(&g.Recovery, true)
	nil2Value(&g.Metrics, false)
	if g.Address == "" {
		g.Address = DefaultAddress
	}
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings. The request ID middleware is always registered,
// so the access and application logs of a request can be correlated.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 3)
	middlewares = append(middlewares, gin.RequestID())
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// nil2Value sets *p to point to a copy of v if *p is nil.
func nil2Value[T any](p **T, v T) {
	if *p == nil {
		*p = &v
	}
}
