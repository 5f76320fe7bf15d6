// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin adapts the gin-gonic web framework for the ffweb
// resources. It wraps the engine instantiation, so handlers may pass
// their *gin.Context to the use cases as a context.Context and values
// of the request context (such as the request ID) stay visible.
package gin

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/fastfood/pkg/core/log"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

// RequestIDHeader is the HTTP header which carries the request ID.
const RequestIDHeader = "X-Request-ID"

// New instantiates a gin engine and registers the given middlewares.
// The ContextWithFallback is enabled, so *gin.Context reports values
// of its request context.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.ContextWithFallback = true
	e.Use(middlewares...)
	return e
}

func Logger() HandlerFunc {
	return gin.Logger()
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}

// RequestID returns a middleware which takes the request ID from the
// X-Request-ID header, or generates a random UUID if it is missing,
// echoes it in the response, and stores it in the request context
// so it is included in all logs of that request.
func RequestID() HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		ctx := log.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
