// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package auth verifies the bearer tokens of the protected ffweb
// routes. Tokens are HMAC signed JWTs which are issued by another
// service sharing the same secret, so no token issuance takes place
// here.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/momeni/fastfood/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/fastfood/pkg/core/cerr"
	"github.com/momeni/fastfood/pkg/core/log"
)

// SubjectKey is the gin context key which holds the subject claim
// of a verified token.
const SubjectKey = "auth.subject"

var (
	ErrMissingToken = errors.New("Authorization bearer token is required.")
	ErrInvalidToken = errors.New("Authorization token is not valid.")
)

// Verifier checks JWT bearer tokens using a shared secret.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier creates a Verifier which accepts tokens signed by the
// `secret` key with one of the HS256, HS384, or HS512 methods.
// If `issuer` is not empty, the iss claim must match it too.
func NewVerifier(secret, issuer string) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("auth secret must be non-empty")
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(opts...),
	}, nil
}

// Verify parses and validates the given token and returns its claims.
func (v *Verifier) Verify(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := v.parser.ParseWithClaims(
		token, claims, func(*jwt.Token) (any, error) {
			return v.secret, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	return claims, nil
}

// Middleware aborts requests which lack a valid bearer token with
// the 401 status code. Otherwise, the token subject is stored in
// the gin context with the SubjectKey key.
func (v *Verifier) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			serdser.SerErr(c, cerr.Authentication(ErrMissingToken))
			c.Abort()
			return
		}
		claims, err := v.Verify(strings.TrimSpace(token))
		if err != nil {
			log.Info(c, "rejected bearer token", log.Err("err", err))
			serdser.SerErr(c, cerr.Authentication(ErrInvalidToken))
			c.Abort()
			return
		}
		c.Set(SubjectKey, claims.Subject)
		c.Next()
	}
}
