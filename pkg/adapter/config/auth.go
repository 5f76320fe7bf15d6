// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"errors"

	"github.com/momeni/fastfood/pkg/adapter/restful/gin/auth"
)

// Auth contains the bearer tokens verification settings.
// Tokens are issued by another service and ffweb only verifies them.
type Auth struct {
	// Secret is the HMAC key of tokens. It may be overridden by the
	// FFWEB_AUTH_SECRET environment variable, so it is not required
	// to be written in the configuration file.
	Secret string `yaml:"secret,omitempty"`

	// Issuer is the expected iss claim. Empty value disables the
	// issuer check.
	Issuer string `yaml:"issuer,omitempty"`
}

func (a Auth) Validate() error {
	if a.Secret == "" {
		return errors.New("secret must be non-empty")
	}
	return nil
}

// NewVerifier instantiates a bearer token verifier.
func (a Auth) NewVerifier() (*auth.Verifier, error) {
	return auth.NewVerifier(a.Secret, a.Issuer)
}
