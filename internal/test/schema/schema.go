// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schema provides a database schema verifier which can be used
// for testing purposes. It checks the food_items table columns and the
// initial rows which are expected after a database initialization with
// the development or production suitable data.
package schema

import (
	"context"
	"testing"

	"github.com/momeni/fastfood/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// columns maps the food_items columns to their information_schema
// data types.
var columns = map[string]string{
	"id":          "bigint",
	"name":        "text",
	"description": "text",
	"price":       "numeric",
	"img_url":     "text",
	"food_type":   "text",
	"version":     "bigint",
}

// devFoodItems are names and food types of the development data rows.
var devFoodItems = map[string]string{
	"Classic Burger": "Burger",
	"Chicken Burger": "Burger",
	"Margherita":     "Pizza",
	"Cola":           "Drinks",
}

// Verifier wraps a database connection and verifies the schema and its
// contents using that connection.
type Verifier struct {
	c repo.Conn // database connection which is used for testing
}

// NewVerifier instantiates a Verifier struct, wrapping the `c` database
// connection. The food_items table is looked up in the search_path of
// that connection.
func NewVerifier(c repo.Conn) *Verifier {
	return &Verifier{c}
}

// VerifySchema ensures that the food_items table exists and has the
// expected columns. Extra columns are reported as failures too.
// This process failures are reported using the `t` testing argument.
func (v *Verifier) VerifySchema(ctx context.Context, t *testing.T) {
	rows, err := v.c.Query(ctx, `SELECT column_name, data_type
FROM information_schema.columns
WHERE table_name = 'food_items' AND table_schema = current_schema()`)
	require.NoError(t, err, "cannot query food_items columns")
	defer rows.Close()
	seen := make(map[string]string)
	for rows.Next() {
		var name, typ string
		require.NoError(t, rows.Scan(&name, &typ))
		seen[name] = typ
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, columns, seen, "unexpected food_items columns")
}

// VerifyDevData checks for presence of the development suitable initial
// data and marks possible issues using the `t` testing argument.
// Presence of extra rows is acceptable.
func (v *Verifier) VerifyDevData(ctx context.Context, t *testing.T) {
	seen := v.foodTypesByName(ctx, t)
	for name, foodType := range devFoodItems {
		assert.Equal(t, foodType, seen[name], "dev item %q", name)
	}
}

// VerifyProdData checks that no development data row is inserted.
// Production initialization creates an empty table and other rows
// may be added by the tests themselves.
func (v *Verifier) VerifyProdData(ctx context.Context, t *testing.T) {
	seen := v.foodTypesByName(ctx, t)
	for name := range devFoodItems {
		assert.NotContains(t, seen, name, "unexpected dev item")
	}
}

func (v *Verifier) foodTypesByName(
	ctx context.Context, t *testing.T,
) map[string]string {
	rows, err := v.c.Query(ctx, "SELECT name, food_type FROM food_items")
	require.NoError(t, err, "cannot query food_items")
	defer rows.Close()
	m := make(map[string]string)
	for rows.Next() {
		var name, foodType string
		require.NoError(t, rows.Scan(&name, &foodType))
		m[name] = foodType
	}
	require.NoError(t, rows.Err())
	return m
}
