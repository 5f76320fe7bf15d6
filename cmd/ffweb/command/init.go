// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/momeni/fastfood/pkg/core/usecase/initdbuc"
	"github.com/spf13/cobra"
)

const schemaRecreationMessage = `
The application schema (fastfood by default) is dropped if it exists
and is created again, so all of its existing food items will be lost.`

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database contents with development suitable data",
	Long: `Initialize database contents with development suitable data,
i.e., the food_items table and a few sample food items of the Burger,
Pizza, and Drinks food types. The database connection information are
read from the configuration file.
` + credsRenewalMessage + `
` + schemaRecreationMessage,
	RunE: initDev,
	Args: cobra.NoArgs,
}

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database contents with production suitable data",
	Long: `Initialize database contents with production suitable data,
i.e., an empty food_items table. The database connection information
are read from the configuration file.
` + credsRenewalMessage + `
` + schemaRecreationMessage,
	RunE: initProd,
	Args: cobra.NoArgs,
}

func initDev(cmd *cobra.Command, _ []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	if err = initdbuc.New(c).InitDev(cmd.Context()); err != nil {
		return fmt.Errorf("initializing DB with dev data: %w", err)
	}
	return nil
}

func initProd(cmd *cobra.Command, _ []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	if err = initdbuc.New(c).InitProd(cmd.Context()); err != nil {
		return fmt.Errorf("initializing DB with prod data: %w", err)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(initDevCmd)
	dbCmd.AddCommand(initProdCmd)
}
