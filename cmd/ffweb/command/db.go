// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import "github.com/spf13/cobra"

const credsRenewalMessage = `
The admin role credentials are read from the .pgpass file in the
pass-dir directory. Passwords of both admin and normal roles will be
renewed and written to the .pgpass.new file which replaces the .pgpass
file after the new passwords are committed.`

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For fresh installation in a development or production environment,
the init-dev or init-prod may be used.`,
}

func init() {
	rootCmd.AddCommand(dbCmd)
}
