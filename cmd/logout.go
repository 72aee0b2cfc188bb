// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// logoutCmd removes the stored session from the configured store.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session",
	Long: `The logout command clears the stored platform session from the configured
session store. Running it when no session is stored succeeds.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(nil)
		if err != nil {
			return err
		}
		defer a.Close()

		a.start(cmd.Context())
		if _, err := a.machine.Logout(cmd.Context()); err != nil {
			return err
		}
		pterm.Success.Println("Session removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
