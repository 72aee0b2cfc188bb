// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var statusJSON bool

// statusCmd rehydrates the stored session and prints the resulting state.
var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"whoami"},
	Short:   "Show the current authentication state",
	Long: `The status command loads the stored session and shows whether you are
logged in, the platform user id and when the session was captured. The
session token itself is never printed.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(nil)
		if err != nil {
			return err
		}
		defer a.Close()

		a.start(cmd.Context())
		st := a.machine.State()
		if statusJSON {
			return writeStateJSON(os.Stdout, st)
		}
		renderState(st)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Print the state as JSON")
}
