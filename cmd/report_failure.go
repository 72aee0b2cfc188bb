// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"lensfolio/cli/internal/auth"
)

// reportFailureCmd is the hook for network clients that got an
// unauthenticated response while using the stored session.
var reportFailureCmd = &cobra.Command{
	Use:   "report-failure",
	Short: "Report that the platform rejected the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(nil)
		if err != nil {
			return err
		}
		defer a.Close()

		a.start(cmd.Context())
		before := a.machine.State().Status
		if _, err := a.machine.ReportAuthFailure(cmd.Context()); err != nil {
			return err
		}
		if before == auth.Authenticated {
			pterm.Warning.Println("Session rejected and removed. Run 'lensfolio login' to log in again.")
			return nil
		}
		pterm.Info.Println("No active session; nothing to do.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportFailureCmd)
}
