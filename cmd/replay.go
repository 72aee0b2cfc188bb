// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

// replayCmd feeds a recorded navigation script through the state machine.
var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Replay a JSON-lines navigation script",
	Long: `The replay command reads one JSON object per line and applies it to the
authentication state machine, printing the resulting state after each step.

A navigation step looks like:
  {"url": "https://www.instagram.com/", "cookies": [{"name": "sessionid", "value": "abc"}]}

Steps may instead carry an "action": begin, cancel, dismiss, relogin,
report_failure or logout. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = os.Stdin
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		a, err := loadApp(nil)
		if err != nil {
			return err
		}
		defer a.Close()

		a.start(cmd.Context())
		return runScript(cmd.Context(), a.machine, a.cfg.Platform.Domain, in, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
