// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the lensfolio command-line interface. Each subcommand
// drives the authentication state machine: login through the system browser,
// feed navigation events by hand or from a script, inspect the stored session
// and clear it.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lensfolio/cli/internal/hints"
	"lensfolio/cli/internal/terminal"
)

var (
	showVersion  bool
	configPath   string
	verbose      bool
	storeBackend string
	interactive  bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "lensfolio",
	Short:         "Acquire and validate a platform session",
	Long:          `Lensfolio captures a platform session from an interactive browser login, detects verification challenges and keeps the session in the OS keychain or another configured store.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		interactive = terminal.Configure()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("lensfolio %s\n", Version)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		hints.Print(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/lensfolio/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", "", "Session store backend: keyring, file, redis or memory")
}
