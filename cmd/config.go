// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"lensfolio/cli/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

// configInitCmd writes the built-in defaults so they can be edited.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `The init command writes the built-in configuration to the config file
(--config, or the default location). The --store flag sets the session store
backend in the written file. An existing file is kept unless --force is given.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}
		if err := writeDefaultConfig(path, storeBackend, configForce); err != nil {
			return err
		}
		pterm.Success.Printfln("Config written to %s", path)
		return nil
	},
}

// writeDefaultConfig saves config.Default to path, with backend overriding
// the store backend when set.
func writeDefaultConfig(path, backend string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	c := config.Default()
	if backend != "" {
		c.Store.Backend = backend
	}
	if err := c.Validate(); err != nil {
		return err
	}
	return config.Save(path, c)
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
}
