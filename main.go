// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package main is the entry point for the lensfolio CLI.
package main

import (
	"lensfolio/cli/cmd"
)

func main() {
	cmd.Execute()
}
