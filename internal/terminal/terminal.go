// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package terminal adapts pterm output to the attached terminal.
package terminal

import (
	"os"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Configure disables colors and styling when stdout is not a terminal or
// NO_COLOR is set, so piped output stays plain. It reports whether
// interactive rendering (spinners) should be used.
func Configure() bool {
	interactive := IsTTY(os.Stdout)
	apply(interactive, os.Getenv("NO_COLOR") != "")
	return interactive
}

func apply(interactive, noColor bool) {
	if !interactive {
		pterm.DisableStyling()
		return
	}
	pterm.EnableStyling()
	if noColor {
		pterm.DisableColor()
	}
}
