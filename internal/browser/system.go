// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package browser provides browsing surfaces for the interactive login:
// the operating system's default browser and a watcher over its cookie store.
package browser

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/pterm/pterm"

	"lensfolio/cli/internal/logging"
)

// System opens the login page in the user's default browser. The browser
// process is not owned by us, so Close only records that the attempt ended.
type System struct {
	Logger *pterm.Logger

	goos  string
	start func(*exec.Cmd) error
}

// NewSystem returns a System surface for the running OS.
func NewSystem(logger *pterm.Logger) *System {
	if logger == nil {
		logger = logging.Discard()
	}
	return &System{Logger: logger, goos: runtime.GOOS, start: (*exec.Cmd).Start}
}

// Open launches the default browser on loginURL without waiting for it.
func (s *System) Open(ctx context.Context, loginURL string) error {
	cmd := commandFor(s.goos, loginURL)
	if err := s.start(cmd); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	s.Logger.Debug("browser opened", s.Logger.Args("command", cmd.Path))
	return nil
}

// Close is a no-op; the user closes the browser window.
func (s *System) Close() error {
	s.Logger.Trace("login surface released")
	return nil
}

// commandFor builds the platform opener for url:
//   - Windows: rundll32 url.dll,FileProtocolHandler
//   - macOS: open
//   - everything else: xdg-open
func commandFor(goos, url string) *exec.Cmd {
	switch goos {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		return exec.Command("open", url)
	default:
		return exec.Command("xdg-open", url)
	}
}
