// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"

	"github.com/google/uuid"

	"lensfolio/cli/internal/cookies"
)

// Surface is the browsing component that performs the interactive login.
// The machine opens it when a login starts and closes it once a session is
// captured, the attempt is cancelled or the user logs out.
type Surface interface {
	Open(ctx context.Context, loginURL string) error
	Close() error
}

// NopSurface is a Surface for headless drivers that feed navigations
// directly.
type NopSurface struct{}

func (NopSurface) Open(context.Context, string) error { return nil }
func (NopSurface) Close() error                         { return nil }

// Navigation is one navigation-completion event reported by a surface.
type Navigation struct {
	// Attempt ties the event to a login attempt. Events from an attempt
	// that is no longer current are discarded; uuid.Nil skips the check.
	Attempt uuid.UUID
	URL     string
	// Cookies is the full jar for the platform domain after the navigation.
	Cookies []cookies.Cookie
	Body    []byte
}
