// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth is the single authority for "are we authenticated".
//
// A Machine combines the cookie extractor, the challenge classifier and the
// session store into one serialized state machine. Browsing surfaces feed
// it navigation events, the network layer reads the current session and
// reports rejections, and the UI subscribes to state changes.
package auth

import (
	"github.com/google/uuid"

	"lensfolio/cli/internal/session"
)

// Status is the coarse authentication state.
type Status int

const (
	// Unauthenticated means no usable session.
	Unauthenticated Status = iota
	// Authenticating means a browsing surface is open and no session exists yet.
	Authenticating
	// Authenticated means a valid session is held and persisted.
	Authenticated
	// Challenged means the platform demands additional verification.
	Challenged
)

func (s Status) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Challenged:
		return "challenged"
	default:
		return "unauthenticated"
	}
}

// MarshalText renders the status name in JSON output.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// State is one fully-applied machine state.
type State struct {
	Status Status
	// Session is set when Authenticated, and in Challenged when a session
	// was held before the challenge.
	Session *session.Session
	// Attempt identifies the login attempt that produced this state.
	Attempt uuid.UUID
	// Reason is a short, log-safe description of the last transition.
	Reason string
}

func (s State) clone() State {
	if s.Session != nil {
		cp := *s.Session
		s.Session = &cp
	}
	return s
}

// same reports whether two states are indistinguishable to observers.
func (s State) same(o State) bool {
	if s.Status != o.Status || s.Attempt != o.Attempt {
		return false
	}
	if (s.Session == nil) != (o.Session == nil) {
		return false
	}
	return s.Session == nil || s.Session.Equal(*o.Session)
}
