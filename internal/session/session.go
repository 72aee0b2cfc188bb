// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session defines the authenticated platform session and its
// persisted record format.
//
// A Session is the pair of tokens (session id and user id) taken from the
// platform's cookie jar after a successful interactive login. Both tokens are
// credential-equivalent: callers must never log SessionID.
package session

import (
	"strings"
	"time"
)

// Session is an authenticated platform identity.
type Session struct {
	// SessionID is the opaque session token. SENSITIVE: never log.
	SessionID string
	// UserID is the platform-assigned user identifier.
	UserID string
	// CapturedAt is when the tokens were extracted from the cookie jar.
	CapturedAt time.Time
}

// Valid reports whether both tokens are present. A Session that is not valid
// must never be treated as authenticated.
func (s Session) Valid() bool {
	return strings.TrimSpace(s.SessionID) != "" && strings.TrimSpace(s.UserID) != ""
}

// SameTokens reports whether s and o carry the same session and user ids.
// CapturedAt is ignored.
func (s Session) SameTokens(o Session) bool {
	return s.SessionID == o.SessionID && s.UserID == o.UserID
}

// Equal reports whether s and o are the same session, comparing CapturedAt
// as an instant.
func (s Session) Equal(o Session) bool {
	return s.SameTokens(o) && s.CapturedAt.Equal(o.CapturedAt)
}
