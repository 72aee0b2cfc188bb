// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cookies

import (
	"strings"
	"time"

	"lensfolio/cli/internal/session"
)

// Default credential cookie names set by the platform after login.
const (
	DefaultSessionCookie = "sessionid"
	DefaultUserCookie    = "ds_user_id"
)

// Extractor pulls a Session out of a cookie jar.
type Extractor struct {
	// Domain is the platform root domain, e.g. "instagram.com".
	Domain        string
	SessionCookie string
	UserCookie    string
	// Now stamps CapturedAt and drops expired cookies. Defaults to time.Now.
	Now func() time.Time
}

// NewExtractor returns an Extractor for domain with the default cookie names.
func NewExtractor(domain string) *Extractor {
	return &Extractor{
		Domain:        domain,
		SessionCookie: DefaultSessionCookie,
		UserCookie:    DefaultUserCookie,
	}
}

func (e *Extractor) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Extract returns the session carried by jar, or false when either
// credential cookie is missing or empty. Absence is the normal state while
// a login is still in progress and is not an error.
func (e *Extractor) Extract(jar []Cookie) (session.Session, bool) {
	now := e.now()
	var sid, uid string
	for _, c := range e.Filter(jar) {
		if c.Expired(now) || strings.TrimSpace(c.Value) == "" {
			continue
		}
		// Later entries win: browsers append the newest cookie.
		switch c.Name {
		case e.SessionCookie:
			sid = c.Value
		case e.UserCookie:
			uid = c.Value
		}
	}
	s := session.Session{SessionID: sid, UserID: uid, CapturedAt: now}
	if !s.Valid() {
		return session.Session{}, false
	}
	return s, true
}

// Filter returns the cookies that belong to the extractor's domain.
func (e *Extractor) Filter(jar []Cookie) []Cookie {
	var out []Cookie
	for _, c := range jar {
		if MatchDomain(c.Domain, e.Domain) {
			out = append(out, c)
		}
	}
	return out
}

// Missing returns the credential cookie names absent (or blank) in jar.
// Safe to log.
func (e *Extractor) Missing(jar []Cookie) []string {
	now := e.now()
	seen := map[string]bool{}
	for _, c := range e.Filter(jar) {
		if strings.TrimSpace(c.Value) != "" && !c.Expired(now) {
			seen[c.Name] = true
		}
	}
	var missing []string
	for _, name := range []string{e.SessionCookie, e.UserCookie} {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// MatchDomain reports whether cookieDomain belongs to domain: exact match,
// dot-prefixed match, or a subdomain of it. Comparison is case-insensitive.
func MatchDomain(cookieDomain, domain string) bool {
	cd := strings.ToLower(strings.TrimSpace(cookieDomain))
	d := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(domain), "."))
	if cd == "" || d == "" {
		return false
	}
	dot := "." + d
	return cd == d || cd == dot || strings.HasSuffix(cd, dot)
}
