// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package detect classifies navigation-completion signals from the platform
// into valid, incomplete or challenged.
//
// Classification keys on URL paths and cookie presence, which are stable
// contracts, and only falls back to body markers when they are configured.
package detect

import (
	"bytes"
	"net/url"
	"path"
	"strings"

	"lensfolio/cli/internal/cookies"
	"lensfolio/cli/internal/session"
)

// Class is the outcome of classifying one signal.
type Class int

const (
	// Incomplete means the login flow is still in progress.
	Incomplete Class = iota
	// Valid means the jar carries a well-formed session.
	Valid
	// Challenged means the platform is showing a verification surface.
	Challenged
)

func (c Class) String() string {
	switch c {
	case Valid:
		return "valid"
	case Challenged:
		return "challenged"
	default:
		return "incomplete"
	}
}

// Signal is what the browsing surface observed after one navigation.
type Signal struct {
	URL     string
	Cookies []cookies.Cookie
	// Body is the rendered page, when the surface can supply it.
	Body []byte
}

// Result carries the class, the extracted session for Valid, and a short
// reason safe to log.
type Result struct {
	Class   Class
	Session session.Session
	Reason  string
}

// Rules configure how signals are classified.
type Rules struct {
	// ChallengePaths are path prefixes of checkpoint/verification pages.
	ChallengePaths []string
	// LoginPaths are path prefixes of the login form itself.
	LoginPaths []string
	// BodyMarkers are substrings that identify a challenge page body.
	BodyMarkers []string
}

// DefaultRules returns the rules for the platform's current web login.
func DefaultRules() Rules {
	return Rules{
		ChallengePaths: []string{"/challenge/", "/checkpoint/", "/accounts/suspended/", "/auth_platform/codeentry/"},
		LoginPaths:     []string{"/accounts/login", "/accounts/emailsignup"},
	}
}

// Classifier combines Rules with a cookie Extractor.
type Classifier struct {
	rules     Rules
	extractor *cookies.Extractor
}

// NewClassifier returns a Classifier. Path prefixes are normalized to
// lower case with a leading slash.
func NewClassifier(rules Rules, extractor *cookies.Extractor) *Classifier {
	return &Classifier{
		rules: Rules{
			ChallengePaths: normalizePrefixes(rules.ChallengePaths),
			LoginPaths:     normalizePrefixes(rules.LoginPaths),
			BodyMarkers:    nonEmpty(rules.BodyMarkers),
		},
		extractor: extractor,
	}
}

// Classify evaluates one signal. It never fails: an unparsable URL is
// treated as if no URL was given.
func (c *Classifier) Classify(sig Signal) Result {
	p, onPlatform := c.platformPath(sig.URL)

	if onPlatform {
		if prefix, ok := matchPrefix(p, c.rules.ChallengePaths); ok {
			return Result{Class: Challenged, Reason: "challenge path " + prefix}
		}
	}
	for _, m := range c.rules.BodyMarkers {
		if bytes.Contains(sig.Body, []byte(m)) {
			return Result{Class: Challenged, Reason: "challenge marker in body"}
		}
	}

	s, ok := c.extractor.Extract(sig.Cookies)
	if !ok {
		return Result{Class: Incomplete, Reason: "missing " + strings.Join(c.extractor.Missing(sig.Cookies), ",")}
	}
	if onPlatform {
		if _, ok := matchPrefix(p, c.rules.LoginPaths); ok {
			return Result{Class: Incomplete, Reason: "still on login form"}
		}
	}
	return Result{Class: Valid, Session: s, Reason: "session cookies present"}
}

// platformPath returns the cleaned, lower-cased path of raw and whether it
// belongs to the platform. Relative URLs count as platform URLs.
func (c *Classifier) platformPath(raw string) (string, bool) {
	if strings.TrimSpace(raw) == "" {
		return "", false
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	if u.Host != "" && !cookies.MatchDomain(u.Hostname(), c.extractor.Domain) {
		return "", false
	}
	p := u.EscapedPath()
	if p == "" {
		p = "/"
	}
	cleaned := path.Clean(strings.ToLower(p))
	if strings.HasSuffix(p, "/") && cleaned != "/" {
		cleaned += "/"
	}
	return cleaned, true
}

func matchPrefix(p string, prefixes []string) (string, bool) {
	for _, prefix := range prefixes {
		if strings.HasPrefix(p, prefix) {
			return prefix, true
		}
		// "/challenge/" also matches a bare "/challenge".
		if strings.HasSuffix(prefix, "/") && p == strings.TrimSuffix(prefix, "/") {
			return prefix, true
		}
	}
	return "", false
}

func normalizePrefixes(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		out = append(out, p)
	}
	return out
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
