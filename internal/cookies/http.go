// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cookies

import (
	"fmt"
	"net/http"
	"strings"
)

// FromHTTP converts net/http cookies into jar entries. Cookies returned by
// a cookiejar.Jar carry no domain, so defaultDomain fills it in.
func FromHTTP(in []*http.Cookie, defaultDomain string) []Cookie {
	out := make([]Cookie, 0, len(in))
	for _, c := range in {
		if c == nil {
			continue
		}
		domain := c.Domain
		if domain == "" {
			domain = defaultDomain
		}
		out = append(out, Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   domain,
			Path:     c.Path,
			Expiry:   c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		})
	}
	return out
}

// ParseHeader parses a Cookie request header ("a=1; b=2") into jar entries
// on domain.
func ParseHeader(header, domain string) ([]Cookie, error) {
	parsed, err := http.ParseCookie(strings.TrimSpace(header))
	if err != nil {
		return nil, fmt.Errorf("parse cookie header: %w", err)
	}
	return FromHTTP(parsed, domain), nil
}
