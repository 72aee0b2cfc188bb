// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cookies

import "time"

// Format identifies the format of a browser cookie store.
type Format int

const (
	// FormatUnknown means the cookie store format could not be detected.
	FormatUnknown Format = iota
	// FormatFirefox is the Firefox moz_cookies SQLite schema.
	FormatFirefox
	// FormatChrome is the Chrome cookies SQLite schema. Only unencrypted
	// values are usable.
	FormatChrome
	// FormatNetscape is the tab-separated Netscape cookie file.
	FormatNetscape
)

// String returns the browser name for the format.
func (f Format) String() string {
	switch f {
	case FormatFirefox:
		return "Firefox"
	case FormatChrome:
		return "Chrome"
	case FormatNetscape:
		return "Netscape"
	default:
		return "unknown"
	}
}

// Cookie is a single HTTP cookie as seen by the browsing surface.
type Cookie struct {
	Name string
	// Value is the cookie value. SENSITIVE: never log.
	Value string
	// Domain may carry a leading dot for subdomain-inclusive cookies.
	Domain   string
	Path     string
	Expiry   time.Time
	Secure   bool
	HttpOnly bool
}

// Expired reports whether the cookie carries an explicit expiry before now.
func (c Cookie) Expired(now time.Time) bool {
	return !c.Expiry.IsZero() && c.Expiry.Unix() > 0 && c.Expiry.Before(now)
}

// Names returns the cookie names in jar order. Safe to log.
func Names(jar []Cookie) []string {
	names := make([]string, 0, len(jar))
	for _, c := range jar {
		names = append(names, c.Name)
	}
	return names
}
