// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides the structured logger and helpers for secure
// logging and error presentation.
//
// Mask removes credential values (platform session cookies, tokens,
// passwords) from strings before they are logged or shown to users.
package logging

import (
	"regexp"
)

var (
	rePassword = regexp.MustCompile(`(?i)(password=)([^\s;&]+)`)
	reToken    = regexp.MustCompile(`(?i)\b(token=|bearer\s+)([A-Za-z0-9._%-]+)`)
	reSession  = regexp.MustCompile(`(?i)\b(sessionid=)([^\s;&]+)`)
	reUserID   = regexp.MustCompile(`(?i)\b(ds_user_id=)([^\s;&]+)`)
	reSealKey  = regexp.MustCompile(`(?i)(seal_key["=:\s]+")([0-9a-f]+)`)
)

// Mask replaces sensitive values in s with "***".
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "$1***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reSession.ReplaceAllString(out, "$1***")
	out = reUserID.ReplaceAllString(out, "$1***")
	out = reSealKey.ReplaceAllString(out, "$1***")
	return out
}
