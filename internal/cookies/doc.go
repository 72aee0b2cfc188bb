// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cookies turns cookie jar snapshots from a browsing surface into
// platform sessions.
//
// The Extractor filters a jar to the platform domain and pulls the two
// credential cookies that make up a session. The import helpers read the
// same jar from a local browser profile (Firefox and Chrome sqlite stores,
// Netscape text exports) so a regular browser can act as the login surface.
//
// Cookie values are never logged and never formatted into errors. Only
// names and domains may appear in debug output.
package cookies
