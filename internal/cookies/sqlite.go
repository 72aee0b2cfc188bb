// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cookies

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// chromeEpochOffset is the number of seconds between 1601-01-01 and the
// Unix epoch. Chrome stores times as microseconds since 1601.
const chromeEpochOffset int64 = 11_644_473_600

func chromeToTime(usec int64) time.Time {
	if usec <= 0 {
		return time.Time{}
	}
	return time.Unix(usec/1_000_000-chromeEpochOffset, 0)
}

func openImmutable(path string) (*sql.DB, error) {
	return sql.Open("sqlite", fmt.Sprintf("file:%s?immutable=1", path))
}

// domainArgs returns the exact, dot-form and LIKE wildcard values used to
// pre-filter rows by host. MatchDomain is still applied to each row.
func domainArgs(domain string) (string, string, string) {
	d := strings.ToLower(strings.TrimPrefix(domain, "."))
	return d, "." + d, "%." + d
}

// ParseFirefox reads cookies for domain from a Firefox cookies.sqlite copy.
func ParseFirefox(dbPath, domain string) ([]Cookie, error) {
	db, err := openImmutable(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open firefox cookie database: %w", err)
	}
	defer db.Close()

	exact, dot, like := domainArgs(domain)
	rows, err := db.Query(`
        SELECT name, value, host, path, expiry, isSecure, isHttpOnly
        FROM moz_cookies
        WHERE host = ? OR host = ? OR host LIKE ?
        ORDER BY id ASC
    `, exact, dot, like)
	if err != nil {
		return nil, fmt.Errorf("query firefox cookies: %w", err)
	}
	defer rows.Close()

	var jar []Cookie
	for rows.Next() {
		var (
			c              Cookie
			expiry         int64
			secure, httpOn int
		)
		if err := rows.Scan(&c.Name, &c.Value, &c.Domain, &c.Path, &expiry, &secure, &httpOn); err != nil {
			return nil, fmt.Errorf("scan firefox cookie row: %w", err)
		}
		if !MatchDomain(c.Domain, domain) {
			continue
		}
		// Newer Firefox builds store expiry in milliseconds.
		if expiry > 1e12 {
			expiry /= 1000
		}
		if expiry > 0 {
			c.Expiry = time.Unix(expiry, 0)
		}
		c.Secure, c.HttpOnly = secure != 0, httpOn != 0
		jar = append(jar, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate firefox cookie rows: %w", err)
	}
	return jar, nil
}

// ParseChrome reads unencrypted cookies for domain from a Chrome Cookies
// copy. Encrypted values (value = '') are skipped.
func ParseChrome(dbPath, domain string) ([]Cookie, error) {
	db, err := openImmutable(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open chrome cookie database: %w", err)
	}
	defer db.Close()

	exact, dot, like := domainArgs(domain)
	rows, err := db.Query(`
        SELECT name, value, host_key, path, expires_utc, is_secure, is_httponly
        FROM cookies
        WHERE (host_key = ? OR host_key = ? OR host_key LIKE ?)
          AND value != ''
        ORDER BY creation_utc ASC
    `, exact, dot, like)
	if err != nil {
		return nil, fmt.Errorf("query chrome cookies: %w", err)
	}
	defer rows.Close()

	var jar []Cookie
	for rows.Next() {
		var (
			c              Cookie
			expires        int64
			secure, httpOn int
		)
		if err := rows.Scan(&c.Name, &c.Value, &c.Domain, &c.Path, &expires, &secure, &httpOn); err != nil {
			return nil, fmt.Errorf("scan chrome cookie row: %w", err)
		}
		if !MatchDomain(c.Domain, domain) {
			continue
		}
		c.Expiry = chromeToTime(expires)
		c.Secure, c.HttpOnly = secure != 0, httpOn != 0
		jar = append(jar, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chrome cookie rows: %w", err)
	}
	return jar, nil
}
