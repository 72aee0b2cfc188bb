// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cookies

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

const httpOnlyPrefix = "#HttpOnly_"

// ParseNetscapeFile reads a Netscape cookie export and keeps cookies that
// belong to domain.
func ParseNetscapeFile(path, domain string) ([]Cookie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open netscape cookie file: %w", err)
	}
	defer f.Close()
	return ParseNetscape(f, domain)
}

// ParseNetscape reads Netscape-format cookie lines from r. Comment lines are
// skipped except the #HttpOnly_ prefix; malformed lines and lines with a bad
// expiry are skipped silently. Expiry 0 marks a session cookie.
func ParseNetscape(r io.Reader, domain string) ([]Cookie, error) {
	var jar []Cookie
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		httpOnly := false
		switch {
		case strings.HasPrefix(line, httpOnlyPrefix):
			httpOnly = true
			line = line[len(httpOnlyPrefix):]
		case strings.HasPrefix(line, "#"):
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			continue
		}
		expiry, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			continue
		}
		if !MatchDomain(fields[0], domain) {
			continue
		}

		c := Cookie{
			Domain:   fields[0],
			Path:     fields[2],
			Secure:   strings.EqualFold(fields[3], "TRUE"),
			Name:     fields[5],
			Value:    fields[6],
			HttpOnly: httpOnly,
		}
		if expiry > 0 {
			c.Expiry = time.Unix(expiry, 0)
		}
		jar = append(jar, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read netscape cookie file: %w", err)
	}
	return jar, nil
}
