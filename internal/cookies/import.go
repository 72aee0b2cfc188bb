// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cookies

import (
	"fmt"

	apperrors "lensfolio/cli/internal/errors"
)

// Source describes where a jar snapshot was read from.
type Source struct {
	Path   string
	Format Format
}

// ImportCookies reads the cookie jar for domain from a browser cookie store.
// SQLite stores are copied before reading. Failures carry the
// cookie_import_failed kind.
func ImportCookies(path, domain string) ([]Cookie, Source, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, Source{Path: path}, apperrors.Wrap(apperrors.CookieImportFailed, "detect cookie store", err)
	}
	src := Source{Path: path, Format: format}

	var jar []Cookie
	switch format {
	case FormatFirefox:
		jar, err = importSQLite(path, domain, ParseFirefox)
	case FormatChrome:
		jar, err = importSQLite(path, domain, ParseChrome)
	case FormatNetscape:
		jar, err = ParseNetscapeFile(path, domain)
	default:
		err = fmt.Errorf("unsupported cookie store at %s", path)
	}
	if err != nil {
		return nil, src, apperrors.Wrap(apperrors.CookieImportFailed, "read "+format.String()+" cookie store", err)
	}
	return jar, src, nil
}

func importSQLite(path, domain string, parse func(string, string) ([]Cookie, error)) ([]Cookie, error) {
	copied, cleanup, err := SafeCopy(path)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return parse(copied, domain)
}
