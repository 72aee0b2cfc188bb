// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package hints turns store, config and cookie import failures into
// user-facing troubleshooting advice.
package hints

import (
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/pterm/pterm"

	apperrors "lensfolio/cli/internal/errors"
	"lensfolio/cli/internal/logging"
)

// Cause is the network-level cause of a failure, if any.
type Cause int

const (
	CauseNone Cause = iota
	CauseTimeout
	CauseDNS
	CauseRefused
	CauseTLS
)

// NetworkCause inspects err for a network failure, as returned by the
// redis backend.
func NetworkCause(err error) Cause {
	switch {
	case err == nil:
		return CauseNone
	case isTimeout(err):
		return CauseTimeout
	case isDNS(err):
		return CauseDNS
	case isRefused(err):
		return CauseRefused
	case isTLS(err):
		return CauseTLS
	}
	return CauseNone
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "i/o timeout") || strings.Contains(s, "deadline exceeded")
}

func isDNS(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isRefused(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isTLS(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "tls") || strings.Contains(s, "certificate") || strings.Contains(s, "handshake")
}

// Advice is a headline plus suggestions.
type Advice struct {
	Title string
	Tips  []string
}

// Explain returns advice for err, or false when there is nothing more
// useful to say than the error itself.
func Explain(err error) (Advice, bool) {
	if err == nil {
		return Advice{}, false
	}
	switch apperrors.KindOf(err) {
	case apperrors.StorageUnavailable:
		return storageAdvice(err), true
	case apperrors.StorageCorrupt:
		return Advice{
			Title: "The stored session record is damaged",
			Tips: []string{
				"Run 'lensfolio logout' to discard it",
				"Then run 'lensfolio login' to capture a fresh session",
			},
		}, true
	case apperrors.ConfigInvalid:
		return Advice{
			Title: "The configuration is invalid",
			Tips: []string{
				"Check config.json in $XDG_CONFIG_HOME/lensfolio (or the --config file)",
				"Check LENSFOLIO_* environment variables and any .env file",
			},
		}, true
	case apperrors.CookieImportFailed:
		return Advice{
			Title: "The browser cookie store could not be read",
			Tips: []string{
				"Point --cookies at cookies.sqlite (Firefox), Cookies (Chrome) or a cookies.txt export",
				"Close the browser if it holds an exclusive lock on the file",
			},
		}, true
	}
	return Advice{}, false
}

func storageAdvice(err error) Advice {
	switch NetworkCause(err) {
	case CauseTimeout:
		return Advice{Title: "The session store timed out", Tips: []string{"Check that the redis server is reachable", "Try again in a few moments"}}
	case CauseDNS:
		return Advice{Title: "Cannot resolve the session store address", Tips: []string{"Check store.redis_addr", "Check your DNS settings"}}
	case CauseRefused:
		return Advice{Title: "The session store refused the connection", Tips: []string{"Check that redis is running on store.redis_addr", "Check firewall rules for that port"}}
	case CauseTLS:
		return Advice{Title: "Secure connection to the session store failed", Tips: []string{"Check the server certificate", "Check your system date and time"}}
	}
	return Advice{
		Title: "The session store is unavailable",
		Tips: []string{
			"Unlock your OS keychain, or choose another backend with --store",
			"On headless Linux set LENSFOLIO_STORE_KEYRING_PASSWORD to use the encrypted file keyring",
		},
	}
}

// Print shows the advice for err with pterm. Errors without advice are
// printed masked.
func Print(err error) {
	adv, ok := Explain(err)
	if !ok {
		pterm.Error.Println(logging.PresentError("Error", err))
		return
	}
	pterm.Error.Println(adv.Title)
	for _, tip := range adv.Tips {
		pterm.Println("  • " + tip)
	}
	pterm.Debug.Println(logging.PresentError("details", err))
}
