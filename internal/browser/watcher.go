// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package browser

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"lensfolio/cli/internal/auth"
	"lensfolio/cli/internal/cookies"
	"lensfolio/cli/internal/logging"
)

// DefaultInterval is the cookie store poll period.
const DefaultInterval = 3 * time.Second

// Watcher polls a browser profile's cookie store while the user logs in and
// reports the platform jar as a navigation event on every poll.
type Watcher struct {
	// Path is the cookie store (cookies.sqlite, Cookies or cookies.txt).
	Path   string
	Domain string
	// Attempt is stamped on each emitted navigation.
	Attempt  uuid.UUID
	Interval time.Duration
	Logger   *pterm.Logger
}

// Run polls immediately and then every Interval, passing each navigation
// to handler. It returns nil once handler returns true, or ctx.Err() when
// ctx is done. Import failures are logged and the next poll retries.
func (w *Watcher) Run(ctx context.Context, handler func(auth.Navigation) bool) error {
	if w.Path == "" {
		return errors.New("browser: cookie store path is required")
	}
	log := w.Logger
	if log == nil {
		log = logging.Discard()
	}
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if w.poll(log, handler) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *Watcher) poll(log *pterm.Logger, handler func(auth.Navigation) bool) bool {
	jar, src, err := cookies.ImportCookies(w.Path, w.Domain)
	if err != nil {
		log.Debug("cookie store not readable yet", log.Args("path", w.Path, "error", logging.Mask(err.Error())))
		return false
	}
	log.Trace("cookie store polled", log.Args("format", src.Format.String(), "cookies", cookies.Names(jar)))
	return handler(auth.Navigation{Attempt: w.Attempt, Cookies: jar})
}
