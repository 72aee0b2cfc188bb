// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"lensfolio/cli/internal/auth"
	"lensfolio/cli/internal/cookies"
)

// Script actions. An empty action is a navigation.
const (
	actionNavigate      = "navigate"
	actionBegin         = "begin"
	actionCancel        = "cancel"
	actionDismiss       = "dismiss"
	actionRelogin       = "relogin"
	actionReportFailure = "report_failure"
	actionLogout        = "logout"
)

type scriptCookie struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain,omitempty"`
	Path   string `json:"path,omitempty"`
}

// scriptStep is one JSON line of a replay script.
type scriptStep struct {
	Action  string         `json:"action,omitempty"`
	URL     string         `json:"url,omitempty"`
	Cookies []scriptCookie `json:"cookies,omitempty"`
	Body    string         `json:"body,omitempty"`
}

func (s scriptStep) navigation(domain string) auth.Navigation {
	jar := make([]cookies.Cookie, 0, len(s.Cookies))
	for _, c := range s.Cookies {
		d := c.Domain
		if d == "" {
			d = domain
		}
		jar = append(jar, cookies.Cookie{Name: c.Name, Value: c.Value, Domain: d, Path: c.Path})
	}
	nav := auth.Navigation{URL: s.URL, Cookies: jar}
	if s.Body != "" {
		nav.Body = []byte(s.Body)
	}
	return nav
}

// navigate feeds nav to m, starting a login first when none is running.
func navigate(ctx context.Context, m *auth.Machine, nav auth.Navigation) (auth.State, error) {
	if m.State().Status == auth.Unauthenticated {
		if _, err := m.BeginLogin(ctx); err != nil {
			return m.State(), err
		}
	}
	return m.OnNavigationCompleted(ctx, nav)
}

func applyStep(ctx context.Context, m *auth.Machine, domain string, s scriptStep) (auth.State, error) {
	switch strings.ToLower(s.Action) {
	case "", actionNavigate:
		return navigate(ctx, m, s.navigation(domain))
	case actionBegin:
		return m.BeginLogin(ctx)
	case actionCancel:
		return m.CancelLogin(ctx)
	case actionDismiss:
		return m.DismissChallenge(ctx, false)
	case actionRelogin:
		return m.DismissChallenge(ctx, true)
	case actionReportFailure:
		return m.ReportAuthFailure(ctx)
	case actionLogout:
		return m.Logout(ctx)
	default:
		return m.State(), fmt.Errorf("unknown action %q", s.Action)
	}
}

// runScript applies each JSON line from r in order and writes the
// resulting state per step to w. Blank lines and # comments are skipped.
func runScript(ctx context.Context, m *auth.Machine, domain string, r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var step scriptStep
		if err := json.Unmarshal([]byte(text), &step); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		st, err := applyStep(ctx, m, domain, step)
		if werr := writeStateJSON(w, st); werr != nil {
			return werr
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return sc.Err()
}
