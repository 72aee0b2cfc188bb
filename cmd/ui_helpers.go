// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"lensfolio/cli/internal/auth"
)

// stateView is the log-safe rendering of a state. The session id is never
// included.
type stateView struct {
	Status     auth.Status `json:"status"`
	UserID     string      `json:"user_id,omitempty"`
	CapturedAt *time.Time  `json:"captured_at,omitempty"`
	Attempt    string      `json:"attempt,omitempty"`
	Reason     string      `json:"reason,omitempty"`
}

func viewOf(st auth.State) stateView {
	v := stateView{Status: st.Status, Reason: st.Reason}
	if st.Session != nil {
		v.UserID = st.Session.UserID
		if !st.Session.CapturedAt.IsZero() {
			t := st.Session.CapturedAt
			v.CapturedAt = &t
		}
	}
	if st.Status == auth.Authenticating || st.Status == auth.Challenged {
		v.Attempt = st.Attempt.String()
	}
	return v
}

// writeStateJSON writes one state per line.
func writeStateJSON(w io.Writer, st auth.State) error {
	return json.NewEncoder(w).Encode(viewOf(st))
}

// renderState prints a human-readable summary of st.
func renderState(st auth.State) {
	v := viewOf(st)
	switch st.Status {
	case auth.Authenticated:
		pterm.Success.Printfln("Logged in as user %s", v.UserID)
		if v.CapturedAt != nil {
			pterm.Info.Printfln("Session captured %s", v.CapturedAt.Local().Format(time.RFC1123))
		}
	case auth.Challenged:
		pterm.Warning.Println("The platform requires additional verification.")
		pterm.Info.Println("Complete the challenge in your browser, then run 'lensfolio login' again.")
	case auth.Authenticating:
		pterm.Info.Println("Login in progress")
	default:
		pterm.Info.Println("You're not logged in yet!")
		pterm.Info.Println("Run 'lensfolio login' to get started.")
	}
	if verbose && v.Reason != "" {
		pterm.Info.Printfln("Reason: %s", v.Reason)
	}
}

// spinner is an inline status line while interactive and plain info lines
// otherwise.
type spinner struct {
	mu      sync.Mutex
	sp      *pterm.SpinnerPrinter
	stopped bool
}

func startSpinner(text string) *spinner {
	if interactive {
		if sp, err := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start(text); err == nil {
			return &spinner{sp: sp}
		}
	}
	pterm.Info.Println(text)
	return &spinner{}
}

func (s *spinner) update(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if s.sp == nil {
		pterm.Info.Println(text)
		return
	}
	s.sp.UpdateText(text)
}

func (s *spinner) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.sp != nil {
		_ = s.sp.Stop()
	}
}
