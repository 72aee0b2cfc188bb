// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"lensfolio/cli/internal/cookies"
	"lensfolio/cli/internal/detect"
	"lensfolio/cli/internal/logging"
	"lensfolio/cli/internal/session"
	"lensfolio/cli/internal/sessionstore"
)

// ErrNotStarted is returned by transitions attempted before Start has
// rehydrated the stored session.
var ErrNotStarted = errors.New("auth: machine not started")

// Options wire a Machine to its collaborators.
type Options struct {
	Store      sessionstore.Store
	Classifier *detect.Classifier
	// Surface defaults to NopSurface.
	Surface Surface
	// LoginURL is handed to Surface.Open.
	LoginURL string
	// Logger defaults to a discarding logger.
	Logger *pterm.Logger
}

// Machine is the process-wide authentication state machine. All
// transitions are serialized by one mutex and storage I/O completes before
// a transition is applied, so readers and observers only ever see
// fully-applied states.
type Machine struct {
	mu          sync.Mutex
	store       sessionstore.Store
	classifier  *detect.Classifier
	surface     Surface
	surfaceOpen bool
	loginURL    string
	log         *pterm.Logger

	state   State
	started bool
	closed  bool
	notify  *notifier
}

// NewMachine constructs a Machine in the Unauthenticated state. Call Start
// to rehydrate the persisted session; transitions fail with ErrNotStarted
// until then.
func NewMachine(opts Options) (*Machine, error) {
	if opts.Store == nil {
		return nil, errors.New("auth: session store is required")
	}
	if opts.Classifier == nil {
		return nil, errors.New("auth: classifier is required")
	}
	if opts.Surface == nil {
		opts.Surface = NopSurface{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Machine{
		store:      opts.Store,
		classifier: opts.Classifier,
		surface:    opts.Surface,
		loginURL:   opts.LoginURL,
		log:        opts.Logger,
		state:      State{Status: Unauthenticated},
		notify:     newNotifier(),
	}, nil
}

// Start loads the persisted session and starts observer dispatch. A load
// failure is returned but leaves the machine usable in Unauthenticated.
func (m *Machine) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return nil
	}
	m.started = true
	m.notify.start()

	s, ok, err := m.store.Load(ctx)
	switch {
	case err != nil:
		m.log.Warn("session rehydrate failed, starting unauthenticated", m.log.Args("error", logging.Mask(err.Error())))
		m.forceLocked(State{Status: Unauthenticated, Reason: "session store load failed"})
		return fmt.Errorf("rehydrate session: %w", err)
	case ok:
		m.log.Debug("session rehydrated", m.log.Args("user_id", s.UserID, "captured_at", s.CapturedAt))
		m.forceLocked(State{Status: Authenticated, Session: &s, Reason: "session rehydrated"})
	default:
		m.forceLocked(State{Status: Unauthenticated, Reason: "no stored session"})
	}
	return nil
}

// Close closes an open surface and stops observer dispatch after the
// queued states are delivered.
func (m *Machine) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	err := m.closeSurfaceLocked()
	m.mu.Unlock()

	m.notify.stop()
	return err
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// CurrentSession returns the session to attach to outgoing requests. It
// only yields a session while Authenticated.
func (m *Machine) CurrentSession() (session.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Status != Authenticated || m.state.Session == nil {
		return session.Session{}, false
	}
	return *m.state.Session, true
}

// Subscribe registers fn for every applied state change. Calls happen in
// transition order on a dispatcher goroutine. The returned func unsubscribes.
func (m *Machine) Subscribe(fn func(State)) func() {
	return m.notify.subscribe(fn)
}

// BeginLogin starts a login attempt and opens the surface. It is a no-op
// while already Authenticating and ignored while Authenticated.
func (m *Machine) BeginLogin(ctx context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return m.state.clone(), ErrNotStarted
	}

	switch m.state.Status {
	case Unauthenticated, Challenged:
		m.beginLocked(ctx)
	default:
		m.log.Debug("login request ignored", m.log.Args("state", m.state.Status.String()))
	}
	return m.state.clone(), nil
}

// OnNavigationCompleted classifies one navigation and applies the resulting
// transition. Only persistence failures are returned as errors.
func (m *Machine) OnNavigationCompleted(ctx context.Context, nav Navigation) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return m.state.clone(), ErrNotStarted
	}

	if nav.Attempt != uuid.Nil && nav.Attempt != m.state.Attempt {
		m.log.Debug("navigation from stale attempt discarded", m.log.Args("attempt", nav.Attempt.String()))
		return m.state.clone(), nil
	}
	if m.state.Status == Unauthenticated {
		m.log.Trace("navigation ignored while unauthenticated")
		return m.state.clone(), nil
	}

	res := m.classifier.Classify(detect.Signal{URL: nav.URL, Cookies: nav.Cookies, Body: nav.Body})
	m.log.Debug("navigation classified", m.log.Args(
		"state", m.state.Status.String(),
		"class", res.Class.String(),
		"reason", res.Reason,
		"cookies", cookies.Names(nav.Cookies),
	))

	switch m.state.Status {
	case Authenticating:
		switch res.Class {
		case detect.Valid:
			return m.authenticateLocked(ctx, res.Session, "login completed")
		case detect.Challenged:
			m.applyLocked(State{Status: Challenged, Attempt: m.state.Attempt, Reason: res.Reason})
		}
	case Authenticated:
		switch res.Class {
		case detect.Challenged:
			// The session is kept: the challenge may be transient.
			m.applyLocked(State{Status: Challenged, Session: m.state.Session, Attempt: m.state.Attempt, Reason: res.Reason})
		case detect.Valid:
			if m.state.Session == nil || !res.Session.SameTokens(*m.state.Session) {
				return m.authenticateLocked(ctx, res.Session, "session rotated")
			}
		}
	case Challenged:
		if res.Class == detect.Valid {
			return m.authenticateLocked(ctx, res.Session, "challenge resolved")
		}
	}
	return m.state.clone(), nil
}

// CancelLogin abandons the current attempt; events still in flight for it
// are discarded.
func (m *Machine) CancelLogin(ctx context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return m.state.clone(), ErrNotStarted
	}

	if m.state.Status != Authenticating {
		return m.state.clone(), nil
	}
	m.closeSurfaceQuietLocked()
	m.applyLocked(State{Status: Unauthenticated, Reason: "login cancelled"})
	return m.state.clone(), nil
}

// DismissChallenge leaves Challenged. With relogin a new attempt starts.
func (m *Machine) DismissChallenge(ctx context.Context, relogin bool) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return m.state.clone(), ErrNotStarted
	}

	if m.state.Status != Challenged {
		return m.state.clone(), nil
	}
	if relogin {
		m.beginLocked(ctx)
		return m.state.clone(), nil
	}
	m.closeSurfaceQuietLocked()
	m.applyLocked(State{Status: Unauthenticated, Reason: "challenge dismissed"})
	return m.state.clone(), nil
}

// ReportAuthFailure is called by the network layer when a request was
// rejected as unauthenticated. The rejection is authoritative: the state
// drops to Unauthenticated even if clearing the store fails.
func (m *Machine) ReportAuthFailure(ctx context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return m.state.clone(), ErrNotStarted
	}

	if m.state.Status != Authenticated {
		m.log.Debug("auth failure report ignored", m.log.Args("state", m.state.Status.String()))
		return m.state.clone(), nil
	}
	err := m.store.Clear(ctx)
	m.applyLocked(State{Status: Unauthenticated, Reason: "session rejected by platform"})
	if err != nil {
		m.log.Error("clear rejected session", m.log.Args("error", logging.Mask(err.Error())))
		return m.state.clone(), fmt.Errorf("clear rejected session: %w", err)
	}
	return m.state.clone(), nil
}

// Logout clears the persisted session from any state.
func (m *Machine) Logout(ctx context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return m.state.clone(), ErrNotStarted
	}

	err := m.store.Clear(ctx)
	m.closeSurfaceQuietLocked()
	m.applyLocked(State{Status: Unauthenticated, Reason: "logged out"})
	if err != nil {
		m.log.Error("clear session on logout", m.log.Args("error", logging.Mask(err.Error())))
		return m.state.clone(), fmt.Errorf("clear session: %w", err)
	}
	return m.state.clone(), nil
}

func (m *Machine) beginLocked(ctx context.Context) {
	m.applyLocked(State{Status: Authenticating, Attempt: uuid.New(), Reason: "login initiated"})
	if m.surfaceOpen {
		return
	}
	if err := m.surface.Open(ctx, m.loginURL); err != nil {
		m.log.Warn("open browsing surface", m.log.Args("error", logging.Mask(err.Error())))
		return
	}
	m.surfaceOpen = true
}

func (m *Machine) authenticateLocked(ctx context.Context, s session.Session, reason string) (State, error) {
	if err := m.store.Save(ctx, s); err != nil {
		m.log.Error("persist session", m.log.Args("error", logging.Mask(err.Error())))
		return m.state.clone(), fmt.Errorf("persist session: %w", err)
	}
	m.applyLocked(State{Status: Authenticated, Session: &s, Attempt: m.state.Attempt, Reason: reason})
	m.closeSurfaceQuietLocked()
	m.log.Info("authenticated", m.log.Args("user_id", s.UserID, "reason", reason))
	return m.state.clone(), nil
}

// applyLocked installs next and queues it for observers unless nothing
// observable changed.
func (m *Machine) applyLocked(next State) {
	if m.state.same(next) {
		return
	}
	m.forceLocked(next)
}

func (m *Machine) forceLocked(next State) {
	prev := m.state.Status
	m.state = next.clone()
	m.log.Debug("state changed", m.log.Args("from", prev.String(), "to", next.Status.String(), "reason", next.Reason))
	m.notify.push(m.state.clone())
}

func (m *Machine) closeSurfaceLocked() error {
	if !m.surfaceOpen {
		return nil
	}
	m.surfaceOpen = false
	return m.surface.Close()
}

func (m *Machine) closeSurfaceQuietLocked() {
	if err := m.closeSurfaceLocked(); err != nil {
		m.log.Warn("close browsing surface", m.log.Args("error", logging.Mask(err.Error())))
	}
}
