// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// It provides machine-readable error kinds alongside human-friendly messages so
// callers can branch on the category (storage unavailable vs. corrupt record)
// while still wrapping the underlying cause.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// StorageUnavailable indicates the session backend could not be reached.
	StorageUnavailable Kind = "storage_unavailable"
	// StorageCorrupt indicates the persisted session record failed validation.
	StorageCorrupt Kind = "storage_corrupt"
	// InvalidSession indicates an attempt to persist an incomplete session.
	InvalidSession Kind = "invalid_session"
	// ConfigInvalid indicates a configuration value that cannot be used.
	ConfigInvalid Kind = "config_invalid"
	// CookieImportFailed indicates a browser cookie store could not be read.
	CookieImportFailed Kind = "cookie_import_failed"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *E) Unwrap() error { return e.Err }

// Is matches another *E by kind, so errors.Is(err, errors.New(kind, "")) works.
func (e *E) Is(target error) bool {
	t, ok := target.(*E)
	return ok && t.Kind == e.Kind
}

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the kind of the first *E in err's chain, or "".
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}
