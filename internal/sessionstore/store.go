// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package sessionstore persists the canonical platform session.
//
// Every backend stores a single versioned record (see session.Encode) and
// replaces it atomically: a reader either sees the previous record or the
// new one, never a partial write. The record is credential-equivalent.
package sessionstore

import (
	"context"
	"errors"
	"fmt"

	apperrors "lensfolio/cli/internal/errors"
	"lensfolio/cli/internal/session"
)

// Store owns the persisted session record.
type Store interface {
	// Save replaces the stored session. Invalid sessions are rejected.
	Save(ctx context.Context, s session.Session) error
	// Load returns the stored session. Nothing stored yields (zero, false, nil).
	Load(ctx context.Context) (session.Session, bool, error)
	// Clear removes the stored session. Clearing an empty store succeeds.
	Clear(ctx context.Context) error
}

// Sentinel errors. They match any error of the same kind via errors.Is.
var (
	ErrUnavailable    = apperrors.New(apperrors.StorageUnavailable, "session store unavailable")
	ErrCorrupt        = apperrors.New(apperrors.StorageCorrupt, "stored session record is corrupt")
	ErrInvalidSession = apperrors.New(apperrors.InvalidSession, "session is missing session_id or user_id")
)

func unavailable(op string, err error) error {
	return apperrors.Wrap(apperrors.StorageUnavailable, op, err)
}

// encodeRecord validates s and returns its record bytes.
func encodeRecord(s session.Session) ([]byte, error) {
	if !s.Valid() {
		return nil, ErrInvalidSession
	}
	data, err := session.Encode(s)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.InvalidSession, "encode session", err)
	}
	return data, nil
}

// decodeRecord turns raw record bytes into a session; any failure is ErrCorrupt.
func decodeRecord(data []byte) (session.Session, bool, error) {
	s, err := session.Decode(data)
	if err != nil {
		return session.Session{}, false, apperrors.Wrap(apperrors.StorageCorrupt, "decode session record", err)
	}
	return s, true, nil
}

// IsStorageError reports whether err came from the persistence layer.
func IsStorageError(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrCorrupt)
}

// Describe returns a short name for a backend, for logs.
func Describe(s Store) string {
	switch s.(type) {
	case *KeyringStore:
		return "keyring"
	case *FileStore:
		return "file"
	case *RedisStore:
		return "redis"
	case *MemoryStore:
		return "memory"
	default:
		return fmt.Sprintf("%T", s)
	}
}
