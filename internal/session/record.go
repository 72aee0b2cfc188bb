// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// RecordVersion is the current persisted record version.
const RecordVersion = 1

// ErrInvalidRecord is returned by Decode when a stored record cannot be
// turned back into a valid Session.
var ErrInvalidRecord = errors.New("session: invalid record")

// Record is the on-disk/on-keychain representation of a Session.
type Record struct {
	Version    int       `json:"version"`
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id"`
	CapturedAt time.Time `json:"captured_at"`
}

// Encode serializes s into a versioned record.
func Encode(s Session) ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: missing session_id or user_id", ErrInvalidRecord)
	}
	return json.Marshal(Record{
		Version:    RecordVersion,
		SessionID:  s.SessionID,
		UserID:     s.UserID,
		CapturedAt: s.CapturedAt.UTC(),
	})
}

// Decode parses a record produced by Encode. Any record that does not
// decode, has an unknown version or carries an invalid session yields
// ErrInvalidRecord.
func Decode(data []byte) (Session, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if r.Version != RecordVersion {
		return Session{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidRecord, r.Version)
	}
	s := Session{SessionID: r.SessionID, UserID: r.UserID, CapturedAt: r.CapturedAt}
	if !s.Valid() {
		return Session{}, fmt.Errorf("%w: missing session_id or user_id", ErrInvalidRecord)
	}
	return s, nil
}
