// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sessionstore

import (
	"context"
	"sync"

	"lensfolio/cli/internal/session"
)

// MemoryStore keeps the encoded record in process memory. Used for
// ephemeral runs and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	record []byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Save(ctx context.Context, s session.Session) error {
	data, err := encodeRecord(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.record = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Load(ctx context.Context) (session.Session, bool, error) {
	m.mu.RLock()
	data := m.record
	m.mu.RUnlock()
	if data == nil {
		return session.Session{}, false, nil
	}
	return decodeRecord(data)
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.record = nil
	m.mu.Unlock()
	return nil
}
