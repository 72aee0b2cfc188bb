// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sessionstore

import (
	"context"

	"lensfolio/cli/internal/keychain"
	"lensfolio/cli/internal/session"
)

// KeyringStore keeps the session record in a single OS keychain item.
type KeyringStore struct {
	km  *keychain.Manager
	key string
}

// NewKeyringStore returns a store backed by km.
func NewKeyringStore(km *keychain.Manager) *KeyringStore {
	return &KeyringStore{km: km, key: keychain.KeySession}
}

func (k *KeyringStore) Save(ctx context.Context, s session.Session) error {
	data, err := encodeRecord(s)
	if err != nil {
		return err
	}
	if err := k.km.Set(k.key, data); err != nil {
		return unavailable("keychain save", err)
	}
	return nil
}

func (k *KeyringStore) Load(ctx context.Context) (session.Session, bool, error) {
	data, ok, err := k.km.Get(k.key)
	if err != nil {
		return session.Session{}, false, unavailable("keychain load", err)
	}
	if !ok || len(data) == 0 {
		return session.Session{}, false, nil
	}
	return decodeRecord(data)
}

func (k *KeyringStore) Clear(ctx context.Context) error {
	if err := k.km.Remove(k.key); err != nil {
		return unavailable("keychain clear", err)
	}
	return nil
}
