// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides thread-safe access to the OS keychain/credential
// store for lensfolio secrets.
//
// A Manager is constructed explicitly and owned by whoever needs it (the
// session store); there is no process-global instance. Each secret lives in
// a single keyring item, so a write replaces the whole value at once.
package keychain

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/99designs/keyring"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "lensfolio"

// KeySession is the item holding the serialized platform session.
const KeySession = "platform_session"

// Options configure how the OS keyring is opened.
type Options struct {
	// ServiceName overrides the keychain namespace.
	ServiceName string
	// FileDir enables the encrypted file backend on hosts without a native
	// keychain (headless Linux). Requires FilePassword.
	FileDir      string
	FilePassword string
}

// Manager provides centralized, thread-safe operations for the OS keychain.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// Open opens the native keyring for the current OS.
func Open(opts Options) (*Manager, error) {
	name := opts.ServiceName
	if name == "" {
		name = ServiceName
	}
	cfg := keyring.Config{
		ServiceName:     name,
		AllowedBackends: backendsFor(runtime.GOOS, opts.FileDir != ""),
		PassPrefix:      name,
		KeychainName:    "login",
	}
	if runtime.GOOS == "windows" {
		cfg.WinCredPrefix = name
	}
	if opts.FileDir != "" {
		if opts.FilePassword == "" {
			return nil, errors.New("keychain: file backend requires a password")
		}
		cfg.FileDir = opts.FileDir
		cfg.FilePasswordFunc = keyring.FixedStringPrompt(opts.FilePassword)
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("keychain: open %s keyring: %w", runtime.GOOS, err)
	}
	return New(ring), nil
}

// New wraps an already opened keyring. Tests pass keyring.NewArrayKeyring.
func New(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// backendsFor returns the native backends for goos in preference order.
func backendsFor(goos string, withFile bool) []keyring.BackendType {
	var b []keyring.BackendType
	switch goos {
	case "darwin":
		b = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		b = []keyring.BackendType{keyring.WinCredBackend}
	default:
		b = []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend}
	}
	if withFile {
		b = append(b, keyring.FileBackend)
	}
	return b
}

// Set stores data under key, replacing any previous value.
// This method is thread-safe.
func (m *Manager) Set(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ring.Set(keyring.Item{
		Key:         key,
		Data:        data,
		Label:       ServiceName + " " + key,
		Description: "lensfolio credential",
	})
}

// Get returns the data stored under key. A missing item yields (nil, false, nil).
// This method is thread-safe.
func (m *Manager) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, err := m.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return it.Data, true, nil
}

// Remove deletes key. Removing a missing item is not an error.
// This method is thread-safe.
func (m *Manager) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}
