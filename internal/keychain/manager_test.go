// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerRoundTrip(t *testing.T) {
	m := New(keyring.NewArrayKeyring(nil))

	_, ok, err := m.Get(KeySession)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(KeySession, []byte("one")))
	require.NoError(t, m.Set(KeySession, []byte("two")))

	data, ok, err := m.Get(KeySession)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", string(data))

	require.NoError(t, m.Remove(KeySession))
	require.NoError(t, m.Remove(KeySession))
	_, ok, err = m.Get(KeySession)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBackendsFor(t *testing.T) {
	tests := []struct {
		goos     string
		withFile bool
		want     []keyring.BackendType
	}{
		{"darwin", false, []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}},
		{"windows", false, []keyring.BackendType{keyring.WinCredBackend}},
		{"linux", false, []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend}},
		{"linux", true, []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend, keyring.FileBackend}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			assert.Equal(t, tt.want, backendsFor(tt.goos, tt.withFile))
		})
	}
}

func TestOpenFileBackendNeedsPassword(t *testing.T) {
	_, err := Open(Options{FileDir: t.TempDir()})
	assert.Error(t, err)
}
