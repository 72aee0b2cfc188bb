// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sessionstore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

const sealPrefix = "gcm1"

// ParseSealKey decodes a hex-encoded 32-byte AES key. An empty string means
// no sealing.
func ParseSealKey(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid seal key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("invalid seal key length: expected 32 bytes, got %d", len(key))
	}
	return key, nil
}

func seal(plain, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(sealPrefix)+len(nonce)+len(plain)+gcm.Overhead())
	out = append(out, sealPrefix...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plain, nil), nil
}

func unseal(data, key []byte) ([]byte, error) {
	if len(data) < len(sealPrefix) || string(data[:len(sealPrefix)]) != sealPrefix {
		return nil, errors.New("record is not sealed")
	}
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	data = data[len(sealPrefix):]
	if len(data) < gcm.NonceSize() {
		return nil, errors.New("sealed record too short")
	}
	return gcm.Open(nil, data[:gcm.NonceSize()], data[gcm.NonceSize():], nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
