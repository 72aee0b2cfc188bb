// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sessionstore

import (
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"

	apperrors "lensfolio/cli/internal/errors"
	"lensfolio/cli/internal/keychain"
)

// Backend names accepted by Open.
const (
	BackendKeyring = "keyring"
	BackendFile    = "file"
	BackendRedis   = "redis"
	BackendMemory  = "memory"
)

// Options select and configure a backend.
type Options struct {
	Backend  string
	Keychain keychain.Options

	FilePath string
	// Fs defaults to the OS filesystem.
	Fs      afero.Fs
	SealKey string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the configured backend and a closer for its resources.
func Open(o Options) (Store, io.Closer, error) {
	switch o.Backend {
	case BackendKeyring, "":
		km, err := keychain.Open(o.Keychain)
		if err != nil {
			return nil, nil, unavailable("open keychain", err)
		}
		return NewKeyringStore(km), nopCloser{}, nil
	case BackendFile:
		key, err := ParseSealKey(o.SealKey)
		if err != nil {
			return nil, nil, apperrors.Wrap(apperrors.ConfigInvalid, "file store", err)
		}
		fs := o.Fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		st, err := NewFileStore(fs, o.FilePath, key)
		if err != nil {
			return nil, nil, err
		}
		return st, nopCloser{}, nil
	case BackendRedis:
		if o.RedisAddr == "" {
			return nil, nil, apperrors.New(apperrors.ConfigInvalid, "redis store requires an address")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     o.RedisAddr,
			Password: o.RedisPassword,
			DB:       o.RedisDB,
		})
		return NewRedisStore(client, o.RedisKey), client, nil
	case BackendMemory:
		return NewMemoryStore(), nopCloser{}, nil
	default:
		return nil, nil, apperrors.New(apperrors.ConfigInvalid, fmt.Sprintf("unknown store backend %q", o.Backend))
	}
}
