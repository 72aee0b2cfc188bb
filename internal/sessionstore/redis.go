// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sessionstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"lensfolio/cli/internal/session"
)

// DefaultRedisKey is the key holding the session record.
const DefaultRedisKey = "lensfolio:session"

// RedisStore keeps the session record under one Redis key. SET replaces the
// value atomically.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

// NewRedisStore returns a store using client. An empty key uses DefaultRedisKey.
func NewRedisStore(client redis.Cmdable, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) Save(ctx context.Context, s session.Session) error {
	data, err := encodeRecord(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return unavailable("redis set", err)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context) (session.Session, bool, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return session.Session{}, false, nil
	}
	if err != nil {
		return session.Session{}, false, unavailable("redis get", err)
	}
	return decodeRecord(data)
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return unavailable("redis del", err)
	}
	return nil
}
