// Package store provides the durable draft blob and the session flag,
// both backed by Redis.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// draftKey is the single fixed key holding the serialized document.
	draftKey = "myself_cms_data"
	// sessionKey is the single fixed key holding the operator session marker.
	sessionKey = "myself_admin_auth"
)

var (
	// ErrAbsent indicates no draft has been saved yet.
	ErrAbsent = errors.New("store: no saved draft")
	// ErrCapacity indicates a draft payload over the configured quota.
	// Oversized inline images are the usual culprit.
	ErrCapacity = errors.New("store: draft exceeds storage quota")
)

// RedisStore holds the draft under one key and the session flag under
// another. Draft writes are quota-checked before touching Redis.
type RedisStore struct {
	client *redis.Client
	quota  int
}

// NewRedisStore connects and verifies the connection.
func NewRedisStore(redisURL string, quotaBytes int) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{client: client, quota: quotaBytes}, nil
}

// SaveDraft stores the serialized document. Payloads over quota are rejected
// with ErrCapacity and nothing is written.
func (s *RedisStore) SaveDraft(ctx context.Context, payload []byte) error {
	if s.quota > 0 && len(payload) > s.quota {
		return fmt.Errorf("%w: %d bytes over %d", ErrCapacity, len(payload), s.quota)
	}
	if err := s.client.Set(ctx, draftKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// LoadDraft returns the previously saved payload or ErrAbsent.
func (s *RedisStore) LoadDraft(ctx context.Context) ([]byte, error) {
	payload, err := s.client.Get(ctx, draftKey).Bytes()
	if err == redis.Nil {
		return nil, ErrAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	return payload, nil
}

// ClearDraft removes the saved payload. Clearing an absent draft is fine.
func (s *RedisStore) ClearDraft(ctx context.Context) error {
	if err := s.client.Del(ctx, draftKey).Err(); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

// SetSession marks the operator as logged in. A single fixed key holds the
// marker: a later login simply replaces the earlier session.
func (s *RedisStore) SetSession(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey, token, ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// SessionValid reports whether token matches the live session marker.
func (s *RedisStore) SessionValid(ctx context.Context, token string) (bool, error) {
	current, err := s.client.Get(ctx, sessionKey).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return token != "" && current == token, nil
}

// ClearSession logs the operator out.
func (s *RedisStore) ClearSession(ctx context.Context) error {
	if err := s.client.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Ping checks if Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
