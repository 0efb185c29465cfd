package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskhub/task-system/internal/core/domain"
)

// SessionStore maps opaque session tokens to user ids in Redis.
// Key format: session:<token>, value: user id hex, expiring after the TTL
// fixed at login time.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Set binds token to userID for the given TTL.
func (s *SessionStore) Set(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

// Get returns the user id bound to token. An absent or expired key reports
// domain.ErrSessionNotFound.
func (s *SessionStore) Get(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrSessionNotFound
		}
		return "", fmt.Errorf("session get: %w", err)
	}
	return userID, nil
}

// Delete revokes token. Deleting an absent key is a no-op, keeping logout
// idempotent.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (s *SessionStore) key(token string) string {
	return "session:" + token
}
