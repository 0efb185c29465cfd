package ports

import (
	"context"
	"time"
)

// SessionStore maps opaque session tokens to user ids with a fixed
// time-to-live. Implementations must treat Delete of an absent token as a
// no-op so that logout stays idempotent.
type SessionStore interface {
	Set(ctx context.Context, token, userID string, ttl time.Duration) error
	// Get returns the bound user id, or domain.ErrSessionNotFound when the
	// token is absent or expired.
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}
