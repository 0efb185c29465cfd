package ports

import (
	"context"

	"github.com/taskhub/task-system/internal/core/domain"
)

type AuthService interface {
	// Login verifies credentials and issues a new session token bound to the
	// user. The returned user has its role resolved and no password hash.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Resolve maps a session token back to its user. Reports
	// domain.ErrSessionNotFound when the token is unknown, expired, or the
	// user no longer exists.
	Resolve(ctx context.Context, token string) (*domain.User, error)
	// Logout invalidates the token immediately. Idempotent.
	Logout(ctx context.Context, token string) error
}
