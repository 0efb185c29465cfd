package ports

import (
	"context"

	"github.com/taskhub/task-system/internal/core/domain"
)

// CreateUserInput carries all data needed to provision a new user.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	RoleID   string
}

type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	// Delete removes the target user and all embedded tasks. The actor must
	// outrank the target.
	Delete(ctx context.Context, actorID, targetID string) error
	List(ctx context.Context) ([]domain.User, error)
	ListRoles(ctx context.Context) ([]domain.Role, error)
}
