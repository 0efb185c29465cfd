package ports

import (
	"context"

	"github.com/taskhub/task-system/internal/core/domain"
)

// UserRepository defines persistence for user documents. Users embed their
// task list inline; there is no separate task collection.
type UserRepository interface {
	Insert(ctx context.Context, user *domain.User, roleID string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// ReplaceTasks overwrites the full task list of one user document in a
	// single write. Returns domain.ErrUserNotFound when no document matched.
	ReplaceTasks(ctx context.Context, userID string, tasks []domain.Task) error
	Delete(ctx context.Context, id string) error
}
