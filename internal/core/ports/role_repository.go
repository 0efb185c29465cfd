package ports

import (
	"context"

	"github.com/taskhub/task-system/internal/core/domain"
)

// RoleRepository defines read access to the seeded roles collection. Roles
// are created out-of-band; the application never mutates them.
type RoleRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	// List returns all roles sorted ascending by rank (highest authority first).
	List(ctx context.Context) ([]domain.Role, error)
}
