package ports

import (
	"context"

	"github.com/taskhub/task-system/internal/core/domain"
)

// AssignTaskInput identifies the actor, the user receiving the task, and the
// task name.
type AssignTaskInput struct {
	ActorID  string
	TargetID string
	Name     string
}

// TaskRefInput addresses an existing task by its position in the target
// user's task list.
type TaskRefInput struct {
	ActorID  string
	TargetID string
	Index    int
}

type TaskService interface {
	// Assign appends a new not-completed task to the target's list and
	// returns the updated user.
	Assign(ctx context.Context, in AssignTaskInput) (*domain.User, error)
	// Toggle flips the completion flag of the addressed task. Allowed for
	// the target themselves or for an actor who outranks the target.
	Toggle(ctx context.Context, in TaskRefInput) (*domain.User, error)
	// Remove deletes the addressed task, shifting later indices down by one.
	Remove(ctx context.Context, in TaskRefInput) (*domain.User, error)
}
