package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhub/task-system/internal/api/metrics"
	"github.com/taskhub/task-system/internal/core/domain"
	"github.com/taskhub/task-system/internal/core/ports"
)

// TaskService implements the task lifecycle: assign, toggle completion, and
// remove. Every operation is a single-document read-modify-write on the
// target user; the store's per-document atomicity is the only consistency
// guarantee.
type TaskService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewTaskService(users ports.UserRepository, log zerolog.Logger) *TaskService {
	return &TaskService{users: users, log: log}
}

func (s *TaskService) Assign(ctx context.Context, in ports.AssignTaskInput) (*domain.User, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	actor, target, err := s.loadPair(ctx, in.ActorID, in.TargetID)
	if err != nil {
		return nil, err
	}

	if !domain.CanManage(actor, target) {
		metrics.ForbiddenTotal.WithLabelValues("assign_task").Inc()
		return nil, domain.ErrForbidden
	}

	target.AppendTask(domain.Task{ID: newTaskID(), Name: in.Name})

	if err := s.users.ReplaceTasks(ctx, target.ID, target.Tasks); err != nil {
		return nil, err
	}

	metrics.TasksAssignedTotal.Inc()
	s.log.Info().Str("user_id", target.ID).Str("actor_id", actor.ID).Str("task", in.Name).Msg("task assigned")

	target.PasswordHash = ""
	return target, nil
}

func (s *TaskService) Toggle(ctx context.Context, in ports.TaskRefInput) (*domain.User, error) {
	actor, target, err := s.loadPair(ctx, in.ActorID, in.TargetID)
	if err != nil {
		return nil, err
	}

	// A user may mark their own work done; anyone else must outrank them.
	if actor.ID != target.ID && !domain.CanManage(actor, target) {
		metrics.ForbiddenTotal.WithLabelValues("toggle_task").Inc()
		return nil, domain.ErrForbidden
	}

	if err := target.ToggleTask(in.Index); err != nil {
		return nil, err
	}

	if err := s.users.ReplaceTasks(ctx, target.ID, target.Tasks); err != nil {
		return nil, err
	}

	metrics.TasksToggledTotal.Inc()
	target.PasswordHash = ""
	return target, nil
}

func (s *TaskService) Remove(ctx context.Context, in ports.TaskRefInput) (*domain.User, error) {
	actor, target, err := s.loadPair(ctx, in.ActorID, in.TargetID)
	if err != nil {
		return nil, err
	}

	if !domain.CanManage(actor, target) {
		metrics.ForbiddenTotal.WithLabelValues("remove_task").Inc()
		return nil, domain.ErrForbidden
	}

	if err := target.RemoveTask(in.Index); err != nil {
		return nil, err
	}

	if err := s.users.ReplaceTasks(ctx, target.ID, target.Tasks); err != nil {
		return nil, err
	}

	metrics.TasksRemovedTotal.Inc()
	s.log.Info().Str("user_id", target.ID).Str("actor_id", actor.ID).Int("index", in.Index).Msg("task removed")

	target.PasswordHash = ""
	return target, nil
}

// loadPair fetches actor and target; both must exist before any check runs.
func (s *TaskService) loadPair(ctx context.Context, actorID, targetID string) (*domain.User, *domain.User, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, nil, fmt.Errorf("load actor: %w", err)
	}
	target := actor
	if targetID != actorID {
		target, err = s.users.FindByID(ctx, targetID)
		if err != nil {
			return nil, nil, err
		}
	}
	return actor, target, nil
}

// newTaskID returns a stable identifier for a task entry. The positional
// index stays the public address; the id survives reordering.
func newTaskID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
