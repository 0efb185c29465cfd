package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/task-system/internal/api/metrics"
	"github.com/taskhub/task-system/internal/core/domain"
	"github.com/taskhub/task-system/internal/core/ports"
)

// UserService implements user provisioning and listing.
type UserService struct {
	users ports.UserRepository
	roles ports.RoleRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, log: log}
}

func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.RoleID == "" {
		return nil, domain.ErrInvalidInput
	}

	role, err := s.roles.FindByID(ctx, in.RoleID)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Tasks:        []domain.Task{},
	}

	created, err := s.users.Insert(ctx, user, role.ID)
	if err != nil {
		return nil, err
	}

	metrics.UsersCreatedTotal.Inc()
	s.log.Info().Str("user_id", created.ID).Str("role", role.Name).Msg("user created")

	created.PasswordHash = ""
	return created, nil
}

func (s *UserService) Delete(ctx context.Context, actorID, targetID string) error {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return err
	}
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	if !domain.CanManage(actor, target) {
		metrics.ForbiddenTotal.WithLabelValues("delete_user").Inc()
		return domain.ErrForbidden
	}

	if err := s.users.Delete(ctx, target.ID); err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Inc()
	s.log.Info().Str("user_id", target.ID).Str("actor_id", actor.ID).Msg("user deleted")
	return nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *UserService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.roles.List(ctx)
}
