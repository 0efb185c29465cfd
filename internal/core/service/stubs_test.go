package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhub/task-system/internal/core/domain"
)

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// ---------------------------------------------------------------------------
// In-memory stub repositories and session store
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users      map[string]*domain.User
	roles      map[string]*domain.Role
	nextID     int
	replaceErr error
	deleteErr  error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users: make(map[string]*domain.User),
		roles: make(map[string]*domain.Role),
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Tasks = append([]domain.Task(nil), u.Tasks...)
	if u.Role != nil {
		role := *u.Role
		clone.Role = &role
	}
	return &clone
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User, roleID string) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.nextID++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("user_%d", r.nextID)
	clone.Role = r.roles[roleID]
	r.users[clone.ID] = cloneUser(clone)
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, *cloneUser(r.users[id]))
	}
	return users, nil
}

func (r *stubUserRepo) ReplaceTasks(_ context.Context, userID string, tasks []domain.Task) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Tasks = append([]domain.Task(nil), tasks...)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// addUser seeds a user with the given role directly into the stub.
func (r *stubUserRepo) addUser(id, email string, role *domain.Role, hash string) *domain.User {
	u := &domain.User{
		ID:           id,
		Name:         id,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Tasks:        []domain.Task{},
	}
	r.users[id] = u
	return u
}

type stubRoleRepo struct {
	roles map[string]*domain.Role
}

func newStubRoleRepo(roles ...*domain.Role) *stubRoleRepo {
	r := &stubRoleRepo{roles: make(map[string]*domain.Role)}
	for _, role := range roles {
		r.roles[role.ID] = role
	}
	return r
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	clone := *role
	return &clone, nil
}

func (r *stubRoleRepo) List(_ context.Context) ([]domain.Role, error) {
	roles := make([]domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		roles = append(roles, *role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Rank < roles[j].Rank })
	return roles, nil
}

type stubSessionStore struct {
	sessions map[string]string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]string)}
}

func (s *stubSessionStore) Set(_ context.Context, token, userID string, _ time.Duration) error {
	s.sessions[token] = userID
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, token string) (string, error) {
	userID, ok := s.sessions[token]
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	return userID, nil
}

func (s *stubSessionStore) Delete(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}
