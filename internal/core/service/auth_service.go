package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/task-system/internal/api/metrics"
	"github.com/taskhub/task-system/internal/core/domain"
	"github.com/taskhub/task-system/internal/core/ports"
)

const sessionTokenBytes = 32

// AuthService implements login, session resolution, and logout against an
// opaque token store.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	ttl      time.Duration
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, ttl time.Duration, log zerolog.Logger) *AuthService {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &AuthService{users: users, sessions: sessions, ttl: ttl, log: log}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return "", nil, fmt.Errorf("mint session token: %w", err)
	}

	if err := s.sessions.Set(ctx, token, user.ID, s.ttl); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("session issued")

	user.PasswordHash = ""
	return token, user, nil
}

func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}

	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		// The session outlived its user (deleted after login).
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	metrics.SessionsRevokedTotal.Inc()
	return nil
}

func newSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
