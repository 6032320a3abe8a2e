package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/starterkit/webapi/internal/core/domain"
	"github.com/starterkit/webapi/internal/core/ports"
)

// SessionService implements cookie-based login against a pluggable
// session store.
type SessionService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	ttl      time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

func NewSessionService(users ports.UserRepository, sessions ports.SessionStore, ttl time.Duration, logger zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionService{users: users, sessions: sessions, ttl: ttl, logger: logger, now: time.Now}
}

func (s *SessionService) Login(ctx context.Context, username, password string) (*domain.Session, *domain.User, error) {
	if username == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, domain.ErrUserDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	session := domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: s.now().UTC().Add(s.ttl),
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, nil, err
	}

	s.logger.Info().Int("user_id", user.ID).Str("username", user.Username).Msg("session created")
	return &session, user, nil
}

func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now().UTC()) {
		_ = s.sessions.Delete(ctx, token)
		return nil, domain.ErrSessionExpired
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		// The user behind the session is gone; drop the session too.
		_ = s.sessions.Delete(ctx, token)
		return nil, domain.ErrSessionNotFound
	}
	if !user.IsActive {
		return nil, domain.ErrUserDisabled
	}
	return user, nil
}

func (s *SessionService) Logout(ctx context.Context, token string) error {
	err := s.sessions.Delete(ctx, token)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}
	return nil
}
