package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/starterkit/webapi/internal/core/domain"
	"github.com/starterkit/webapi/internal/infrastructure/db/memory"
	"github.com/starterkit/webapi/internal/infrastructure/session"
)

func newSessionFixture(t *testing.T, active bool) (*SessionService, *domain.User) {
	t.Helper()
	users := memory.NewUserRepository()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	user, err := users.Create(context.Background(), &domain.User{
		Username:       "alice",
		Email:          "alice@example.com",
		Role:           domain.RoleUser,
		HashedPassword: string(hash),
		IsActive:       active,
	})
	if err != nil {
		t.Fatalf("seeding user: %v", err)
	}

	svc := NewSessionService(users, session.NewMemoryStore(), 30*time.Minute, zerolog.Nop())
	return svc, user
}

func TestSessionService_LoginAndResolve(t *testing.T) {
	svc, user := newSessionFixture(t, true)

	sess, loggedIn, err := svc.Login(context.Background(), "alice", "hunter22")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if sess.Token == "" {
		t.Fatalf("expected opaque session token")
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, loggedIn.ID)
	}

	resolved, err := svc.Resolve(context.Background(), sess.Token)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if resolved.Username != "alice" {
		t.Fatalf("unexpected user: %+v", resolved)
	}
}

func TestSessionService_Login_WrongPassword(t *testing.T) {
	svc, _ := newSessionFixture(t, true)

	if _, _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionService_Login_UnknownUser(t *testing.T) {
	svc, _ := newSessionFixture(t, true)

	// Unknown usernames report the same error as bad passwords.
	if _, _, err := svc.Login(context.Background(), "mallory", "hunter22"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionService_Login_EmptyCredentials(t *testing.T) {
	svc, _ := newSessionFixture(t, true)

	if _, _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionService_Login_DisabledUser(t *testing.T) {
	svc, _ := newSessionFixture(t, false)

	if _, _, err := svc.Login(context.Background(), "alice", "hunter22"); !errors.Is(err, domain.ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestSessionService_Resolve_Expired(t *testing.T) {
	svc, _ := newSessionFixture(t, true)

	base := time.Now()
	svc.now = func() time.Time { return base }

	sess, _, err := svc.Login(context.Background(), "alice", "hunter22")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	svc.now = func() time.Time { return base.Add(31 * time.Minute) }
	if _, err := svc.Resolve(context.Background(), sess.Token); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}

	// The expired record is dropped; a retry reports not found.
	svc.now = func() time.Time { return base }
	if _, err := svc.Resolve(context.Background(), sess.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after eviction, got %v", err)
	}
}

func TestSessionService_Resolve_Unknown(t *testing.T) {
	svc, _ := newSessionFixture(t, true)

	if _, err := svc.Resolve(context.Background(), "no-such-token"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionService_Logout(t *testing.T) {
	svc, _ := newSessionFixture(t, true)

	sess, _, err := svc.Login(context.Background(), "alice", "hunter22")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if err := svc.Logout(context.Background(), sess.Token); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if _, err := svc.Resolve(context.Background(), sess.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session to be gone, got %v", err)
	}

	// Logging out twice is a no-op.
	if err := svc.Logout(context.Background(), sess.Token); err != nil {
		t.Fatalf("repeat Logout returned error: %v", err)
	}
}
