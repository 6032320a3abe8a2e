package ports

import (
	"context"

	"github.com/starterkit/webapi/internal/core/domain"
)

// SessionService implements the cookie-based login flow.
type SessionService interface {
	// Login validates credentials and creates a server-side session.
	Login(ctx context.Context, username, password string) (*domain.Session, *domain.User, error)
	// Resolve maps a session token back to its user, failing on
	// missing or expired sessions.
	Resolve(ctx context.Context, token string) (*domain.User, error)
	// Logout invalidates the session record. Unknown tokens are a no-op.
	Logout(ctx context.Context, token string) error
}
