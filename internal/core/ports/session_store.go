package ports

import (
	"context"

	"github.com/starterkit/webapi/internal/core/domain"
)

// SessionStore persists server-side session records keyed by opaque token.
// Implementations may evict expired sessions eagerly or lazily; Get must
// never return an expired session.
type SessionStore interface {
	Put(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}
