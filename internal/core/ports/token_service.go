package ports

import (
	"context"
	"time"

	"github.com/starterkit/webapi/internal/core/domain"
)

// IssuedToken is the result of a successful client-credential exchange.
type IssuedToken struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int
	ExpiresAt   time.Time
}

// TokenService issues and verifies signed, time-limited API bearer tokens.
// There is no refresh flow: clients re-authenticate with the same credentials.
type TokenService interface {
	// Issue exchanges (appID, appSecret) for a bearer token valid for
	// expiresIn seconds (0 = service default).
	Issue(ctx context.Context, appID, appSecret string, expiresIn int) (*IssuedToken, error)
	// Verify validates signature, expiry and the issuing client's standing.
	Verify(ctx context.Context, token string) (*domain.TokenClaims, error)
}
