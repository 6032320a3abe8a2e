package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/starterkit/webapi/internal/core/domain"
	"github.com/starterkit/webapi/internal/core/ports"
)

const (
	tokenType        = "api_token"
	defaultExpiresIn = 3600
	maxExpiresIn     = 86400
)

// TokenService exchanges client credentials for signed, time-limited bearer
// tokens and verifies them per request. Tokens are never persisted.
type TokenService struct {
	apps      ports.ClientAppRepository
	jwtSecret string
	logger    zerolog.Logger
	now       func() time.Time
}

func NewTokenService(apps ports.ClientAppRepository, jwtSecret string, logger zerolog.Logger) *TokenService {
	return &TokenService{apps: apps, jwtSecret: jwtSecret, logger: logger, now: time.Now}
}

// Issue validates (appID, appSecret) against the stored client and signs a
// token carrying the app identity and expiry. expiresIn is clamped to
// [1, maxExpiresIn]; 0 selects the default of one hour.
func (s *TokenService) Issue(ctx context.Context, appID, appSecret string, expiresIn int) (*ports.IssuedToken, error) {
	app, err := s.apps.GetByAppID(ctx, appID)
	if err != nil {
		return nil, domain.ErrUnknownClient
	}
	if !app.IsActive {
		return nil, domain.ErrClientDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(app.AppSecretHash), []byte(appSecret)) != nil {
		return nil, domain.ErrInvalidClientSecret
	}

	if expiresIn <= 0 {
		expiresIn = defaultExpiresIn
	}
	if expiresIn > maxExpiresIn {
		expiresIn = maxExpiresIn
	}

	now := s.now().UTC()
	expiresAt := now.Add(time.Duration(expiresIn) * time.Second)

	claims := jwt.MapClaims{
		"sub":      app.AppID,
		"app_name": app.Name,
		"typ":      tokenType,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("app_id", app.AppID).Int("expires_in", expiresIn).Msg("api token issued")

	return &ports.IssuedToken{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
		ExpiresAt:   expiresAt,
	}, nil
}

// Verify checks signature, expiry and token type, then confirms the issuing
// client still exists and is active. The returned error distinguishes
// expired, malformed, unknown-client and disabled-client failures.
func (s *TokenService) Verify(ctx context.Context, token string) (*domain.TokenClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.ErrTokenMalformed
		default:
			return nil, domain.ErrTokenInvalid
		}
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}

	if typ, _ := claims["typ"].(string); typ != tokenType {
		return nil, domain.ErrTokenInvalid
	}

	appID, _ := claims["sub"].(string)
	if appID == "" {
		return nil, domain.ErrTokenInvalid
	}

	app, err := s.apps.GetByAppID(ctx, appID)
	if err != nil {
		return nil, domain.ErrUnknownClient
	}
	if !app.IsActive {
		return nil, domain.ErrClientDisabled
	}

	appName, _ := claims["app_name"].(string)
	return &domain.TokenClaims{AppID: appID, AppName: appName}, nil
}
