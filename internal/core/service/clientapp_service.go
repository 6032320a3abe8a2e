package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/starterkit/webapi/internal/core/domain"
	"github.com/starterkit/webapi/internal/core/ports"
)

const appIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// ClientAppService manages registered API consumers. Secrets are generated
// here, returned to the caller once, and stored only as bcrypt hashes.
type ClientAppService struct {
	apps     ports.ClientAppRepository
	logger   zerolog.Logger
	newAppID func() (string, error)
}

func NewClientAppService(apps ports.ClientAppRepository, logger zerolog.Logger) *ClientAppService {
	return &ClientAppService{apps: apps, logger: logger, newAppID: generateAppID}
}

func (s *ClientAppService) Create(ctx context.Context, input ports.CreateClientAppInput) (*ports.ClientAppWithSecret, error) {
	if existing, _ := s.apps.GetByName(ctx, input.Name); existing != nil {
		return nil, domain.ErrClientAppNameTaken
	}

	secret, err := generateAppSecret()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	appID, err := s.uniqueAppID(ctx)
	if err != nil {
		return nil, err
	}

	app := &domain.ClientApp{
		AppID:         appID,
		AppSecretHash: string(hash),
		Name:          input.Name,
		Description:   input.Description,
		IsActive:      input.IsActive,
		CreatedAt:     time.Now().UTC(),
	}

	created, err := s.apps.Create(ctx, app)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("app_id", created.AppID).Str("name", created.Name).Msg("client app registered")
	return &ports.ClientAppWithSecret{ClientApp: *created, AppSecret: secret}, nil
}

func (s *ClientAppService) Get(ctx context.Context, id int) (*domain.ClientApp, error) {
	return s.apps.GetByID(ctx, id)
}

func (s *ClientAppService) List(ctx context.Context, skip, limit int) ([]domain.ClientApp, int, error) {
	skip, limit = normalizePage(skip, limit)
	return s.apps.List(ctx, skip, limit)
}

func (s *ClientAppService) Update(ctx context.Context, id int, input ports.UpdateClientAppInput) (*domain.ClientApp, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != app.Name {
		if other, _ := s.apps.GetByName(ctx, *input.Name); other != nil && other.ID != id {
			return nil, domain.ErrClientAppNameTaken
		}
		app.Name = *input.Name
	}
	if input.Description != nil {
		app.Description = *input.Description
	}
	if input.IsActive != nil {
		app.IsActive = *input.IsActive
	}

	now := time.Now().UTC()
	app.UpdatedAt = &now

	return s.apps.Update(ctx, app)
}

func (s *ClientAppService) Delete(ctx context.Context, id int) error {
	if _, err := s.apps.GetByID(ctx, id); err != nil {
		return err
	}
	return s.apps.Delete(ctx, id)
}

// RegenerateSecret replaces the stored secret hash and returns the new
// plaintext secret, invalidating the previous credential immediately.
func (s *ClientAppService) RegenerateSecret(ctx context.Context, id int) (*ports.ClientAppWithSecret, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	secret, err := generateAppSecret()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	app.AppSecretHash = string(hash)
	now := time.Now().UTC()
	app.UpdatedAt = &now

	updated, err := s.apps.Update(ctx, app)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("app_id", updated.AppID).Msg("client app secret regenerated")
	return &ports.ClientAppWithSecret{ClientApp: *updated, AppSecret: secret}, nil
}

// uniqueAppID generates app identifiers until one is not already registered.
func (s *ClientAppService) uniqueAppID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		appID, err := s.newAppID()
		if err != nil {
			return "", err
		}
		if existing, _ := s.apps.GetByAppID(ctx, appID); existing == nil {
			return appID, nil
		}
	}
	return "", errors.New("could not allocate a unique app id")
}

// generateAppID returns "app_" followed by 16 lowercase alphanumerics.
func generateAppID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = appIDAlphabet[int(b)%len(appIDAlphabet)]
	}
	return "app_" + string(buf), nil
}

// generateAppSecret returns a 43-character URL-safe random secret.
func generateAppSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
