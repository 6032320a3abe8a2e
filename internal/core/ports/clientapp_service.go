package ports

import (
	"context"

	"github.com/starterkit/webapi/internal/core/domain"
)

// CreateClientAppInput carries validated fields for registering a client app.
type CreateClientAppInput struct {
	Name        string
	Description string
	IsActive    bool
}

// UpdateClientAppInput merges only the supplied fields.
type UpdateClientAppInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// ClientAppWithSecret is returned only from Create and RegenerateSecret;
// the plaintext secret is never retrievable afterwards.
type ClientAppWithSecret struct {
	domain.ClientApp
	AppSecret string `json:"app_secret"`
}

type ClientAppService interface {
	Create(ctx context.Context, input CreateClientAppInput) (*ClientAppWithSecret, error)
	Get(ctx context.Context, id int) (*domain.ClientApp, error)
	List(ctx context.Context, skip, limit int) ([]domain.ClientApp, int, error)
	Update(ctx context.Context, id int, input UpdateClientAppInput) (*domain.ClientApp, error)
	Delete(ctx context.Context, id int) error
	RegenerateSecret(ctx context.Context, id int) (*ClientAppWithSecret, error)
}
