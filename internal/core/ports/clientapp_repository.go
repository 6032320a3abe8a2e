package ports

import (
	"context"

	"github.com/starterkit/webapi/internal/core/domain"
)

// ClientAppRepository defines persistence operations for client applications.
type ClientAppRepository interface {
	List(ctx context.Context, skip, limit int) ([]domain.ClientApp, int, error)
	GetByID(ctx context.Context, id int) (*domain.ClientApp, error)
	// GetByAppID looks up a client by its public app_id identifier.
	GetByAppID(ctx context.Context, appID string) (*domain.ClientApp, error)
	GetByName(ctx context.Context, name string) (*domain.ClientApp, error)
	Create(ctx context.Context, app *domain.ClientApp) (*domain.ClientApp, error)
	Update(ctx context.Context, app *domain.ClientApp) (*domain.ClientApp, error)
	Delete(ctx context.Context, id int) error
}
