package ports

import (
	"context"

	"github.com/starterkit/webapi/internal/core/domain"
)

// UserRepository defines persistence operations for users. Implementations
// must preserve insertion order in List and enforce nothing beyond storage;
// uniqueness checks live in the service layer.
type UserRepository interface {
	// List returns a page of users in insertion order plus the total count.
	List(ctx context.Context, skip, limit int) ([]domain.User, int, error)
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create assigns the ID and CreatedAt and returns the stored user.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int) error
}
