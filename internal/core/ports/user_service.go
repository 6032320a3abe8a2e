package ports

import (
	"context"

	"github.com/starterkit/webapi/internal/core/domain"
)

// CreateUserInput carries validated fields for creating a user.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     domain.Role
	IsActive bool
}

// UpdateUserInput merges only the supplied fields into an existing user.
// Nil pointers mean "leave unchanged".
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
	FullName *string
	Role     *domain.Role
	IsActive *bool
}

type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id int) (*domain.User, error)
	List(ctx context.Context, skip, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, id int, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int) error
}
