package ports

import (
	"context"

	"github.com/starterkit/webapi/internal/core/domain"
)

// CreateItemInput carries validated fields for creating an item.
type CreateItemInput struct {
	Name        string
	Description string
	Price       float64
	Status      domain.ItemStatus
	OwnerID     int
}

// UpdateItemInput merges only the supplied fields into an existing item.
type UpdateItemInput struct {
	Name        *string
	Description *string
	Price       *float64
	Status      *domain.ItemStatus
	OwnerID     *int
}

type ItemService interface {
	Create(ctx context.Context, input CreateItemInput) (*domain.Item, error)
	Get(ctx context.Context, id int) (*domain.Item, error)
	List(ctx context.Context, filter ListItemsFilter) ([]domain.Item, int, error)
	Update(ctx context.Context, id int, input UpdateItemInput) (*domain.Item, error)
	UpdateStatus(ctx context.Context, id int, status domain.ItemStatus) (*domain.Item, error)
	Delete(ctx context.Context, id int) error
}
