package ports

import (
	"context"

	"github.com/starterkit/webapi/internal/core/domain"
)

// ListItemsFilter carries the query parameters for listing items.
type ListItemsFilter struct {
	OwnerID int               // 0 = no owner filter
	Status  domain.ItemStatus // empty = no status filter
	Skip    int
	Limit   int
}

// ItemRepository defines persistence operations for items.
type ItemRepository interface {
	// List returns a page of items in insertion order plus the total count
	// of items matching the filter (ignoring skip/limit).
	List(ctx context.Context, filter ListItemsFilter) ([]domain.Item, int, error)
	GetByID(ctx context.Context, id int) (*domain.Item, error)
	CountByOwner(ctx context.Context, ownerID int) (int, error)
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Delete(ctx context.Context, id int) error
}
