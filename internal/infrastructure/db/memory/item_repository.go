package memory

import (
	"context"
	"sync"

	"github.com/starterkit/webapi/internal/core/domain"
	"github.com/starterkit/webapi/internal/core/ports"
)

type ItemRepository struct {
	mu     sync.RWMutex
	items  []domain.Item
	nextID int
}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{nextID: 1}
}

func (r *ItemRepository) List(_ context.Context, filter ports.ListItemsFilter) ([]domain.Item, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]domain.Item, 0, len(r.items))
	for _, item := range r.items {
		if filter.OwnerID != 0 && item.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		matched = append(matched, item)
	}

	total := len(matched)
	page := pageOf(matched, filter.Skip, filter.Limit)
	out := make([]domain.Item, len(page))
	copy(out, page)
	return out, total, nil
}

func (r *ItemRepository) GetByID(_ context.Context, id int) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.items {
		if r.items[i].ID == id {
			item := r.items[i]
			return &item, nil
		}
	}
	return nil, domain.ErrItemNotFound
}

func (r *ItemRepository) CountByOwner(_ context.Context, ownerID int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for i := range r.items {
		if r.items[i].OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *ItemRepository) Create(_ context.Context, item *domain.Item) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *item
	stored.ID = r.nextID
	r.nextID++
	r.items = append(r.items, stored)

	out := stored
	return &out, nil
}

func (r *ItemRepository) Update(_ context.Context, item *domain.Item) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == item.ID {
			r.items[i] = *item
			out := r.items[i]
			return &out, nil
		}
	}
	return nil, domain.ErrItemNotFound
}

func (r *ItemRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrItemNotFound
}
