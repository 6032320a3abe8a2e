package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/starterkit/webapi/internal/core/domain"
	"github.com/starterkit/webapi/internal/core/ports"
)

// ItemService implements item CRUD. Every write validates the closed status
// enum and the strictly positive price; creates and owner changes validate
// that the owner exists.
type ItemService struct {
	items  ports.ItemRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewItemService(items ports.ItemRepository, users ports.UserRepository, logger zerolog.Logger) *ItemService {
	return &ItemService{items: items, users: users, logger: logger}
}

func (s *ItemService) Create(ctx context.Context, input ports.CreateItemInput) (*domain.Item, error) {
	if input.Price <= 0 {
		return nil, domain.ErrInvalidPrice
	}
	status := input.Status
	if status == "" {
		status = domain.ItemActive
	}
	if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}
	if _, err := s.users.GetByID(ctx, input.OwnerID); err != nil {
		return nil, domain.ErrOwnerNotFound
	}

	item := &domain.Item{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Status:      status,
		OwnerID:     input.OwnerID,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.items.Create(ctx, item)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("item_id", created.ID).Int("owner_id", created.OwnerID).Msg("item created")
	return created, nil
}

func (s *ItemService) Get(ctx context.Context, id int) (*domain.Item, error) {
	return s.items.GetByID(ctx, id)
}

func (s *ItemService) List(ctx context.Context, filter ports.ListItemsFilter) ([]domain.Item, int, error) {
	filter.Skip, filter.Limit = normalizePage(filter.Skip, filter.Limit)
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, domain.ErrInvalidStatus
	}
	return s.items.List(ctx, filter)
}

func (s *ItemService) Update(ctx context.Context, id int, input ports.UpdateItemInput) (*domain.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, domain.ErrInvalidPrice
		}
		item.Price = *input.Price
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, domain.ErrInvalidStatus
		}
		item.Status = *input.Status
	}
	if input.OwnerID != nil && *input.OwnerID != item.OwnerID {
		if _, err := s.users.GetByID(ctx, *input.OwnerID); err != nil {
			return nil, domain.ErrOwnerNotFound
		}
		item.OwnerID = *input.OwnerID
	}

	now := time.Now().UTC()
	item.UpdatedAt = &now

	return s.items.Update(ctx, item)
}

func (s *ItemService) UpdateStatus(ctx context.Context, id int, status domain.ItemStatus) (*domain.Item, error) {
	return s.Update(ctx, id, ports.UpdateItemInput{Status: &status})
}

func (s *ItemService) Delete(ctx context.Context, id int) error {
	if _, err := s.items.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int("item_id", id).Msg("item deleted")
	return nil
}
