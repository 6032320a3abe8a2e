package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/starterkit/webapi/internal/core/domain"
	"github.com/starterkit/webapi/internal/core/ports"
)

// UserService implements user CRUD on top of an injected repository.
// Uniqueness of username and email is enforced here, not in storage.
type UserService struct {
	users  ports.UserRepository
	items  ports.ItemRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, items ports.ItemRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, items: items, logger: logger}
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if !input.Role.IsValid() {
		return nil, domain.ErrInvalidRole
	}
	if existing, _ := s.users.GetByUsername(ctx, input.Username); existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	if existing, _ := s.users.GetByEmail(ctx, input.Email); existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:       input.Username,
		Email:          input.Email,
		FullName:       input.FullName,
		Role:           input.Role,
		HashedPassword: string(hash),
		IsActive:       input.IsActive,
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("user_id", created.ID).Str("username", created.Username).Msg("user created")
	return created, nil
}

func (s *UserService) Get(ctx context.Context, id int) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, skip, limit int) ([]domain.User, int, error) {
	skip, limit = normalizePage(skip, limit)
	return s.users.List(ctx, skip, limit)
}

// Update merges only the supplied fields. Username and email uniqueness is
// re-checked against other users before anything is written.
func (s *UserService) Update(ctx context.Context, id int, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != user.Username {
		if other, _ := s.users.GetByUsername(ctx, *input.Username); other != nil && other.ID != id {
			return nil, domain.ErrUsernameTaken
		}
		user.Username = *input.Username
	}
	if input.Email != nil && *input.Email != user.Email {
		if other, _ := s.users.GetByEmail(ctx, *input.Email); other != nil && other.ID != id {
			return nil, domain.ErrEmailTaken
		}
		user.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = string(hash)
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, domain.ErrInvalidRole
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	now := time.Now().UTC()
	user.UpdatedAt = &now

	return s.users.Update(ctx, user)
}

// Delete removes a user. Deletion is refused while the user still owns
// items: owner references must never dangle.
func (s *UserService) Delete(ctx context.Context, id int) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}

	owned, err := s.items.CountByOwner(ctx, id)
	if err != nil {
		return err
	}
	if owned > 0 {
		return domain.ErrUserHasItems
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int("user_id", id).Msg("user deleted")
	return nil
}

// normalizePage clamps paging parameters to sane bounds.
func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	return skip, limit
}
