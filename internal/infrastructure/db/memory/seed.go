package memory

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/starterkit/webapi/internal/core/domain"
)

// Seed loads the sample users and items the starter ships with. The store is
// non-persistent, so this runs on every process start.
func Seed(ctx context.Context, users *UserRepository, items *ItemRepository) error {
	sampleUsers := []struct {
		username, email, fullName, password string
		role                                domain.Role
	}{
		{"admin", "admin@example.com", "Administrator", "admin123", domain.RoleAdmin},
		{"john_doe", "john@example.com", "John Doe", "user123", domain.RoleUser},
		{"jane_smith", "jane@example.com", "Jane Smith", "jane123", domain.RoleModerator},
	}

	for _, su := range sampleUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", su.username, err)
		}
		if _, err := users.Create(ctx, &domain.User{
			Username:       su.username,
			Email:          su.email,
			FullName:       su.fullName,
			Role:           su.role,
			HashedPassword: string(hash),
			IsActive:       true,
			CreatedAt:      time.Now().UTC(),
		}); err != nil {
			return fmt.Errorf("seed user %s: %w", su.username, err)
		}
	}

	sampleItems := []domain.Item{
		{Name: "Laptop", Description: "High-performance laptop for development", Price: 1299.99, Status: domain.ItemActive, OwnerID: 2},
		{Name: "Smartphone", Description: "Latest smartphone with great camera", Price: 899.99, Status: domain.ItemActive, OwnerID: 2},
		{Name: "Book", Description: "Programming book for Go developers", Price: 49.99, Status: domain.ItemDraft, OwnerID: 3},
	}

	for i := range sampleItems {
		sampleItems[i].CreatedAt = time.Now().UTC()
		if _, err := items.Create(ctx, &sampleItems[i]); err != nil {
			return fmt.Errorf("seed item %s: %w", sampleItems[i].Name, err)
		}
	}

	return nil
}
