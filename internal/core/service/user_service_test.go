package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/starterkit/webapi/internal/core/domain"
	"github.com/starterkit/webapi/internal/core/ports"
	"github.com/starterkit/webapi/internal/infrastructure/db/memory"
)

func newUserFixture() (*UserService, *memory.UserRepository, *memory.ItemRepository) {
	users := memory.NewUserRepository()
	items := memory.NewItemRepository()
	return NewUserService(users, items, zerolog.Nop()), users, items
}

func mustCreateUser(t *testing.T, svc *UserService, username, email string) *domain.User {
	t.Helper()
	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: username,
		Email:    email,
		Password: "secret123",
		Role:     domain.RoleUser,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return user
}

func TestUserService_Create_HashesPassword(t *testing.T) {
	svc, _, _ := newUserFixture()

	user := mustCreateUser(t, svc, "alice", "alice@example.com")

	if user.ID == 0 {
		t.Fatalf("expected assigned ID")
	}
	if user.HashedPassword == "secret123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("secret123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt to be set")
	}
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	svc, _, _ := newUserFixture()

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Role:     "superuser",
	})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_Create_DuplicateUsername(t *testing.T) {
	svc, _, _ := newUserFixture()
	mustCreateUser(t, svc, "alice", "alice@example.com")

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret123",
		Role:     domain.RoleUser,
	})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	svc, _, _ := newUserFixture()
	mustCreateUser(t, svc, "alice", "alice@example.com")

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "bob",
		Email:    "alice@example.com",
		Password: "secret123",
		Role:     domain.RoleUser,
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_Update_MergesOnlySuppliedFields(t *testing.T) {
	svc, _, _ := newUserFixture()
	user := mustCreateUser(t, svc, "alice", "alice@example.com")

	fullName := "Alice Liddell"
	updated, err := svc.Update(context.Background(), user.ID, ports.UpdateUserInput{FullName: &fullName})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.FullName != "Alice Liddell" {
		t.Fatalf("expected full name to change, got %q", updated.FullName)
	}
	if updated.Username != "alice" || updated.Email != "alice@example.com" {
		t.Fatalf("unsupplied fields changed: %+v", updated)
	}
	if updated.UpdatedAt == nil {
		t.Fatalf("expected UpdatedAt to be set")
	}
}

func TestUserService_Update_UsernameConflict(t *testing.T) {
	svc, _, _ := newUserFixture()
	mustCreateUser(t, svc, "alice", "alice@example.com")
	bob := mustCreateUser(t, svc, "bob", "bob@example.com")

	taken := "alice"
	_, err := svc.Update(context.Background(), bob.ID, ports.UpdateUserInput{Username: &taken})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserService_Update_SameUsernameIsNoConflict(t *testing.T) {
	svc, _, _ := newUserFixture()
	alice := mustCreateUser(t, svc, "alice", "alice@example.com")

	same := "alice"
	if _, err := svc.Update(context.Background(), alice.ID, ports.UpdateUserInput{Username: &same}); err != nil {
		t.Fatalf("updating to own username should succeed, got %v", err)
	}
}

func TestUserService_Delete_RefusedWhileOwningItems(t *testing.T) {
	svc, _, items := newUserFixture()
	alice := mustCreateUser(t, svc, "alice", "alice@example.com")

	_, err := items.Create(context.Background(), &domain.Item{
		Name: "Laptop", Price: 1299.99, Status: domain.ItemActive, OwnerID: alice.ID,
	})
	if err != nil {
		t.Fatalf("seeding item: %v", err)
	}

	if err := svc.Delete(context.Background(), alice.ID); !errors.Is(err, domain.ErrUserHasItems) {
		t.Fatalf("expected ErrUserHasItems, got %v", err)
	}

	// Once the item is gone, deletion proceeds.
	itemList, _, _ := items.List(context.Background(), ports.ListItemsFilter{})
	if err := items.Delete(context.Background(), itemList[0].ID); err != nil {
		t.Fatalf("deleting item: %v", err)
	}
	if err := svc.Delete(context.Background(), alice.ID); err != nil {
		t.Fatalf("expected deletion to succeed, got %v", err)
	}
	if _, err := svc.Get(context.Background(), alice.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
}

func TestUserService_Delete_Unknown(t *testing.T) {
	svc, _, _ := newUserFixture()

	if err := svc.Delete(context.Background(), 42); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_List_Pagination(t *testing.T) {
	svc, _, _ := newUserFixture()
	mustCreateUser(t, svc, "alice", "alice@example.com")
	mustCreateUser(t, svc, "bob", "bob@example.com")
	mustCreateUser(t, svc, "carol", "carol@example.com")

	page, total, err := svc.List(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if len(page) != 1 || page[0].Username != "bob" {
		t.Fatalf("expected second user in insertion order, got %+v", page)
	}
}

func TestUserService_List_NormalizesPaging(t *testing.T) {
	svc, _, _ := newUserFixture()
	mustCreateUser(t, svc, "alice", "alice@example.com")
	mustCreateUser(t, svc, "bob", "bob@example.com")

	// Negative skip and zero limit fall back to the defaults.
	page, total, err := svc.List(context.Background(), -3, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 2 || len(page) != 2 {
		t.Fatalf("expected both users, got %d of %d", len(page), total)
	}
	if page[0].Username != "alice" || page[1].Username != "bob" {
		t.Fatalf("unexpected order: %+v", page)
	}
}
