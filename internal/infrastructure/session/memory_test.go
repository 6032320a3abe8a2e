package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/starterkit/webapi/internal/core/domain"
)

func TestMemoryStore_PutGetDelete(t *testing.T) {
	store := NewMemoryStore()

	sess := domain.Session{Token: "tok-1", UserID: 7, ExpiresAt: time.Now().Add(time.Hour)}
	if err := store.Put(context.Background(), sess); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, err := store.Get(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.UserID != 7 {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := store.Delete(context.Background(), "tok-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := store.Get(context.Background(), "tok-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemoryStore_ExpiredEvictedOnGet(t *testing.T) {
	store := NewMemoryStore()

	sess := domain.Session{Token: "tok-old", UserID: 7, ExpiresAt: time.Now().Add(-time.Minute)}
	if err := store.Put(context.Background(), sess); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	if _, err := store.Get(context.Background(), "tok-old"); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	// Second read reports not found: the record was evicted.
	if _, err := store.Get(context.Background(), "tok-old"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemoryStore_DeleteUnknown(t *testing.T) {
	store := NewMemoryStore()

	if err := store.Delete(context.Background(), "ghost"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
