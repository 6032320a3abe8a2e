package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/starterkit/webapi/internal/core/domain"
	"github.com/starterkit/webapi/internal/infrastructure/db/memory"
)

const testAppSecret = "s3cret-credential"

func newTokenFixture(t *testing.T, active bool) (*TokenService, *memory.ClientAppRepository, *domain.ClientApp) {
	t.Helper()
	apps := memory.NewClientAppRepository()

	hash, err := bcrypt.GenerateFromPassword([]byte(testAppSecret), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing secret: %v", err)
	}
	app, err := apps.Create(context.Background(), &domain.ClientApp{
		AppID:         "app_testclient00001",
		AppSecretHash: string(hash),
		Name:          "Test Client",
		IsActive:      active,
	})
	if err != nil {
		t.Fatalf("seeding client app: %v", err)
	}

	return NewTokenService(apps, "unit-test-secret", zerolog.Nop()), apps, app
}

func TestTokenService_Issue_Defaults(t *testing.T) {
	svc, _, app := newTokenFixture(t, true)

	issued, err := svc.Issue(context.Background(), app.AppID, testAppSecret, 0)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if issued.TokenType != "bearer" {
		t.Fatalf("expected bearer token type, got %q", issued.TokenType)
	}
	if issued.ExpiresIn != 3600 {
		t.Fatalf("expected default lifetime 3600, got %d", issued.ExpiresIn)
	}

	claims, err := svc.Verify(context.Background(), issued.AccessToken)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.AppID != app.AppID || claims.AppName != "Test Client" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenService_Issue_ClampsLifetime(t *testing.T) {
	svc, _, app := newTokenFixture(t, true)

	issued, err := svc.Issue(context.Background(), app.AppID, testAppSecret, 1_000_000)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if issued.ExpiresIn != 86400 {
		t.Fatalf("expected lifetime clamped to 86400, got %d", issued.ExpiresIn)
	}
}

func TestTokenService_Issue_UnknownClient(t *testing.T) {
	svc, _, _ := newTokenFixture(t, true)

	if _, err := svc.Issue(context.Background(), "app_nosuchclient", testAppSecret, 0); !errors.Is(err, domain.ErrUnknownClient) {
		t.Fatalf("expected ErrUnknownClient, got %v", err)
	}
}

func TestTokenService_Issue_WrongSecret(t *testing.T) {
	svc, _, app := newTokenFixture(t, true)

	if _, err := svc.Issue(context.Background(), app.AppID, "wrong", 0); !errors.Is(err, domain.ErrInvalidClientSecret) {
		t.Fatalf("expected ErrInvalidClientSecret, got %v", err)
	}
}

func TestTokenService_Issue_DisabledClient(t *testing.T) {
	svc, _, app := newTokenFixture(t, false)

	if _, err := svc.Issue(context.Background(), app.AppID, testAppSecret, 0); !errors.Is(err, domain.ErrClientDisabled) {
		t.Fatalf("expected ErrClientDisabled, got %v", err)
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc, _, app := newTokenFixture(t, true)

	base := time.Now()
	svc.now = func() time.Time { return base }

	issued, err := svc.Issue(context.Background(), app.AppID, testAppSecret, 60)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	svc.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := svc.Verify(context.Background(), issued.AccessToken); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	svc, _, _ := newTokenFixture(t, true)

	if _, err := svc.Verify(context.Background(), "not-a-jwt"); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestTokenService_Verify_WrongSigningKey(t *testing.T) {
	svc, apps, app := newTokenFixture(t, true)

	issued, err := svc.Issue(context.Background(), app.AppID, testAppSecret, 60)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	other := NewTokenService(apps, "different-secret", zerolog.Nop())
	if _, err := other.Verify(context.Background(), issued.AccessToken); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_Verify_ClientDisabledAfterIssue(t *testing.T) {
	svc, apps, app := newTokenFixture(t, true)

	issued, err := svc.Issue(context.Background(), app.AppID, testAppSecret, 60)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	app.IsActive = false
	if _, err := apps.Update(context.Background(), app); err != nil {
		t.Fatalf("disabling client: %v", err)
	}

	if _, err := svc.Verify(context.Background(), issued.AccessToken); !errors.Is(err, domain.ErrClientDisabled) {
		t.Fatalf("expected ErrClientDisabled, got %v", err)
	}
}
