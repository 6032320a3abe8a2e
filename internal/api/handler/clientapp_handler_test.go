package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/starterkit/webapi/internal/core/domain"
	"github.com/starterkit/webapi/internal/core/ports"
)

type stubClientAppService struct {
	createFn     func(ctx context.Context, input ports.CreateClientAppInput) (*ports.ClientAppWithSecret, error)
	listFn       func(ctx context.Context, skip, limit int) ([]domain.ClientApp, int, error)
	regenerateFn func(ctx context.Context, id int) (*ports.ClientAppWithSecret, error)
}

func (s *stubClientAppService) Create(ctx context.Context, input ports.CreateClientAppInput) (*ports.ClientAppWithSecret, error) {
	return s.createFn(ctx, input)
}

func (s *stubClientAppService) Get(context.Context, int) (*domain.ClientApp, error) {
	panic("Get is not used in this test")
}

func (s *stubClientAppService) List(ctx context.Context, skip, limit int) ([]domain.ClientApp, int, error) {
	if s.listFn != nil {
		return s.listFn(ctx, skip, limit)
	}
	panic("List is not used in this test")
}

func (s *stubClientAppService) Update(context.Context, int, ports.UpdateClientAppInput) (*domain.ClientApp, error) {
	panic("Update is not used in this test")
}

func (s *stubClientAppService) Delete(context.Context, int) error {
	panic("Delete is not used in this test")
}

func (s *stubClientAppService) RegenerateSecret(ctx context.Context, id int) (*ports.ClientAppWithSecret, error) {
	return s.regenerateFn(ctx, id)
}

func TestClientAppHandler_Create_ReturnsPlaintextSecret(t *testing.T) {
	stub := &stubClientAppService{
		createFn: func(_ context.Context, input ports.CreateClientAppInput) (*ports.ClientAppWithSecret, error) {
			if input.Name != "mobile" || !input.IsActive {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.ClientAppWithSecret{
				ClientApp: domain.ClientApp{ID: 1, AppID: "app_mobileclient0001", Name: input.Name, IsActive: true},
				AppSecret: "plain-secret",
			}, nil
		},
	}
	h := NewClientAppHandler(stub)

	c, rec := jsonContext(http.MethodPost, "/api/v1/client-apps", `{"name":"mobile"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["app_secret"] != "plain-secret" {
		t.Fatalf("expected plaintext secret in creation response, got %v", resp)
	}
	if _, leaked := resp["hashed_secret"]; leaked {
		t.Fatalf("secret hash leaked into response")
	}
}

func TestClientAppHandler_RegenerateSecret(t *testing.T) {
	stub := &stubClientAppService{
		regenerateFn: func(_ context.Context, id int) (*ports.ClientAppWithSecret, error) {
			if id != 5 {
				t.Fatalf("unexpected id %d", id)
			}
			return &ports.ClientAppWithSecret{
				ClientApp: domain.ClientApp{ID: 5, AppID: "app_mobileclient0001", Name: "mobile"},
				AppSecret: "fresh-secret",
			}, nil
		},
	}
	h := NewClientAppHandler(stub)

	c, rec := jsonContext(http.MethodPost, "/api/v1/client-apps/5/regenerate-secret", "")
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := h.RegenerateSecret(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["app_secret"] != "fresh-secret" {
		t.Fatalf("expected new secret, got %v", resp)
	}
}

func TestClientAppHandler_RegenerateSecret_UnknownApp(t *testing.T) {
	stub := &stubClientAppService{
		regenerateFn: func(context.Context, int) (*ports.ClientAppWithSecret, error) {
			return nil, domain.ErrClientAppNotFound
		},
	}
	h := NewClientAppHandler(stub)

	c, _ := jsonContext(http.MethodPost, "/api/v1/client-apps/99/regenerate-secret", "")
	c.SetParamNames("id")
	c.SetParamValues("99")

	if err := h.RegenerateSecret(c); !errors.Is(err, domain.ErrClientAppNotFound) {
		t.Fatalf("expected ErrClientAppNotFound, got %v", err)
	}
}
