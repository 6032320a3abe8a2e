package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/starterkit/webapi/internal/api/web"
	"github.com/starterkit/webapi/internal/core/domain"
	"github.com/starterkit/webapi/internal/core/ports"
	"github.com/starterkit/webapi/internal/pkg/i18n"
)

func adminFixture(t *testing.T, users ports.UserService, apps ports.ClientAppService) *AdminHandler {
	t.Helper()
	tr, err := i18n.New("en")
	if err != nil {
		t.Fatalf("i18n.New returned error: %v", err)
	}
	return NewAdminHandler(users, &stubItemService{}, apps, tr)
}

// adminFormContext builds a context with both the renderer and the validator
// installed, which the dashboard form handlers rely on.
func adminFormContext(t *testing.T, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer returned error: %v", err)
	}
	e.Renderer = renderer
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAdminHandler_CreateUser_RejectsInvalidForm(t *testing.T) {
	users := &stubUserService{
		createFn: func(context.Context, ports.CreateUserInput) (*domain.User, error) {
			t.Fatal("Create must not be called for an invalid form")
			return nil, nil
		},
		listFn: func(context.Context, int, int) ([]domain.User, int, error) {
			return nil, 0, nil
		},
	}
	h := adminFixture(t, users, &stubClientAppService{})

	form := url.Values{
		"username": {"x"},
		"email":    {"not-an-email"},
		"password": {""},
	}
	c, rec := adminFormContext(t, "/admin/users", form)

	if err := h.CreateUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `class="error"`) {
		t.Fatalf("expected inline error message, got %q", body)
	}
	// rejected fields come back into the form
	if !strings.Contains(body, `value="not-an-email"`) {
		t.Fatalf("expected submitted email echoed, got %q", body)
	}
}

func TestAdminHandler_CreateUser_Success(t *testing.T) {
	var created ports.CreateUserInput
	users := &stubUserService{
		createFn: func(_ context.Context, input ports.CreateUserInput) (*domain.User, error) {
			created = input
			return &domain.User{ID: 5, Username: input.Username, Email: input.Email, Role: input.Role, IsActive: true}, nil
		},
	}
	h := adminFixture(t, users, &stubClientAppService{})

	form := url.Values{
		"username": {"dana"},
		"email":    {"dana@example.com"},
		"password": {"longenough"},
		"role":     {"moderator"},
	}
	c, rec := adminFormContext(t, "/admin/users", form)

	if err := h.CreateUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/users" {
		t.Fatalf("expected redirect to /admin/users, got %q", loc)
	}
	if created.Role != domain.RoleModerator || !created.IsActive {
		t.Fatalf("unexpected create input: %+v", created)
	}
}

func TestAdminHandler_UpdateUser_Success(t *testing.T) {
	users := &stubUserService{
		updateFn: func(_ context.Context, id int, input ports.UpdateUserInput) (*domain.User, error) {
			if id != 7 {
				t.Fatalf("expected id 7, got %d", id)
			}
			if input.Role == nil || *input.Role != domain.RoleModerator {
				t.Fatalf("expected role moderator, got %+v", input.Role)
			}
			if input.IsActive == nil || !*input.IsActive {
				t.Fatalf("expected is_active true, got %+v", input.IsActive)
			}
			return &domain.User{ID: id}, nil
		},
	}
	h := adminFixture(t, users, &stubClientAppService{})

	form := url.Values{
		"full_name": {"Dana Doe"},
		"role":      {"moderator"},
		"is_active": {"on"},
	}
	c, rec := adminFormContext(t, "/admin/users/7", form)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.UpdateUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
}

func TestAdminHandler_DeleteUser_StillOwnsItems(t *testing.T) {
	users := &stubUserService{
		deleteFn: func(_ context.Context, id int) error {
			return domain.ErrUserHasItems
		},
		listFn: func(context.Context, int, int) ([]domain.User, int, error) {
			return []domain.User{{ID: 7, Username: "dana"}}, 1, nil
		},
	}
	h := adminFixture(t, users, &stubClientAppService{})

	c, rec := adminFormContext(t, "/admin/users/7/delete", url.Values{})
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.DeleteUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "cannot be deleted") {
		t.Fatalf("expected ownership message, got %q", rec.Body.String())
	}
}

func TestAdminHandler_CreateClientApp_ShowsSecretOnce(t *testing.T) {
	app := domain.ClientApp{ID: 2, AppID: "app_reportingsvc0001", Name: "reporting", IsActive: true}
	apps := &stubClientAppService{
		createFn: func(_ context.Context, input ports.CreateClientAppInput) (*ports.ClientAppWithSecret, error) {
			if input.Name != "reporting" || !input.IsActive {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.ClientAppWithSecret{ClientApp: app, AppSecret: "one-time-secret"}, nil
		},
		listFn: func(context.Context, int, int) ([]domain.ClientApp, int, error) {
			return []domain.ClientApp{app}, 1, nil
		},
	}
	h := adminFixture(t, &stubUserService{}, apps)

	form := url.Values{"name": {"reporting"}, "description": {"nightly exports"}}
	c, rec := adminFormContext(t, "/admin/client-apps", form)

	if err := h.CreateClientApp(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "one-time-secret") {
		t.Fatalf("expected the plaintext secret in the page, got %q", body)
	}
	if !strings.Contains(body, "app_reportingsvc0001") {
		t.Fatalf("expected the app id in the page, got %q", body)
	}
}

func TestAdminHandler_CreateClientApp_RejectsShortName(t *testing.T) {
	apps := &stubClientAppService{
		createFn: func(context.Context, ports.CreateClientAppInput) (*ports.ClientAppWithSecret, error) {
			t.Fatal("Create must not be called for an invalid form")
			return nil, nil
		},
		listFn: func(context.Context, int, int) ([]domain.ClientApp, int, error) {
			return nil, 0, nil
		},
	}
	h := adminFixture(t, &stubUserService{}, apps)

	form := url.Values{"name": {"ab"}}
	c, rec := adminFormContext(t, "/admin/client-apps", form)

	if err := h.CreateClientApp(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
