package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/starterkit/webapi/internal/api/metrics"
	"github.com/starterkit/webapi/internal/core/domain"
	"github.com/starterkit/webapi/internal/core/ports"
	"github.com/starterkit/webapi/internal/pkg/i18n"
)

// AdminHandler renders the server-side admin dashboard. All routes under
// /admin sit behind the session middleware and the capability table.
type AdminHandler struct {
	users ports.UserService
	items ports.ItemService
	apps  ports.ClientAppService
	tr    *i18n.Translator
}

func NewAdminHandler(users ports.UserService, items ports.ItemService, apps ports.ClientAppService, tr *i18n.Translator) *AdminHandler {
	return &AdminHandler{users: users, items: items, apps: apps, tr: tr}
}

// pageData assembles the fields every admin template expects: the full
// message catalog for the request locale, the session user and the title.
func (h *AdminHandler) pageData(c echo.Context, titleKey string) map[string]any {
	locale := resolveLocale(c, h.tr)
	catalog, _ := h.tr.Translations(locale)
	user, _ := c.Get("current_user").(*domain.User)

	return map[string]any{
		"T":      catalog,
		"Locale": locale,
		"User":   user,
		"Title":  h.tr.T(locale, titleKey, nil),
	}
}

// Dashboard handles GET /admin.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	_, userTotal, err := h.users.List(ctx, 0, 1)
	if err != nil {
		return err
	}
	_, itemTotal, err := h.items.List(ctx, ports.ListItemsFilter{Limit: 1})
	if err != nil {
		return err
	}
	_, appTotal, err := h.apps.List(ctx, 0, 1)
	if err != nil {
		return err
	}

	data := h.pageData(c, "admin.dashboard_title")
	data["UserCount"] = userTotal
	data["ItemCount"] = itemTotal
	data["ClientAppCount"] = appTotal
	return c.Render(http.StatusOK, "dashboard.html", data)
}

// Users handles GET /admin/users.
func (h *AdminHandler) Users(c echo.Context) error {
	skip, limit := pageParams(c)
	users, total, err := h.users.List(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}

	data := h.pageData(c, "admin.users_title")
	data["Users"] = users
	data["Total"] = total
	return c.Render(http.StatusOK, "users.html", data)
}

type adminCreateUserForm struct {
	Username string `form:"username" validate:"required,min=3,max=50"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=8"`
	FullName string `form:"full_name" validate:"max=100"`
	Role     string `form:"role" validate:"omitempty,oneof=admin user moderator"`
}

// renderUsers re-renders the user list page, used by the form handlers when
// a submission fails so the message and echoed fields appear inline.
func (h *AdminHandler) renderUsers(c echo.Context, status int, form any, errMsg string) error {
	users, total, err := h.users.List(c.Request().Context(), 0, 0)
	if err != nil {
		return err
	}
	data := h.pageData(c, "admin.users_title")
	data["Users"] = users
	data["Total"] = total
	data["Error"] = errMsg
	data["Form"] = form
	return c.Render(status, "users.html", data)
}

// CreateUser handles POST /admin/users, the dashboard's create form. Errors
// re-render the user list with the localized message inline.
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var form adminCreateUserForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderUsers(c, http.StatusBadRequest, form, h.localizeError(c, err))
	}

	role := domain.Role(form.Role)
	if form.Role == "" {
		role = domain.RoleUser
	}

	_, err := h.users.Create(c.Request().Context(), ports.CreateUserInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
		FullName: form.FullName,
		Role:     role,
		IsActive: true,
	})
	if err != nil {
		return h.renderUsers(c, http.StatusConflict, form, h.localizeError(c, err))
	}

	metrics.EntitiesCreatedTotal.WithLabelValues("user").Inc()
	return c.Redirect(http.StatusSeeOther, "/admin/users")
}

type adminUpdateUserForm struct {
	FullName string `form:"full_name" validate:"max=100"`
	Role     string `form:"role" validate:"required,oneof=admin user moderator"`
	IsActive string `form:"is_active"`
}

// UpdateUser handles POST /admin/users/:id, the per-row edit form. The form
// covers the fields an administrator maintains; credentials stay untouched.
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var form adminUpdateUserForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderUsers(c, http.StatusBadRequest, nil, h.localizeError(c, err))
	}

	role := domain.Role(form.Role)
	isActive := form.IsActive == "on"
	_, err = h.users.Update(c.Request().Context(), id, ports.UpdateUserInput{
		FullName: &form.FullName,
		Role:     &role,
		IsActive: &isActive,
	})
	if err != nil {
		status := http.StatusConflict
		if err == domain.ErrUserNotFound {
			status = http.StatusNotFound
		}
		return h.renderUsers(c, status, nil, h.localizeError(c, err))
	}
	return c.Redirect(http.StatusSeeOther, "/admin/users")
}

// DeleteUser handles POST /admin/users/:id/delete. Deleting a user that
// still owns items fails and the page reports it.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		status := http.StatusConflict
		if err == domain.ErrUserNotFound {
			status = http.StatusNotFound
		}
		return h.renderUsers(c, status, nil, h.localizeError(c, err))
	}
	return c.Redirect(http.StatusSeeOther, "/admin/users")
}

// Items handles GET /admin/items, joining owner usernames onto each row.
func (h *AdminHandler) Items(c echo.Context) error {
	skip, limit := pageParams(c)
	items, total, err := h.items.List(c.Request().Context(), ports.ListItemsFilter{Skip: skip, Limit: limit})
	if err != nil {
		return err
	}

	data := h.pageData(c, "admin.items_title")
	data["Items"] = joinOwners(c, h.users, items)
	data["Total"] = total
	return c.Render(http.StatusOK, "items.html", data)
}

// ClientApps handles GET /admin/client-apps.
func (h *AdminHandler) ClientApps(c echo.Context) error {
	skip, limit := pageParams(c)
	apps, total, err := h.apps.List(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}

	data := h.pageData(c, "admin.client_apps_title")
	data["ClientApps"] = apps
	data["Total"] = total
	return c.Render(http.StatusOK, "client_apps.html", data)
}

type adminCreateClientAppForm struct {
	Name        string `form:"name" validate:"required,min=3,max=100"`
	Description string `form:"description" validate:"max=500"`
}

// renderClientApps re-renders the client app list. The extra map carries
// per-request fields such as the one-time secret.
func (h *AdminHandler) renderClientApps(c echo.Context, status int, extra map[string]any) error {
	apps, total, err := h.apps.List(c.Request().Context(), 0, 0)
	if err != nil {
		return err
	}
	data := h.pageData(c, "admin.client_apps_title")
	data["ClientApps"] = apps
	data["Total"] = total
	for k, v := range extra {
		data[k] = v
	}
	return c.Render(status, "client_apps.html", data)
}

// CreateClientApp handles POST /admin/client-apps. On success the page is
// rendered directly instead of redirecting, because the plaintext secret
// exists only in this response.
func (h *AdminHandler) CreateClientApp(c echo.Context) error {
	var form adminCreateClientAppForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderClientApps(c, http.StatusBadRequest, map[string]any{
			"Error": h.localizeError(c, err),
			"Form":  form,
		})
	}

	created, err := h.apps.Create(c.Request().Context(), ports.CreateClientAppInput{
		Name:        form.Name,
		Description: form.Description,
		IsActive:    true,
	})
	if err != nil {
		return h.renderClientApps(c, http.StatusConflict, map[string]any{
			"Error": h.localizeError(c, err),
			"Form":  form,
		})
	}

	metrics.EntitiesCreatedTotal.WithLabelValues("client_app").Inc()
	return h.renderClientApps(c, http.StatusCreated, map[string]any{
		"NewApp":    created.ClientApp,
		"NewSecret": created.AppSecret,
	})
}

// ItemRow is an item joined with its owner's username for table rendering.
type ItemRow struct {
	domain.Item
	OwnerName string
}

// joinOwners resolves owner usernames for a page of items. Owners that no
// longer resolve render with an empty name rather than failing the page.
func joinOwners(c echo.Context, users ports.UserService, items []domain.Item) []ItemRow {
	rows := make([]ItemRow, 0, len(items))
	names := make(map[int]string)
	for _, it := range items {
		name, ok := names[it.OwnerID]
		if !ok {
			if owner, err := users.Get(c.Request().Context(), it.OwnerID); err == nil {
				name = owner.Username
			}
			names[it.OwnerID] = name
		}
		rows = append(rows, ItemRow{Item: it, OwnerName: name})
	}
	return rows
}

func (h *AdminHandler) localizeError(c echo.Context, err error) string {
	locale := resolveLocale(c, h.tr)
	switch err {
	case domain.ErrUsernameTaken:
		return h.tr.T(locale, "users.username_already_exists", nil)
	case domain.ErrEmailTaken:
		return h.tr.T(locale, "users.email_already_exists", nil)
	case domain.ErrUserNotFound:
		return h.tr.T(locale, "users.not_found", nil)
	case domain.ErrUserHasItems:
		return h.tr.T(locale, "users.has_items", nil)
	case domain.ErrClientAppNameTaken:
		return h.tr.T(locale, "client_apps.name_already_exists", nil)
	}

	// Validator failures carry a field-level message worth surfacing as is.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return msg
		}
	}
	return h.tr.T(locale, "errors.validation", nil)
}
