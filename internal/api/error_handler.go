package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/starterkit/webapi/internal/core/domain"
	"github.com/starterkit/webapi/internal/pkg/i18n"
)

// errorBody is the canonical error envelope for all API errors. Code is a
// stable machine-readable identifier; Message is localized per the request
// locale. Detail carries field-level validation text and is omitted otherwise.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Localizes the human-readable message per the locale middleware.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the error page for browser routes, JSON everywhere else.
func NewHTTPErrorHandler(tr *i18n.Translator, log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, tr, log, c)

		if wantsHTML(c) {
			data := map[string]any{
				"Status":  status,
				"Code":    body.Code,
				"Message": body.Message,
			}
			if rerr := c.Render(status, "error.html", data); rerr == nil {
				return
			}
		}
		_ = c.JSON(status, errorResponse{Error: body})
	}
}

// wantsHTML reports whether the failed request belongs to a browser surface.
// API, health and metrics routes always answer JSON regardless of Accept.
func wantsHTML(c echo.Context) bool {
	p := c.Request().URL.Path
	if strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/health") || p == "/metrics" {
		return false
	}
	return strings.Contains(c.Request().Header.Get("Accept"), "text/html")
}

func resolveError(err error, tr *i18n.Translator, log zerolog.Logger, c echo.Context) (int, errorBody) {
	locale, _ := c.Get("locale").(string)
	if locale == "" {
		locale = tr.DefaultLocale()
	}
	msg := func(key string) string { return tr.T(locale, key, nil) }

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		detail := fmt.Sprintf("%v", he.Message)
		switch he.Code {
		case http.StatusBadRequest:
			return he.Code, errorBody{Code: "validation_error", Message: msg("errors.validation"), Detail: detail}
		case http.StatusNotFound:
			return he.Code, errorBody{Code: "not_found", Message: msg("errors.not_found")}
		case http.StatusUnauthorized:
			return he.Code, errorBody{Code: "authentication_required", Message: msg("auth.authentication_required"), Detail: detail}
		default:
			return he.Code, errorBody{Code: "http_error", Message: detail}
		}
	}

	// Known domain errors → deterministic HTTP codes and localized messages.
	for _, m := range domainErrorTable {
		if errors.Is(err, m.err) {
			return m.status, errorBody{Code: m.code, Message: msg(m.key)}
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorBody{Code: "internal_error", Message: msg("errors.internal")}
}

// domainErrorTable is the single source of truth for how domain sentinel
// errors surface over HTTP. Order matters only for wrapped chains that could
// match twice, which none of these do.
var domainErrorTable = []struct {
	err    error
	status int
	code   string
	key    string
}{
	{domain.ErrUserNotFound, http.StatusNotFound, "user_not_found", "users.not_found"},
	{domain.ErrItemNotFound, http.StatusNotFound, "item_not_found", "items.not_found"},
	{domain.ErrClientAppNotFound, http.StatusNotFound, "client_app_not_found", "client_apps.not_found"},
	{domain.ErrSessionNotFound, http.StatusUnauthorized, "authentication_required", "auth.authentication_required"},
	{domain.ErrSessionExpired, http.StatusUnauthorized, "session_expired", "auth.session_expired"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials", "auth.invalid_credentials"},
	{domain.ErrUserDisabled, http.StatusUnauthorized, "account_disabled", "auth.account_disabled"},
	{domain.ErrTokenExpired, http.StatusUnauthorized, "token_expired", "token.expired"},
	{domain.ErrTokenMalformed, http.StatusUnauthorized, "token_malformed", "token.malformed"},
	{domain.ErrTokenInvalid, http.StatusUnauthorized, "token_invalid", "token.invalid"},
	{domain.ErrUnknownClient, http.StatusUnauthorized, "unknown_client", "token.unknown_client"},
	{domain.ErrClientDisabled, http.StatusUnauthorized, "client_disabled", "token.client_disabled"},
	{domain.ErrInvalidClientSecret, http.StatusUnauthorized, "invalid_credentials", "auth.invalid_credentials"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden", "authz.forbidden"},
	{domain.ErrUsernameTaken, http.StatusConflict, "username_taken", "users.username_already_exists"},
	{domain.ErrEmailTaken, http.StatusConflict, "email_taken", "users.email_already_exists"},
	{domain.ErrClientAppNameTaken, http.StatusConflict, "client_app_name_taken", "client_apps.name_already_exists"},
	{domain.ErrUserHasItems, http.StatusConflict, "user_has_items", "users.has_items"},
	{domain.ErrOwnerNotFound, http.StatusBadRequest, "owner_not_found", "items.owner_not_found"},
	{domain.ErrInvalidRole, http.StatusBadRequest, "invalid_role", "errors.validation"},
	{domain.ErrInvalidPrice, http.StatusBadRequest, "invalid_price", "items.invalid_price"},
	{domain.ErrInvalidStatus, http.StatusBadRequest, "invalid_status", "items.invalid_status"},
}
