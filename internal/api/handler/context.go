package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/starterkit/webapi/internal/core/domain"
)

// ctxLocale returns the locale resolved by the locale middleware, or the
// empty string when the middleware did not run (the error handler and the
// translator both fall back to the default locale in that case).
func ctxLocale(c echo.Context) string {
	locale, _ := c.Get("locale").(string)
	return locale
}

// ctxUser extracts the authenticated user injected by the session middleware.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("current_user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
