package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/starterkit/webapi/internal/core/domain"
	"github.com/starterkit/webapi/internal/core/ports"
)

// SessionCookie is the cookie carrying the opaque session token.
const SessionCookie = "session_token"

// Session resolves the session cookie, when present, into the authenticated
// user and stores it under "current_user". It never rejects the request:
// routes that need a user stack RequireUser on top. A failed resolution is
// kept under "session_error" so RequireUser can report expiry precisely.
func Session(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(SessionCookie)
			if err != nil || ck.Value == "" {
				return next(c)
			}

			user, err := sessions.Resolve(c.Request().Context(), ck.Value)
			if err != nil {
				c.Set("session_error", err)
				return next(c)
			}

			c.Set("current_user", user)
			return next(c)
		}
	}
}

// RequireUser rejects requests that did not resolve to an authenticated user.
// Browser surfaces get a redirect to the login page with the original path in
// redirect_url; API routes get the domain error for the central handler.
func RequireUser(htmlRedirect bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get("current_user").(*domain.User); ok {
				return next(c)
			}

			if htmlRedirect {
				target := "/auth/login?redirect_url=" + url.QueryEscape(c.Request().URL.RequestURI())
				return c.Redirect(http.StatusFound, target)
			}

			if err, ok := c.Get("session_error").(error); ok {
				return err
			}
			return domain.ErrSessionNotFound
		}
	}
}
