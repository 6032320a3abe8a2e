package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/starterkit/webapi/internal/core/ports"
)

// TokenAuth validates the Bearer token against the token service and injects
// the client application claims into context under "app_id" and "app_name".
// Verification failures surface as domain errors so the central error handler
// can distinguish expired, malformed and revoked tokens.
func TokenAuth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(c.Request().Context(), parts[1])
			if err != nil {
				return err
			}

			c.Set("app_id", claims.AppID)
			c.Set("app_name", claims.AppName)

			return next(c)
		}
	}
}
