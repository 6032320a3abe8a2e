package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/starterkit/webapi/internal/core/domain"
)

// Capabilities maps a route key ("METHOD /path/pattern") to the roles allowed
// to call it. Routes absent from the table carry no role restriction beyond
// authentication. The table is declared once at router construction, so the
// full permission surface reads in one place.
type Capabilities map[string][]domain.Role

// RBAC enforces the capability table against the role of the session user
// injected by the Session middleware.
func RBAC(table Capabilities) echo.MiddlewareFunc {
	allowed := make(map[string]map[domain.Role]struct{}, len(table))
	for route, roles := range table {
		set := make(map[domain.Role]struct{}, len(roles))
		for _, r := range roles {
			set[r] = struct{}{}
		}
		allowed[route] = set
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			set, restricted := allowed[c.Request().Method+" "+c.Path()]
			if !restricted {
				return next(c)
			}

			user, _ := c.Get("current_user").(*domain.User)
			if user == nil {
				return domain.ErrSessionNotFound
			}
			if _, ok := set[user.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
