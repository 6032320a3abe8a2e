package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/starterkit/webapi/internal/pkg/i18n"
)

// langCookie is the cookie the login form and the portal write to persist a
// language choice across requests.
const langCookie = "lang_preference"

// Locale resolves the request locale and stores it under "locale" so handlers
// and the error handler can localize their output. Resolution order:
// explicit ?lang= query, the lang_preference cookie, the Accept-Language
// header, then the configured default. Unsupported values fall through to
// the next source.
func Locale(tr *i18n.Translator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			locale := tr.DefaultLocale()

			if header := c.Request().Header.Get("Accept-Language"); header != "" {
				locale = tr.MatchAcceptLanguage(header)
			}
			if ck, err := c.Cookie(langCookie); err == nil && tr.IsSupported(ck.Value) {
				locale = ck.Value
			}
			if q := c.QueryParam("lang"); q != "" && tr.IsSupported(q) {
				locale = q
			}

			c.Set("locale", locale)
			return next(c)
		}
	}
}
