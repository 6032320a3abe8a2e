package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/starterkit/webapi/internal/pkg/i18n"
)

func localeMiddleware(t *testing.T) echo.MiddlewareFunc {
	t.Helper()
	tr, err := i18n.New("en")
	if err != nil {
		t.Fatalf("i18n.New returned error: %v", err)
	}
	return Locale(tr)
}

func runLocale(t *testing.T, mw echo.MiddlewareFunc, target, acceptLanguage, cookie string) string {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: langCookie, Value: cookie})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error { return nil })
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	locale, _ := c.Get("locale").(string)
	return locale
}

func TestLocale_QueryBeatsCookieAndHeader(t *testing.T) {
	mw := localeMiddleware(t)

	if got := runLocale(t, mw, "/?lang=pl", "de-DE", "fr"); got != "pl" {
		t.Fatalf("expected pl, got %q", got)
	}
}

func TestLocale_CookieBeatsHeader(t *testing.T) {
	mw := localeMiddleware(t)

	if got := runLocale(t, mw, "/", "de-DE", "fr"); got != "fr" {
		t.Fatalf("expected fr, got %q", got)
	}
}

func TestLocale_HeaderFallback(t *testing.T) {
	mw := localeMiddleware(t)

	if got := runLocale(t, mw, "/", "de-DE,de;q=0.9", ""); got != "de" {
		t.Fatalf("expected de, got %q", got)
	}
}

func TestLocale_DefaultWhenNothingMatches(t *testing.T) {
	mw := localeMiddleware(t)

	if got := runLocale(t, mw, "/", "", ""); got != "en" {
		t.Fatalf("expected en, got %q", got)
	}
}

func TestLocale_UnsupportedValuesFallThrough(t *testing.T) {
	mw := localeMiddleware(t)

	// Unsupported query and cookie values are ignored; the header wins.
	if got := runLocale(t, mw, "/?lang=xx", "es-MX", "yy"); got != "es" {
		t.Fatalf("expected es, got %q", got)
	}
}
