package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/starterkit/webapi/internal/pkg/i18n"
)

// I18nHandler exposes the translation catalogs over HTTP.
type I18nHandler struct {
	tr *i18n.Translator
}

func NewI18nHandler(tr *i18n.Translator) *I18nHandler {
	return &I18nHandler{tr: tr}
}

type localesResponse struct {
	Locales []string `json:"locales"`
	Default string   `json:"default"`
}

type translateResponse struct {
	Key     string `json:"key"`
	Locale  string `json:"locale"`
	Message string `json:"message"`
}

// Locales handles GET /api/v1/i18n/locales.
//
// @Summary      List supported locales
// @Tags         i18n
// @Produce      json
// @Success      200  {object}  localesResponse
// @Router       /api/v1/i18n/locales [get]
func (h *I18nHandler) Locales(c echo.Context) error {
	return c.JSON(http.StatusOK, localesResponse{
		Locales: h.tr.Supported(),
		Default: h.tr.DefaultLocale(),
	})
}

// Translations handles GET /api/v1/i18n/translations/:locale and returns the
// full catalog for one locale.
//
// @Summary      Fetch a full translation catalog
// @Tags         i18n
// @Produce      json
// @Param        locale  path      string  true  "Locale code (e.g. en, es)"
// @Success      200     {object}  map[string]string
// @Failure      404     {object}  map[string]any
// @Router       /api/v1/i18n/translations/{locale} [get]
func (h *I18nHandler) Translations(c echo.Context) error {
	locale := c.Param("locale")

	catalog, ok := h.tr.Translations(locale)
	if !ok {
		msg := h.tr.T(resolveLocale(c, h.tr), "i18n.locale_not_supported", map[string]any{"Locale": locale})
		return echo.NewHTTPError(http.StatusNotFound, msg)
	}

	return c.JSON(http.StatusOK, catalog)
}

// Translate handles GET /api/v1/i18n/translate/:key, resolving the key in the
// request locale. Unknown keys come back verbatim.
//
// @Summary      Translate a single message key
// @Tags         i18n
// @Produce      json
// @Param        key   path   string  true   "Message key (e.g. general.welcome)"
// @Param        lang  query  string  false  "Locale override"
// @Success      200   {object}  translateResponse
// @Router       /api/v1/i18n/translate/{key} [get]
func (h *I18nHandler) Translate(c echo.Context) error {
	key := c.Param("key")
	locale := resolveLocale(c, h.tr)

	return c.JSON(http.StatusOK, translateResponse{
		Key:     key,
		Locale:  locale,
		Message: h.tr.T(locale, key, nil),
	})
}

func resolveLocale(c echo.Context, tr *i18n.Translator) string {
	if locale := ctxLocale(c); locale != "" {
		return locale
	}
	return tr.DefaultLocale()
}
