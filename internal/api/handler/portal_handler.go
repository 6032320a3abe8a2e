package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/starterkit/webapi/internal/core/domain"
	"github.com/starterkit/webapi/internal/core/ports"
	"github.com/starterkit/webapi/internal/pkg/i18n"
)

// PortalHandler renders the public landing pages and the logged-in user
// portal with its item search.
type PortalHandler struct {
	users ports.UserService
	items ports.ItemService
	tr    *i18n.Translator
}

func NewPortalHandler(users ports.UserService, items ports.ItemService, tr *i18n.Translator) *PortalHandler {
	return &PortalHandler{users: users, items: items, tr: tr}
}

func (h *PortalHandler) pageData(c echo.Context, titleKey string) map[string]any {
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

// Landing handles GET /.
func (h *PortalHandler) Landing(c echo.Context) error {
	return c.Render(http.StatusOK, "landing.html", h.pageData(c, "general.app_name"))
}

// Home handles GET /home, kept for clients bookmarked on the old path.
func (h *PortalHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home.html", h.pageData(c, "general.welcome"))
}

// PortalRedirect handles GET /user-portal, the old portal entry point.
func (h *PortalHandler) PortalRedirect(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/user/search")
}

// Search handles GET /user/search. Filters: q matches name or description
// case-insensitively, status restricts to one item status, max_price caps the
// price. Filtering beyond status happens here because the storage layer only
// indexes owner and status.
func (h *PortalHandler) Search(c echo.Context) error {
	q := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))
	status := domain.ItemStatus(c.QueryParam("status"))
	maxPrice, _ := strconv.ParseFloat(c.QueryParam("max_price"), 64)

	// widest page the listing allows; text and price filters apply below
	filter := ports.ListItemsFilter{Status: status, Limit: 1000}
	items, _, err := h.items.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	matched := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if q != "" && !strings.Contains(strings.ToLower(it.Name), q) &&
			!strings.Contains(strings.ToLower(it.Description), q) {
			continue
		}
		if maxPrice > 0 && it.Price > maxPrice {
			continue
		}
		matched = append(matched, it)
	}

	data := h.pageData(c, "portal.search_title")
	data["Query"] = c.QueryParam("q")
	data["Status"] = string(status)
	data["MaxPrice"] = c.QueryParam("max_price")
	data["Results"] = joinOwners(c, h.users, matched)
	data["Statuses"] = []domain.ItemStatus{domain.ItemActive, domain.ItemInactive, domain.ItemDraft}
	return c.Render(http.StatusOK, "search.html", data)
}
