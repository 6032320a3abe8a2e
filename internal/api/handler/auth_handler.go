package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/starterkit/webapi/internal/api/metrics"
	"github.com/starterkit/webapi/internal/api/middleware"
	"github.com/starterkit/webapi/internal/core/ports"
	"github.com/starterkit/webapi/internal/pkg/i18n"
)

// defaultRedirect is where a successful login lands when the form carries no
// redirect_url.
const defaultRedirect = "/admin"

// AuthHandler drives the interactive session flow: login form, session
// cookie issuance, logout and the current-user probe.
type AuthHandler struct {
	sessions ports.SessionService
	tr       *i18n.Translator
}

func NewAuthHandler(sessions ports.SessionService, tr *i18n.Translator) *AuthHandler {
	return &AuthHandler{sessions: sessions, tr: tr}
}

type loginRequest struct {
	Username    string `json:"username" form:"username"`
	Password    string `json:"password" form:"password"`
	RedirectURL string `json:"redirect_url" form:"redirect_url"`
	Lang        string `json:"lang" form:"lang"`
}

// LoginPage handles GET /auth/login.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", h.loginData(c, "", c.QueryParam("redirect_url")))
}

// Login handles POST /auth/login. Browser form posts get a cookie plus a
// redirect; JSON clients get the user back.
//
// @Summary      Log in with username and password
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true   "Username"
// @Param        password  formData  string  true   "Password"
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]any
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	session, user, err := h.sessions.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.AuthFailuresTotal.WithLabelValues(authFailureReason(err)).Inc()
		if isBrowser(c) {
			locale := h.pickLocale(c, req.Lang)
			data := h.loginData(c, h.tr.T(locale, "auth.invalid_credentials", nil), req.RedirectURL)
			data["Username"] = req.Username
			return c.Render(http.StatusUnauthorized, "login.html", data)
		}
		return err
	}

	metrics.SessionsStartedTotal.Inc()
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	if req.Lang != "" && h.tr.IsSupported(req.Lang) {
		c.SetCookie(&http.Cookie{
			Name:    "lang_preference",
			Value:   req.Lang,
			Path:    "/",
			Expires: time.Now().Add(365 * 24 * time.Hour),
		})
	}

	if isBrowser(c) {
		return c.Redirect(http.StatusFound, safeRedirect(req.RedirectURL))
	}
	return c.JSON(http.StatusOK, user)
}

// Me handles GET /auth/me and returns the session user.
//
// @Summary      Current session user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]any
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Logout handles GET and POST /auth/logout. Unknown or already expired
// sessions log out cleanly.
func (h *AuthHandler) Logout(c echo.Context) error {
	if ck, err := c.Cookie(middleware.SessionCookie); err == nil && ck.Value != "" {
		if err := h.sessions.Logout(c.Request().Context(), ck.Value); err != nil {
			return err
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	if isBrowser(c) {
		return c.Redirect(http.StatusFound, "/auth/login")
	}
	locale := h.pickLocale(c, "")
	return c.JSON(http.StatusOK, map[string]string{"message": h.tr.T(locale, "auth.logged_out", nil)})
}

func (h *AuthHandler) loginData(c echo.Context, errMsg, redirectURL string) map[string]any {
	locale := h.pickLocale(c, "")
	return map[string]any{
		"Title":       h.tr.T(locale, "general.app_name", nil),
		"Error":       errMsg,
		"Username":    "",
		"RedirectURL": redirectURL,
		"Locales":     h.tr.Supported(),
		"Locale":      locale,
	}
}

// pickLocale prefers an explicit form value over whatever the locale
// middleware resolved.
func (h *AuthHandler) pickLocale(c echo.Context, formLang string) string {
	if formLang != "" && h.tr.IsSupported(formLang) {
		return formLang
	}
	if locale := ctxLocale(c); locale != "" {
		return locale
	}
	return h.tr.DefaultLocale()
}

// isBrowser reports whether the client negotiated an HTML response.
func isBrowser(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get("Accept"), "text/html")
}

// safeRedirect confines post-login redirects to local paths so the
// redirect_url parameter cannot send users off-site.
func safeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return defaultRedirect
	}
	return target
}
