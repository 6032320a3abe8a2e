package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/starterkit/webapi/internal/api/metrics"
	"github.com/starterkit/webapi/internal/core/domain"
	"github.com/starterkit/webapi/internal/core/ports"
)

// TokenHandler exchanges client credentials for short-lived API tokens.
type TokenHandler struct {
	service ports.TokenService
}

func NewTokenHandler(service ports.TokenService) *TokenHandler {
	return &TokenHandler{service: service}
}

type issueTokenRequest struct {
	AppID     string `json:"app_id" form:"app_id" validate:"required"`
	AppSecret string `json:"app_secret" form:"app_secret" validate:"required"`
	ExpiresIn int    `json:"expires_in" form:"expires_in"`
}

type issueTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	ExpiresAt   int64  `json:"expires_at"`
}

// Issue handles POST /api/v1/auth/token. Credentials arrive form-encoded the
// way CLI clients send them, but JSON bodies bind too.
//
// @Summary      Issue an API token
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        app_id      formData  string  true   "Client application ID"
// @Param        app_secret  formData  string  true   "Client application secret"
// @Param        expires_in  formData  int     false  "Token lifetime in seconds (1 to 86400)"
// @Success      200  {object}  issueTokenResponse
// @Failure      401  {object}  map[string]any
// @Router       /api/v1/auth/token [post]
func (h *TokenHandler) Issue(c echo.Context) error {
	var req issueTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	issued, err := h.service.Issue(c.Request().Context(), req.AppID, req.AppSecret, req.ExpiresIn)
	if err != nil {
		metrics.AuthFailuresTotal.WithLabelValues(authFailureReason(err)).Inc()
		return err
	}

	metrics.TokensIssuedTotal.Inc()
	return c.JSON(http.StatusOK, issueTokenResponse{
		AccessToken: issued.AccessToken,
		TokenType:   issued.TokenType,
		ExpiresIn:   issued.ExpiresIn,
		ExpiresAt:   issued.ExpiresAt.Unix(),
	})
}

// authFailureReason normalizes authentication errors into stable metric
// label values so cardinality stays bounded.
func authFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownClient):
		return "unknown_client"
	case errors.Is(err, domain.ErrClientDisabled):
		return "client_disabled"
	case errors.Is(err, domain.ErrInvalidClientSecret):
		return "invalid_secret"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrUserDisabled):
		return "account_disabled"
	case errors.Is(err, domain.ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, domain.ErrTokenMalformed):
		return "token_malformed"
	case errors.Is(err, domain.ErrTokenInvalid):
		return "token_invalid"
	default:
		return "other"
	}
}
