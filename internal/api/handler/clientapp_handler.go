package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/starterkit/webapi/internal/api/metrics"
	"github.com/starterkit/webapi/internal/core/domain"
	"github.com/starterkit/webapi/internal/core/ports"
)

// ClientAppHandler handles HTTP requests for client application management.
type ClientAppHandler struct {
	service ports.ClientAppService
}

func NewClientAppHandler(service ports.ClientAppService) *ClientAppHandler {
	return &ClientAppHandler{service: service}
}

// --- Request / Response types ---

type createClientAppRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsActive    *bool  `json:"is_active"`
}

type updateClientAppRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=3,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

type listClientAppsResponse struct {
	ClientApps []domain.ClientApp `json:"client_apps"`
	Total      int                `json:"total"`
	Skip       int                `json:"skip"`
	Limit      int                `json:"limit"`
}

// List handles GET /api/v1/client-apps.
//
// @Summary      List client applications
// @Tags         client-apps
// @Produce      json
// @Param        skip   query     int  false  "Records to skip"
// @Param        limit  query     int  false  "Maximum records to return"
// @Success      200    {object}  listClientAppsResponse
// @Router       /api/v1/client-apps [get]
func (h *ClientAppHandler) List(c echo.Context) error {
	skip, limit := pageParams(c)

	apps, total, err := h.service.List(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listClientAppsResponse{ClientApps: apps, Total: total, Skip: skip, Limit: limit})
}

// Get handles GET /api/v1/client-apps/:id. The secret hash never leaves the
// server; only creation and regeneration return a plaintext secret.
//
// @Summary      Get a client application by ID
// @Tags         client-apps
// @Produce      json
// @Param        id  path      int  true  "Client app ID"
// @Success      200  {object}  domain.ClientApp
// @Failure      404  {object}  map[string]any
// @Router       /api/v1/client-apps/{id} [get]
func (h *ClientAppHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	app, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, app)
}

// Create handles POST /api/v1/client-apps. The response is the only time the
// generated app_secret is returned in plaintext.
//
// @Summary      Register a client application
// @Tags         client-apps
// @Accept       json
// @Produce      json
// @Param        body  body      createClientAppRequest  true  "Application details"
// @Success      201   {object}  ports.ClientAppWithSecret
// @Failure      409   {object}  map[string]any
// @Router       /api/v1/client-apps [post]
func (h *ClientAppHandler) Create(c echo.Context) error {
	var req createClientAppRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := ports.CreateClientAppInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		in.IsActive = *req.IsActive
	}

	app, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}

	metrics.EntitiesCreatedTotal.WithLabelValues("client_app").Inc()
	return c.JSON(http.StatusCreated, app)
}

// Update handles PUT /api/v1/client-apps/:id.
//
// @Summary      Update a client application
// @Tags         client-apps
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "Client app ID"
// @Param        body  body      updateClientAppRequest  true  "Fields to change"
// @Success      200   {object}  domain.ClientApp
// @Failure      404   {object}  map[string]any
// @Router       /api/v1/client-apps/{id} [put]
func (h *ClientAppHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateClientAppRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	app, err := h.service.Update(c.Request().Context(), id, ports.UpdateClientAppInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, app)
}

// RegenerateSecret handles POST /api/v1/client-apps/:id/regenerate-secret.
// The previous secret stops working immediately.
//
// @Summary      Regenerate a client application secret
// @Tags         client-apps
// @Produce      json
// @Param        id  path      int  true  "Client app ID"
// @Success      200  {object}  ports.ClientAppWithSecret
// @Failure      404  {object}  map[string]any
// @Router       /api/v1/client-apps/{id}/regenerate-secret [post]
func (h *ClientAppHandler) RegenerateSecret(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	app, err := h.service.RegenerateSecret(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, app)
}

// Delete handles DELETE /api/v1/client-apps/:id.
//
// @Summary      Delete a client application
// @Tags         client-apps
// @Param        id  path  int  true  "Client app ID"
// @Success      204
// @Failure      404  {object}  map[string]any
// @Router       /api/v1/client-apps/{id} [delete]
func (h *ClientAppHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
