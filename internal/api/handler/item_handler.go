package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/starterkit/webapi/internal/api/metrics"
	"github.com/starterkit/webapi/internal/core/domain"
	"github.com/starterkit/webapi/internal/core/ports"
)

// ItemHandler handles HTTP requests for item management.
type ItemHandler struct {
	service ports.ItemService
}

func NewItemHandler(service ports.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// --- Request / Response types ---

type createItemRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Status      string  `json:"status" validate:"omitempty,oneof=active inactive draft"`
	OwnerID     int     `json:"owner_id" validate:"required,gt=0"`
}

type updateItemRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Status      *string  `json:"status" validate:"omitempty,oneof=active inactive draft"`
	OwnerID     *int     `json:"owner_id" validate:"omitempty,gt=0"`
}

type updateItemStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive draft"`
}

type listItemsResponse struct {
	Items []domain.Item `json:"items"`
	Total int           `json:"total"`
	Skip  int           `json:"skip"`
	Limit int           `json:"limit"`
}

// List handles GET /api/v1/items with optional owner_id and status filters.
//
// @Summary      List items
// @Tags         items
// @Produce      json
// @Param        skip      query     int     false  "Records to skip"
// @Param        limit     query     int     false  "Maximum records to return"
// @Param        owner_id  query     int     false  "Filter by owner"
// @Param        status    query     string  false  "Filter by status"  Enums(active, inactive, draft)
// @Success      200       {object}  listItemsResponse
// @Failure      400       {object}  map[string]any
// @Router       /api/v1/items [get]
func (h *ItemHandler) List(c echo.Context) error {
	skip, limit := pageParams(c)
	ownerID, _ := strconv.Atoi(c.QueryParam("owner_id"))

	filter := ports.ListItemsFilter{
		OwnerID: ownerID,
		Status:  domain.ItemStatus(c.QueryParam("status")),
		Skip:    skip,
		Limit:   limit,
	}

	items, total, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listItemsResponse{Items: items, Total: total, Skip: skip, Limit: limit})
}

// Get handles GET /api/v1/items/:id.
//
// @Summary      Get an item by ID
// @Tags         items
// @Produce      json
// @Param        id  path      int  true  "Item ID"
// @Success      200  {object}  domain.Item
// @Failure      404  {object}  map[string]any
// @Router       /api/v1/items/{id} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	item, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, item)
}

// Create handles POST /api/v1/items.
//
// @Summary      Create an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body      createItemRequest  true  "Item details"
// @Success      201   {object}  domain.Item
// @Failure      400   {object}  map[string]any
// @Router       /api/v1/items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.service.Create(c.Request().Context(), ports.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Status:      domain.ItemStatus(req.Status),
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		return err
	}

	metrics.EntitiesCreatedTotal.WithLabelValues("item").Inc()
	return c.JSON(http.StatusCreated, item)
}

// Update handles PUT /api/v1/items/:id. Absent fields keep their value.
//
// @Summary      Update an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Item ID"
// @Param        body  body      updateItemRequest  true  "Fields to change"
// @Success      200   {object}  domain.Item
// @Failure      404   {object}  map[string]any
// @Router       /api/v1/items/{id} [put]
func (h *ItemHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := ports.UpdateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		OwnerID:     req.OwnerID,
	}
	if req.Status != nil {
		status := domain.ItemStatus(*req.Status)
		in.Status = &status
	}

	item, err := h.service.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, item)
}

// UpdateStatus handles PATCH /api/v1/items/:id/status.
//
// @Summary      Change an item's status
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "Item ID"
// @Param        body  body      updateItemStatusRequest  true  "New status"
// @Success      200   {object}  domain.Item
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/v1/items/{id}/status [patch]
func (h *ItemHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateItemStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.service.UpdateStatus(c.Request().Context(), id, domain.ItemStatus(req.Status))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /api/v1/items/:id.
//
// @Summary      Delete an item
// @Tags         items
// @Param        id  path  int  true  "Item ID"
// @Success      204
// @Failure      404  {object}  map[string]any
// @Router       /api/v1/items/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
