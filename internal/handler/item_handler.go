package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"reuse/internal/auth"
	errs "reuse/internal/errors"
	"reuse/internal/service"
)

// ItemHandler handles the item catalog endpoints.
type ItemHandler struct {
	itemService service.ItemService
}

// NewItemHandler creates a new item handler.
func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// CreateItemRequest represents an item creation request. Any owner field
// sent by the client is ignored; the owner is the authenticated caller.
type CreateItemRequest struct {
	Title       string  `json:"title" validate:"required"`
	Type        string  `json:"type" validate:"required"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

// List godoc
// @Summary List all items, newest first
// @Tags items
// @Produce json
// @Success 200 {array} model.ItemWithOwner
// @Failure 500 {object} errors.ErrorResponse
// @Router /items [get]
func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.itemService.List(c.Request().Context())
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errs.ErrorResponse{Error: "Erro ao buscar itens"})
	}
	return c.JSON(http.StatusOK, items)
}

// Create godoc
// @Summary Create an item owned by the authenticated user
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateItemRequest true "Item data"
// @Success 201 {object} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	claims, ok := auth.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errs.ErrorResponse{Error: errs.ErrInvalidToken.Error()})
	}

	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "Dados inválidos."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: firstValidationMessage(err)})
	}

	item, err := h.itemService.Create(c.Request().Context(), service.CreateItemInput{
		Title:       req.Title,
		Type:        req.Type,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}, claims.UserID)
	if err != nil {
		c.Logger().Error(err)
		status, resp := errs.MapToHTTP(err, "Erro ao criar item")
		return c.JSON(status, resp)
	}

	return c.JSON(http.StatusCreated, item)
}

// Update godoc
// @Summary Partially update an owned item
// @Description Absent fields are left unchanged; explicit nulls clear optional fields.
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param request body object true "Subset of item fields"
// @Success 200 {object} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /items/{id} [put]
func (h *ItemHandler) Update(c echo.Context) error {
	claims, ok := auth.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errs.ErrorResponse{Error: errs.ErrInvalidToken.Error()})
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "ID inválido"})
	}

	// The raw patch is decoded field by field in the service, after the
	// ownership check: a non-owner must get 403 even with a bad payload.
	var patch map[string]json.RawMessage
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "Dados inválidos."})
	}

	item, err := h.itemService.Update(c.Request().Context(), uint(id), claims.UserID, patch)
	if err != nil {
		var vErr *errs.ValidationError
		if !errors.Is(err, errs.ErrItemNotFound) && !errors.Is(err, errs.ErrForbidden) && !errors.As(err, &vErr) {
			c.Logger().Error(err)
		}
		status, resp := errs.MapToHTTP(err, "Erro ao atualizar item")
		return c.JSON(status, resp)
	}

	return c.JSON(http.StatusOK, item)
}
