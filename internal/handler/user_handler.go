package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reuse/internal/auth"
	errs "reuse/internal/errors"
	"reuse/internal/service"
)

// UserHandler handles the authenticated profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateMeRequest represents a partial profile update. avatarUrl is
// validated but has no backing column yet, so it is not persisted.
type UpdateMeRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2"`
	City      *string `json:"city"`
	Age       *int    `json:"age" validate:"omitempty,gt=0"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserProfile
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	claims, ok := auth.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errs.ErrorResponse{Error: errs.ErrInvalidToken.Error()})
	}

	user, err := h.userService.GetProfile(c.Request().Context(), claims.UserID)
	if err != nil {
		c.Logger().Error(err)
		status, resp := errs.MapToHTTP(err, "Erro ao obter perfil")
		return c.JSON(status, resp)
	}

	return c.JSON(http.StatusOK, user.Profile())
}

// UpdateMe godoc
// @Summary Update the authenticated user's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateMeRequest true "Fields to change"
// @Success 200 {object} model.UserProfile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /me [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	claims, ok := auth.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errs.ErrorResponse{Error: errs.ErrInvalidToken.Error()})
	}

	var req UpdateMeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "Dados inválidos."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: firstValidationMessage(err)})
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), claims.UserID, service.ProfileUpdate{
		Name: req.Name,
		City: req.City,
		Age:  req.Age,
	})
	if err != nil {
		c.Logger().Error(err)
		status, resp := errs.MapToHTTP(err, "Erro ao atualizar perfil")
		return c.JSON(status, resp)
	}

	return c.JSON(http.StatusOK, user.Profile())
}
