package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	errs "reuse/internal/errors"
	"reuse/internal/model"
	"reuse/internal/service"
)

// AuthHandler handles the registration and login endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=2"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,hasupper,hasdigit,containsany=@$!%*?&"`
	City     *string `json:"city"`
	Age      *int    `json:"age" validate:"omitempty,gt=0"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents a successful authentication response.
type AuthResponse struct {
	Token string            `json:"token"`
	User  model.UserSummary `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "Dados inválidos."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: firstValidationMessage(err)})
	}

	token, user, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		City:     req.City,
		Age:      req.Age,
	})
	if err != nil {
		if !errors.Is(err, errs.ErrEmailTaken) {
			c.Logger().Error(err)
		}
		status, resp := errs.MapToHTTP(err, "Erro ao registrar")
		return c.JSON(status, resp)
	}

	return c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user.Summary()})
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "Dados inválidos."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: firstValidationMessage(err)})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, errs.ErrInvalidCredentials) {
			c.Logger().Error(err)
		}
		status, resp := errs.MapToHTTP(err, "Erro no login")
		return c.JSON(status, resp)
	}

	return c.JSON(http.StatusOK, AuthResponse{Token: token, User: user.Summary()})
}
