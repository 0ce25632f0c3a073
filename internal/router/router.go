package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"reuse/internal/auth"
	"reuse/internal/config"
	errs "reuse/internal/errors"
	"reuse/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokens *auth.TokenService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	itemHandler *handler.ItemHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))

	e.Validator = &CustomValidator{validator: handler.NewValidator()}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "message": "API funcionando!"})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/items", itemHandler.List)

	// Secured routes (require a valid bearer token)
	secured := e.Group("", requireBearer, jwtMiddleware(tokens))
	secured.GET("/me", userHandler.Me)
	secured.PATCH("/me", userHandler.UpdateMe)
	secured.POST("/items", itemHandler.Create)
	secured.PUT("/items/:id", itemHandler.Update)
}

const bearerPrefix = "Bearer "

// requireBearer rejects requests without a bearer credential before the
// JWT middleware runs, so a missing header and an invalid token produce
// distinct bodies.
func requireBearer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) || strings.TrimPrefix(header, bearerPrefix) == "" {
			return c.JSON(http.StatusUnauthorized, errs.ErrorResponse{Error: errs.ErrMissingToken.Error()})
		}
		return next(c)
	}
}

// jwtMiddleware verifies the token through the token service and attaches
// the decoded identity to the request context.
func jwtMiddleware(tokens *auth.TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return tokens.Verify(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, errs.ErrorResponse{Error: errs.ErrInvalidToken.Error()})
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
