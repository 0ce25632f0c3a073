package main

import (
	"log"
	"net/http"
	"os"

	_ "reuse/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"reuse/internal/auth"
	"reuse/internal/cache"
	"reuse/internal/config"
	"reuse/internal/db"
	"reuse/internal/handler"
	"reuse/internal/model"
	"reuse/internal/repository"
	"reuse/internal/router"
	"reuse/internal/service"
)

// @title ReUse API
// @version 1.0
// @description Marketplace API for listing items to donate, trade or sell, with JWT authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	cfg := config.Load()

	e := echo.New()

	gormDB, err := db.New(cfg)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		for _, table := range []interface{}{&model.Item{}, &model.User{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Item{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)

	// Initialize services
	tokenService := auth.NewTokenService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, tokenService, cfg.BcryptCost)
	userService := service.NewUserService(userRepo)
	itemService := service.NewItemService(itemRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	itemHandler := handler.NewItemHandler(itemService)

	// Register routes
	router.Register(e, cfg, tokenService, authHandler, userHandler, itemHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
