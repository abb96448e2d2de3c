package main

import (
	"log"
	"net/http"

	_ "usersvc/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"usersvc/internal/auth"
	"usersvc/internal/cache"
	"usersvc/internal/config"
	"usersvc/internal/db"
	"usersvc/internal/handler"
	"usersvc/internal/model"
	"usersvc/internal/repository"
	"usersvc/internal/router"
	"usersvc/internal/service"
)

// @title User Account API
// @version 1.0
// @description Minimal user-account service with registration, JWT login, and user CRUD.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	userCache := cache.NewUserCache(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)

	hasher := auth.NewHasher()
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL)

	userService := service.NewUserService(userRepo, hasher, userCache)
	authService := service.NewAuthService(userRepo, hasher, jwtService)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, authService)

	router.Register(e, jwtService, authHandler, userHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
