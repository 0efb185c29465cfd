package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhub/task-system/internal/api/handler"
	"github.com/taskhub/task-system/internal/api/middleware"
	"github.com/taskhub/task-system/internal/core/service"
	mongodb "github.com/taskhub/task-system/internal/infrastructure/db/mongo"
	redisdb "github.com/taskhub/task-system/internal/infrastructure/db/redis"
	healthhandlers "github.com/taskhub/task-system/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, sessionTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskhub"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	sessions := redisdb.NewSessionStore(rdb)

	authService := service.NewAuthService(userRepo, sessions, sessionTTL, log)
	userService := service.NewUserService(userRepo, roleRepo, log)
	taskService := service.NewTaskService(userRepo, log)

	authHandler := handler.NewAuthHandler(authService, sessionTTL)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(userService)
	taskHandler := handler.NewTaskHandler(taskService)
	requireSession := middleware.Session(authService)

	// --- Auth routes ---
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/logout", authHandler.Logout)
	e.GET("/v1/auth/session", authHandler.Session)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", requireSession)
	v1.GET("/roles", roleHandler.List)
	v1.GET("/users", userHandler.List)
	v1.POST("/users", userHandler.Create)
	v1.DELETE("/users/:id", userHandler.Delete)
	v1.POST("/users/:id/tasks", taskHandler.Assign)
	v1.PATCH("/users/:id/tasks/:index", taskHandler.Toggle)
	v1.DELETE("/users/:id/tasks/:index", taskHandler.Remove)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
