package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tasktrail/backend/internal/auth"
	"github.com/tasktrail/backend/internal/config"
	"github.com/tasktrail/backend/internal/database"
	"github.com/tasktrail/backend/internal/logger"
	postgresrepo "github.com/tasktrail/backend/internal/repository/postgres"
	"github.com/tasktrail/backend/internal/service"
	"github.com/tasktrail/backend/internal/transport/http/handlers"
	"github.com/tasktrail/backend/internal/transport/http/middleware"
	"github.com/tasktrail/backend/internal/transport/ws"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	// Database
	if err := database.Migrate(context.Background(), database.DSN(cfg)); err != nil {
		logger.Fatal("migrations failed", "error", err)
	}
	pool, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("database connection failed", "error", err)
	}
	defer pool.Close()
	logger.Info("connected to database", "host", cfg.DBHost, "db", cfg.DBName)

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	taskRepo := postgresrepo.NewTaskRepo(pool)

	// Auth core
	hasher, err := auth.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		logger.Fatal("invalid bcrypt cost", "error", err)
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	// WebSocket hub
	hub := ws.NewHub()
	go hub.Run()

	// Services
	userService := service.NewUserService(userRepo, hasher, tokens, cfg.DBTimeout)
	taskService := service.NewTaskService(taskRepo, ws.NewHubNotifier(hub), cfg.DBTimeout)

	// Handlers
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Auth middleware
	authn := middleware.Auth(tokens, userRepo)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /user/register", userHandler.Register)
	mux.HandleFunc("POST /login", userHandler.Login)
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, tokens, userRepo))

	// Protected - Users
	mux.Handle("POST /logout", authn(http.HandlerFunc(userHandler.Logout)))
	mux.Handle("GET /users", authn(http.HandlerFunc(userHandler.GetAll)))
	mux.Handle("GET /users/{id}", authn(http.HandlerFunc(userHandler.GetByID)))
	mux.Handle("PATCH /users/{id}", authn(http.HandlerFunc(userHandler.Update)))
	mux.Handle("DELETE /users/delete/{id}", authn(http.HandlerFunc(userHandler.Delete)))

	// Protected - Tasks
	mux.Handle("POST /task/create", authn(http.HandlerFunc(taskHandler.Create)))
	mux.Handle("POST /task/{id}", authn(http.HandlerFunc(taskHandler.CreateForUser)))
	mux.Handle("GET /tasks", authn(http.HandlerFunc(taskHandler.List)))
	mux.Handle("GET /tasks/{id}", authn(http.HandlerFunc(taskHandler.Get)))
	mux.Handle("GET /users/{userId}/tasks", authn(http.HandlerFunc(taskHandler.ListForUser)))
	mux.Handle("PATCH /tasks/{id}", authn(http.HandlerFunc(taskHandler.Update)))
	mux.Handle("DELETE /tasks/delete/{id}", authn(http.HandlerFunc(taskHandler.Delete)))

	// Start server with middleware chain
	handler := middleware.RequestID(middleware.Metrics(middleware.CORS(cfg.AllowedOrigin, mux)))

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logger.Info("starting server", "addr", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}
