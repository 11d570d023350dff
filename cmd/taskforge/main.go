package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskforge/taskforge/internal/app"
	"github.com/taskforge/taskforge/internal/auth"
	"github.com/taskforge/taskforge/internal/platform/db"
	"github.com/taskforge/taskforge/internal/projects"
	"github.com/taskforge/taskforge/internal/session"
	"github.com/taskforge/taskforge/internal/subtasks"
	"github.com/taskforge/taskforge/internal/tasks"
	"github.com/taskforge/taskforge/internal/token"
	"github.com/taskforge/taskforge/internal/users"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	tokenService := token.NewService(cfg.TokenSecret, cfg.TokenTTL)

	var registry session.Registry
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error("redis ping", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
		registry = session.NewRedisRegistry(redisClient, cfg.TokenTTL)
		logger.Info("using redis api key registry", slog.String("addr", cfg.RedisAddr))
	} else {
		registry = session.NewMemoryRegistry()
	}

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(logger, usersService, tokenService, registry)

	tasksHandler := tasks.NewHandler(logger, tasks.NewService(tasks.NewRepository(pool)))
	projectsHandler := projects.NewHandler(logger, projects.NewService(projects.NewRepository(pool)))
	subtasksHandler := subtasks.NewHandler(logger, subtasks.NewService(subtasks.NewRepository(pool)))

	router := app.NewRouter(app.RouterParams{
		Logger: logger,
		Config: cfg,
		AuthMiddleware: auth.Middleware{
			Logger:   logger,
			Tokens:   tokenService,
			Registry: registry,
		},
		UsersHandler:    usersHandler,
		TasksHandler:    tasksHandler,
		ProjectsHandler: projectsHandler,
		SubtasksHandler: subtasksHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
