package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgo/runningmate/internal/config"
	"github.com/forgo/runningmate/internal/handler"
	"github.com/forgo/runningmate/internal/jobs"
	"github.com/forgo/runningmate/internal/service"
	"github.com/forgo/runningmate/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logging
	logger := cfg.Log.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	st, err := openStores(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to open storage", slog.String("driver", cfg.Database.Driver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = st.close() }()

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		Secret:         cfg.JWT.Secret,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize services
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo: st.users,
		Tokens:   jwtService,
	})
	boardService := service.NewBoardService(st.boards)
	crewService := service.NewCrewService(st.crews)
	friendService := service.NewFriendService(st.friends, st.users)

	if cfg.Database.Seed {
		seeder := service.NewSeederService(service.SeederConfig{
			Users:   st.users,
			Boards:  st.boards,
			Crews:   st.crews,
			Friends: st.friends,
		})
		result, err := seeder.Seed(ctx)
		if err != nil {
			slog.Error("failed to seed sample data", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slog.Info("sample data ready",
			slog.Int("users", result.Users),
			slog.Int("boards", result.Boards),
			slog.Int("crews", result.Crews),
			slog.Int("friends", result.Friends),
		)
	}

	// Background jobs
	boardCloser := jobs.NewBoardCloser(boardService, cfg.Jobs.BoardCloserInterval, logger)
	boardCloser.Start()
	defer boardCloser.Stop()

	router := handler.NewRouter(handler.RouterConfig{
		Auth:           authService,
		Boards:         boardService,
		Crews:          crewService,
		Friends:        friendService,
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Ping:           st.ping,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
			slog.String("driver", cfg.Database.Driver),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
