package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/forgo/runningmate/internal/config"
	"github.com/forgo/runningmate/internal/database"
	"github.com/forgo/runningmate/internal/repository"
	"github.com/forgo/runningmate/internal/service"
)

// stores holds one repository per resource for the configured driver
type stores struct {
	users   service.UserRepository
	boards  service.BoardRepository
	crews   service.CrewRepository
	friends service.FriendRepository
	ping    func(ctx context.Context) error
	close   func() error
}

func openStores(ctx context.Context, cfg config.DatabaseConfig) (*stores, error) {
	switch cfg.Driver {
	case config.DriverSurreal:
		db := database.NewSurrealDB(database.Config{
			Host:      cfg.Host,
			Port:      cfg.Port,
			User:      cfg.User,
			Password:  cfg.Password,
			Namespace: cfg.Namespace,
			Database:  cfg.Database,
		})
		if err := db.Connect(ctx); err != nil {
			return nil, err
		}
		if err := database.DefineSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("define schema: %w", err)
		}
		slog.Info("connected to database",
			slog.String("endpoint", db.Endpoint()),
			slog.String("database", cfg.Database),
		)
		return &stores{
			users:   repository.NewUserRepository(db),
			boards:  repository.NewBoardRepository(db),
			crews:   repository.NewCrewRepository(db),
			friends: repository.NewFriendRepository(db),
			ping:    db.Ping,
			close:   db.Close,
		}, nil

	case config.DriverMemory:
		slog.Warn("using in-memory storage, data is lost on restart")
		return &stores{
			users:   repository.NewMemoryUserRepository(),
			boards:  repository.NewMemoryBoardRepository(),
			crews:   repository.NewMemoryCrewRepository(),
			friends: repository.NewMemoryFriendRepository(),
			close:   func() error { return nil },
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
