package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hongminglow/user-directory/internal/config"
	"github.com/hongminglow/user-directory/internal/storage"
	"github.com/hongminglow/user-directory/internal/storage/memory"
	"github.com/hongminglow/user-directory/internal/storage/mysql"
	"github.com/hongminglow/user-directory/internal/storage/postgres"
)

// openStore connects to the configured database and makes sure the users table exists.
func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (storage.UserStore, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		return postgres.NewUserStore(ctx, cfg.DatabaseURL)
	case config.DriverMySQL:
		return mysql.NewUserStore(ctx, cfg.DatabaseURL, log)
	case config.DriverMemory:
		return memory.NewUserStore()
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}
