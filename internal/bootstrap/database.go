package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DowntimeForge/internal/config"
	"github.com/osse101/DowntimeForge/internal/database"
)

// ConnectDatabase opens the pool and applies pending migrations
func ConnectDatabase(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, DBConnectTimeout)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
	}
	slog.Info(LogMsgDatabaseConnected, "host", cfg.DBHost, "db", cfg.DBName, "max_conns", cfg.DBMaxConns)

	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}
	slog.Info(LogMsgMigrationsApplied)

	return pool, nil
}
