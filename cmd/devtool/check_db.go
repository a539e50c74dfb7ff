package main

import (
	"context"

	"github.com/osse101/DowntimeForge/internal/database"
)

type CheckDBCommand struct{}

func (c *CheckDBCommand) Name() string {
	return "check-db"
}

func (c *CheckDBCommand) Description() string {
	return "Check the database is reachable and report the schema version"
}

func (c *CheckDBCommand) Run(args []string) error {
	PrintHeader("Checking database...")

	ctx := context.Background()
	cfg, pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()
	PrintSuccess("Connected to %s on %s:%s", cfg.DBName, cfg.DBHost, cfg.DBPort)

	version, err := database.MigrationStatus(ctx, pool)
	if err != nil {
		PrintWarning("Could not read schema version: %v", err)
		return nil
	}
	if version == 0 {
		PrintWarning("No migrations applied. Run: devtool migrate up")
		return nil
	}
	PrintSuccess("Schema version: %d", version)
	return nil
}
