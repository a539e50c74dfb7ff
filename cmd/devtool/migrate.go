package main

import (
	"context"
	"fmt"

	"github.com/osse101/DowntimeForge/internal/database"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, down, status)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status")
	}

	ctx := context.Background()
	_, pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	switch args[0] {
	case "up":
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
		PrintSuccess("Migrations applied")
	case "down":
		if err := database.MigrateDown(ctx, pool); err != nil {
			return err
		}
		PrintSuccess("Rolled back one migration")
	case "status":
		version, err := database.MigrationStatus(ctx, pool)
		if err != nil {
			return err
		}
		PrintInfo("Schema version: %d", version)
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
	return nil
}
