package main

import (
	"context"

	"github.com/osse101/DowntimeForge/internal/bootstrap"
	"github.com/osse101/DowntimeForge/internal/database/postgres"
)

type SyncRecipesCommand struct{}

func (c *SyncRecipesCommand) Name() string {
	return "sync-recipes"
}

func (c *SyncRecipesCommand) Description() string {
	return "Validate the recipe catalog and sync it to the database"
}

func (c *SyncRecipesCommand) Run(args []string) error {
	PrintHeader("Syncing recipe catalog...")

	ctx := context.Background()
	cfg, pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	result, err := bootstrap.SyncRecipes(ctx, cfg, postgres.NewCatalogRepository(pool))
	if err != nil {
		return err
	}

	if result.Unchanged {
		PrintInfo("Catalog unchanged since last sync")
		return nil
	}
	PrintSuccess("Items upserted: %d, recipes inserted: %d, updated: %d, skipped: %d",
		result.ItemsUpserted, result.RecipesInserted, result.RecipesUpdated, result.RecipesSkipped)
	for _, key := range result.Orphaned {
		PrintWarning("Recipe %s is in the database but not in the catalog file", key)
	}
	return nil
}
