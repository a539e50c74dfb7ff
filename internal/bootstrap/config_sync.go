package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/DowntimeForge/internal/config"
	"github.com/osse101/DowntimeForge/internal/crafting"
	"github.com/osse101/DowntimeForge/internal/repository"
	"github.com/osse101/DowntimeForge/internal/validation"
)

// SyncRecipes loads, validates, and syncs the recipe catalog to the database.
// It handles the complete lifecycle: load JSON → validate → sync to DB → log results.
// Hash-based change detection skips the sync when the file is unchanged.
func SyncRecipes(ctx context.Context, cfg *config.Config, catalogRepo repository.Catalog) (*crafting.SyncResult, error) {
	slog.Info(LogMsgSyncingRecipes, "path", cfg.RecipesConfigPath)
	loader := crafting.NewRecipeLoader(validation.NewSchemaValidator(), cfg.RecipesSchemaPath)

	recipeConfig, err := loader.Load(cfg.RecipesConfigPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadRecipes, err)
	}

	if err := loader.Validate(recipeConfig); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidRecipes, err)
	}

	result, err := loader.SyncToDatabase(ctx, recipeConfig, catalogRepo, cfg.RecipesConfigPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedSyncRecipes, err)
	}

	if result.Unchanged {
		slog.Info(LogMsgRecipesUnchanged)
	} else {
		slog.Info(LogMsgRecipesSynced,
			"items_upserted", result.ItemsUpserted,
			"inserted", result.RecipesInserted,
			"updated", result.RecipesUpdated,
			"skipped", result.RecipesSkipped)
	}
	if len(result.Orphaned) > 0 {
		slog.Warn(LogMsgRecipesOrphaned, "recipe_keys", result.Orphaned)
	}

	return result, nil
}
