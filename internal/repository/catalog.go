package repository

import (
	"context"

	"github.com/osse101/DowntimeForge/internal/domain"
)

// Catalog defines the persistence used to sync item and recipe definitions from config
type Catalog interface {
	GetAllItems(ctx context.Context) ([]domain.Item, error)
	UpsertItem(ctx context.Context, item *domain.Item) (int, error)
	GetAllRecipes(ctx context.Context) ([]domain.Recipe, error)
	InsertRecipe(ctx context.Context, recipe *domain.Recipe) (int, error)
	UpdateRecipe(ctx context.Context, recipeID int, recipe *domain.Recipe) error

	GetSyncMetadata(ctx context.Context, configName string) (*domain.SyncMetadata, error)
	UpsertSyncMetadata(ctx context.Context, metadata *domain.SyncMetadata) error
}
