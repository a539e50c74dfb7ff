package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DowntimeForge/internal/domain"
)

// CatalogRepository persists item and recipe definitions synced from config
type CatalogRepository struct {
	db *pgxpool.Pool
	recipeStore
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db, recipeStore: recipeStore{db: db}}
}

// GetAllItems returns every catalog item
func (r *CatalogRepository) GetAllItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx, selectItem+` ORDER BY item_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetItemFailed, err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Item, error) {
		item, err := scanItem(row)
		if err != nil {
			return domain.Item{}, err
		}
		return *item, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetItemFailed, err)
	}
	return items, nil
}

// UpsertItem inserts or updates an item by internal name and returns its id
func (r *CatalogRepository) UpsertItem(ctx context.Context, item *domain.Item) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `
		INSERT INTO items (internal_name, display_name, item_description, is_magical, rarity, investigable)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (internal_name) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			item_description = EXCLUDED.item_description,
			is_magical = EXCLUDED.is_magical,
			rarity = EXCLUDED.rarity,
			investigable = EXCLUDED.investigable
		RETURNING item_id`,
		item.InternalName, item.DisplayName, item.Description, item.IsMagical, item.Rarity.String(), item.Investigable).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgUpsertItemFailed, err)
	}
	return id, nil
}

// GetAllRecipes returns every recipe with ingredients
func (r *CatalogRepository) GetAllRecipes(ctx context.Context) ([]domain.Recipe, error) {
	return r.getAllRecipes(ctx)
}

// InsertRecipe inserts a recipe and its ingredients in one transaction
func (r *CatalogRepository) InsertRecipe(ctx context.Context, recipe *domain.Recipe) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer SafeRollback(ctx, tx)

	var id int
	err = tx.QueryRow(ctx, `
		INSERT INTO recipes (recipe_key, output_item_id, output_quantity, is_magical, tool, min_grade, rarity,
			rare_material_id, is_consumable, gold_cost, requires_research)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING recipe_id`,
		recipe.Key, recipe.OutputItemID, recipe.OutputQuantity, recipe.IsMagical, recipe.Tool,
		recipe.MinGrade.String(), recipe.Rarity.String(), recipe.RareMaterialID, recipe.IsConsumable,
		recipe.GoldCost, recipe.RequiresResearch).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgInsertRecipeFailed, err)
	}
	if err := replaceIngredients(ctx, tx, id, recipe.Ingredients); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}
	return id, nil
}

// UpdateRecipe rewrites a recipe and its ingredient list
func (r *CatalogRepository) UpdateRecipe(ctx context.Context, recipeID int, recipe *domain.Recipe) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer SafeRollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE recipes SET recipe_key = $2, output_item_id = $3, output_quantity = $4, is_magical = $5,
			tool = $6, min_grade = $7, rarity = $8, rare_material_id = $9, is_consumable = $10,
			gold_cost = $11, requires_research = $12
		WHERE recipe_id = $1`,
		recipeID, recipe.Key, recipe.OutputItemID, recipe.OutputQuantity, recipe.IsMagical, recipe.Tool,
		recipe.MinGrade.String(), recipe.Rarity.String(), recipe.RareMaterialID, recipe.IsConsumable,
		recipe.GoldCost, recipe.RequiresResearch)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpdateRecipeFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecipeNotFound
	}
	if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipeID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpdateRecipeFailed, err)
	}
	if err := replaceIngredients(ctx, tx, recipeID, recipe.Ingredients); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}
	return nil
}

func replaceIngredients(ctx context.Context, tx pgx.Tx, recipeID int, ingredients []domain.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, ing := range ingredients {
		batch.Queue(`INSERT INTO recipe_ingredients (recipe_id, item_id, quantity) VALUES ($1, $2, $3)`,
			recipeID, ing.ItemID, ing.Quantity)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpdateRecipeFailed, err)
	}
	return nil
}

// GetSyncMetadata returns nil when the config was never synced
func (r *CatalogRepository) GetSyncMetadata(ctx context.Context, configName string) (*domain.SyncMetadata, error) {
	var m domain.SyncMetadata
	err := r.db.QueryRow(ctx, `
		SELECT config_name, last_sync_time, file_hash, file_mod_time
		FROM sync_metadata WHERE config_name = $1`, configName).
		Scan(&m.ConfigName, &m.LastSyncTime, &m.FileHash, &m.FileModTime)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgSyncMetadataFailed, err)
	}
	return &m, nil
}

// UpsertSyncMetadata records the latest sync of a config file
func (r *CatalogRepository) UpsertSyncMetadata(ctx context.Context, m *domain.SyncMetadata) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sync_metadata (config_name, last_sync_time, file_hash, file_mod_time)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (config_name) DO UPDATE SET
			last_sync_time = EXCLUDED.last_sync_time,
			file_hash = EXCLUDED.file_hash,
			file_mod_time = EXCLUDED.file_mod_time`,
		m.ConfigName, m.LastSyncTime, m.FileHash, m.FileModTime)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSyncMetadataFailed, err)
	}
	return nil
}
