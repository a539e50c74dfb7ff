package crafting

import (
	"cmp"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/osse101/DowntimeForge/internal/domain"
	"github.com/osse101/DowntimeForge/internal/logger"
	"github.com/osse101/DowntimeForge/internal/repository"
	"github.com/osse101/DowntimeForge/internal/validation"
)

// RecipeConfig is the JSON catalog of items and recipes
type RecipeConfig struct {
	Version     string      `json:"version"`
	Description string      `json:"description"`
	Items       []ItemDef   `json:"items"`
	Recipes     []RecipeDef `json:"recipes"`
}

// ItemDef is a single catalog item in the JSON
type ItemDef struct {
	InternalName string `json:"internal_name"`
	DisplayName  string `json:"display_name"`
	Description  string `json:"description"`
	IsMagical    bool   `json:"is_magical"`
	Rarity       string `json:"rarity"`
	Investigable bool   `json:"investigable"`
}

// RecipeDef is a single recipe in the JSON. Items are referenced by internal name.
type RecipeDef struct {
	RecipeKey        string          `json:"recipe_key"`
	OutputItem       string          `json:"output_item"`
	OutputQuantity   int             `json:"output_quantity"`
	IsMagical        bool            `json:"is_magical"`
	Tool             string          `json:"tool"`
	MinGrade         string          `json:"min_grade"`
	Rarity           string          `json:"rarity"`
	RareMaterial     string          `json:"rare_material"`
	IsConsumable     bool            `json:"is_consumable"`
	GoldCost         int             `json:"gold_cost"`
	RequiresResearch bool            `json:"requires_research"`
	Ingredients      []IngredientDef `json:"ingredients"`
}

// IngredientDef is one ingredient line of a recipe
type IngredientDef struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// RecipeLoader handles loading, validating and syncing the recipe catalog
type RecipeLoader interface {
	Load(configPath string) (*RecipeConfig, error)
	Validate(config *RecipeConfig) error
	SyncToDatabase(ctx context.Context, config *RecipeConfig, repo repository.Catalog, configPath string) (*SyncResult, error)
}

// SyncResult contains the result of syncing the catalog to the database
type SyncResult struct {
	ItemsUpserted   int
	RecipesInserted int
	RecipesUpdated  int
	RecipesSkipped  int
	Orphaned        []string
	Unchanged       bool
}

type recipeLoader struct {
	schemas    validation.SchemaValidator
	schemaPath string
}

// NewRecipeLoader creates a loader. An empty schemaPath skips JSON schema validation.
func NewRecipeLoader(schemas validation.SchemaValidator, schemaPath string) RecipeLoader {
	return &recipeLoader{schemas: schemas, schemaPath: schemaPath}
}

// Load reads the config, checks it against the JSON schema and parses it
func (l *recipeLoader) Load(configPath string) (*RecipeConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFailed, err)
	}

	if l.schemas != nil && l.schemaPath != "" {
		if err := l.schemas.ValidateBytes(data, l.schemaPath); err != nil {
			return nil, fmt.Errorf(ErrMsgSchemaValidationFailed, err)
		}
	}

	var config RecipeConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}
	return &config, nil
}

// Validate applies the rules a JSON schema cannot express
func (l *recipeLoader) Validate(config *RecipeConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", domain.ErrInvalidConfig)
	}

	items := make(map[string]ItemDef, len(config.Items))
	for i, item := range config.Items {
		if item.InternalName == "" {
			return fmt.Errorf("%w: item at index %d has empty internal_name", domain.ErrInvalidConfig, i)
		}
		if _, dup := items[item.InternalName]; dup {
			return fmt.Errorf("%w: duplicate item '%s'", domain.ErrInvalidConfig, item.InternalName)
		}
		if item.Rarity != "" {
			if _, err := domain.ParseRarity(item.Rarity); err != nil {
				return fmt.Errorf("%w: item '%s': %v", domain.ErrInvalidConfig, item.InternalName, err)
			}
		}
		items[item.InternalName] = item
	}

	keys := make(map[string]bool, len(config.Recipes))
	for i, r := range config.Recipes {
		if r.RecipeKey == "" {
			return fmt.Errorf("%w: recipe at index %d has empty recipe_key", domain.ErrInvalidConfig, i)
		}
		if keys[r.RecipeKey] {
			return fmt.Errorf("%w: '%s'", domain.ErrDuplicateRecipeKey, r.RecipeKey)
		}
		keys[r.RecipeKey] = true

		if _, ok := items[r.OutputItem]; !ok {
			return fmt.Errorf("%w: recipe '%s' output_item '%s'", domain.ErrUnknownConfigItem, r.RecipeKey, r.OutputItem)
		}
		if r.OutputQuantity < 0 {
			return fmt.Errorf("%w: recipe '%s' has negative output_quantity", domain.ErrInvalidConfig, r.RecipeKey)
		}

		if r.IsMagical {
			if _, err := domain.ParseRarity(r.Rarity); err != nil {
				return fmt.Errorf("%w: magical recipe '%s' needs a rarity: %v", domain.ErrInvalidConfig, r.RecipeKey, err)
			}
			if r.RareMaterial != "" {
				if _, ok := items[r.RareMaterial]; !ok {
					return fmt.Errorf("%w: recipe '%s' rare_material '%s'", domain.ErrUnknownConfigItem, r.RecipeKey, r.RareMaterial)
				}
			}
		} else {
			if _, err := domain.ParseGrade(r.MinGrade); err != nil {
				return fmt.Errorf("%w: mundane recipe '%s' needs a min_grade: %v", domain.ErrInvalidConfig, r.RecipeKey, err)
			}
			if r.GoldCost <= 0 {
				return fmt.Errorf("%w: mundane recipe '%s' needs a positive gold_cost", domain.ErrInvalidConfig, r.RecipeKey)
			}
			if r.RareMaterial != "" {
				return fmt.Errorf("%w: mundane recipe '%s' cannot use a rare_material", domain.ErrInvalidConfig, r.RecipeKey)
			}
		}

		seen := make(map[string]bool, len(r.Ingredients))
		for j, ing := range r.Ingredients {
			if _, ok := items[ing.Item]; !ok {
				return fmt.Errorf("%w: recipe '%s' ingredient[%d] '%s'", domain.ErrUnknownConfigItem, r.RecipeKey, j, ing.Item)
			}
			if ing.Quantity <= 0 {
				return fmt.Errorf("%w: recipe '%s' ingredient[%d] has non-positive quantity", domain.ErrInvalidConfig, r.RecipeKey, j)
			}
			if seen[ing.Item] {
				return fmt.Errorf("%w: recipe '%s' lists '%s' twice", domain.ErrInvalidConfig, r.RecipeKey, ing.Item)
			}
			seen[ing.Item] = true
		}
	}

	return nil
}

// SyncToDatabase upserts items and inserts or updates recipes, skipping the work
// when the file hash and modification time match the last sync
func (l *recipeLoader) SyncToDatabase(ctx context.Context, config *RecipeConfig, repo repository.Catalog, configPath string) (*SyncResult, error) {
	log := logger.FromContext(ctx)

	changed, err := hasFileChanged(ctx, repo, configPath, MetadataNameRecipes)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCheckFileChangeFailed, err)
	}
	if !changed {
		log.Info(LogMsgRecipeConfigUnchanged)
		return &SyncResult{Unchanged: true, Orphaned: []string{}}, nil
	}

	result := &SyncResult{Orphaned: make([]string, 0)}

	itemIDs := make(map[string]int, len(config.Items))
	for _, def := range config.Items {
		item := itemFromDef(def)
		id, err := repo.UpsertItem(ctx, &item)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgUpsertItemFmt, def.InternalName, err)
		}
		itemIDs[def.InternalName] = id
		result.ItemsUpserted++
	}

	existingItems, err := repo.GetAllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetItemsFailed, err)
	}
	for _, item := range existingItems {
		if _, ok := itemIDs[item.InternalName]; !ok {
			result.Orphaned = append(result.Orphaned, OrphanPrefixItem+item.InternalName)
		}
	}

	existing, err := repo.GetAllRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetAllRecipesFailed, err)
	}
	existingByKey := lo.KeyBy(existing, func(r domain.Recipe) string { return r.Key })

	seen := make(map[string]bool, len(config.Recipes))
	for _, def := range config.Recipes {
		seen[def.RecipeKey] = true
		recipe := recipeFromDef(def, itemIDs)

		current, ok := existingByKey[def.RecipeKey]
		if !ok {
			id, err := repo.InsertRecipe(ctx, &recipe)
			if err != nil {
				return nil, fmt.Errorf(ErrMsgInsertRecipeFmt, def.RecipeKey, err)
			}
			result.RecipesInserted++
			log.Info(LogMsgInsertedRecipe, "recipe_key", def.RecipeKey, "id", id)
			continue
		}

		if recipesEqual(&current, &recipe) {
			result.RecipesSkipped++
			continue
		}
		if err := repo.UpdateRecipe(ctx, current.ID, &recipe); err != nil {
			return nil, fmt.Errorf(ErrMsgUpdateRecipeFmt, def.RecipeKey, err)
		}
		result.RecipesUpdated++
		log.Info(LogMsgUpdatedRecipe, "recipe_key", def.RecipeKey)
	}

	for _, r := range existing {
		if !seen[r.Key] {
			result.Orphaned = append(result.Orphaned, OrphanPrefixRecipe+r.Key)
		}
	}
	if len(result.Orphaned) > 0 {
		log.Warn(LogMsgOrphanedRecipesFound, "count", len(result.Orphaned), "entries", result.Orphaned)
	}

	if err := updateSyncMetadata(ctx, repo, configPath, MetadataNameRecipes); err != nil {
		log.Warn(LogMsgUpdateSyncMetadataFailed, "error", err)
	}

	log.Info(LogMsgRecipeSyncCompleted,
		"items_upserted", result.ItemsUpserted,
		"recipes_inserted", result.RecipesInserted,
		"recipes_updated", result.RecipesUpdated,
		"recipes_skipped", result.RecipesSkipped)

	return result, nil
}

func itemFromDef(def ItemDef) domain.Item {
	rarity, _ := domain.ParseRarity(def.Rarity) // empty rarity reads as Common
	display := def.DisplayName
	if display == "" {
		display = def.InternalName
	}
	return domain.Item{
		InternalName: def.InternalName,
		DisplayName:  display,
		Description:  def.Description,
		IsMagical:    def.IsMagical,
		Rarity:       rarity,
		Investigable: def.Investigable,
	}
}

// recipeFromDef converts a validated definition. Unused tier fields are left at their zero values.
func recipeFromDef(def RecipeDef, itemIDs map[string]int) domain.Recipe {
	qty := def.OutputQuantity
	if qty == 0 {
		qty = 1
	}
	recipe := domain.Recipe{
		Key:              def.RecipeKey,
		OutputItemID:     itemIDs[def.OutputItem],
		OutputQuantity:   qty,
		IsMagical:        def.IsMagical,
		Tool:             def.Tool,
		IsConsumable:     def.IsConsumable,
		RequiresResearch: def.RequiresResearch,
		Ingredients: lo.Map(def.Ingredients, func(ing IngredientDef, _ int) domain.Ingredient {
			return domain.Ingredient{ItemID: itemIDs[ing.Item], Quantity: ing.Quantity}
		}),
	}
	if def.IsMagical {
		recipe.Rarity, _ = domain.ParseRarity(def.Rarity)
		if def.RareMaterial != "" {
			id := itemIDs[def.RareMaterial]
			recipe.RareMaterialID = &id
		}
	} else {
		recipe.MinGrade, _ = domain.ParseGrade(def.MinGrade)
		recipe.GoldCost = def.GoldCost
	}
	return recipe
}

func recipesEqual(a, b *domain.Recipe) bool {
	if a.OutputItemID != b.OutputItemID ||
		a.OutputQuantity != b.OutputQuantity ||
		a.IsMagical != b.IsMagical ||
		a.Tool != b.Tool ||
		a.MinGrade != b.MinGrade ||
		a.Rarity != b.Rarity ||
		lo.FromPtr(a.RareMaterialID) != lo.FromPtr(b.RareMaterialID) ||
		(a.RareMaterialID == nil) != (b.RareMaterialID == nil) ||
		a.IsConsumable != b.IsConsumable ||
		a.GoldCost != b.GoldCost ||
		a.RequiresResearch != b.RequiresResearch {
		return false
	}
	return slices.Equal(ingredientKeys(a.Ingredients), ingredientKeys(b.Ingredients))
}

type ingredientKey struct{ itemID, quantity int }

func ingredientKeys(ings []domain.Ingredient) []ingredientKey {
	keys := lo.Map(ings, func(i domain.Ingredient, _ int) ingredientKey {
		return ingredientKey{itemID: i.ItemID, quantity: i.Quantity}
	})
	slices.SortFunc(keys, func(a, b ingredientKey) int { return cmp.Compare(a.itemID, b.itemID) })
	return keys
}

func fileFingerprint(configPath string) (string, time.Time, error) {
	info, err := os.Stat(configPath)
	if err != nil {
		return "", time.Time{}, fmt.Errorf(ErrMsgStatConfigFileFailed, err)
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return "", time.Time{}, fmt.Errorf(ErrMsgReadConfigFailed, err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), info.ModTime(), nil
}

func hasFileChanged(ctx context.Context, repo repository.Catalog, configPath, metadataName string) (bool, error) {
	hash, modTime, err := fileFingerprint(configPath)
	if err != nil {
		return false, err
	}

	meta, err := repo.GetSyncMetadata(ctx, metadataName)
	if err != nil {
		return false, err
	}
	if meta == nil {
		return true, nil
	}
	return meta.FileHash != hash || !meta.FileModTime.Equal(modTime), nil
}

func updateSyncMetadata(ctx context.Context, repo repository.Catalog, configPath, metadataName string) error {
	hash, modTime, err := fileFingerprint(configPath)
	if err != nil {
		return err
	}
	return repo.UpsertSyncMetadata(ctx, &domain.SyncMetadata{
		ConfigName:   metadataName,
		LastSyncTime: time.Now(),
		FileHash:     hash,
		FileModTime:  modTime,
	})
}
