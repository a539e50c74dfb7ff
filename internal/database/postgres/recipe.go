package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"

	"github.com/osse101/DowntimeForge/internal/domain"
)

const selectRecipe = `
	SELECT r.recipe_id, r.recipe_key, r.output_item_id, o.display_name, r.output_quantity,
	       r.is_magical, r.tool, r.min_grade, r.rarity, r.rare_material_id, COALESCE(m.display_name, ''),
	       r.is_consumable, r.gold_cost, r.requires_research, r.created_at
	FROM recipes r
	JOIN items o ON o.item_id = r.output_item_id
	LEFT JOIN items m ON m.item_id = r.rare_material_id`

const selectIngredients = `
	SELECT ri.recipe_id, ri.item_id, i.display_name, ri.quantity
	FROM recipe_ingredients ri
	JOIN items i ON i.item_id = ri.item_id`

// recipeStore reads recipe definitions with their ingredients
type recipeStore struct {
	db querier
}

func scanRecipe(row pgx.Row) (*domain.Recipe, error) {
	var r domain.Recipe
	var grade, rarity string
	var rareID *int32
	err := row.Scan(&r.ID, &r.Key, &r.OutputItemID, &r.OutputItemName, &r.OutputQuantity,
		&r.IsMagical, &r.Tool, &grade, &rarity, &rareID, &r.RareMaterialName,
		&r.IsConsumable, &r.GoldCost, &r.RequiresResearch, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	if r.MinGrade, err = parseGrade(grade); err != nil {
		return nil, err
	}
	if r.Rarity, err = parseRarity(rarity); err != nil {
		return nil, err
	}
	if rareID != nil {
		id := int(*rareID)
		r.RareMaterialID = &id
	}
	return &r, nil
}

type ingredientRow struct {
	recipeID int
	domain.Ingredient
}

func (s *recipeStore) ingredients(ctx context.Context, where string, args ...any) ([]ingredientRow, error) {
	rows, err := s.db.Query(ctx, selectIngredients+where+` ORDER BY ri.recipe_id, ri.item_id`, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetIngredientsFailed, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ingredientRow, error) {
		var ing ingredientRow
		err := row.Scan(&ing.recipeID, &ing.ItemID, &ing.ItemName, &ing.Quantity)
		return ing, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetIngredientsFailed, err)
	}
	return out, nil
}

func (s *recipeStore) getRecipe(ctx context.Context, recipeID int) (*domain.Recipe, error) {
	recipe, err := scanRecipe(s.db.QueryRow(ctx, selectRecipe+` WHERE r.recipe_id = $1`, recipeID))
	if err != nil {
		return nil, notFound(err, domain.ErrRecipeNotFound, ErrMsgGetRecipeFailed)
	}
	ings, err := s.ingredients(ctx, ` WHERE ri.recipe_id = $1`, recipeID)
	if err != nil {
		return nil, err
	}
	recipe.Ingredients = lo.Map(ings, func(i ingredientRow, _ int) domain.Ingredient { return i.Ingredient })
	return recipe, nil
}

func (s *recipeStore) getAllRecipes(ctx context.Context) ([]domain.Recipe, error) {
	rows, err := s.db.Query(ctx, selectRecipe+` ORDER BY r.recipe_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetRecipeFailed, err)
	}
	recipes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Recipe, error) {
		r, err := scanRecipe(row)
		if err != nil {
			return domain.Recipe{}, err
		}
		return *r, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetRecipeFailed, err)
	}

	ings, err := s.ingredients(ctx, "")
	if err != nil {
		return nil, err
	}
	byRecipe := lo.GroupBy(ings, func(i ingredientRow) int { return i.recipeID })
	for i := range recipes {
		recipes[i].Ingredients = lo.Map(byRecipe[recipes[i].ID], func(i ingredientRow, _ int) domain.Ingredient { return i.Ingredient })
	}
	return recipes, nil
}
