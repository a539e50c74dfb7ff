package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/DowntimeForge/internal/domain"
)

// Research defines the interface for recipe research persistence
type Research interface {
	Reference

	GetRecipe(ctx context.Context, recipeID int) (*domain.Recipe, error)
	GetItem(ctx context.Context, itemID int) (*domain.Item, error)
	GetResearch(ctx context.Context, researchID uuid.UUID) (*domain.Research, error)
	GetResearches(ctx context.Context, characterID int) ([]domain.Research, error)
	// GetResearchRolls returns a research project's rolls, newest first
	GetResearchRolls(ctx context.Context, researchID uuid.UUID) ([]domain.ResearchRoll, error)
	GetUnlockedRecipes(ctx context.Context, characterID int) ([]domain.RecipeUnlock, error)

	BeginTx(ctx context.Context) (ResearchTx, error)
}

// ResearchTx defines the interface for research transactions
type ResearchTx interface {
	CharacterTx

	HasActiveResearch(ctx context.Context, characterID, recipeID int) (bool, error)
	CreateResearch(ctx context.Context, research *domain.Research) error
	GetResearchForUpdate(ctx context.Context, researchID uuid.UUID) (*domain.Research, error)
	UpdateResearch(ctx context.Context, research *domain.Research) error
	InsertResearchRoll(ctx context.Context, roll *domain.ResearchRoll) error
	UnlockRecipe(ctx context.Context, unlock *domain.RecipeUnlock) error
}
