package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/DowntimeForge/internal/domain"
)

// Crafting defines the interface for crafting persistence
type Crafting interface {
	Reference

	GetCharacter(ctx context.Context, characterID int) (*domain.Character, error)
	GetRecipe(ctx context.Context, recipeID int) (*domain.Recipe, error)
	GetAllRecipes(ctx context.Context) ([]domain.Recipe, error)
	GetInventory(ctx context.Context, characterID int) (domain.Inventory, error)
	GetCompetencies(ctx context.Context, characterID int) ([]domain.ToolCompetency, error)
	GetUnlockedRecipeIDs(ctx context.Context, characterID int) ([]int, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.ProgressSession, error)
	GetSessions(ctx context.Context, characterID int, state domain.SessionState) ([]domain.ProgressSession, error)
	GetRollHistory(ctx context.Context, sessionID uuid.UUID) ([]domain.RollRecord, error)

	// BeginTx starts a transaction for crafting operations
	BeginTx(ctx context.Context) (CraftingTx, error)
}

// CraftingTx defines the interface for crafting transactions
type CraftingTx interface {
	CharacterTx

	// GetOrCreateCompetency returns the locked competency row, creating it at Novice if absent
	GetOrCreateCompetency(ctx context.Context, characterID int, tool string) (*domain.ToolCompetency, bool, error)
	GetCompetencyForUpdate(ctx context.Context, competencyID int) (*domain.ToolCompetency, error)
	UpdateCompetency(ctx context.Context, competency *domain.ToolCompetency) error

	CreateSession(ctx context.Context, session *domain.ProgressSession) error
	GetSessionForUpdate(ctx context.Context, sessionID uuid.UUID) (*domain.ProgressSession, error)
	UpdateSession(ctx context.Context, session *domain.ProgressSession) error
	InsertRollRecord(ctx context.Context, record *domain.RollRecord) error
}

// Reference exposes read-only reference data
type Reference interface {
	// GetProficiencyBonus returns false when the table has no row for the level
	GetProficiencyBonus(ctx context.Context, level int) (int, bool, error)
}
