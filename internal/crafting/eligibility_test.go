package crafting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DowntimeForge/internal/dice"
	"github.com/osse101/DowntimeForge/internal/domain"
)

func eligibilityByKey(list []RecipeEligibility) map[string]RecipeEligibility {
	out := make(map[string]RecipeEligibility, len(list))
	for _, e := range list {
		out[e.Recipe.Key] = e
	}
	return out
}

func TestListRecipesFor_NeverUsedToolEvaluatesAsNovice(t *testing.T) {
	repo := NewMockRepository()
	setupTestData(repo)
	svc := newTestService(repo, dice.NewScriptedRoller(), nil)
	before := repo.heldItems(testCharacterID)

	list, err := svc.ListRecipesFor(context.Background(), testCharacterID)
	require.NoError(t, err)
	byKey := eligibilityByKey(list)
	require.Len(t, byKey, 3)

	longsword := byKey["longsword"]
	assert.True(t, longsword.CanCraft)
	assert.True(t, longsword.HasTool)
	assert.True(t, longsword.GradeSufficient)
	assert.Equal(t, domain.GradeNovice, longsword.CurrentGrade)
	assert.Equal(t, domain.MundaneDC, longsword.DC)
	assert.Empty(t, longsword.MissingIngredients)

	vorpal := byKey["vorpal_sword"]
	assert.False(t, vorpal.CanCraft)
	assert.False(t, vorpal.GradeSufficient)
	assert.False(t, vorpal.RarityAllowed)
	assert.True(t, vorpal.MissingRareMaterial)
	assert.Equal(t, domain.GradeGrandMaster, vorpal.RequiredGrade)
	assert.Equal(t, 30, vorpal.DC)
	assert.Equal(t, 10, vorpal.RequiredSuccesses)
	assert.Equal(t, domain.Cost{Days: 5, Gold: 2000}, vorpal.MagicalCost)

	locked := byKey["coal_brick"]
	assert.True(t, locked.Locked)
	assert.False(t, locked.CanCraft)

	assert.Nil(t, repo.competencyFor(testCharacterID, smithTools), "listing never creates a competency")
	assert.Equal(t, before, repo.heldItems(testCharacterID))
	assert.Equal(t, 0, repo.commits)
}

func TestListRecipesFor_ReportsEveryShortfall(t *testing.T) {
	repo := NewMockRepository()
	setupTestData(repo)
	repo.addCharacter(newTestCharacter(otherCharacterID))
	repo.give(otherCharacterID, itemIron, 1)
	svc := newTestService(repo, dice.NewScriptedRoller(), nil)

	list, err := svc.ListRecipesFor(context.Background(), otherCharacterID)
	require.NoError(t, err)
	longsword := eligibilityByKey(list)["longsword"]

	assert.False(t, longsword.CanCraft)
	assert.False(t, longsword.HasTool)
	require.Len(t, longsword.MissingIngredients, 2)
	assert.Equal(t, 2, longsword.MissingIngredients[0].Missing)
	assert.Equal(t, 1, longsword.MissingIngredients[1].Missing)
}

func TestListRecipesFor_UsesStoredGradeAndUnlocks(t *testing.T) {
	repo := NewMockRepository()
	setupTestData(repo)
	repo.give(testCharacterID, itemDragonHeart, 1)
	repo.setCompetency(testCharacterID, smithTools, domain.GradeGrandMaster, 0)
	repo.unlock(testCharacterID, recipeLocked)
	svc := newTestService(repo, dice.NewScriptedRoller(), nil)

	list, err := svc.ListRecipesFor(context.Background(), testCharacterID)
	require.NoError(t, err)
	byKey := eligibilityByKey(list)

	assert.True(t, byKey["vorpal_sword"].CanCraft)
	assert.Equal(t, 4, byKey["vorpal_sword"].Modifier)
	assert.False(t, byKey["coal_brick"].Locked)
	assert.True(t, byKey["coal_brick"].CanCraft)
}

func TestListRecipesFor_UnknownCharacter(t *testing.T) {
	repo := NewMockRepository()
	setupTestData(repo)
	svc := newTestService(repo, dice.NewScriptedRoller(), nil)

	_, err := svc.ListRecipesFor(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}

func TestHoldsTool(t *testing.T) {
	inv := domain.NewInventory([]domain.InventoryLine{
		{ItemID: 1, ItemName: "Dwarven SMITH'S Tools", Quantity: 1},
		{ItemID: 2, ItemName: "Empty Pouch", Quantity: 0},
	})

	tests := []struct {
		tool string
		want bool
	}{
		{"Smith's Tools", true},
		{"smith's tools", true},
		{"  Smith's Tools ", true},
		{"Tinker's Tools", false},
		{"Empty Pouch", false},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			assert.Equal(t, tt.want, holdsTool(inv, tt.tool))
		})
	}
}

func TestGradeCheck_OrderOfFailures(t *testing.T) {
	recipe := &domain.Recipe{IsMagical: true, Rarity: domain.RarityRare, Tool: smithTools}

	err := checkGrade(recipe, domain.GradeApprentice).Err(recipe)
	var gradeErr *domain.GradeRequirementError
	require.ErrorAs(t, err, &gradeErr)
	assert.Equal(t, domain.GradeExpert, gradeErr.Required)

	assert.NoError(t, checkGrade(recipe, domain.GradeExpert).Err(recipe))
}

func TestRollCost(t *testing.T) {
	mundane := &domain.Recipe{GoldCost: 100}
	assert.Equal(t, domain.Cost{Days: 1, Gold: 2}, rollCost(mundane, domain.GradeNovice))
	assert.Equal(t, domain.Cost{Days: 1, Gold: 25}, rollCost(mundane, domain.GradeGrandMaster))

	magical := &domain.Recipe{IsMagical: true, Rarity: domain.RarityRare}
	assert.Equal(t, domain.Cost{Days: 5, Gold: 200}, rollCost(magical, domain.GradeNovice))
}
