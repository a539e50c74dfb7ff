package crafting

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DowntimeForge/internal/dice"
	"github.com/osse101/DowntimeForge/internal/domain"
	"github.com/osse101/DowntimeForge/internal/event"
)

func TestStartCrafting_Success(t *testing.T) {
	repo := NewMockRepository()
	setupTestData(repo)
	pub := &MockPublisher{}
	svc := newTestService(repo, dice.NewScriptedRoller(), pub)

	result, err := svc.StartCrafting(context.Background(), testCharacterID, recipeLongsword)
	require.NoError(t, err)

	assert.Equal(t, domain.SessionInProgress, result.Session.State)
	assert.True(t, result.CompetencyCreated)
	assert.Equal(t, domain.GradeNovice, result.Competency.Grade)
	assert.Contains(t, result.Message, "Started crafting Longsword.")
	assert.Contains(t, result.Message, "You have started using Smith's Tools as Novice.")

	assert.Equal(t, 2, repo.quantity(testCharacterID, itemIron))
	assert.Equal(t, 1, repo.quantity(testCharacterID, itemLeather))
	assert.Equal(t, 1, repo.quantity(testCharacterID, itemSmithTools), "tools are never consumed")
	assert.NotNil(t, repo.competencyFor(testCharacterID, smithTools))
	assert.Len(t, pub.ofType(event.CraftingStarted), 1)
}

func TestStartCrafting_ExistingCompetencyNoFirstUseMessage(t *testing.T) {
	repo := NewMockRepository()
	setupTestData(repo)
	repo.setCompetency(testCharacterID, smithTools, domain.GradeExpert, 3)
	svc := newTestService(repo, dice.NewScriptedRoller(), nil)

	result, err := svc.StartCrafting(context.Background(), testCharacterID, recipeLongsword)
	require.NoError(t, err)
	assert.False(t, result.CompetencyCreated)
	assert.Equal(t, domain.GradeExpert, result.Competency.Grade)
	assert.NotContains(t, result.Message, "You have started using")
}

func TestStartCrafting_Rejections(t *testing.T) {
	heart := itemDragonHeart
	tests := []struct {
		name     string
		setup    func(repo *MockRepository)
		recipeID int
		wantErr  error
	}{
		{
			name: "missing ingredient",
			setup: func(repo *MockRepository) {
				repo.addCharacter(newTestCharacter(otherCharacterID))
				repo.give(otherCharacterID, itemSmithTools, 1)
				repo.give(otherCharacterID, itemIron, 2)
				repo.give(otherCharacterID, itemLeather, 1)
			},
			recipeID: recipeLongsword,
			wantErr:  domain.ErrInsufficientIngredient,
		},
		{
			name: "missing tool",
			setup: func(repo *MockRepository) {
				repo.addCharacter(newTestCharacter(otherCharacterID))
				repo.give(otherCharacterID, itemIron, 3)
				repo.give(otherCharacterID, itemLeather, 1)
			},
			recipeID: recipeLongsword,
			wantErr:  domain.ErrMissingTool,
		},
		{
			name: "grade below magical tier",
			setup: func(repo *MockRepository) {
				repo.addCharacter(newTestCharacter(otherCharacterID))
				repo.give(otherCharacterID, itemIron, 1)
				repo.give(otherCharacterID, itemDragonHeart, 1)
				repo.give(otherCharacterID, itemSmithTools, 1)
			},
			recipeID: recipeVorpal,
			wantErr:  domain.ErrGradeTooLow,
		},
		{
			name: "missing rare material",
			setup: func(repo *MockRepository) {
				repo.addCharacter(newTestCharacter(otherCharacterID))
				repo.give(otherCharacterID, itemIron, 1)
				repo.give(otherCharacterID, itemSmithTools, 1)
				repo.setCompetency(otherCharacterID, smithTools, domain.GradeGrandMaster, 0)
			},
			recipeID: recipeVorpal,
			wantErr:  domain.ErrMissingRareMaterial,
		},
		{
			name: "rare material also listed as ingredient needs one more",
			setup: func(repo *MockRepository) {
				repo.addRecipe(domain.Recipe{
					ID: 200, Key: "heart_charm", OutputItemID: itemVorpal, OutputQuantity: 1,
					IsMagical: true, Rarity: domain.RarityCommon, RareMaterialID: &heart,
					Ingredients: []domain.Ingredient{{ItemID: itemDragonHeart, Quantity: 1}},
				})
				repo.addCharacter(newTestCharacter(otherCharacterID))
				repo.give(otherCharacterID, itemDragonHeart, 1)
			},
			recipeID: 200,
			wantErr:  domain.ErrMissingRareMaterial,
		},
		{
			name: "mundane minimum grade",
			setup: func(repo *MockRepository) {
				repo.addRecipe(domain.Recipe{
					ID: 201, Key: "masterwork_plate", OutputItemID: itemLongsword, OutputQuantity: 1,
					Tool: smithTools, MinGrade: domain.GradeExpert, GoldCost: 1500,
				})
				repo.addCharacter(newTestCharacter(otherCharacterID))
				repo.give(otherCharacterID, itemSmithTools, 1)
			},
			recipeID: 201,
			wantErr:  domain.ErrGradeTooLow,
		},
		{
			name: "recipe requires research",
			setup: func(repo *MockRepository) {
				repo.addCharacter(newTestCharacter(otherCharacterID))
			},
			recipeID: recipeLocked,
			wantErr:  domain.ErrRecipeLocked,
		},
		{
			name:     "unknown character",
			setup:    func(repo *MockRepository) {},
			recipeID: recipeLongsword,
			wantErr:  domain.ErrCharacterNotFound,
		},
		{
			name: "unknown recipe",
			setup: func(repo *MockRepository) {
				repo.addCharacter(newTestCharacter(otherCharacterID))
			},
			recipeID: 999,
			wantErr:  domain.ErrRecipeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockRepository()
			setupTestData(repo)
			tt.setup(repo)
			svc := newTestService(repo, dice.NewScriptedRoller(), nil)

			held := repo.heldItems(otherCharacterID)
			competency := repo.competencyFor(otherCharacterID, smithTools)

			result, err := svc.StartCrafting(context.Background(), otherCharacterID, tt.recipeID)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsRejection(err))

			assert.Equal(t, 0, repo.sessionCount())
			assert.Equal(t, held, repo.heldItems(otherCharacterID), "inventory must be untouched")
			assert.Equal(t, competency, repo.competencyFor(otherCharacterID, smithTools), "no competency may be created")
		})
	}
}

func TestStartCrafting_ShortfallDetails(t *testing.T) {
	repo := NewMockRepository()
	setupTestData(repo)
	repo.addCharacter(newTestCharacter(otherCharacterID))
	repo.give(otherCharacterID, itemIron, 1)
	svc := newTestService(repo, dice.NewScriptedRoller(), nil)

	_, err := svc.StartCrafting(context.Background(), otherCharacterID, recipeLongsword)

	var shortfall *domain.IngredientShortfallError
	require.True(t, errors.As(err, &shortfall))
	assert.Equal(t, itemIron, shortfall.ItemID)
	assert.Equal(t, 3, shortfall.Required)
	assert.Equal(t, 1, shortfall.Held)
	assert.Equal(t, 2, shortfall.Missing)
}

func TestStartCrafting_UnlockedRecipe(t *testing.T) {
	repo := NewMockRepository()
	setupTestData(repo)
	repo.unlock(testCharacterID, recipeLocked)
	svc := newTestService(repo, dice.NewScriptedRoller(), nil)

	result, err := svc.StartCrafting(context.Background(), testCharacterID, recipeLocked)
	require.NoError(t, err)
	assert.Equal(t, recipeLocked, result.Session.RecipeID)
	assert.NotContains(t, result.Message, "You have started using", "toolless recipes have no first use message")
}

func TestSubmitRoll_MundaneToCompletion(t *testing.T) {
	repo := NewMockRepository()
	setupTestData(repo)
	pub := &MockPublisher{}
	roller := dice.NewScriptedRoller(15, 2, 15, 15, 15)
	svc := newTestService(repo, roller, pub)
	ctx := context.Background()

	start, err := svc.StartCrafting(ctx, testCharacterID, recipeLongsword)
	require.NoError(t, err)
	sessionID := start.Session.ID

	// Day 1: Novice, +0, success. Pays 2 gp, gains 5, promotes to Apprentice.
	out, err := svc.SubmitRoll(ctx, testCharacterID, sessionID)
	require.NoError(t, err)
	assert.True(t, out.Roll.Success)
	assert.Equal(t, 0, out.Modifier.Total)
	assert.Equal(t, 5, out.Roll.GoldGained)
	assert.Equal(t, 2, out.Roll.GoldSpent)
	assert.Equal(t, 5, out.Session.AccumulatedGold)
	require.NotNil(t, out.Promotion)
	assert.Equal(t, domain.GradeNovice, out.Promotion.PreviousGrade)
	assert.Equal(t, domain.GradeApprentice, out.Promotion.NewGrade)
	assert.Equal(t, domain.Economy{Gold: 98, Downtime: 9}, out.Economy)

	// Day 2: Apprentice, +1, failure. Still pays 4 gp.
	out, err = svc.SubmitRoll(ctx, testCharacterID, sessionID)
	require.NoError(t, err)
	assert.False(t, out.Roll.Success)
	assert.Equal(t, 1, out.Modifier.Total)
	assert.Equal(t, 0, out.Roll.GoldGained)
	assert.Equal(t, 4, out.Roll.GoldSpent)
	assert.Equal(t, "Failure. Progress: 5/30 gp", out.Message)
	assert.Nil(t, out.Promotion)

	// Day 3: success at Apprentice, one of two successes needed to promote.
	out, err = svc.SubmitRoll(ctx, testCharacterID, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 15, out.Session.AccumulatedGold)
	assert.Nil(t, out.Promotion)
	assert.Equal(t, "Success! Added 10 gp. Progress: 15/30 gp", out.Message)

	// Day 4: second success promotes to Expert. The day is still paid at the Apprentice rate.
	out, err = svc.SubmitRoll(ctx, testCharacterID, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 25, out.Session.AccumulatedGold)
	assert.Equal(t, 4, out.Roll.GoldSpent)
	require.NotNil(t, out.Promotion)
	assert.Equal(t, domain.GradeExpert, out.Promotion.NewGrade)
	assert.Equal(t, "You have advanced to Expert with Smith's Tools!", out.Promotion.Message)

	// Day 5: Expert pays 8 gp and earns 20, clamped to the 5 remaining.
	out, err = svc.SubmitRoll(ctx, testCharacterID, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Modifier.Total)
	assert.Equal(t, 8, out.Roll.GoldSpent)
	assert.Equal(t, 5, out.Roll.GoldGained)
	assert.True(t, out.Completed)
	assert.Equal(t, "Longsword", out.OutputItemName)
	assert.Equal(t, 1, out.OutputQuantity)
	assert.Equal(t, domain.SessionCompleted, out.Session.State)
	assert.NotNil(t, out.Session.CompletedAt)
	assert.Equal(t, 5, out.Session.DaysWorked)
	assert.Equal(t, "Item completed! Longsword added to your inventory.", out.Message)

	character := repo.character(testCharacterID)
	assert.Equal(t, 78, character.Gold)
	assert.Equal(t, 5, character.Downtime)
	assert.Equal(t, 1, repo.quantity(testCharacterID, itemLongsword))

	competency := repo.competencyFor(testCharacterID, smithTools)
	assert.Equal(t, domain.GradeExpert, competency.Grade)
	assert.Equal(t, 1, competency.Successes)

	assert.Equal(t, 5, repo.rollCount(sessionID))
	assert.Len(t, pub.ofType(event.CraftingRoll), 5)
	assert.Len(t, pub.ofType(event.GradePromoted), 2)
	assert.Len(t, pub.ofType(event.CraftingCompleted), 1)
	assert.Equal(t, 5, roller.Used())
}

func TestSubmitRoll_LegendaryChargesOnlyOnCompletion(t *testing.T) {
	repo := NewMockRepository()
	setupTestData(repo)
	char := newTestCharacter(otherCharacterID)
	char.Level = 17
	char.Gold = 6000
	char.Downtime = 10
	repo.addCharacter(char)
	repo.proficiency[17] = 6
	repo.give(otherCharacterID, itemIron, 1)
	repo.give(otherCharacterID, itemDragonHeart, 1)
	repo.give(otherCharacterID, itemSmithTools, 1)
	repo.setCompetency(otherCharacterID, smithTools, domain.GradeGrandMaster, 0)

	rolls := make([]int, 10)
	for i := range rolls {
		rolls[i] = 18
	}
	svc := newTestService(repo, dice.NewScriptedRoller(rolls...), nil)
	ctx := context.Background()

	start, err := svc.StartCrafting(ctx, otherCharacterID, recipeVorpal)
	require.NoError(t, err)
	assert.Equal(t, 10, start.Session.RequiredSuccesses)
	assert.Equal(t, 0, repo.quantity(otherCharacterID, itemDragonHeart))

	for i := 1; i <= 9; i++ {
		out, err := svc.SubmitRoll(ctx, otherCharacterID, start.Session.ID)
		require.NoError(t, err)
		assert.Equal(t, 12, out.Modifier.Total)
		assert.Equal(t, 30, out.Roll.Total)
		assert.Equal(t, 30, out.Roll.DC)
		assert.True(t, out.Roll.Success)
		assert.Equal(t, 0, out.Roll.GoldSpent)
		assert.Equal(t, domain.Economy{Gold: 6000, Downtime: 10}, out.Economy, "roll %d", i)
		assert.False(t, out.Completed)
		assert.Nil(t, out.Promotion, "grand master never promotes")
	}

	out, err := svc.SubmitRoll(ctx, otherCharacterID, start.Session.ID)
	require.NoError(t, err)
	assert.True(t, out.Completed)
	assert.Equal(t, 2000, out.Roll.GoldSpent)
	assert.Equal(t, 5, out.Roll.DaysSpent)
	assert.Equal(t, domain.Economy{Gold: 4000, Downtime: 5}, out.Economy)
	assert.Equal(t, "Magic item completed! Vorpal Sword added to your inventory. Cost: 5 days, 2000 gp", out.Message)
	assert.Equal(t, 1, repo.quantity(otherCharacterID, itemVorpal))
	assert.Equal(t, 10, repo.competencyFor(otherCharacterID, smithTools).Successes)
}

func TestSubmitRoll_MagicalFailureIsFree(t *testing.T) {
	repo := NewMockRepository()
	setupTestData(repo)
	repo.give(testCharacterID, itemDragonHeart, 1)
	repo.setCompetency(testCharacterID, smithTools, domain.GradeGrandMaster, 0)
	c := repo.character(testCharacterID)
	c.Gold = 2500
	repo.addCharacter(c)
	svc := newTestService(repo, dice.NewScriptedRoller(1), nil)
	ctx := context.Background()

	start, err := svc.StartCrafting(ctx, testCharacterID, recipeVorpal)
	require.NoError(t, err)

	out, err := svc.SubmitRoll(ctx, testCharacterID, start.Session.ID)
	require.NoError(t, err)
	assert.False(t, out.Roll.Success)
	assert.Equal(t, domain.Economy{Gold: 2500, Downtime: 10}, out.Economy)
	assert.Equal(t, 1, out.Session.DaysWorked)
	assert.Equal(t, 0, out.Session.AccumulatedSuccesses)
	assert.Equal(t, "Failure. Progress: 0/10 successes (no cost)", out.Message)
}

func TestSubmitRoll_Prechecks(t *testing.T) {
	t.Run("no downtime", func(t *testing.T) {
		repo := NewMockRepository()
		setupTestData(repo)
		roller := dice.NewScriptedRoller(20)
		svc := newTestService(repo, roller, nil)
		ctx := context.Background()

		start, err := svc.StartCrafting(ctx, testCharacterID, recipeLongsword)
		require.NoError(t, err)
		c := repo.character(testCharacterID)
		c.Downtime = 0
		repo.addCharacter(c)

		_, err = svc.SubmitRoll(ctx, testCharacterID, start.Session.ID)
		assert.ErrorIs(t, err, domain.ErrInsufficientDowntime)
		assert.Equal(t, 0, roller.Used(), "no die is drawn on a rejected roll")
		assert.Equal(t, 0, repo.rollCount(start.Session.ID))
		assert.Equal(t, 0, repo.session(start.Session.ID).DaysWorked)
	})

	t.Run("magical completion cost checked every roll", func(t *testing.T) {
		repo := NewMockRepository()
		setupTestData(repo)
		repo.give(testCharacterID, itemDragonHeart, 1)
		repo.setCompetency(testCharacterID, smithTools, domain.GradeGrandMaster, 0)
		roller := dice.NewScriptedRoller(20)
		svc := newTestService(repo, roller, nil)
		ctx := context.Background()

		start, err := svc.StartCrafting(ctx, testCharacterID, recipeVorpal)
		require.NoError(t, err)

		_, err = svc.SubmitRoll(ctx, testCharacterID, start.Session.ID)
		var shortfall *domain.ResourceShortfallError
		require.ErrorAs(t, err, &shortfall)
		assert.ErrorIs(t, err, domain.ErrInsufficientGold)
		assert.Equal(t, 2000, shortfall.Required)
		assert.Equal(t, 100, shortfall.Held)
		assert.Equal(t, 0, roller.Used())
	})

	t.Run("downtime reported before gold", func(t *testing.T) {
		repo := NewMockRepository()
		setupTestData(repo)
		svc := newTestService(repo, dice.NewScriptedRoller(20), nil)
		ctx := context.Background()

		start, err := svc.StartCrafting(ctx, testCharacterID, recipeLongsword)
		require.NoError(t, err)
		c := repo.character(testCharacterID)
		c.Downtime = 0
		c.Gold = 0
		repo.addCharacter(c)

		_, err = svc.SubmitRoll(ctx, testCharacterID, start.Session.ID)
		assert.ErrorIs(t, err, domain.ErrInsufficientDowntime)
	})
}

func TestSubmitRoll_SessionRules(t *testing.T) {
	ctx := context.Background()

	t.Run("other character's session is not found", func(t *testing.T) {
		repo := NewMockRepository()
		setupTestData(repo)
		repo.addCharacter(newTestCharacter(otherCharacterID))
		svc := newTestService(repo, dice.NewScriptedRoller(20), nil)

		start, err := svc.StartCrafting(ctx, testCharacterID, recipeLongsword)
		require.NoError(t, err)

		_, err = svc.SubmitRoll(ctx, otherCharacterID, start.Session.ID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
		_, err = svc.GetSession(ctx, otherCharacterID, start.Session.ID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("unknown session", func(t *testing.T) {
		repo := NewMockRepository()
		setupTestData(repo)
		svc := newTestService(repo, dice.NewScriptedRoller(20), nil)

		_, err := svc.SubmitRoll(ctx, testCharacterID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("completed session rejects further rolls", func(t *testing.T) {
		repo := NewMockRepository()
		setupTestData(repo)
		repo.setCompetency(testCharacterID, smithTools, domain.GradeGrandMaster, 0)
		roller := dice.NewScriptedRoller(20, 20)
		svc := newTestService(repo, roller, nil)

		start, err := svc.StartCrafting(ctx, testCharacterID, recipeLongsword)
		require.NoError(t, err)
		out, err := svc.SubmitRoll(ctx, testCharacterID, start.Session.ID)
		require.NoError(t, err)
		require.True(t, out.Completed)

		_, err = svc.SubmitRoll(ctx, testCharacterID, start.Session.ID)
		assert.ErrorIs(t, err, domain.ErrSessionCompleted)
		assert.Equal(t, 1, roller.Used())
		assert.Equal(t, 1, repo.quantity(testCharacterID, itemLongsword), "output is credited once")
	})

	t.Run("paused session rejects rolls until resumed", func(t *testing.T) {
		repo := NewMockRepository()
		setupTestData(repo)
		svc := newTestService(repo, dice.NewScriptedRoller(20), nil)

		start, err := svc.StartCrafting(ctx, testCharacterID, recipeLongsword)
		require.NoError(t, err)

		paused, err := svc.PauseSession(ctx, testCharacterID, start.Session.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.SessionPaused, paused.State)

		_, err = svc.PauseSession(ctx, testCharacterID, start.Session.ID)
		assert.ErrorIs(t, err, domain.ErrSessionNotActive)

		_, err = svc.SubmitRoll(ctx, testCharacterID, start.Session.ID)
		assert.ErrorIs(t, err, domain.ErrSessionNotActive)

		resumed, err := svc.ResumeSession(ctx, testCharacterID, start.Session.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.SessionInProgress, resumed.State)

		_, err = svc.SubmitRoll(ctx, testCharacterID, start.Session.ID)
		assert.NoError(t, err)
	})
}

func TestSubmitRoll_RetriesSerializationFailureWithSameDie(t *testing.T) {
	repo := NewMockRepository()
	setupTestData(repo)
	roller := dice.NewScriptedRoller(15)
	svc := newTestService(repo, roller, nil)
	ctx := context.Background()

	start, err := svc.StartCrafting(ctx, testCharacterID, recipeLongsword)
	require.NoError(t, err)

	repo.Lock()
	repo.serializationFailures = 1
	repo.Unlock()

	out, err := svc.SubmitRoll(ctx, testCharacterID, start.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, out.Roll.Die)
	assert.Equal(t, 1, roller.Used())
	assert.Equal(t, 1, repo.rollCount(start.Session.ID))
	assert.Equal(t, 98, repo.character(testCharacterID).Gold, "the replay charges once")
}

func TestSubmitRoll_CommitFailureLeavesStateUnchanged(t *testing.T) {
	repo := NewMockRepository()
	setupTestData(repo)
	svc := newTestService(repo, dice.NewScriptedRoller(15), nil)
	ctx := context.Background()

	start, err := svc.StartCrafting(ctx, testCharacterID, recipeLongsword)
	require.NoError(t, err)

	repo.Lock()
	repo.commitError = errors.New("connection reset")
	repo.Unlock()

	_, err = svc.SubmitRoll(ctx, testCharacterID, start.Session.ID)
	require.Error(t, err)
	assert.False(t, IsRejection(err))
	assert.Contains(t, err.Error(), "connection reset")

	assert.Equal(t, 0, repo.session(start.Session.ID).DaysWorked)
	assert.Equal(t, 100, repo.character(testCharacterID).Gold)
	assert.Equal(t, 0, repo.rollCount(start.Session.ID))
}

func TestStartCrafting_BeginTxFailure(t *testing.T) {
	repo := NewMockRepository()
	setupTestData(repo)
	repo.beginTxError = errors.New("pool closed")
	svc := newTestService(repo, dice.NewScriptedRoller(), nil)

	_, err := svc.StartCrafting(context.Background(), testCharacterID, recipeLongsword)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to begin transaction")
	assert.Equal(t, 5, repo.quantity(testCharacterID, itemIron))
}

func TestGetSession_RollHistoryNewestFirst(t *testing.T) {
	repo := NewMockRepository()
	setupTestData(repo)
	svc := newTestService(repo, dice.NewScriptedRoller(3, 4, 5), nil)
	ctx := context.Background()

	start, err := svc.StartCrafting(ctx, testCharacterID, recipeLongsword)
	require.NoError(t, err)
	for range 3 {
		_, err := svc.SubmitRoll(ctx, testCharacterID, start.Session.ID)
		require.NoError(t, err)
	}

	detail, err := svc.GetSession(ctx, testCharacterID, start.Session.ID)
	require.NoError(t, err)
	require.Len(t, detail.Rolls, 3)
	assert.Equal(t, []int{5, 4, 3}, []int{detail.Rolls[0].Die, detail.Rolls[1].Die, detail.Rolls[2].Die})
	assert.Equal(t, "longsword", detail.RecipeKey)
	assert.Equal(t, domain.MundaneDC, detail.DC)
	assert.Equal(t, 30, detail.GoldThreshold)
	assert.Equal(t, 3, detail.RollsMade)
	assert.InDelta(t, 0, detail.Percent, 0.001)
}

func TestListSessions(t *testing.T) {
	repo := NewMockRepository()
	setupTestData(repo)
	repo.give(testCharacterID, itemIron, 10)
	repo.give(testCharacterID, itemLeather, 5)
	repo.setCompetency(testCharacterID, smithTools, domain.GradeGrandMaster, 0)
	svc := newTestService(repo, dice.NewScriptedRoller(20), nil)
	ctx := context.Background()

	done, err := svc.StartCrafting(ctx, testCharacterID, recipeLongsword)
	require.NoError(t, err)
	_, err = svc.SubmitRoll(ctx, testCharacterID, done.Session.ID)
	require.NoError(t, err)

	paused, err := svc.StartCrafting(ctx, testCharacterID, recipeLongsword)
	require.NoError(t, err)
	_, err = svc.PauseSession(ctx, testCharacterID, paused.Session.ID)
	require.NoError(t, err)

	active, err := svc.StartCrafting(ctx, testCharacterID, recipeLongsword)
	require.NoError(t, err)

	list, err := svc.ListSessions(ctx, testCharacterID, "")
	require.NoError(t, err)
	require.Len(t, list.InProgress, 1)
	require.Len(t, list.Paused, 1)
	require.Len(t, list.Completed, 1)
	assert.Equal(t, active.Session.ID, list.InProgress[0].ID)
	assert.Equal(t, paused.Session.ID, list.Paused[0].ID)
	assert.Equal(t, done.Session.ID, list.Completed[0].ID)
	assert.InDelta(t, 100, list.Completed[0].Percent, 0.001)

	filtered, err := svc.ListSessions(ctx, testCharacterID, domain.SessionPaused)
	require.NoError(t, err)
	assert.Empty(t, filtered.InProgress)
	assert.Len(t, filtered.Paused, 1)

	_, err = svc.ListSessions(ctx, testCharacterID, "abandoned")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.ListSessions(ctx, 404, "")
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}

func TestListCompetencies_Ordering(t *testing.T) {
	repo := NewMockRepository()
	setupTestData(repo)
	repo.setCompetency(testCharacterID, "Alchemist's Supplies", domain.GradeApprentice, 1)
	repo.setCompetency(testCharacterID, smithTools, domain.GradeExpert, 4)
	repo.setCompetency(testCharacterID, "Tinker's Tools", domain.GradeApprentice, 0)
	svc := newTestService(repo, dice.NewScriptedRoller(), nil)

	views, err := svc.ListCompetencies(context.Background(), testCharacterID)
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, smithTools, views[0].Tool)
	assert.Equal(t, "Alchemist's Supplies", views[1].Tool)
	assert.Equal(t, "Tinker's Tools", views[2].Tool)

	assert.Equal(t, domain.GradeNameMasterArtisan, views[0].NextGrade)
	assert.Equal(t, 6, views[0].SuccessesToNext)
	assert.Equal(t, 2, views[0].Modifier.Total)
	assert.Equal(t, 20, views[0].GradeInfo.GoldGain)
}
