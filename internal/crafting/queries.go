package crafting

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/osse101/DowntimeForge/internal/domain"
)

// SessionView is a session annotated with its recipe's derived values
type SessionView struct {
	domain.ProgressSession
	RecipeKey      string  `json:"recipe_key"`
	OutputItemName string  `json:"output_item_name"`
	Kind           string  `json:"kind"`
	DC             int     `json:"dc"`
	GoldThreshold  int     `json:"gold_threshold,omitempty"`
	Percent        float64 `json:"percent_complete"`
	RollsMade      int     `json:"rolls_made"`
}

// SessionDetail is one session with its roll history, newest first
type SessionDetail struct {
	SessionView
	Rolls []domain.RollRecord `json:"rolls"`
}

// SessionList groups a character's sessions by state
type SessionList struct {
	InProgress []SessionView `json:"in_progress"`
	Paused     []SessionView `json:"paused"`
	Completed  []SessionView `json:"completed"`
}

// RecipeEligibility previews whether a character could start a recipe right now
type RecipeEligibility struct {
	Recipe              *domain.Recipe     `json:"recipe"`
	CanCraft            bool               `json:"can_craft"`
	Locked              bool               `json:"locked"`
	RarityAllowed       bool               `json:"rarity_allowed"`
	MissingIngredients  []domain.Shortfall `json:"missing_ingredients"`
	MissingRareMaterial bool               `json:"missing_rare_material"`
	HasTool             bool               `json:"has_tool"`
	GradeSufficient     bool               `json:"grade_sufficient"`
	CurrentGrade        domain.Grade       `json:"current_grade"`
	RequiredGrade       domain.Grade       `json:"required_grade"`
	DC                  int                `json:"dc"`
	RequiredSuccesses   int                `json:"required_successes"`
	MagicalCost         domain.Cost        `json:"magical_cost"`
	Modifier            int                `json:"modifier"`
}

// CompetencyView is a tool competency with its grade row and modifier breakdown
type CompetencyView struct {
	domain.ToolCompetency
	GradeInfo       domain.GradeInfo         `json:"grade_info"`
	NextGrade       string                   `json:"next_grade,omitempty"`
	SuccessesToNext int                      `json:"successes_to_next"`
	Modifier        domain.ModifierBreakdown `json:"modifier"`
}

func newSessionView(session domain.ProgressSession, recipe *domain.Recipe) SessionView {
	return SessionView{
		ProgressSession: session,
		RecipeKey:       recipe.Key,
		OutputItemName:  recipe.OutputItemName,
		Kind:            recipe.Kind(),
		DC:              recipe.DC(),
		GoldThreshold:   recipe.GoldThreshold(),
		Percent:         session.Percent(recipe),
		RollsMade:       session.DaysWorked,
	}
}

// GetSession returns a session owned by characterID and its roll history
func (s *service) GetSession(ctx context.Context, characterID int, sessionID uuid.UUID) (*SessionDetail, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetSessionFailed, err)
	}
	if session.CharacterID != characterID {
		return nil, domain.ErrSessionNotFound
	}

	recipe, err := s.recipes.Get(ctx, session.RecipeID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetRecipeFailed, err)
	}

	rolls, err := s.repo.GetRollHistory(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetRollHistoryFailed, err)
	}

	return &SessionDetail{
		SessionView: newSessionView(*session, recipe),
		Rolls:       rolls,
	}, nil
}

// ListSessions returns the character's sessions. An empty state lists every state.
// In-progress and paused sessions are newest started first, completed ones newest completed first.
func (s *service) ListSessions(ctx context.Context, characterID int, state domain.SessionState) (*SessionList, error) {
	if state != "" && !state.Valid() {
		return nil, fmt.Errorf("%w: unknown session state %q", domain.ErrInvalidInput, state)
	}
	if _, err := s.repo.GetCharacter(ctx, characterID); err != nil {
		return nil, fmt.Errorf(ErrMsgGetCharacterFailed, err)
	}

	sessions, err := s.repo.GetSessions(ctx, characterID, state)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetSessionsFailed, err)
	}

	list := &SessionList{
		InProgress: []SessionView{},
		Paused:     []SessionView{},
		Completed:  []SessionView{},
	}
	for _, session := range sessions {
		recipe, err := s.recipes.Get(ctx, session.RecipeID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgGetRecipeFailed, err)
		}
		view := newSessionView(session, recipe)
		switch session.State {
		case domain.SessionInProgress:
			list.InProgress = append(list.InProgress, view)
		case domain.SessionPaused:
			list.Paused = append(list.Paused, view)
		case domain.SessionCompleted:
			list.Completed = append(list.Completed, view)
		}
	}

	byStartDesc := func(a, b SessionView) int { return b.StartedAt.Compare(a.StartedAt) }
	slices.SortStableFunc(list.InProgress, byStartDesc)
	slices.SortStableFunc(list.Paused, byStartDesc)
	slices.SortStableFunc(list.Completed, func(a, b SessionView) int {
		return lo.FromPtr(b.CompletedAt).Compare(lo.FromPtr(a.CompletedAt))
	})

	return list, nil
}

// ListRecipesFor annotates every recipe with the character's eligibility.
// It reads without locks and never creates a competency: a tool never used evaluates as Novice.
func (s *service) ListRecipesFor(ctx context.Context, characterID int) ([]RecipeEligibility, error) {
	character, err := s.repo.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCharacterFailed, err)
	}
	inventory, err := s.repo.GetInventory(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetInventoryFailed, err)
	}
	competencies, err := s.repo.GetCompetencies(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCompetenciesFailed, err)
	}
	unlockedIDs, err := s.repo.GetUnlockedRecipeIDs(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUnlocksFailed, err)
	}
	recipes, err := s.repo.GetAllRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetAllRecipesFailed, err)
	}
	bonus, err := s.proficiency.Bonus(ctx, character.Level)
	if err != nil {
		return nil, err
	}

	gradeByTool := lo.Associate(competencies, func(c domain.ToolCompetency) (string, domain.Grade) {
		return c.Tool, c.Grade
	})
	unlocked := lo.Associate(unlockedIDs, func(id int) (int, struct{}) { return id, struct{}{} })

	return lo.Map(recipes, func(recipe domain.Recipe, _ int) RecipeEligibility {
		r := recipe
		grade := gradeByTool[r.Tool] // absent tools read as the zero grade, Novice
		_, isUnlocked := unlocked[r.ID]
		return evaluateEligibility(&r, character, inventory, grade, !r.RequiresResearch || isUnlocked, bonus)
	}), nil
}

func evaluateEligibility(recipe *domain.Recipe, character *domain.Character, inv domain.Inventory, grade domain.Grade, unlocked bool, bonus int) RecipeEligibility {
	mc := checkMaterials(recipe, inv)
	gc := checkGrade(recipe, grade)

	missing := mc.Missing
	if missing == nil {
		missing = []domain.Shortfall{}
	}

	return RecipeEligibility{
		Recipe:              recipe,
		CanCraft:            unlocked && mc.Err(recipe) == nil && gc.Err(recipe) == nil,
		Locked:              !unlocked,
		RarityAllowed:       gc.RarityAllowed,
		MissingIngredients:  missing,
		MissingRareMaterial: mc.MissingRareMaterial,
		HasTool:             mc.HasTool,
		GradeSufficient:     gc.Sufficient,
		CurrentGrade:        gc.Current,
		RequiredGrade:       gc.Required,
		DC:                  recipe.DC(),
		RequiredSuccesses:   recipe.RequiredSuccesses(),
		MagicalCost:         recipe.MagicalCost(),
		Modifier:            domain.ComputeModifier(character.Abilities, grade, bonus).Total,
	}
}

// ListCompetencies returns the character's tool competencies, highest grade first then most successes
func (s *service) ListCompetencies(ctx context.Context, characterID int) ([]CompetencyView, error) {
	character, err := s.repo.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCharacterFailed, err)
	}
	competencies, err := s.repo.GetCompetencies(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCompetenciesFailed, err)
	}
	bonus, err := s.proficiency.Bonus(ctx, character.Level)
	if err != nil {
		return nil, err
	}

	views := lo.Map(competencies, func(c domain.ToolCompetency, _ int) CompetencyView {
		view := CompetencyView{
			ToolCompetency:  c,
			GradeInfo:       c.Grade.Info(),
			SuccessesToNext: c.SuccessesToNextGrade(),
			Modifier:        domain.ComputeModifier(character.Abilities, c.Grade, bonus),
		}
		if next, ok := c.Grade.Next(); ok {
			view.NextGrade = next.String()
		}
		return view
	})

	slices.SortStableFunc(views, func(a, b CompetencyView) int {
		if c := cmp.Compare(b.Grade.Index(), a.Grade.Index()); c != 0 {
			return c
		}
		return cmp.Compare(b.Successes, a.Successes)
	})
	return views, nil
}
