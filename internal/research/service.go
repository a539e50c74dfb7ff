package research

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/DowntimeForge/internal/concurrency"
	"github.com/osse101/DowntimeForge/internal/crafting"
	"github.com/osse101/DowntimeForge/internal/database"
	"github.com/osse101/DowntimeForge/internal/dice"
	"github.com/osse101/DowntimeForge/internal/domain"
	"github.com/osse101/DowntimeForge/internal/event"
	"github.com/osse101/DowntimeForge/internal/logger"
	"github.com/osse101/DowntimeForge/internal/metrics"
	"github.com/osse101/DowntimeForge/internal/repository"
)

// Service unlocks research-gated recipes
type Service interface {
	// StartResearch opens a project. skill picks among the source's skills, empty means its default.
	StartResearch(ctx context.Context, characterID, recipeID, itemID int, source domain.ResearchSource, skill string) (*StartResult, error)
	RollResearch(ctx context.Context, characterID int, researchID uuid.UUID) (*RollOutcome, error)
	GetResearch(ctx context.Context, characterID int, researchID uuid.UUID) (*ResearchDetail, error)
	ListResearch(ctx context.Context, characterID int) (*ResearchList, error)
	ListUnlockedRecipes(ctx context.Context, characterID int) ([]domain.RecipeUnlock, error)
}

// StartResult is returned by StartResearch
type StartResult struct {
	Research *domain.Research `json:"research"`
	Message  string           `json:"message"`
}

// Modifier explains a research roll bonus. ProficiencyBonus is the level's bonus,
// ProficiencyPart what the roll actually adds after the tool grade multiplier.
type Modifier struct {
	Total            int    `json:"total"`
	Source           string `json:"source"`
	AbilityName      string `json:"ability_name,omitempty"`
	AbilityPart      int    `json:"ability_part"`
	ProficiencyBonus int    `json:"proficiency_bonus"`
	ProficiencyPart  int    `json:"proficiency_part"`
}

// RollOutcome is returned by RollResearch
type RollOutcome struct {
	Research *domain.Research `json:"research"`
	Die      int              `json:"die"`
	Modifier Modifier         `json:"modifier"`
	Total    int              `json:"total"`
	DC       int              `json:"dc"`
	Success  bool             `json:"success"`
	Economy  domain.Economy   `json:"character"`
	Unlocked bool             `json:"unlocked"`
	Message  string           `json:"message"`
}

type service struct {
	repo        repository.Research
	roller      dice.Roller
	publisher   crafting.EventPublisher
	lockManager *concurrency.LockManager
	proficiency *crafting.ProficiencyTable
	txRetries   int
	now         func() time.Time
}

// NewService creates a new research service
func NewService(
	repo repository.Research,
	roller dice.Roller,
	publisher crafting.EventPublisher,
	lockManager *concurrency.LockManager,
	proficiency *crafting.ProficiencyTable,
	txRetries int,
) Service {
	if lockManager == nil {
		lockManager = concurrency.NewLockManager()
	}
	if proficiency == nil {
		proficiency = crafting.NewProficiencyTable(repo, 0)
	}
	return &service{
		repo:        repo,
		roller:      roller,
		publisher:   publisher,
		lockManager: lockManager,
		proficiency: proficiency,
		txRetries:   txRetries,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) retryPolicy(op string) database.RetryPolicy {
	policy := database.NewRetryPolicy(s.txRetries)
	policy.OnRetry = func(uint, error) {
		metrics.TxRetries.WithLabelValues(op).Inc()
	}
	return policy
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}

// StartResearch opens a research project on one of the recipe's items. The item is studied, not consumed.
func (s *service) StartResearch(ctx context.Context, characterID, recipeID, itemID int, source domain.ResearchSource, skillName string) (*StartResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgStartResearchCalled, "character_id", characterID, "recipe_id", recipeID, "item_id", itemID, "source", source, "skill", skillName)

	if _, err := domain.ParseResearchSource(string(source)); err != nil {
		return nil, err
	}
	skill, _, err := source.ResolveSkill(skillName)
	if err != nil {
		return nil, err
	}

	recipe, err := s.repo.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetRecipeFailed, err)
	}
	if !recipe.RequiresResearch {
		return nil, domain.ErrRecipeNotResearchable
	}

	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetItemFailed, err)
	}
	if !item.Investigable {
		return nil, fmt.Errorf(ErrMsgItemNotInvestigableFmt, domain.ErrItemNotInvestigable, item.DisplayName)
	}
	if !usesItem(recipe, item.ID) {
		return nil, fmt.Errorf(ErrMsgItemNotInRecipeFmt, domain.ErrItemNotInRecipe, item.DisplayName, recipe.OutputItemName)
	}

	research, err := database.RetryTx(ctx, s.retryPolicy(OpStartResearch), func(ctx context.Context) (*domain.Research, error) {
		return s.startTx(ctx, characterID, recipe, item, source, skill.Skill)
	})
	if err != nil {
		logFailure(ctx, LogMsgStartRejected, err, "character_id", characterID, "recipe_id", recipeID)
		return nil, err
	}

	log.Info(LogMsgResearchStarted, "character_id", characterID, "research_id", research.ID, "recipe_key", recipe.Key)
	return &StartResult{
		Research: research,
		Message:  fmt.Sprintf(MsgResearchStartedFmt, recipe.OutputItemName, item.DisplayName, research.DC, research.RequiredSuccesses),
	}, nil
}

func (s *service) startTx(ctx context.Context, characterID int, recipe *domain.Recipe, item *domain.Item, source domain.ResearchSource, skill string) (*domain.Research, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.GetCharacterForUpdate(ctx, characterID); err != nil {
		return nil, fmt.Errorf(ErrMsgGetCharacterFailed, err)
	}

	unlocked, err := tx.IsRecipeUnlocked(ctx, characterID, recipe.ID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCheckUnlockFailed, err)
	}
	if unlocked {
		return nil, domain.ErrRecipeAlreadyUnlocked
	}

	active, err := tx.HasActiveResearch(ctx, characterID, recipe.ID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCheckActiveFailed, err)
	}
	if active {
		return nil, domain.ErrResearchActive
	}

	inventory, err := tx.GetInventoryForUpdate(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetInventoryFailed, err)
	}
	if inventory.Quantity(item.ID) < 1 {
		return nil, domain.ErrResearchItemNotHeld
	}

	if source == domain.ResearchSourceField {
		competency, err := tx.GetCompetency(ctx, characterID, recipe.Tool)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgGetCompetencyFailed, err)
		}
		if competency == nil {
			return nil, fmt.Errorf(ErrMsgNoCompetencyFmt, domain.ErrCompetencyNotFound, recipe.Tool)
		}
	}

	research := domain.NewResearch(characterID, recipe.ID, item, source, skill, s.now())
	if err := tx.CreateResearch(ctx, research); err != nil {
		return nil, fmt.Errorf(ErrMsgCreateResearchFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}
	return research, nil
}

func usesItem(recipe *domain.Recipe, itemID int) bool {
	if recipe.OutputItemID == itemID {
		return true
	}
	if recipe.RareMaterialID != nil && *recipe.RareMaterialID == itemID {
		return true
	}
	for _, ing := range recipe.Ingredients {
		if ing.ItemID == itemID {
			return true
		}
	}
	return false
}

type rollState struct {
	outcome   *RollOutcome
	character *domain.Character
	recipe    *domain.Recipe
}

// RollResearch spends one day and 25 gp on a research check
func (s *service) RollResearch(ctx context.Context, characterID int, researchID uuid.UUID) (*RollOutcome, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRollResearchCalled, "character_id", characterID, "research_id", researchID)

	unlock := s.lockManager.Lock(LockKeyPrefix + researchID.String())
	defer unlock()

	die := 0
	draw := func() (int, error) {
		if die == 0 {
			n, err := dice.RollD20(s.roller)
			if err != nil {
				return 0, fmt.Errorf(ErrMsgRollDiceFailed, err)
			}
			die = n
		}
		return die, nil
	}

	state, err := database.RetryTx(ctx, s.retryPolicy(OpRollResearch), func(ctx context.Context) (*rollState, error) {
		return s.rollTx(ctx, characterID, researchID, draw)
	})
	if err != nil {
		logFailure(ctx, LogMsgRollRejected, err, "character_id", characterID, "research_id", researchID)
		return nil, err
	}

	out := state.outcome
	log.Info(LogMsgResearchRolled,
		"character_id", characterID,
		"research_id", researchID,
		"die", out.Die,
		"total", out.Total,
		"dc", out.DC,
		"success", out.Success)
	s.publish(ctx, newResearchRollEvent(characterID, out))

	if out.Unlocked {
		log.Info(LogMsgRecipeUnlocked, "character_id", characterID, "recipe_key", state.recipe.Key)
		s.publish(ctx, newRecipeUnlockedEvent(state.character, state.recipe))
	}
	return out, nil
}

func (s *service) rollTx(ctx context.Context, characterID int, researchID uuid.UUID, draw func() (int, error)) (*rollState, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	research, err := tx.GetResearchForUpdate(ctx, researchID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetResearchFailed, err)
	}
	if research.CharacterID != characterID {
		return nil, domain.ErrResearchNotFound
	}
	if research.State == domain.ResearchCompleted {
		return nil, domain.ErrResearchCompleted
	}

	character, err := tx.GetCharacterForUpdate(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCharacterFailed, err)
	}
	cost := domain.ResearchRollCost
	if character.Downtime < cost.Days {
		return nil, domain.NewDowntimeShortfall(cost.Days, character.Downtime)
	}
	if character.Gold < cost.Gold {
		return nil, domain.NewGoldShortfall(cost.Gold, character.Gold)
	}

	recipe, err := s.repo.GetRecipe(ctx, research.RecipeID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetRecipeFailed, err)
	}
	modifier, err := s.modifier(ctx, tx, character, recipe, research)
	if err != nil {
		return nil, err
	}

	die, err := draw()
	if err != nil {
		return nil, err
	}

	now := s.now()
	total := die + modifier.Total
	success := total >= research.DC

	character.Spend(cost)
	research.DaysWorked++
	research.GoldSpent += cost.Gold
	if success {
		research.Successes++
	}

	unlocked := research.Successes >= research.RequiredSuccesses
	msg := fmt.Sprintf(MsgResearchFailureFmt, research.Successes, research.RequiredSuccesses)
	if success {
		msg = fmt.Sprintf(MsgResearchSuccessFmt, research.Successes, research.RequiredSuccesses)
	}
	if unlocked {
		research.State = domain.ResearchCompleted
		research.CompletedAt = &now
		if err := tx.UnlockRecipe(ctx, &domain.RecipeUnlock{CharacterID: characterID, RecipeID: recipe.ID, UnlockedAt: now}); err != nil {
			return nil, fmt.Errorf(ErrMsgUnlockRecipeFailed, err)
		}
		msg = fmt.Sprintf(MsgRecipeUnlockedFmt, recipe.OutputItemName)
	}

	if err := tx.UpdateCharacterEconomy(ctx, characterID, character.Economy()); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateEconomyFailed, err)
	}
	if err := tx.UpdateResearch(ctx, research); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateResearchFailed, err)
	}
	roll := &domain.ResearchRoll{
		ResearchID: research.ID,
		Skill:      modifier.Source,
		Die:        die,
		Modifier:   modifier.Total,
		Total:      total,
		DC:         research.DC,
		Success:    success,
		GoldSpent:  cost.Gold,
		DaysSpent:  cost.Days,
		RolledAt:   now,
	}
	if err := tx.InsertResearchRoll(ctx, roll); err != nil {
		return nil, fmt.Errorf(ErrMsgInsertRollFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	return &rollState{
		outcome: &RollOutcome{
			Research: research,
			Die:      die,
			Modifier: modifier,
			Total:    total,
			DC:       research.DC,
			Success:  success,
			Economy:  character.Economy(),
			Unlocked: unlocked,
			Message:  msg,
		},
		character: character,
		recipe:    recipe,
	}, nil
}

// modifier is the tool competency modifier for field work, otherwise the chosen skill's ability modifier plus proficiency
func (s *service) modifier(ctx context.Context, tx repository.ResearchTx, character *domain.Character, recipe *domain.Recipe, research *domain.Research) (Modifier, error) {
	bonus, err := s.proficiency.Bonus(ctx, character.Level)
	if err != nil {
		return Modifier{}, err
	}

	skill, ok, err := research.Source.ResolveSkill(research.Skill)
	if err != nil {
		return Modifier{}, err
	}
	if !ok {
		competency, err := tx.GetCompetency(ctx, character.ID, recipe.Tool)
		if err != nil {
			return Modifier{}, fmt.Errorf(ErrMsgGetCompetencyFailed, err)
		}
		if competency == nil {
			return Modifier{}, fmt.Errorf(ErrMsgNoCompetencyFmt, domain.ErrCompetencyNotFound, recipe.Tool)
		}
		mb := domain.ComputeModifier(character.Abilities, competency.Grade, bonus)
		return Modifier{
			Total:            mb.Total,
			Source:           ModifierSourceTool,
			AbilityName:      mb.AbilityName,
			AbilityPart:      mb.AbilityPart,
			ProficiencyBonus: bonus,
			ProficiencyPart:  mb.ProficiencyPart,
		}, nil
	}

	abilityPart := domain.AbilityModifier(character.Abilities.Get(skill.Ability))
	return Modifier{
		Total:            abilityPart + bonus,
		Source:           skill.Skill,
		AbilityName:      skill.Ability,
		AbilityPart:      abilityPart,
		ProficiencyBonus: bonus,
		ProficiencyPart:  bonus,
	}, nil
}

// ListUnlockedRecipes returns the recipes the character has unlocked through research
func (s *service) ListUnlockedRecipes(ctx context.Context, characterID int) ([]domain.RecipeUnlock, error) {
	list, err := s.repo.GetUnlockedRecipes(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUnlocksFailed, err)
	}
	return list, nil
}

var rejections = []error{
	domain.ErrResearchNotFound,
	domain.ErrResearchCompleted,
	domain.ErrResearchActive,
	domain.ErrRecipeAlreadyUnlocked,
	domain.ErrResearchItemNotHeld,
	domain.ErrCompetencyNotFound,
}

func logFailure(ctx context.Context, msg string, err error, args ...any) {
	log := logger.FromContext(ctx)
	args = append(args, "error", err)
	if crafting.IsRejection(err) {
		log.Warn(msg, args...)
		return
	}
	for _, target := range rejections {
		if errors.Is(err, target) {
			log.Warn(msg, args...)
			return
		}
	}
	log.Error(msg, args...)
}
