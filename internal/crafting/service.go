package crafting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/DowntimeForge/internal/concurrency"
	"github.com/osse101/DowntimeForge/internal/database"
	"github.com/osse101/DowntimeForge/internal/dice"
	"github.com/osse101/DowntimeForge/internal/domain"
	"github.com/osse101/DowntimeForge/internal/event"
	"github.com/osse101/DowntimeForge/internal/logger"
	"github.com/osse101/DowntimeForge/internal/metrics"
	"github.com/osse101/DowntimeForge/internal/repository"
)

// Service defines the crafting engine operations. Every operation names the acting character explicitly.
type Service interface {
	StartCrafting(ctx context.Context, characterID, recipeID int) (*StartResult, error)
	SubmitRoll(ctx context.Context, characterID int, sessionID uuid.UUID) (*RollOutcome, error)
	PauseSession(ctx context.Context, characterID int, sessionID uuid.UUID) (*domain.ProgressSession, error)
	ResumeSession(ctx context.Context, characterID int, sessionID uuid.UUID) (*domain.ProgressSession, error)

	GetSession(ctx context.Context, characterID int, sessionID uuid.UUID) (*SessionDetail, error)
	ListSessions(ctx context.Context, characterID int, state domain.SessionState) (*SessionList, error)
	ListRecipesFor(ctx context.Context, characterID int) ([]RecipeEligibility, error)
	ListCompetencies(ctx context.Context, characterID int) ([]CompetencyView, error)
}

// EventPublisher defines the interface for publishing events with retry
type EventPublisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

// Config tunes the crafting service
type Config struct {
	TxMaxRetries        int
	ProficiencyCacheTTL time.Duration
	RecipeCacheTTL      time.Duration
}

// StartResult is returned by StartCrafting
type StartResult struct {
	Session           *domain.ProgressSession `json:"session"`
	Recipe            *domain.Recipe          `json:"recipe"`
	Competency        *domain.ToolCompetency  `json:"competency"`
	CompetencyCreated bool                    `json:"competency_created"`
	Message           string                  `json:"message"`
}

// RollOutcome is returned by SubmitRoll
type RollOutcome struct {
	Roll           domain.RollRecord        `json:"roll"`
	Modifier       domain.ModifierBreakdown `json:"modifier"`
	Session        *domain.ProgressSession  `json:"session"`
	Economy        domain.Economy           `json:"character"`
	Promotion      *domain.PromotionNotice  `json:"promotion,omitempty"`
	Completed      bool                     `json:"completed"`
	OutputItemName string                   `json:"output_item_name,omitempty"`
	OutputQuantity int                      `json:"output_quantity,omitempty"`
	Message        string                   `json:"message"`
}

type service struct {
	repo        repository.Crafting
	roller      dice.Roller
	publisher   EventPublisher
	lockManager *concurrency.LockManager
	proficiency *ProficiencyTable
	recipes     *recipeCache
	txRetries   int
	now         func() time.Time
}

// NewService creates a new crafting service
func NewService(
	repo repository.Crafting,
	roller dice.Roller,
	publisher EventPublisher,
	lockManager *concurrency.LockManager,
	proficiency *ProficiencyTable,
	cfg Config,
) Service {
	if lockManager == nil {
		lockManager = concurrency.NewLockManager()
	}
	if proficiency == nil {
		proficiency = NewProficiencyTable(repo, cfg.ProficiencyCacheTTL)
	}
	return &service{
		repo:        repo,
		roller:      roller,
		publisher:   publisher,
		lockManager: lockManager,
		proficiency: proficiency,
		recipes:     newRecipeCache(repo, cfg.RecipeCacheTTL),
		txRetries:   cfg.TxMaxRetries,
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

// StartCrafting validates requirements and consumes ingredients in one transaction.
// A rejected start leaves inventory, competencies and sessions untouched.
func (s *service) StartCrafting(ctx context.Context, characterID, recipeID int) (*StartResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgStartCraftingCalled, "character_id", characterID, "recipe_id", recipeID)

	recipe, err := s.recipes.Get(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetRecipeFailed, err)
	}

	result, err := database.RetryTx(ctx, s.retryPolicy(OpStartCrafting), func(ctx context.Context) (*StartResult, error) {
		return s.startTx(ctx, characterID, recipe)
	})
	if err != nil {
		logFailure(ctx, LogMsgStartRejected, err, "character_id", characterID, "recipe_id", recipeID)
		return nil, err
	}

	log.Info(LogMsgCraftingStarted,
		"character_id", characterID,
		"session_id", result.Session.ID,
		"recipe_key", recipe.Key,
		"competency_created", result.CompetencyCreated)
	s.publish(ctx, newCraftingStartedEvent(characterID, result))

	return result, nil
}

func (s *service) startTx(ctx context.Context, characterID int, recipe *domain.Recipe) (*StartResult, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.GetCharacterForUpdate(ctx, characterID); err != nil {
		return nil, fmt.Errorf(ErrMsgGetCharacterFailed, err)
	}

	if recipe.RequiresResearch {
		unlocked, err := tx.IsRecipeUnlocked(ctx, characterID, recipe.ID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgCheckUnlockFailed, err)
		}
		if !unlocked {
			return nil, fmt.Errorf(ErrMsgRecipeLockedFmt, domain.ErrRecipeLocked, recipe.OutputItemName)
		}
	}

	inventory, err := tx.GetInventoryForUpdate(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetInventoryFailed, err)
	}
	if err := checkMaterials(recipe, inventory).Err(recipe); err != nil {
		return nil, err
	}

	competency, created, err := tx.GetOrCreateCompetency(ctx, characterID, recipe.Tool)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCompetencyFailed, err)
	}
	if err := checkGrade(recipe, competency.Grade).Err(recipe); err != nil {
		return nil, err
	}

	for _, ing := range recipe.Ingredients {
		if err := tx.DeductInventory(ctx, characterID, ing.ItemID, ing.Quantity); err != nil {
			return nil, fmt.Errorf(ErrMsgDeductInventoryFailed, err)
		}
	}
	if recipe.HasRareMaterial() {
		if err := tx.DeductInventory(ctx, characterID, *recipe.RareMaterialID, 1); err != nil {
			return nil, fmt.Errorf(ErrMsgDeductInventoryFailed, err)
		}
	}

	session := domain.NewProgressSession(characterID, recipe, competency.ID, s.now())
	if err := tx.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf(ErrMsgCreateSessionFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	msg := fmt.Sprintf(MsgCraftingStartedFmt, recipe.OutputItemName)
	if created && recipe.RequiresTool() {
		msg += fmt.Sprintf(MsgFirstToolUseFmt, recipe.Tool, competency.Grade)
	}

	return &StartResult{
		Session:           session,
		Recipe:            recipe,
		Competency:        competency,
		CompetencyCreated: created,
		Message:           msg,
	}, nil
}

// rollState carries what the committed roll transaction produced
type rollState struct {
	outcome    *RollOutcome
	character  *domain.Character
	recipe     *domain.Recipe
	competency *domain.ToolCompetency
}

// SubmitRoll resolves one day of work on a session.
// Concurrent rolls on one session queue on an in-process lock, then on the session row.
func (s *service) SubmitRoll(ctx context.Context, characterID int, sessionID uuid.UUID) (*RollOutcome, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSubmitRollCalled, "character_id", characterID, "session_id", sessionID)

	unlock := s.lockManager.Lock(sessionID.String())
	defer unlock()

	// The die is drawn at most once. A replay after a serialization conflict reuses it.
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

	state, err := database.RetryTx(ctx, s.retryPolicy(OpSubmitRoll), func(ctx context.Context) (*rollState, error) {
		return s.rollTx(ctx, characterID, sessionID, draw)
	})
	if err != nil {
		logFailure(ctx, LogMsgRollRejected, err, "character_id", characterID, "session_id", sessionID)
		return nil, err
	}

	out := state.outcome
	log.Info(LogMsgRollResolved,
		"character_id", characterID,
		"session_id", sessionID,
		"die", out.Roll.Die,
		"total", out.Roll.Total,
		"dc", out.Roll.DC,
		"success", out.Roll.Success)
	s.publish(ctx, newCraftingRollEvent(characterID, state.recipe, &out.Roll))

	if out.Promotion != nil {
		log.Info(LogMsgGradePromoted, "character_id", characterID, "tool", out.Promotion.Tool, "grade", out.Promotion.NewGrade)
		s.publish(ctx, newGradePromotedEvent(state.character, out.Promotion))
	}
	if out.Completed {
		log.Info(LogMsgSessionCompleted, "character_id", characterID, "session_id", sessionID, "recipe_key", state.recipe.Key)
		s.publish(ctx, newCraftingCompletedEvent(state.character, state.recipe, out.Session))
	}

	return out, nil
}

func (s *service) rollTx(ctx context.Context, characterID int, sessionID uuid.UUID, draw func() (int, error)) (*rollState, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	session, err := tx.GetSessionForUpdate(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetSessionFailed, err)
	}
	if session.CharacterID != characterID {
		return nil, domain.ErrSessionNotFound
	}
	if session.IsCompleted() {
		return nil, domain.ErrSessionCompleted
	}
	if session.State != domain.SessionInProgress {
		return nil, fmt.Errorf(ErrMsgSessionStateFmt, domain.ErrSessionNotActive, session.State)
	}

	recipe, err := s.recipes.Get(ctx, session.RecipeID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetRecipeFailed, err)
	}
	character, err := tx.GetCharacterForUpdate(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCharacterFailed, err)
	}
	competency, err := tx.GetCompetencyForUpdate(ctx, session.CompetencyID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCompetencyFailed, err)
	}

	// Precheck. Magical recipes check the full completion cost on every roll without charging it.
	cost := rollCost(recipe, competency.Grade)
	if err := checkAffordable(character, cost); err != nil {
		return nil, err
	}

	bonus, err := s.proficiency.Bonus(ctx, character.Level)
	if err != nil {
		return nil, err
	}
	modifier := domain.ComputeModifier(character.Abilities, competency.Grade, bonus)

	die, err := draw()
	if err != nil {
		return nil, err
	}

	now := s.now()
	dc := recipe.DC()
	total := die + modifier.Total
	record := domain.RollRecord{
		SessionID: session.ID,
		Die:       die,
		Modifier:  modifier.Total,
		Total:     total,
		DC:        dc,
		Success:   total >= dc,
		RolledAt:  now,
	}

	previousGrade := competency.Grade
	var promoted bool
	var msg string

	if recipe.IsMagical {
		if record.Success {
			session.AccumulatedSuccesses++
			_, promoted = competency.RecordSuccess()
		}
		if session.ThresholdMet(recipe) {
			character.Spend(cost)
			record.GoldSpent = cost.Gold
			record.DaysSpent = cost.Days
			msg = fmt.Sprintf(MsgMagicalCompletedFmt, recipe.OutputItemName, cost.Days, cost.Gold)
		} else if record.Success {
			msg = fmt.Sprintf(MsgMagicalSuccessFmt, session.AccumulatedSuccesses, session.RequiredSuccesses)
		} else {
			msg = fmt.Sprintf(MsgMagicalFailureFmt, session.AccumulatedSuccesses, session.RequiredSuccesses)
		}
	} else {
		// Labor is paid at the grade held when the day started, even if this success promotes
		info := previousGrade.Info()
		character.Spend(cost)
		record.GoldSpent = cost.Gold
		record.DaysSpent = cost.Days
		if record.Success {
			gained := info.GoldGain
			if remaining := recipe.GoldThreshold() - session.AccumulatedGold; gained > remaining {
				gained = remaining
			}
			session.AccumulatedGold += gained
			record.GoldGained = gained
			_, promoted = competency.RecordSuccess()
		}
		switch {
		case session.ThresholdMet(recipe):
			msg = fmt.Sprintf(MsgMundaneCompletedFmt, recipe.OutputItemName)
		case record.Success:
			msg = fmt.Sprintf(MsgMundaneSuccessFmt, record.GoldGained, session.AccumulatedGold, recipe.GoldThreshold())
		default:
			msg = fmt.Sprintf(MsgMundaneFailureFmt, session.AccumulatedGold, recipe.GoldThreshold())
		}
	}

	session.DaysWorked++
	completed := session.ThresholdMet(recipe)
	if completed {
		session.Complete(now)
		if err := tx.CreditInventory(ctx, characterID, recipe.OutputItemID, recipe.OutputQuantity); err != nil {
			return nil, fmt.Errorf(ErrMsgCreditInventoryFailed, err)
		}
	}

	if record.GoldSpent > 0 || record.DaysSpent > 0 {
		if err := tx.UpdateCharacterEconomy(ctx, characterID, character.Economy()); err != nil {
			return nil, fmt.Errorf(ErrMsgUpdateEconomyFailed, err)
		}
	}
	if record.Success {
		if err := tx.UpdateCompetency(ctx, competency); err != nil {
			return nil, fmt.Errorf(ErrMsgUpdateCompetencyFail, err)
		}
	}
	if err := tx.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateSessionFailed, err)
	}
	if err := tx.InsertRollRecord(ctx, &record); err != nil {
		return nil, fmt.Errorf(ErrMsgInsertRollFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	out := &RollOutcome{
		Roll:      record,
		Modifier:  modifier,
		Session:   session,
		Economy:   character.Economy(),
		Completed: completed,
		Message:   msg,
	}
	if completed {
		out.OutputItemName = recipe.OutputItemName
		out.OutputQuantity = recipe.OutputQuantity
	}
	if promoted {
		out.Promotion = &domain.PromotionNotice{
			Tool:          competency.Tool,
			PreviousGrade: previousGrade,
			NewGrade:      competency.Grade,
			Message:       fmt.Sprintf(MsgPromotionFmt, competency.Grade, competency.Tool),
		}
	}

	return &rollState{outcome: out, character: character, recipe: recipe, competency: competency}, nil
}

// PauseSession parks an in-progress session. Rolls are rejected until it is resumed.
func (s *service) PauseSession(ctx context.Context, characterID int, sessionID uuid.UUID) (*domain.ProgressSession, error) {
	return s.transition(ctx, OpPauseSession, characterID, sessionID, domain.SessionInProgress, domain.SessionPaused)
}

// ResumeSession returns a paused session to in_progress
func (s *service) ResumeSession(ctx context.Context, characterID int, sessionID uuid.UUID) (*domain.ProgressSession, error) {
	return s.transition(ctx, OpResumeSession, characterID, sessionID, domain.SessionPaused, domain.SessionInProgress)
}

func (s *service) transition(ctx context.Context, op string, characterID int, sessionID uuid.UUID, from, to domain.SessionState) (*domain.ProgressSession, error) {
	unlock := s.lockManager.Lock(sessionID.String())
	defer unlock()

	session, err := database.RetryTx(ctx, s.retryPolicy(op), func(ctx context.Context) (*domain.ProgressSession, error) {
		tx, err := s.repo.BeginTx(ctx)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
		}
		defer repository.SafeRollback(ctx, tx)

		session, err := tx.GetSessionForUpdate(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgGetSessionFailed, err)
		}
		if session.CharacterID != characterID {
			return nil, domain.ErrSessionNotFound
		}
		if session.IsCompleted() {
			return nil, domain.ErrSessionCompleted
		}
		if session.State != from {
			return nil, fmt.Errorf(ErrMsgSessionStateFmt, domain.ErrSessionNotActive, session.State)
		}

		session.State = to
		if err := tx.UpdateSession(ctx, session); err != nil {
			return nil, fmt.Errorf(ErrMsgUpdateSessionFailed, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
		}
		return session, nil
	})
	if err != nil {
		logFailure(ctx, LogMsgTransactionFailed, err, "operation", op, "session_id", sessionID)
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgSessionStateChanged, "session_id", sessionID, "from", from, "to", to)
	return session, nil
}

var rejections = []error{
	domain.ErrCharacterNotFound,
	domain.ErrRecipeNotFound,
	domain.ErrSessionNotFound,
	domain.ErrInsufficientIngredient,
	domain.ErrMissingRareMaterial,
	domain.ErrMissingTool,
	domain.ErrGradeTooLow,
	domain.ErrRarityLocked,
	domain.ErrRecipeLocked,
	domain.ErrSessionCompleted,
	domain.ErrSessionNotActive,
	domain.ErrInsufficientGold,
	domain.ErrInsufficientDowntime,
}

// IsRejection reports whether err is a game rule rejection rather than an infrastructure failure
func IsRejection(err error) bool {
	for _, target := range rejections {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func logFailure(ctx context.Context, msg string, err error, args ...any) {
	log := logger.FromContext(ctx)
	args = append(args, "error", err)
	if IsRejection(err) {
		log.Warn(msg, args...)
		return
	}
	log.Error(msg, args...)
}
