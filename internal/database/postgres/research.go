package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DowntimeForge/internal/domain"
	"github.com/osse101/DowntimeForge/internal/repository"
)

const selectResearch = `
	SELECT research_id, character_id, recipe_id, item_id, source, skill, dc, successes, required_successes,
	       days_worked, gold_spent, state, started_at, completed_at
	FROM researches`

const selectItem = `
	SELECT item_id, internal_name, display_name, item_description, is_magical, rarity, investigable, created_at
	FROM items`

const pgUniqueViolation = "23505"

// ResearchRepository implements the research repository for PostgreSQL
type ResearchRepository struct {
	db *pgxpool.Pool
	characterStore
	recipeStore
}

// NewResearchRepository creates a new ResearchRepository
func NewResearchRepository(db *pgxpool.Pool) *ResearchRepository {
	return &ResearchRepository{
		db:             db,
		characterStore: characterStore{db: db},
		recipeStore:    recipeStore{db: db},
	}
}

// ResearchTx implements repository.ResearchTx
type ResearchTx struct {
	characterTx
}

// BeginTx starts a new transaction
func (r *ResearchRepository) BeginTx(ctx context.Context) (repository.ResearchTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	return &ResearchTx{characterTx: newCharacterTx(tx)}, nil
}

// GetProficiencyBonus looks up the level's bonus in the reference table
func (r *ResearchRepository) GetProficiencyBonus(ctx context.Context, level int) (int, bool, error) {
	return r.getProficiencyBonus(ctx, level)
}

// GetRecipe returns a recipe with its ingredients
func (r *ResearchRepository) GetRecipe(ctx context.Context, recipeID int) (*domain.Recipe, error) {
	return r.getRecipe(ctx, recipeID)
}

func scanItem(row pgx.Row) (*domain.Item, error) {
	var item domain.Item
	var rarity string
	err := row.Scan(&item.ID, &item.InternalName, &item.DisplayName, &item.Description,
		&item.IsMagical, &rarity, &item.Investigable, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	if item.Rarity, err = parseRarity(rarity); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItem returns a catalog item
func (r *ResearchRepository) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	item, err := scanItem(r.db.QueryRow(ctx, selectItem+` WHERE item_id = $1`, itemID))
	if err != nil {
		return nil, notFound(err, domain.ErrItemNotFound, ErrMsgGetItemFailed)
	}
	return item, nil
}

func scanResearch(row pgx.Row) (*domain.Research, error) {
	var res domain.Research
	var source, state string
	err := row.Scan(&res.ID, &res.CharacterID, &res.RecipeID, &res.ItemID, &source, &res.Skill, &res.DC,
		&res.Successes, &res.RequiredSuccesses, &res.DaysWorked, &res.GoldSpent, &state,
		&res.StartedAt, &res.CompletedAt)
	if err != nil {
		return nil, err
	}
	res.Source = domain.ResearchSource(source)
	res.State = domain.ResearchState(state)
	return &res, nil
}

// GetResearch reads a research project without locking
func (r *ResearchRepository) GetResearch(ctx context.Context, researchID uuid.UUID) (*domain.Research, error) {
	res, err := scanResearch(r.db.QueryRow(ctx, selectResearch+` WHERE research_id = $1`, researchID))
	if err != nil {
		return nil, notFound(err, domain.ErrResearchNotFound, ErrMsgGetResearchFailed)
	}
	return res, nil
}

// GetResearches lists a character's research, newest first
func (r *ResearchRepository) GetResearches(ctx context.Context, characterID int) ([]domain.Research, error) {
	rows, err := r.db.Query(ctx, selectResearch+` WHERE character_id = $1 ORDER BY started_at DESC`, characterID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetResearchFailed, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Research, error) {
		res, err := scanResearch(row)
		if err != nil {
			return domain.Research{}, err
		}
		return *res, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetResearchFailed, err)
	}
	return out, nil
}

// GetResearchRolls returns a research project's rolls, newest first
func (r *ResearchRepository) GetResearchRolls(ctx context.Context, researchID uuid.UUID) ([]domain.ResearchRoll, error) {
	rows, err := r.db.Query(ctx, `
		SELECT roll_id, research_id, skill, die, modifier, total, dc, success, gold_spent, days_spent, rolled_at
		FROM research_rolls
		WHERE research_id = $1
		ORDER BY rolled_at DESC, roll_id DESC`, researchID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetRollsFailed, err)
	}
	rolls, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ResearchRoll, error) {
		var roll domain.ResearchRoll
		err := row.Scan(&roll.ID, &roll.ResearchID, &roll.Skill, &roll.Die, &roll.Modifier, &roll.Total,
			&roll.DC, &roll.Success, &roll.GoldSpent, &roll.DaysSpent, &roll.RolledAt)
		return roll, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetRollsFailed, err)
	}
	return rolls, nil
}

// GetUnlockedRecipes lists recipes research unlocked for the character
func (r *ResearchRepository) GetUnlockedRecipes(ctx context.Context, characterID int) ([]domain.RecipeUnlock, error) {
	rows, err := r.db.Query(ctx, `
		SELECT character_id, recipe_id, unlocked_at
		FROM recipe_unlocks
		WHERE character_id = $1
		ORDER BY unlocked_at DESC`, characterID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetUnlocksFailed, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RecipeUnlock, error) {
		var u domain.RecipeUnlock
		err := row.Scan(&u.CharacterID, &u.RecipeID, &u.UnlockedAt)
		return u, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetUnlocksFailed, err)
	}
	return out, nil
}

// HasActiveResearch reports whether an in-progress research exists for the recipe
func (t *ResearchTx) HasActiveResearch(ctx context.Context, characterID, recipeID int) (bool, error) {
	var active bool
	err := t.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM researches
			WHERE character_id = $1 AND recipe_id = $2 AND state = $3
		)`, characterID, recipeID, string(domain.ResearchInProgress)).Scan(&active)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgGetResearchFailed, err)
	}
	return active, nil
}

// CreateResearch inserts a research project. The partial unique index rejects a second active one.
func (t *ResearchTx) CreateResearch(ctx context.Context, res *domain.Research) error {
	_, err := t.db.Exec(ctx, `
		INSERT INTO researches (research_id, character_id, recipe_id, item_id, source, skill, dc, successes,
			required_successes, days_worked, gold_spent, state, started_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		res.ID, res.CharacterID, res.RecipeID, res.ItemID, string(res.Source), res.Skill, res.DC, res.Successes,
		res.RequiredSuccesses, res.DaysWorked, res.GoldSpent, string(res.State), res.StartedAt, res.CompletedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrResearchActive
		}
		return fmt.Errorf("%s: %w", ErrMsgCreateResearchFailed, err)
	}
	return nil
}

// GetResearchForUpdate locks a research row
func (t *ResearchTx) GetResearchForUpdate(ctx context.Context, researchID uuid.UUID) (*domain.Research, error) {
	res, err := scanResearch(t.db.QueryRow(ctx, selectResearch+` WHERE research_id = $1 FOR UPDATE`, researchID))
	if err != nil {
		return nil, notFound(err, domain.ErrResearchNotFound, ErrMsgGetResearchFailed)
	}
	return res, nil
}

// UpdateResearch writes research progress
func (t *ResearchTx) UpdateResearch(ctx context.Context, res *domain.Research) error {
	_, err := t.db.Exec(ctx, `
		UPDATE researches
		SET successes = $2, days_worked = $3, gold_spent = $4, state = $5, completed_at = $6
		WHERE research_id = $1`,
		res.ID, res.Successes, res.DaysWorked, res.GoldSpent, string(res.State), res.CompletedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpdateResearchFailed, err)
	}
	return nil
}

// InsertResearchRoll appends a roll to the research history and sets its id
func (t *ResearchTx) InsertResearchRoll(ctx context.Context, roll *domain.ResearchRoll) error {
	err := t.db.QueryRow(ctx, `
		INSERT INTO research_rolls (research_id, skill, die, modifier, total, dc, success, gold_spent, days_spent, rolled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING roll_id`,
		roll.ResearchID, roll.Skill, roll.Die, roll.Modifier, roll.Total, roll.DC, roll.Success,
		roll.GoldSpent, roll.DaysSpent, roll.RolledAt).Scan(&roll.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInsertRollFailed, err)
	}
	return nil
}

// UnlockRecipe records the unlock, ignoring a repeated unlock
func (t *ResearchTx) UnlockRecipe(ctx context.Context, unlock *domain.RecipeUnlock) error {
	_, err := t.db.Exec(ctx, `
		INSERT INTO recipe_unlocks (character_id, recipe_id, unlocked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (character_id, recipe_id) DO NOTHING`,
		unlock.CharacterID, unlock.RecipeID, unlock.UnlockedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUnlockFailed, err)
	}
	return nil
}
