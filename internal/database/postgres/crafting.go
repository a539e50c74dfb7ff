package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DowntimeForge/internal/domain"
	"github.com/osse101/DowntimeForge/internal/repository"
)

const selectSession = `
	SELECT session_id, character_id, recipe_id, competency_id, accumulated_gold,
	       accumulated_successes, required_successes, days_worked, state, started_at, completed_at
	FROM progress_sessions`

// CraftingRepository implements the crafting repository for PostgreSQL
type CraftingRepository struct {
	db *pgxpool.Pool
	characterStore
	recipeStore
}

// NewCraftingRepository creates a new CraftingRepository
func NewCraftingRepository(db *pgxpool.Pool) *CraftingRepository {
	return &CraftingRepository{
		db:             db,
		characterStore: characterStore{db: db},
		recipeStore:    recipeStore{db: db},
	}
}

// CraftingTx implements repository.CraftingTx
type CraftingTx struct {
	characterTx
}

// BeginTx starts a new transaction
func (r *CraftingRepository) BeginTx(ctx context.Context) (repository.CraftingTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	return &CraftingTx{characterTx: newCharacterTx(tx)}, nil
}

// GetCharacter reads a character without locking
func (r *CraftingRepository) GetCharacter(ctx context.Context, characterID int) (*domain.Character, error) {
	return r.getCharacter(ctx, characterID, false)
}

// GetRecipe returns a recipe with its ingredients
func (r *CraftingRepository) GetRecipe(ctx context.Context, recipeID int) (*domain.Recipe, error) {
	return r.getRecipe(ctx, recipeID)
}

// GetAllRecipes returns every recipe ordered by id
func (r *CraftingRepository) GetAllRecipes(ctx context.Context) ([]domain.Recipe, error) {
	return r.getAllRecipes(ctx)
}

// GetInventory reads the character's inventory without locking
func (r *CraftingRepository) GetInventory(ctx context.Context, characterID int) (domain.Inventory, error) {
	return r.getInventory(ctx, characterID, false)
}

// GetCompetencies returns every tool competency of the character
func (r *CraftingRepository) GetCompetencies(ctx context.Context, characterID int) ([]domain.ToolCompetency, error) {
	return r.getCompetencies(ctx, characterID)
}

// GetUnlockedRecipeIDs returns the ids of recipes research unlocked for the character
func (r *CraftingRepository) GetUnlockedRecipeIDs(ctx context.Context, characterID int) ([]int, error) {
	rows, err := r.db.Query(ctx, `SELECT recipe_id FROM recipe_unlocks WHERE character_id = $1 ORDER BY recipe_id`, characterID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetUnlocksFailed, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetUnlocksFailed, err)
	}
	return ids, nil
}

// GetProficiencyBonus looks up the level's bonus in the reference table
func (r *CraftingRepository) GetProficiencyBonus(ctx context.Context, level int) (int, bool, error) {
	return r.getProficiencyBonus(ctx, level)
}

func scanSession(row pgx.Row) (*domain.ProgressSession, error) {
	var s domain.ProgressSession
	var state string
	err := row.Scan(&s.ID, &s.CharacterID, &s.RecipeID, &s.CompetencyID, &s.AccumulatedGold,
		&s.AccumulatedSuccesses, &s.RequiredSuccesses, &s.DaysWorked, &state, &s.StartedAt, &s.CompletedAt)
	if err != nil {
		return nil, err
	}
	s.State = domain.SessionState(state)
	if !s.State.Valid() {
		return nil, fmt.Errorf("%s: session state %q", ErrMsgCorruptRow, state)
	}
	return &s, nil
}

// GetSession reads a session without locking
func (r *CraftingRepository) GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.ProgressSession, error) {
	s, err := scanSession(r.db.QueryRow(ctx, selectSession+` WHERE session_id = $1`, sessionID))
	if err != nil {
		return nil, notFound(err, domain.ErrSessionNotFound, ErrMsgGetSessionFailed)
	}
	return s, nil
}

// GetSessions lists a character's sessions, optionally filtered by state.
// In-progress sessions sort by start, completed ones by completion, newest first.
func (r *CraftingRepository) GetSessions(ctx context.Context, characterID int, state domain.SessionState) ([]domain.ProgressSession, error) {
	query := selectSession + ` WHERE character_id = $1 AND ($2::text = '' OR state = $2::text)
		ORDER BY COALESCE(completed_at, started_at) DESC, started_at DESC`
	rows, err := r.db.Query(ctx, query, characterID, string(state))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetSessionFailed, err)
	}
	sessions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ProgressSession, error) {
		s, err := scanSession(row)
		if err != nil {
			return domain.ProgressSession{}, err
		}
		return *s, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetSessionFailed, err)
	}
	return sessions, nil
}

// GetRollHistory returns a session's rolls, newest first
func (r *CraftingRepository) GetRollHistory(ctx context.Context, sessionID uuid.UUID) ([]domain.RollRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT roll_id, session_id, die, modifier, total, dc, success, gold_gained, gold_spent, days_spent, rolled_at
		FROM roll_records
		WHERE session_id = $1
		ORDER BY rolled_at DESC, roll_id DESC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetRollsFailed, err)
	}
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RollRecord, error) {
		var rec domain.RollRecord
		err := row.Scan(&rec.ID, &rec.SessionID, &rec.Die, &rec.Modifier, &rec.Total, &rec.DC,
			&rec.Success, &rec.GoldGained, &rec.GoldSpent, &rec.DaysSpent, &rec.RolledAt)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetRollsFailed, err)
	}
	return records, nil
}

// GetOrCreateCompetency inserts a Novice competency when absent, then locks the row.
// The bool reports whether this call created it.
func (t *CraftingTx) GetOrCreateCompetency(ctx context.Context, characterID int, tool string) (*domain.ToolCompetency, bool, error) {
	created := true
	var id int
	err := t.db.QueryRow(ctx, `
		INSERT INTO tool_competencies (character_id, tool, grade, successes)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (character_id, tool) DO NOTHING
		RETURNING competency_id`,
		characterID, tool, domain.GradeNameNovice).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		created = false
	} else if err != nil {
		return nil, false, fmt.Errorf("%s: %w", ErrMsgCreateCompetency, err)
	}

	c, err := scanCompetency(t.db.QueryRow(ctx,
		selectCompetency+` WHERE character_id = $1 AND tool = $2 FOR UPDATE`, characterID, tool))
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", ErrMsgGetCompetencyFailed, err)
	}
	return c, created, nil
}

// GetCompetencyForUpdate locks a competency row by id
func (t *CraftingTx) GetCompetencyForUpdate(ctx context.Context, competencyID int) (*domain.ToolCompetency, error) {
	c, err := scanCompetency(t.db.QueryRow(ctx, selectCompetency+` WHERE competency_id = $1 FOR UPDATE`, competencyID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetCompetencyFailed, err)
	}
	return c, nil
}

// UpdateCompetency writes grade and successes
func (t *CraftingTx) UpdateCompetency(ctx context.Context, competency *domain.ToolCompetency) error {
	_, err := t.db.Exec(ctx,
		`UPDATE tool_competencies SET grade = $2, successes = $3 WHERE competency_id = $1`,
		competency.ID, competency.Grade.String(), competency.Successes)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpdateCompetency, err)
	}
	return nil
}

// CreateSession inserts a new session
func (t *CraftingTx) CreateSession(ctx context.Context, s *domain.ProgressSession) error {
	_, err := t.db.Exec(ctx, `
		INSERT INTO progress_sessions (session_id, character_id, recipe_id, competency_id, accumulated_gold,
			accumulated_successes, required_successes, days_worked, state, started_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		s.ID, s.CharacterID, s.RecipeID, s.CompetencyID, s.AccumulatedGold,
		s.AccumulatedSuccesses, s.RequiredSuccesses, s.DaysWorked, string(s.State), s.StartedAt, s.CompletedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCreateSessionFailed, err)
	}
	return nil
}

// GetSessionForUpdate locks the session row
func (t *CraftingTx) GetSessionForUpdate(ctx context.Context, sessionID uuid.UUID) (*domain.ProgressSession, error) {
	s, err := scanSession(t.db.QueryRow(ctx, selectSession+` WHERE session_id = $1 FOR UPDATE`, sessionID))
	if err != nil {
		return nil, notFound(err, domain.ErrSessionNotFound, ErrMsgGetSessionFailed)
	}
	return s, nil
}

// UpdateSession writes the mutable progress fields
func (t *CraftingTx) UpdateSession(ctx context.Context, s *domain.ProgressSession) error {
	tag, err := t.db.Exec(ctx, `
		UPDATE progress_sessions
		SET accumulated_gold = $2, accumulated_successes = $3, days_worked = $4, state = $5, completed_at = $6
		WHERE session_id = $1`,
		s.ID, s.AccumulatedGold, s.AccumulatedSuccesses, s.DaysWorked, string(s.State), s.CompletedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpdateSessionFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// InsertRollRecord appends a roll to the session history and sets its id
func (t *CraftingTx) InsertRollRecord(ctx context.Context, rec *domain.RollRecord) error {
	err := t.db.QueryRow(ctx, `
		INSERT INTO roll_records (session_id, die, modifier, total, dc, success, gold_gained, gold_spent, days_spent, rolled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING roll_id`,
		rec.SessionID, rec.Die, rec.Modifier, rec.Total, rec.DC, rec.Success,
		rec.GoldGained, rec.GoldSpent, rec.DaysSpent, rec.RolledAt).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInsertRollFailed, err)
	}
	return nil
}
