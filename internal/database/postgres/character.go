package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/DowntimeForge/internal/domain"
)

const selectCharacter = `
	SELECT character_id, name, level, gold, downtime,
	       strength, dexterity, constitution, intelligence, wisdom, charisma, created_at
	FROM characters
	WHERE character_id = $1`

const selectInventory = `
	SELECT il.character_id, il.item_id, i.display_name, il.quantity
	FROM inventory_lines il
	JOIN items i ON i.item_id = il.item_id
	WHERE il.character_id = $1
	ORDER BY il.item_id`

const selectCompetency = `
	SELECT competency_id, character_id, tool, grade, successes, created_at
	FROM tool_competencies`

// characterStore holds the character, inventory and competency queries shared by
// every repository. forUpdate variants only make sense when db is a transaction.
type characterStore struct {
	db querier
}

func (s *characterStore) getCharacter(ctx context.Context, characterID int, forUpdate bool) (*domain.Character, error) {
	query := selectCharacter
	if forUpdate {
		query += " FOR UPDATE"
	}
	var c domain.Character
	err := s.db.QueryRow(ctx, query, characterID).Scan(
		&c.ID, &c.Name, &c.Level, &c.Gold, &c.Downtime,
		&c.Abilities.Strength, &c.Abilities.Dexterity, &c.Abilities.Constitution,
		&c.Abilities.Intelligence, &c.Abilities.Wisdom, &c.Abilities.Charisma, &c.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err, domain.ErrCharacterNotFound, ErrMsgGetCharacterFailed)
	}
	return &c, nil
}

func (s *characterStore) getInventory(ctx context.Context, characterID int, forUpdate bool) (domain.Inventory, error) {
	query := selectInventory
	if forUpdate {
		query += " FOR UPDATE OF il"
	}
	rows, err := s.db.Query(ctx, query, characterID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetInventoryFailed, err)
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.InventoryLine, error) {
		var l domain.InventoryLine
		err := row.Scan(&l.CharacterID, &l.ItemID, &l.ItemName, &l.Quantity)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetInventoryFailed, err)
	}
	return domain.NewInventory(lines), nil
}

func scanCompetency(row pgx.Row) (*domain.ToolCompetency, error) {
	var c domain.ToolCompetency
	var grade string
	if err := row.Scan(&c.ID, &c.CharacterID, &c.Tool, &grade, &c.Successes, &c.CreatedAt); err != nil {
		return nil, err
	}
	g, err := parseGrade(grade)
	if err != nil {
		return nil, err
	}
	c.Grade = g
	return &c, nil
}

// getCompetency returns nil without error when the character never used the tool
func (s *characterStore) getCompetency(ctx context.Context, characterID int, tool string) (*domain.ToolCompetency, error) {
	c, err := scanCompetency(s.db.QueryRow(ctx, selectCompetency+` WHERE character_id = $1 AND tool = $2`, characterID, tool))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetCompetencyFailed, err)
	}
	return c, nil
}

func (s *characterStore) getCompetencies(ctx context.Context, characterID int) ([]domain.ToolCompetency, error) {
	rows, err := s.db.Query(ctx, selectCompetency+` WHERE character_id = $1 ORDER BY competency_id`, characterID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetCompetencyFailed, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ToolCompetency, error) {
		c, err := scanCompetency(row)
		if err != nil {
			return domain.ToolCompetency{}, err
		}
		return *c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetCompetencyFailed, err)
	}
	return out, nil
}

func (s *characterStore) isRecipeUnlocked(ctx context.Context, characterID, recipeID int) (bool, error) {
	var unlocked bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM recipe_unlocks WHERE character_id = $1 AND recipe_id = $2)`,
		characterID, recipeID).Scan(&unlocked)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgGetUnlocksFailed, err)
	}
	return unlocked, nil
}

func (s *characterStore) getProficiencyBonus(ctx context.Context, level int) (int, bool, error) {
	var bonus int
	err := s.db.QueryRow(ctx, `SELECT bonus FROM proficiency_bonuses WHERE level = $1`, level).Scan(&bonus)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", ErrMsgGetBonusFailed, err)
	}
	return bonus, true, nil
}

// characterTx implements repository.CharacterTx
type characterTx struct {
	txEnd
	characterStore
}

func newCharacterTx(tx pgx.Tx) characterTx {
	return characterTx{txEnd: txEnd{tx: tx}, characterStore: characterStore{db: tx}}
}

// GetCharacterForUpdate locks the character row
func (t *characterTx) GetCharacterForUpdate(ctx context.Context, characterID int) (*domain.Character, error) {
	return t.getCharacter(ctx, characterID, true)
}

// UpdateCharacterEconomy writes gold and downtime
func (t *characterTx) UpdateCharacterEconomy(ctx context.Context, characterID int, economy domain.Economy) error {
	tag, err := t.db.Exec(ctx,
		`UPDATE characters SET gold = $2, downtime = $3 WHERE character_id = $1`,
		characterID, economy.Gold, economy.Downtime)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpdateEconomyFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCharacterNotFound
	}
	return nil
}

// GetInventoryForUpdate locks every inventory line of the character
func (t *characterTx) GetInventoryForUpdate(ctx context.Context, characterID int) (domain.Inventory, error) {
	return t.getInventory(ctx, characterID, true)
}

// DeductInventory removes quantity, deleting the line when it reaches zero
func (t *characterTx) DeductInventory(ctx context.Context, characterID, itemID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: deduct quantity must be positive", domain.ErrInvalidInput)
	}
	tag, err := t.db.Exec(ctx,
		`DELETE FROM inventory_lines WHERE character_id = $1 AND item_id = $2 AND quantity = $3`,
		characterID, itemID, quantity)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgDeductFailed, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	tag, err = t.db.Exec(ctx,
		`UPDATE inventory_lines SET quantity = quantity - $3
		 WHERE character_id = $1 AND item_id = $2 AND quantity > $3`,
		characterID, itemID, quantity)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgDeductFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: item %d | %w", ErrMsgDeductFailed, itemID, domain.ErrInsufficientIngredient)
	}
	return nil
}

// CreditInventory adds quantity, merging into an existing line
func (t *characterTx) CreditInventory(ctx context.Context, characterID, itemID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: credit quantity must be positive", domain.ErrInvalidInput)
	}
	_, err := t.db.Exec(ctx, `
		INSERT INTO inventory_lines (character_id, item_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (character_id, item_id)
		DO UPDATE SET quantity = inventory_lines.quantity + EXCLUDED.quantity`,
		characterID, itemID, quantity)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCreditFailed, err)
	}
	return nil
}

// GetCompetency reads a competency without locking it
func (t *characterTx) GetCompetency(ctx context.Context, characterID int, tool string) (*domain.ToolCompetency, error) {
	return t.getCompetency(ctx, characterID, tool)
}

// IsRecipeUnlocked reports whether research unlocked the recipe for the character
func (t *characterTx) IsRecipeUnlocked(ctx context.Context, characterID, recipeID int) (bool, error) {
	return t.isRecipeUnlocked(ctx, characterID, recipeID)
}
