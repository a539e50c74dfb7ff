package repository

import (
	"context"

	"github.com/osse101/DowntimeForge/internal/domain"
	"github.com/osse101/DowntimeForge/internal/logger"
)

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// SafeRollback is deferred after BeginTx. Once Commit has run the rollback reports
// domain.ErrMsgTxClosed, which is expected and not logged.
func SafeRollback(ctx context.Context, tx Tx) {
	err := tx.Rollback(ctx)
	if err == nil || err.Error() == domain.ErrMsgTxClosed {
		return
	}
	logger.FromContext(ctx).Error(LogMsgRollbackFailed, "error", err)
}

const LogMsgRollbackFailed = "Failed to rollback transaction"

// CharacterTx holds the row-locked character and inventory operations shared by
// every transaction that spends gold, downtime or items.
type CharacterTx interface {
	Tx
	// GetCharacterForUpdate locks the character's economy row until the transaction ends
	GetCharacterForUpdate(ctx context.Context, characterID int) (*domain.Character, error)
	UpdateCharacterEconomy(ctx context.Context, characterID int, economy domain.Economy) error
	// GetInventoryForUpdate locks every inventory line of the character
	GetInventoryForUpdate(ctx context.Context, characterID int) (domain.Inventory, error)
	// DeductInventory removes quantity from a line, deleting it when it reaches zero
	DeductInventory(ctx context.Context, characterID, itemID, quantity int) error
	// CreditInventory adds quantity to a line, creating it when absent
	CreditInventory(ctx context.Context, characterID, itemID, quantity int) error
	GetCompetency(ctx context.Context, characterID int, tool string) (*domain.ToolCompetency, error)
	IsRecipeUnlocked(ctx context.Context, characterID, recipeID int) (bool, error)
}
