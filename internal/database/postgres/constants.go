package postgres

// Error messages
const (
	ErrMsgBeginTxFailed        = "failed to begin transaction"
	ErrMsgCommitFailed         = "failed to commit transaction"
	ErrMsgCorruptRow           = "corrupt row"
	ErrMsgGetCharacterFailed   = "failed to get character"
	ErrMsgUpdateEconomyFailed  = "failed to update character economy"
	ErrMsgGetInventoryFailed   = "failed to get inventory"
	ErrMsgDeductFailed         = "failed to deduct inventory"
	ErrMsgCreditFailed         = "failed to credit inventory"
	ErrMsgGetRecipeFailed      = "failed to get recipe"
	ErrMsgGetIngredientsFailed = "failed to get recipe ingredients"
	ErrMsgGetCompetencyFailed  = "failed to get competency"
	ErrMsgCreateCompetency     = "failed to create competency"
	ErrMsgUpdateCompetency     = "failed to update competency"
	ErrMsgGetSessionFailed     = "failed to get crafting session"
	ErrMsgCreateSessionFailed  = "failed to create crafting session"
	ErrMsgUpdateSessionFailed  = "failed to update crafting session"
	ErrMsgInsertRollFailed     = "failed to insert roll record"
	ErrMsgGetRollsFailed       = "failed to get roll history"
	ErrMsgGetBonusFailed       = "failed to get proficiency bonus"
	ErrMsgGetUnlocksFailed     = "failed to get recipe unlocks"
	ErrMsgUnlockFailed         = "failed to unlock recipe"
	ErrMsgGetItemFailed        = "failed to get item"
	ErrMsgUpsertItemFailed     = "failed to upsert item"
	ErrMsgGetResearchFailed    = "failed to get research"
	ErrMsgCreateResearchFailed = "failed to create research"
	ErrMsgUpdateResearchFailed = "failed to update research"
	ErrMsgInsertRecipeFailed   = "failed to insert recipe"
	ErrMsgUpdateRecipeFailed   = "failed to update recipe"
	ErrMsgSyncMetadataFailed   = "failed to access sync metadata"
)

// Log messages
const (
	LogMsgRollbackFailed = "Failed to rollback transaction"
)
