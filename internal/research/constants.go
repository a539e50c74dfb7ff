package research

// Transaction operation labels, used for retry metrics
const (
	OpStartResearch = "start_research"
	OpRollResearch  = "roll_research"
)

// LockKeyPrefix namespaces research ids in the shared lock manager
const LockKeyPrefix = "research:"

// ModifierSourceTool marks a field research modifier taken from the tool competency
const ModifierSourceTool = "tool"

// ==================== Error Messages ====================

const (
	ErrMsgGetRecipeFailed       = "failed to get recipe: %w"
	ErrMsgGetItemFailed         = "failed to get item: %w"
	ErrMsgGetCharacterFailed    = "failed to get character: %w"
	ErrMsgGetInventoryFailed    = "failed to get inventory: %w"
	ErrMsgGetCompetencyFailed   = "failed to get tool competency: %w"
	ErrMsgGetResearchFailed     = "failed to get research: %w"
	ErrMsgGetResearchesFailed   = "failed to get research projects: %w"
	ErrMsgGetUnlocksFailed      = "failed to get unlocked recipes: %w"
	ErrMsgCheckUnlockFailed     = "failed to check recipe unlock: %w"
	ErrMsgCheckActiveFailed     = "failed to check active research: %w"
	ErrMsgBeginTxFailed         = "failed to begin transaction: %w"
	ErrMsgCommitTxFailed        = "failed to commit transaction: %w"
	ErrMsgCreateResearchFailed  = "failed to create research: %w"
	ErrMsgUpdateResearchFailed  = "failed to update research: %w"
	ErrMsgUpdateEconomyFailed   = "failed to update character economy: %w"
	ErrMsgUnlockRecipeFailed    = "failed to unlock recipe: %w"
	ErrMsgRollDiceFailed        = "failed to roll dice: %w"
	ErrMsgInsertRollFailed      = "failed to record research roll: %w"
	ErrMsgGetRollsFailed        = "failed to get research rolls: %w"

	ErrMsgItemNotInvestigableFmt = "%w: %s"
	ErrMsgItemNotInRecipeFmt     = "%w: %s is not used by %s"
	ErrMsgNoCompetencyFmt        = "%w: field research needs experience with %s"
)

// ==================== Player Messages ====================

const (
	MsgResearchStartedFmt = "Started researching %s by studying %s. DC %d, %d successes needed."
	MsgResearchSuccessFmt = "Success! Research progress: %d/%d"
	MsgResearchFailureFmt = "Failure. Research progress: %d/%d"
	MsgRecipeUnlockedFmt  = "Research complete! You can now craft %s."
)

// ==================== Log Messages ====================

const (
	LogMsgStartResearchCalled = "StartResearch called"
	LogMsgResearchStarted     = "Research started"
	LogMsgStartRejected       = "Research start rejected"
	LogMsgRollResearchCalled  = "RollResearch called"
	LogMsgResearchRolled      = "Research roll resolved"
	LogMsgRollRejected        = "Research roll rejected"
	LogMsgRecipeUnlocked      = "Recipe unlocked by research"
)
