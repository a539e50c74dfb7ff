package crafting

import "time"

// ==================== Defaults ====================

const (
	// DefaultProficiencyCacheTTL bounds how long a level's proficiency bonus is reused
	DefaultProficiencyCacheTTL = 10 * time.Minute

	// ProficiencyCacheSize covers every level of the reference table
	ProficiencyCacheSize = 32

	// DefaultRecipeCacheTTL bounds how long a recipe definition is reused between syncs
	DefaultRecipeCacheTTL = 5 * time.Minute

	// RecipeCacheSize is the number of recipe definitions kept in memory
	RecipeCacheSize = 512
)

// Transaction operation labels, used for retry metrics
const (
	OpStartCrafting = "start_crafting"
	OpSubmitRoll    = "submit_roll"
	OpPauseSession  = "pause_session"
	OpResumeSession = "resume_session"
)

// ==================== Configuration ====================

// Default catalog locations, relative to the repository root
const (
	RecipesConfigPath = "configs/recipes.json"
	RecipesSchemaPath = "configs/schemas/recipes.schema.json"
)

// Recipe sync metadata name stored in database
const MetadataNameRecipes = "recipes.json"

// Orphan prefixes name catalog rows that exist in the database but not in config
const (
	OrphanPrefixRecipe = "recipe:"
	OrphanPrefixItem   = "item:"
)

// ==================== Error Messages ====================

// Database operation error messages
const (
	ErrMsgGetCharacterFailed    = "failed to get character: %w"
	ErrMsgGetRecipeFailed       = "failed to get recipe: %w"
	ErrMsgGetAllRecipesFailed   = "failed to get all recipes: %w"
	ErrMsgGetInventoryFailed    = "failed to get inventory: %w"
	ErrMsgGetCompetencyFailed   = "failed to get tool competency: %w"
	ErrMsgGetCompetenciesFailed = "failed to get tool competencies: %w"
	ErrMsgGetUnlocksFailed      = "failed to get unlocked recipes: %w"
	ErrMsgGetSessionFailed      = "failed to get crafting session: %w"
	ErrMsgGetSessionsFailed     = "failed to get crafting sessions: %w"
	ErrMsgGetRollHistoryFailed  = "failed to get roll history: %w"
	ErrMsgGetProficiencyFailed  = "failed to get proficiency bonus: %w"
	ErrMsgBeginTxFailed         = "failed to begin transaction: %w"
	ErrMsgCommitTxFailed        = "failed to commit transaction: %w"
	ErrMsgDeductInventoryFailed = "failed to deduct inventory: %w"
	ErrMsgCreditInventoryFailed = "failed to credit inventory: %w"
	ErrMsgCreateSessionFailed   = "failed to create crafting session: %w"
	ErrMsgUpdateSessionFailed   = "failed to update crafting session: %w"
	ErrMsgUpdateCompetencyFail  = "failed to update tool competency: %w"
	ErrMsgUpdateEconomyFailed   = "failed to update character economy: %w"
	ErrMsgInsertRollFailed      = "failed to record roll: %w"
	ErrMsgCheckUnlockFailed     = "failed to check recipe unlock: %w"
	ErrMsgRollDiceFailed        = "failed to roll dice: %w"
)

// Validation error formats. Each wraps a domain sentinel.
const (
	ErrMsgMissingRareMaterialFmt = "%w: %s"
	ErrMsgMissingToolFmt         = "%w: %s"
	ErrMsgRarityLockedFmt        = "%w: %s cannot craft %s items"
	ErrMsgRecipeLockedFmt        = "%w: %s must be researched first"
	ErrMsgSessionStateFmt        = "%w: session is %s"
)

// Recipe loader error messages
const (
	ErrMsgReadConfigFailed       = "failed to read recipe config file: %w"
	ErrMsgParseConfigFailed      = "failed to parse recipe config: %w"
	ErrMsgSchemaValidationFailed = "recipe config failed schema validation: %w"
	ErrMsgCheckFileChangeFailed  = "failed to check recipe file change: %w"
	ErrMsgGetItemsFailed         = "failed to get items: %w"
	ErrMsgUpsertItemFmt          = "failed to upsert item '%s': %w"
	ErrMsgUpdateRecipeFmt        = "failed to update recipe '%s': %w"
	ErrMsgInsertRecipeFmt        = "failed to insert recipe '%s': %w"
	ErrMsgStatConfigFileFailed   = "failed to stat config file: %w"
)

// ==================== Messages ====================

// Player-facing messages returned with results
const (
	MsgCraftingStartedFmt    = "Started crafting %s."
	MsgFirstToolUseFmt       = " You have started using %s as %s."
	MsgMundaneSuccessFmt     = "Success! Added %d gp. Progress: %d/%d gp"
	MsgMundaneFailureFmt     = "Failure. Progress: %d/%d gp"
	MsgMundaneCompletedFmt   = "Item completed! %s added to your inventory."
	MsgMagicalSuccessFmt     = "Success! Progress: %d/%d successes"
	MsgMagicalFailureFmt     = "Failure. Progress: %d/%d successes (no cost)"
	MsgMagicalCompletedFmt   = "Magic item completed! %s added to your inventory. Cost: %d days, %d gp"
	MsgPromotionFmt          = "You have advanced to %s with %s!"
)

// ==================== Log Messages ====================

// Service operation log messages
const (
	LogMsgStartCraftingCalled  = "StartCrafting called"
	LogMsgCraftingStarted      = "Crafting session started"
	LogMsgStartRejected        = "Crafting start rejected"
	LogMsgSubmitRollCalled     = "SubmitRoll called"
	LogMsgRollResolved         = "Crafting roll resolved"
	LogMsgRollRejected         = "Crafting roll rejected"
	LogMsgSessionCompleted     = "Crafting session completed"
	LogMsgGradePromoted        = "Tool competency promoted"
	LogMsgSessionStateChanged  = "Crafting session state changed"
	LogMsgTransactionFailed    = "Crafting transaction failed"
	LogMsgProficiencyDefaulted = "No proficiency bonus for level, using default"
)

// Recipe loader log messages
const (
	LogMsgRecipeConfigUnchanged    = "Recipe config file unchanged, skipping sync"
	LogMsgRecipeSyncCompleted      = "Recipe sync completed"
	LogMsgOrphanedRecipesFound     = "Found orphaned catalog rows in database (in DB but not in config)"
	LogMsgUpdateSyncMetadataFailed = "Failed to update recipe sync metadata"
	LogMsgUpdatedRecipe            = "Updated recipe"
	LogMsgInsertedRecipe           = "Inserted recipe"
)
