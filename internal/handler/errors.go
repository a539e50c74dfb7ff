package handler

// Generic HTTP error messages for client responses.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Path and query parameter error messages
	ErrMsgInvalidCharacterID = "Invalid character ID"
	ErrMsgInvalidSessionID   = "Invalid session ID"
	ErrMsgInvalidResearchID  = "Invalid research ID"
	ErrMsgInvalidStateFilter = "Invalid state filter '%s'. Valid options: in_progress, paused, completed"
)

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	// Lookup messages
	ErrMsgCharacterNotFoundError  = "Character not found"
	ErrMsgRecipeNotFoundError     = "Recipe not found"
	ErrMsgSessionNotFoundError    = "Crafting session not found"
	ErrMsgItemNotFoundError       = "Item not found"
	ErrMsgResearchNotFoundError   = "Research not found"
	ErrMsgCompetencyNotFoundError = "Tool competency not found"

	// Crafting requirement messages
	ErrMsgInsufficientIngredientErr = "Not enough ingredients"
	ErrMsgMissingRareMaterialError  = "The rare material for this recipe is missing"
	ErrMsgMissingToolError          = "You don't have the required tool"
	ErrMsgGradeTooLowError          = "Your tool grade is too low for this recipe"
	ErrMsgRarityLockedError         = "Your tool grade cannot craft items of this rarity yet"
	ErrMsgRecipeLockedError         = "Recipe is locked. Research it first"

	// Session state messages
	ErrMsgSessionCompletedError = "That crafting session is already complete"
	ErrMsgSessionNotActiveError = "That crafting session is not in progress"

	// Resource messages
	ErrMsgNotEnoughGoldError     = "Not enough gold"
	ErrMsgNotEnoughDowntimeError = "Not enough downtime"

	// Research messages
	ErrMsgResearchCompletedError     = "That research is already complete"
	ErrMsgResearchActiveError        = "You are already researching this recipe"
	ErrMsgRecipeAlreadyUnlockedError = "You already know this recipe"
	ErrMsgRecipeNotResearchableError = "This recipe does not need research"
	ErrMsgItemNotInvestigableError   = "That item cannot be researched"
	ErrMsgItemNotInRecipeError       = "That item is not part of the recipe"
	ErrMsgResearchItemNotHeldError   = "You need to hold the item you want to research"

	ErrMsgInvalidInputError = "Invalid request. Please check your inputs."
)
