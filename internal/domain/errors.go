package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Lookup errors
	ErrMsgCharacterNotFound  = "character not found"
	ErrMsgRecipeNotFound     = "recipe not found"
	ErrMsgSessionNotFound    = "crafting session not found"
	ErrMsgItemNotFound       = "item not found"
	ErrMsgResearchNotFound   = "research not found"
	ErrMsgCompetencyNotFound = "tool competency not found"

	// Crafting validation errors
	ErrMsgInsufficientIngredient = "insufficient ingredient"
	ErrMsgMissingRareMaterial    = "missing rare material"
	ErrMsgMissingTool            = "missing required tool"
	ErrMsgGradeTooLow            = "tool grade too low"
	ErrMsgRarityLocked           = "rarity not allowed for grade"
	ErrMsgRecipeLocked           = "recipe is locked"

	// State errors
	ErrMsgSessionCompleted = "crafting session already completed"
	ErrMsgSessionNotActive = "crafting session is not in progress"

	// Resource errors
	ErrMsgInsufficientGold     = "insufficient gold"
	ErrMsgInsufficientDowntime = "insufficient downtime"

	// Research errors
	ErrMsgResearchCompleted     = "research already completed"
	ErrMsgResearchActive        = "research already in progress for recipe"
	ErrMsgRecipeAlreadyUnlocked = "recipe already unlocked"
	ErrMsgRecipeNotResearchable = "recipe does not require research"
	ErrMsgItemNotInvestigable   = "item cannot be researched"
	ErrMsgItemNotInRecipe       = "item is not part of recipe"
	ErrMsgResearchItemNotHeld   = "research item not in inventory"

	// Config errors
	ErrMsgInvalidConfig      = "invalid config"
	ErrMsgDuplicateRecipeKey = "duplicate recipe key"
	ErrMsgUnknownConfigItem  = "unknown item in config"

	// Database/System errors
	ErrMsgDatabaseError        = "database error"
	ErrMsgSerializationFailure = "transaction serialization failure"
	ErrMsgTxClosed             = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrCharacterNotFound  = errors.New(ErrMsgCharacterNotFound)
	ErrRecipeNotFound     = errors.New(ErrMsgRecipeNotFound)
	ErrSessionNotFound    = errors.New(ErrMsgSessionNotFound)
	ErrItemNotFound       = errors.New(ErrMsgItemNotFound)
	ErrResearchNotFound   = errors.New(ErrMsgResearchNotFound)
	ErrCompetencyNotFound = errors.New(ErrMsgCompetencyNotFound)

	ErrInsufficientIngredient = errors.New(ErrMsgInsufficientIngredient)
	ErrMissingRareMaterial    = errors.New(ErrMsgMissingRareMaterial)
	ErrMissingTool            = errors.New(ErrMsgMissingTool)
	ErrGradeTooLow            = errors.New(ErrMsgGradeTooLow)
	ErrRarityLocked           = errors.New(ErrMsgRarityLocked)
	ErrRecipeLocked           = errors.New(ErrMsgRecipeLocked)

	ErrSessionCompleted = errors.New(ErrMsgSessionCompleted)
	ErrSessionNotActive = errors.New(ErrMsgSessionNotActive)

	ErrInsufficientGold     = errors.New(ErrMsgInsufficientGold)
	ErrInsufficientDowntime = errors.New(ErrMsgInsufficientDowntime)

	ErrResearchCompleted     = errors.New(ErrMsgResearchCompleted)
	ErrResearchActive        = errors.New(ErrMsgResearchActive)
	ErrRecipeAlreadyUnlocked = errors.New(ErrMsgRecipeAlreadyUnlocked)
	ErrRecipeNotResearchable = errors.New(ErrMsgRecipeNotResearchable)
	ErrItemNotInvestigable   = errors.New(ErrMsgItemNotInvestigable)
	ErrItemNotInRecipe       = errors.New(ErrMsgItemNotInRecipe)
	ErrResearchItemNotHeld   = errors.New(ErrMsgResearchItemNotHeld)

	ErrInvalidConfig      = errors.New(ErrMsgInvalidConfig)
	ErrDuplicateRecipeKey = errors.New(ErrMsgDuplicateRecipeKey)
	ErrUnknownConfigItem  = errors.New(ErrMsgUnknownConfigItem)

	ErrDatabaseError        = errors.New(ErrMsgDatabaseError)
	ErrSerializationFailure = errors.New(ErrMsgSerializationFailure)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// Shortfall describes a missing quantity of one item
type Shortfall struct {
	ItemID   int    `json:"item_id"`
	ItemName string `json:"item_name"`
	Required int    `json:"required"`
	Held     int    `json:"held"`
	Missing  int    `json:"missing"`
}

// NewShortfall builds a shortfall entry from required and held amounts
func NewShortfall(itemID int, itemName string, required, held int) Shortfall {
	return Shortfall{ItemID: itemID, ItemName: itemName, Required: required, Held: held, Missing: required - held}
}

// IngredientShortfallError reports the first ingredient a character is short of
type IngredientShortfallError struct {
	Shortfall
}

func (e *IngredientShortfallError) Error() string {
	return fmt.Sprintf("%s: %s (need %d, have %d)", ErrMsgInsufficientIngredient, e.ItemName, e.Required, e.Held)
}

func (e *IngredientShortfallError) Unwrap() error {
	return ErrInsufficientIngredient
}

// GradeRequirementError reports a tool grade below the recipe requirement
type GradeRequirementError struct {
	Tool     string
	Current  Grade
	Required Grade
}

func (e *GradeRequirementError) Error() string {
	return fmt.Sprintf("%s: %s requires %s, current grade is %s", ErrMsgGradeTooLow, e.Tool, e.Required, e.Current)
}

func (e *GradeRequirementError) Unwrap() error {
	return ErrGradeTooLow
}

// ResourceShortfallError reports missing gold or downtime before a roll
type ResourceShortfallError struct {
	Resource string
	Required int
	Held     int
	cause    error
}

// NewGoldShortfall reports insufficient gold
func NewGoldShortfall(required, held int) *ResourceShortfallError {
	return &ResourceShortfallError{Resource: "gold", Required: required, Held: held, cause: ErrInsufficientGold}
}

// NewDowntimeShortfall reports insufficient downtime days
func NewDowntimeShortfall(required, held int) *ResourceShortfallError {
	return &ResourceShortfallError{Resource: "downtime", Required: required, Held: held, cause: ErrInsufficientDowntime}
}

func (e *ResourceShortfallError) Error() string {
	return fmt.Sprintf("%s: need %d, have %d", e.cause.Error(), e.Required, e.Held)
}

func (e *ResourceShortfallError) Unwrap() error {
	return e.cause
}
