package domain

// Event type constants used for event bus subscriptions and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "crafting.session.completed")
const (
	// EventTypeCraftingStarted is published after a crafting session is created
	EventTypeCraftingStarted = "crafting.session.started"

	// EventTypeCraftingRoll is published after every committed crafting roll
	EventTypeCraftingRoll = "crafting.roll.resolved"

	// EventTypeCraftingCompleted is published when a session completes and the output is delivered
	EventTypeCraftingCompleted = "crafting.session.completed"

	// EventTypeGradePromoted is published when a tool competency advances a grade
	EventTypeGradePromoted = "crafting.grade.promoted"

	// EventTypeResearchRoll is published after every committed research roll
	EventTypeResearchRoll = "research.roll.resolved"

	// EventTypeRecipeUnlocked is published when research unlocks a recipe
	EventTypeRecipeUnlocked = "research.recipe.unlocked"
)
