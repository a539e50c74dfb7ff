package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/DowntimeForge/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Crafting and research event types
const (
	CraftingStarted   Type = domain.EventTypeCraftingStarted
	CraftingRoll      Type = domain.EventTypeCraftingRoll
	CraftingCompleted Type = domain.EventTypeCraftingCompleted
	GradePromoted     Type = domain.EventTypeGradePromoted
	ResearchRoll      Type = domain.EventTypeResearchRoll
	RecipeUnlocked    Type = domain.EventTypeRecipeUnlocked
)

// Metadata keys
const (
	MetadataKeyCharacterID = "character_id"
	MetadataKeyRecipeKind  = "recipe_kind"
	MetadataKeySource      = "source"
)

// Typed event payloads for type safety

// CraftingStartedPayloadV1 is published when a session is created
type CraftingStartedPayloadV1 struct {
	CharacterID       int       `json:"character_id"`
	SessionID         uuid.UUID `json:"session_id"`
	RecipeID          int       `json:"recipe_id"`
	RecipeKey         string    `json:"recipe_key"`
	Tool              string    `json:"tool,omitempty"`
	IsMagical         bool      `json:"is_magical"`
	CompetencyCreated bool      `json:"competency_created"`
	Timestamp         int64     `json:"timestamp"`
}

// CraftingRollPayloadV1 is published after every committed crafting roll
type CraftingRollPayloadV1 struct {
	CharacterID int       `json:"character_id"`
	SessionID   uuid.UUID `json:"session_id"`
	RecipeKind  string    `json:"recipe_kind"`
	Die         int       `json:"die"`
	Modifier    int       `json:"modifier"`
	Total       int       `json:"total"`
	DC          int       `json:"dc"`
	Success     bool      `json:"success"`
	GoldSpent   int       `json:"gold_spent"`
	DaysSpent   int       `json:"days_spent"`
	Timestamp   int64     `json:"timestamp"`
}

// CraftingCompletedPayloadV1 is published when a session completes and the output is delivered
type CraftingCompletedPayloadV1 struct {
	CharacterID    int       `json:"character_id"`
	CharacterName  string    `json:"character_name"`
	SessionID      uuid.UUID `json:"session_id"`
	RecipeKey      string    `json:"recipe_key"`
	RecipeKind     string    `json:"recipe_kind"`
	OutputItemName string    `json:"output_item_name"`
	OutputQuantity int       `json:"output_quantity"`
	DaysWorked     int       `json:"days_worked"`
	Timestamp      int64     `json:"timestamp"`
}

// GradePromotedPayloadV1 is published when a tool competency advances a grade
type GradePromotedPayloadV1 struct {
	CharacterID   int    `json:"character_id"`
	CharacterName string `json:"character_name"`
	Tool          string `json:"tool"`
	PreviousGrade string `json:"previous_grade"`
	NewGrade      string `json:"new_grade"`
	Timestamp     int64  `json:"timestamp"`
}

// ResearchRollPayloadV1 is published after every committed research roll
type ResearchRollPayloadV1 struct {
	CharacterID int       `json:"character_id"`
	ResearchID  uuid.UUID `json:"research_id"`
	Source      string    `json:"source"`
	Die         int       `json:"die"`
	Total       int       `json:"total"`
	DC          int       `json:"dc"`
	Success     bool      `json:"success"`
	GoldSpent   int       `json:"gold_spent"`
	DaysSpent   int       `json:"days_spent"`
	Timestamp   int64     `json:"timestamp"`
}

// RecipeUnlockedPayloadV1 is published when research unlocks a recipe
type RecipeUnlockedPayloadV1 struct {
	CharacterID   int    `json:"character_id"`
	CharacterName string `json:"character_name"`
	RecipeID      int    `json:"recipe_id"`
	RecipeKey     string `json:"recipe_key"`
	Timestamp     int64  `json:"timestamp"`
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscribed handler synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
