package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	handled := false

	bus.Subscribe(CraftingCompleted, func(ctx context.Context, event Event) error {
		assert.Equal(t, CraftingCompleted, event.Type)
		payload, err := DecodePayload[CraftingCompletedPayloadV1](event.Payload)
		require.NoError(t, err)
		assert.Equal(t, "Longsword", payload.OutputItemName)
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{
		Version:  EventSchemaVersion,
		Type:     CraftingCompleted,
		Payload:  CraftingCompletedPayloadV1{CharacterID: 1, OutputItemName: "Longsword", OutputQuantity: 1},
		Metadata: Metadata{MetadataKeyCharacterID: 1},
	})

	require.NoError(t, err)
	assert.True(t, handled, "Handler was not called")
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0

	handler := func(ctx context.Context, event Event) error {
		count++
		return nil
	}
	bus.Subscribe(GradePromoted, handler)
	bus.Subscribe(GradePromoted, handler)

	require.NoError(t, bus.Publish(context.Background(), Event{Version: EventSchemaVersion, Type: GradePromoted}))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), Event{Type: RecipeUnlocked}))
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe(CraftingRoll, func(ctx context.Context, event Event) error {
		return errors.New("handler error")
	})

	err := bus.Publish(context.Background(), Event{Version: EventSchemaVersion, Type: CraftingRoll})
	assert.Error(t, err)
}

func TestEvent_GetMetadataValue(t *testing.T) {
	e := Event{Metadata: Metadata{MetadataKeyRecipeKind: "magical"}}
	assert.Equal(t, "magical", e.GetMetadataValue(MetadataKeyRecipeKind))
	assert.Nil(t, e.GetMetadataValue("missing"))
	assert.Nil(t, Event{}.GetMetadataValue(MetadataKeyRecipeKind))
}

func TestDecodePayload_FromMap(t *testing.T) {
	raw := map[string]interface{}{"character_id": 7, "tool": "Smith's Tools", "new_grade": "Expert"}
	got, err := DecodePayload[GradePromotedPayloadV1](raw)
	require.NoError(t, err)
	assert.Equal(t, 7, got.CharacterID)
	assert.Equal(t, "Expert", got.NewGrade)
}
