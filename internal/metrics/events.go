package metrics

import (
	"context"

	"github.com/osse101/DowntimeForge/internal/event"
	"github.com/osse101/DowntimeForge/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every crafting and research event
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, t := range []event.Type{
		event.CraftingStarted,
		event.CraftingRoll,
		event.CraftingCompleted,
		event.GradePromoted,
		event.ResearchRoll,
		event.RecipeUnlocked,
	} {
		bus.Subscribe(t, e.HandleEvent)
	}
}

// HandleEvent updates business metrics. Decode failures are logged and counted, never returned,
// so a malformed payload cannot push an event into the retry queue.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.CraftingStarted:
		var p event.CraftingStartedPayloadV1
		if p, err = event.DecodePayload[event.CraftingStartedPayloadV1](evt.Payload); err == nil {
			SessionsStarted.WithLabelValues(kindOf(p.IsMagical)).Inc()
		}
	case event.CraftingRoll:
		var p event.CraftingRollPayloadV1
		if p, err = event.DecodePayload[event.CraftingRollPayloadV1](evt.Payload); err == nil {
			CraftingRolls.WithLabelValues(p.RecipeKind, Outcome(p.Success)).Inc()
			GoldSpent.Add(float64(p.GoldSpent))
			DowntimeSpent.Add(float64(p.DaysSpent))
		}
	case event.CraftingCompleted:
		var p event.CraftingCompletedPayloadV1
		if p, err = event.DecodePayload[event.CraftingCompletedPayloadV1](evt.Payload); err == nil {
			SessionsCompleted.WithLabelValues(p.RecipeKind).Inc()
		}
	case event.GradePromoted:
		var p event.GradePromotedPayloadV1
		if p, err = event.DecodePayload[event.GradePromotedPayloadV1](evt.Payload); err == nil {
			GradePromotions.WithLabelValues(p.NewGrade).Inc()
		}
	case event.ResearchRoll:
		var p event.ResearchRollPayloadV1
		if p, err = event.DecodePayload[event.ResearchRollPayloadV1](evt.Payload); err == nil {
			ResearchRolls.WithLabelValues(p.Source, Outcome(p.Success)).Inc()
			DowntimeSpent.Add(float64(p.DaysSpent))
		}
	case event.RecipeUnlocked:
		RecipesUnlocked.Inc()
	}

	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		logger.FromContext(ctx).Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
	}
	return nil
}

func kindOf(magical bool) string {
	if magical {
		return "magical"
	}
	return "mundane"
}
