package research

import (
	"time"

	"github.com/osse101/DowntimeForge/internal/domain"
	"github.com/osse101/DowntimeForge/internal/event"
)

func newResearchRollEvent(characterID int, out *RollOutcome) event.Event {
	return event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.ResearchRoll,
		Payload: event.ResearchRollPayloadV1{
			CharacterID: characterID,
			ResearchID:  out.Research.ID,
			Source:      string(out.Research.Source),
			Die:         out.Die,
			Total:       out.Total,
			DC:          out.DC,
			Success:     out.Success,
			GoldSpent:   domain.ResearchRollCost.Gold,
			DaysSpent:   domain.ResearchRollCost.Days,
			Timestamp:   time.Now().Unix(),
		},
		Metadata: event.Metadata{
			event.MetadataKeyCharacterID: characterID,
			event.MetadataKeySource:      string(out.Research.Source),
		},
	}
}

func newRecipeUnlockedEvent(character *domain.Character, recipe *domain.Recipe) event.Event {
	return event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.RecipeUnlocked,
		Payload: event.RecipeUnlockedPayloadV1{
			CharacterID:   character.ID,
			CharacterName: character.Name,
			RecipeID:      recipe.ID,
			RecipeKey:     recipe.Key,
			Timestamp:     time.Now().Unix(),
		},
		Metadata: event.Metadata{
			event.MetadataKeyCharacterID: character.ID,
		},
	}
}
