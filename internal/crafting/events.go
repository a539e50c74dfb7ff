package crafting

import (
	"time"

	"github.com/osse101/DowntimeForge/internal/domain"
	"github.com/osse101/DowntimeForge/internal/event"
)

func newCraftingStartedEvent(characterID int, result *StartResult) event.Event {
	return event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.CraftingStarted,
		Payload: event.CraftingStartedPayloadV1{
			CharacterID:       characterID,
			SessionID:         result.Session.ID,
			RecipeID:          result.Recipe.ID,
			RecipeKey:         result.Recipe.Key,
			Tool:              result.Recipe.Tool,
			IsMagical:         result.Recipe.IsMagical,
			CompetencyCreated: result.CompetencyCreated,
			Timestamp:         time.Now().Unix(),
		},
		Metadata: event.Metadata{
			event.MetadataKeyCharacterID: characterID,
			event.MetadataKeyRecipeKind:  result.Recipe.Kind(),
		},
	}
}

func newCraftingRollEvent(characterID int, recipe *domain.Recipe, roll *domain.RollRecord) event.Event {
	return event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.CraftingRoll,
		Payload: event.CraftingRollPayloadV1{
			CharacterID: characterID,
			SessionID:   roll.SessionID,
			RecipeKind:  recipe.Kind(),
			Die:         roll.Die,
			Modifier:    roll.Modifier,
			Total:       roll.Total,
			DC:          roll.DC,
			Success:     roll.Success,
			GoldSpent:   roll.GoldSpent,
			DaysSpent:   roll.DaysSpent,
			Timestamp:   roll.RolledAt.Unix(),
		},
		Metadata: event.Metadata{
			event.MetadataKeyCharacterID: characterID,
			event.MetadataKeyRecipeKind:  recipe.Kind(),
		},
	}
}

func newGradePromotedEvent(character *domain.Character, notice *domain.PromotionNotice) event.Event {
	return event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.GradePromoted,
		Payload: event.GradePromotedPayloadV1{
			CharacterID:   character.ID,
			CharacterName: character.Name,
			Tool:          notice.Tool,
			PreviousGrade: notice.PreviousGrade.String(),
			NewGrade:      notice.NewGrade.String(),
			Timestamp:     time.Now().Unix(),
		},
		Metadata: event.Metadata{
			event.MetadataKeyCharacterID: character.ID,
		},
	}
}

func newCraftingCompletedEvent(character *domain.Character, recipe *domain.Recipe, session *domain.ProgressSession) event.Event {
	return event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.CraftingCompleted,
		Payload: event.CraftingCompletedPayloadV1{
			CharacterID:    character.ID,
			CharacterName:  character.Name,
			SessionID:      session.ID,
			RecipeKey:      recipe.Key,
			RecipeKind:     recipe.Kind(),
			OutputItemName: recipe.OutputItemName,
			OutputQuantity: recipe.OutputQuantity,
			DaysWorked:     session.DaysWorked,
			Timestamp:      time.Now().Unix(),
		},
		Metadata: event.Metadata{
			event.MetadataKeyCharacterID: character.ID,
			event.MetadataKeyRecipeKind:  recipe.Kind(),
		},
	}
}
