package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResearchSource is how a character studies an item
type ResearchSource string

const (
	ResearchSourceField       ResearchSource = "field"
	ResearchSourceBooks       ResearchSource = "books"
	ResearchSourceInterviews  ResearchSource = "interviews"
	ResearchSourceExperiments ResearchSource = "experiments"
)

// ResearchRollCost is paid on every research roll, success or not
var ResearchRollCost = Cost{Days: 1, Gold: 25}

// ResearchSkill is the skill and ability a research source checks
type ResearchSkill struct {
	Skill   string `json:"skill"`
	Ability string `json:"ability"`
}

// The first skill of each source is its default
var researchSkills = map[ResearchSource][]ResearchSkill{
	ResearchSourceBooks: {
		{Skill: "Investigation", Ability: AbilityIntelligence},
	},
	ResearchSourceInterviews: {
		{Skill: "Persuasion", Ability: AbilityCharisma},
		{Skill: "Deception", Ability: AbilityCharisma},
	},
	ResearchSourceExperiments: {
		{Skill: "Survival", Ability: AbilityWisdom},
		{Skill: "Perception", Ability: AbilityWisdom},
	},
}

// ParseResearchSource validates a source name
func ParseResearchSource(s string) (ResearchSource, error) {
	src := ResearchSource(s)
	if src == ResearchSourceField {
		return src, nil
	}
	if _, ok := researchSkills[src]; ok {
		return src, nil
	}
	return "", fmt.Errorf("%w: unknown research source %q", ErrInvalidInput, s)
}

// Skills lists the skill checks the source allows. Field work has none, it uses the tool competency.
func (s ResearchSource) Skills() []ResearchSkill {
	return researchSkills[s]
}

// ResolveSkill picks the named skill for the source, or its default when name is empty.
// ok is false for field work.
func (s ResearchSource) ResolveSkill(name string) (skill ResearchSkill, ok bool, err error) {
	skills := researchSkills[s]
	if len(skills) == 0 {
		if name != "" {
			return ResearchSkill{}, false, fmt.Errorf("%w: %s research takes no skill, got %q", ErrInvalidInput, s, name)
		}
		return ResearchSkill{}, false, nil
	}
	if name == "" {
		return skills[0], true, nil
	}
	for _, sk := range skills {
		if strings.EqualFold(sk.Skill, name) {
			return sk, true, nil
		}
	}
	return ResearchSkill{}, false, fmt.Errorf("%w: skill %q cannot be used for %s research", ErrInvalidInput, name, s)
}

// ResearchState is the lifecycle of a research project
type ResearchState string

const (
	ResearchInProgress ResearchState = "in_progress"
	ResearchCompleted  ResearchState = "completed"
)

// Research is a character's attempt to unlock a recipe by studying one of its items
type Research struct {
	ID                uuid.UUID      `json:"research_id"`
	CharacterID       int            `json:"character_id"`
	RecipeID          int            `json:"recipe_id"`
	ItemID            int            `json:"item_id"`
	Source            ResearchSource `json:"source"`
	Skill             string         `json:"skill,omitempty"`
	DC                int            `json:"dc"`
	Successes         int            `json:"successes"`
	RequiredSuccesses int            `json:"required_successes"`
	DaysWorked        int            `json:"days_worked"`
	GoldSpent         int            `json:"gold_spent"`
	State             ResearchState  `json:"state"`
	StartedAt         time.Time      `json:"started_at"`
	CompletedAt       *time.Time     `json:"completed_at,omitempty"`
}

// NewResearch sizes a research project from the studied item. skill is empty for field work.
func NewResearch(characterID, recipeID int, item *Item, source ResearchSource, skill string, now time.Time) *Research {
	rarity := RarityCommon
	if item.IsMagical {
		rarity = item.Rarity
	}
	return &Research{
		ID:                uuid.New(),
		CharacterID:       characterID,
		RecipeID:          recipeID,
		ItemID:            item.ID,
		Source:            source,
		Skill:             skill,
		DC:                rarity.ResearchDC(),
		RequiredSuccesses: rarity.ResearchSuccesses(),
		State:             ResearchInProgress,
		StartedAt:         now,
	}
}

// ResearchRoll is the append-only history entry of a single research roll
type ResearchRoll struct {
	ID         int64     `json:"roll_id"`
	ResearchID uuid.UUID `json:"research_id"`
	Skill      string    `json:"skill"`
	Die        int       `json:"die"`
	Modifier   int       `json:"modifier"`
	Total      int       `json:"total"`
	DC         int       `json:"dc"`
	Success    bool      `json:"success"`
	GoldSpent  int       `json:"gold_spent"`
	DaysSpent  int       `json:"days_spent"`
	RolledAt   time.Time `json:"rolled_at"`
}

// RecipeUnlock marks a research-gated recipe as available to a character
type RecipeUnlock struct {
	CharacterID int       `json:"character_id"`
	RecipeID    int       `json:"recipe_id"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}
