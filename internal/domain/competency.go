package domain

import (
	"math"
	"time"
)

// ToolCompetency is a character's mastery of one tool
type ToolCompetency struct {
	ID          int       `json:"competency_id"`
	CharacterID int       `json:"character_id"`
	Tool        string    `json:"tool"`
	Grade       Grade     `json:"grade"`
	Successes   int       `json:"successes"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewToolCompetency returns a fresh Novice competency
func NewToolCompetency(characterID int, tool string) *ToolCompetency {
	return &ToolCompetency{
		CharacterID: characterID,
		Tool:        tool,
		Grade:       GradeNovice,
	}
}

// ModifierBreakdown explains how a roll modifier was computed
type ModifierBreakdown struct {
	Total            int     `json:"total"`
	ProficiencyBonus int     `json:"proficiency_bonus"`
	ProficiencyPart  int     `json:"proficiency_part"`
	Multiplier       float64 `json:"multiplier"`
	AbilityName      string  `json:"ability_name"`
	AbilityScore     int     `json:"ability_score"`
	AbilityPart      int     `json:"ability_part"`
}

// ComputeModifier is floor(proficiency * grade multiplier) + the best ability modifier
func ComputeModifier(abilities AbilityScores, grade Grade, proficiencyBonus int) ModifierBreakdown {
	mult := grade.Info().Multiplier
	profPart := int(math.Floor(float64(proficiencyBonus) * mult))
	name, score := abilities.Highest()
	abilityPart := AbilityModifier(score)
	return ModifierBreakdown{
		Total:            profPart + abilityPart,
		ProficiencyBonus: proficiencyBonus,
		ProficiencyPart:  profPart,
		Multiplier:       mult,
		AbilityName:      name,
		AbilityScore:     score,
		AbilityPart:      abilityPart,
	}
}

// RecordSuccess credits one success and applies at most one promotion.
// It returns the new grade when a promotion happened.
func (c *ToolCompetency) RecordSuccess() (Grade, bool) {
	c.Successes++
	return c.MaybePromote()
}

// MaybePromote advances the grade once the current threshold is met and resets successes
func (c *ToolCompetency) MaybePromote() (Grade, bool) {
	threshold := c.Grade.Info().SuccessesToPromote
	next, ok := c.Grade.Next()
	if !ok || threshold <= 0 || c.Successes < threshold {
		return c.Grade, false
	}
	c.Grade = next
	c.Successes = 0
	return next, true
}

// SuccessesToNextGrade returns the remaining successes to promote, 0 at the top grade
func (c *ToolCompetency) SuccessesToNextGrade() int {
	if _, ok := c.Grade.Next(); !ok {
		return 0
	}
	remaining := c.Grade.Info().SuccessesToPromote - c.Successes
	if remaining < 0 {
		return 0
	}
	return remaining
}

// PromotionNotice is returned when a roll promoted a competency
type PromotionNotice struct {
	Tool          string `json:"tool"`
	PreviousGrade Grade  `json:"previous_grade"`
	NewGrade      Grade  `json:"new_grade"`
	Message       string `json:"message"`
}
