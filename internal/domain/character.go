package domain

import "time"

// Ability names
const (
	AbilityStrength     = "strength"
	AbilityDexterity    = "dexterity"
	AbilityConstitution = "constitution"
	AbilityIntelligence = "intelligence"
	AbilityWisdom       = "wisdom"
	AbilityCharisma     = "charisma"
)

// AbilityScores are the six base scores of a character
type AbilityScores struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// Get returns the score for a named ability, 10 when the name is unknown
func (a AbilityScores) Get(name string) int {
	switch name {
	case AbilityStrength:
		return a.Strength
	case AbilityDexterity:
		return a.Dexterity
	case AbilityConstitution:
		return a.Constitution
	case AbilityIntelligence:
		return a.Intelligence
	case AbilityWisdom:
		return a.Wisdom
	case AbilityCharisma:
		return a.Charisma
	}
	return 10
}

// Highest returns the name and value of a maximal score.
// Ties keep the first ability in the standard order.
func (a AbilityScores) Highest() (string, int) {
	names := []string{AbilityStrength, AbilityDexterity, AbilityConstitution, AbilityIntelligence, AbilityWisdom, AbilityCharisma}
	best, bestValue := names[0], a.Get(names[0])
	for _, n := range names[1:] {
		if v := a.Get(n); v > bestValue {
			best, bestValue = n, v
		}
	}
	return best, bestValue
}

// AbilityModifier is floor((score - 10) / 2)
func AbilityModifier(score int) int {
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

// Character holds the fields the crafting engine reads and mutates
type Character struct {
	ID        int           `json:"character_id"`
	Name      string        `json:"name"`
	Level     int           `json:"level"`
	Gold      int           `json:"gold"`
	Downtime  int           `json:"downtime"`
	Abilities AbilityScores `json:"abilities"`
	CreatedAt time.Time     `json:"created_at,omitempty"`
}

// Economy is the gold/downtime snapshot returned after a roll
type Economy struct {
	Gold     int `json:"gold"`
	Downtime int `json:"downtime"`
}

// Economy returns the character's current economic snapshot
func (c *Character) Economy() Economy {
	return Economy{Gold: c.Gold, Downtime: c.Downtime}
}

// CanAfford reports whether the character holds at least the given cost
func (c *Character) CanAfford(cost Cost) bool {
	return c.Gold >= cost.Gold && c.Downtime >= cost.Days
}

// Spend deducts cost. Callers check CanAfford first, the non-negative rule is theirs to enforce.
func (c *Character) Spend(cost Cost) {
	c.Gold -= cost.Gold
	c.Downtime -= cost.Days
}

// DefaultProficiencyBonus is used when the reference table has no row for a level
const DefaultProficiencyBonus = 2

// StandardProficiencyBonus is the 5e progression: +2 at level 1, one more every four levels
func StandardProficiencyBonus(level int) int {
	if level < 1 {
		return DefaultProficiencyBonus
	}
	return 2 + (level-1)/4
}
