package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Grade is a character's tier of mastery with a specific tool.
// The zero value is Novice.
type Grade int

const (
	GradeNovice Grade = iota
	GradeApprentice
	GradeExpert
	GradeMasterArtisan
	GradeGrandMaster
)

// Grade display names, also used as the persisted value
const (
	GradeNameNovice        = "Novice"
	GradeNameApprentice    = "Apprentice"
	GradeNameExpert        = "Expert"
	GradeNameMasterArtisan = "Master Artisan"
	GradeNameGrandMaster   = "Grand Master"
)

// GradeInfo holds the per-grade constants of the ladder
type GradeInfo struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
	GoldGain   int     `json:"gold_gain"` // per successful mundane work day
	GoldCost   int     `json:"gold_cost"` // per mundane work day, success or not
	// SuccessesToPromote is 0 for the last grade
	SuccessesToPromote int    `json:"successes_to_promote"`
	MaxRarity          Rarity `json:"max_rarity"`
}

var gradeLadder = [...]GradeInfo{
	GradeNovice:        {Name: GradeNameNovice, Multiplier: 0, GoldGain: 5, GoldCost: 2, SuccessesToPromote: 1, MaxRarity: RarityCommon},
	GradeApprentice:    {Name: GradeNameApprentice, Multiplier: 0.5, GoldGain: 10, GoldCost: 4, SuccessesToPromote: 2, MaxRarity: RarityUncommon},
	GradeExpert:        {Name: GradeNameExpert, Multiplier: 1, GoldGain: 20, GoldCost: 8, SuccessesToPromote: 10, MaxRarity: RarityRare},
	GradeMasterArtisan: {Name: GradeNameMasterArtisan, Multiplier: 1.5, GoldGain: 40, GoldCost: 15, SuccessesToPromote: 50, MaxRarity: RarityVeryRare},
	GradeGrandMaster:   {Name: GradeNameGrandMaster, Multiplier: 2, GoldGain: 80, GoldCost: 25, SuccessesToPromote: 0, MaxRarity: RarityLegendary},
}

// Grades returns the ladder in ascending order
func Grades() []Grade {
	return []Grade{GradeNovice, GradeApprentice, GradeExpert, GradeMasterArtisan, GradeGrandMaster}
}

// ParseGrade resolves a grade by name, case-insensitively
func ParseGrade(name string) (Grade, error) {
	for _, g := range Grades() {
		if strings.EqualFold(gradeLadder[g].Name, strings.TrimSpace(name)) {
			return g, nil
		}
	}
	return GradeNovice, fmt.Errorf("%w: unknown grade %q", ErrInvalidInput, name)
}

// Valid reports whether g is on the ladder
func (g Grade) Valid() bool {
	return g >= GradeNovice && g <= GradeGrandMaster
}

// Info returns the ladder row for g. Invalid grades fall back to Novice.
func (g Grade) Info() GradeInfo {
	if !g.Valid() {
		return gradeLadder[GradeNovice]
	}
	return gradeLadder[g]
}

func (g Grade) String() string {
	return g.Info().Name
}

// Index is the ladder position used for ordering comparisons
func (g Grade) Index() int {
	return int(g)
}

// AtLeast reports whether g is the same as or above other
func (g Grade) AtLeast(other Grade) bool {
	return g.Index() >= other.Index()
}

// Next returns the following grade, or false at the top of the ladder
func (g Grade) Next() (Grade, bool) {
	if g >= GradeGrandMaster {
		return g, false
	}
	return g + 1, true
}

// CanCraftRarity applies the rarity gate: each grade unlocks one more tier
func (g Grade) CanCraftRarity(r Rarity) bool {
	return r.Index() <= g.Info().MaxRarity.Index()
}

// MarshalJSON renders the grade by name
func (g Grade) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

// UnmarshalJSON accepts a grade name
func (g *Grade) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseGrade(name)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
