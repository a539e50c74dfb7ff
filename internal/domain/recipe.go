package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Rarity is a magical item's power classification
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityVeryRare
	RarityLegendary
)

// Rarity display names, also used as the persisted value
const (
	RarityNameCommon    = "Common"
	RarityNameUncommon  = "Uncommon"
	RarityNameRare      = "Rare"
	RarityNameVeryRare  = "Very Rare"
	RarityNameLegendary = "Legendary"
)

// MundaneDC is the fixed difficulty for non-magical work
const MundaneDC = 12

// Cost is a downtime-days and gold price
type Cost struct {
	Days int `json:"days"`
	Gold int `json:"gold"`
}

type rarityRule struct {
	name            string
	dc              int
	consumableDC    int
	successes       int
	completionCost  Cost
	minimumGrade    Grade
	researchDC      int
	researchSuccess int
}

var rarityTable = [...]rarityRule{
	RarityCommon:    {name: RarityNameCommon, dc: 15, consumableDC: 10, successes: 1, completionCost: Cost{Days: 1, Gold: 10}, minimumGrade: GradeNovice, researchDC: 10, researchSuccess: 1},
	RarityUncommon:  {name: RarityNameUncommon, dc: 18, consumableDC: 13, successes: 1, completionCost: Cost{Days: 2, Gold: 40}, minimumGrade: GradeApprentice, researchDC: 12, researchSuccess: 2},
	RarityRare:      {name: RarityNameRare, dc: 21, consumableDC: 16, successes: 2, completionCost: Cost{Days: 5, Gold: 200}, minimumGrade: GradeExpert, researchDC: 15, researchSuccess: 3},
	RarityVeryRare:  {name: RarityNameVeryRare, dc: 24, consumableDC: 19, successes: 5, completionCost: Cost{Days: 5, Gold: 800}, minimumGrade: GradeMasterArtisan, researchDC: 18, researchSuccess: 4},
	RarityLegendary: {name: RarityNameLegendary, dc: 30, consumableDC: 25, successes: 10, completionCost: Cost{Days: 5, Gold: 2000}, minimumGrade: GradeGrandMaster, researchDC: 20, researchSuccess: 5},
}

// Rarities returns every tier in ascending order
func Rarities() []Rarity {
	return []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityVeryRare, RarityLegendary}
}

// ParseRarity resolves a rarity by name, case-insensitively
func ParseRarity(name string) (Rarity, error) {
	for _, r := range Rarities() {
		if strings.EqualFold(rarityTable[r].name, strings.TrimSpace(name)) {
			return r, nil
		}
	}
	return RarityCommon, fmt.Errorf("%w: unknown rarity %q", ErrInvalidInput, name)
}

func (r Rarity) Valid() bool {
	return r >= RarityCommon && r <= RarityLegendary
}

func (r Rarity) rule() rarityRule {
	if !r.Valid() {
		return rarityTable[RarityCommon]
	}
	return rarityTable[r]
}

func (r Rarity) String() string {
	return r.rule().name
}

func (r Rarity) Index() int {
	return int(r)
}

// DC returns the crafting difficulty for the tier
func (r Rarity) DC(consumable bool) int {
	if consumable {
		return r.rule().consumableDC
	}
	return r.rule().dc
}

// RequiredSuccesses returns how many successful rolls finish a magical item of this tier
func (r Rarity) RequiredSuccesses() int {
	return r.rule().successes
}

// CompletionCost is charged once, when a magical session completes
func (r Rarity) CompletionCost() Cost {
	return r.rule().completionCost
}

// MinimumGrade is the lowest grade allowed to craft the tier
func (r Rarity) MinimumGrade() Grade {
	return r.rule().minimumGrade
}

// ResearchDC is the difficulty of researching an item of this tier
func (r Rarity) ResearchDC() int {
	return r.rule().researchDC
}

// ResearchSuccesses is the number of research successes needed for the tier
func (r Rarity) ResearchSuccesses() int {
	return r.rule().researchSuccess
}

func (r Rarity) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Rarity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseRarity(name)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Ingredient is a single material requirement for a recipe
type Ingredient struct {
	ItemID   int    `json:"item_id"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// Recipe describes what a crafting session produces. Recipes are never mutated by sessions.
type Recipe struct {
	ID             int    `json:"recipe_id"`
	Key            string `json:"recipe_key"`
	OutputItemID   int    `json:"output_item_id"`
	OutputItemName string `json:"output_item_name"`
	OutputQuantity int    `json:"output_quantity"`
	IsMagical      bool   `json:"is_magical"`
	Tool           string `json:"tool,omitempty"`
	// MinGrade applies to mundane recipes only, magical ones derive it from Rarity
	MinGrade         Grade        `json:"min_grade"`
	Rarity           Rarity       `json:"rarity"`
	RareMaterialID   *int         `json:"rare_material_id,omitempty"`
	RareMaterialName string       `json:"rare_material_name,omitempty"`
	IsConsumable     bool         `json:"is_consumable"`
	GoldCost         int          `json:"gold_cost"`
	RequiresResearch bool         `json:"requires_research"`
	Ingredients      []Ingredient `json:"ingredients"`
	CreatedAt        time.Time    `json:"created_at,omitempty"`
}

// DC returns the difficulty class for a roll against this recipe
func (r *Recipe) DC() int {
	if !r.IsMagical {
		return MundaneDC
	}
	return r.Rarity.DC(r.IsConsumable)
}

// RequiredSuccesses is 0 for mundane recipes, whose progress is measured in gold
func (r *Recipe) RequiredSuccesses() int {
	if !r.IsMagical {
		return 0
	}
	return r.Rarity.RequiredSuccesses()
}

// MagicalCost returns the one-time completion cost, zero for mundane recipes
func (r *Recipe) MagicalCost() Cost {
	if !r.IsMagical {
		return Cost{}
	}
	return r.Rarity.CompletionCost()
}

// RequiredGrade is the minimum tool grade to start the recipe
func (r *Recipe) RequiredGrade() Grade {
	if r.IsMagical {
		return r.Rarity.MinimumGrade()
	}
	return r.MinGrade
}

// GoldThreshold is the accumulated gold that completes a mundane session
func (r *Recipe) GoldThreshold() int {
	if r.IsMagical {
		return 0
	}
	return r.GoldCost
}

// HasRareMaterial reports whether a rare material unit is consumed at start.
// Only magical recipes use rare materials.
func (r *Recipe) HasRareMaterial() bool {
	return r.IsMagical && r.RareMaterialID != nil
}

// RequiresTool reports whether the recipe names a tool
func (r *Recipe) RequiresTool() bool {
	return strings.TrimSpace(r.Tool) != ""
}

// Kind returns a label used for metrics and logs
func (r *Recipe) Kind() string {
	if r.IsMagical {
		return RecipeKindMagical
	}
	return RecipeKindMundane
}

const (
	RecipeKindMagical = "magical"
	RecipeKindMundane = "mundane"
)
