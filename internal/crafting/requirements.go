package crafting

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/osse101/DowntimeForge/internal/domain"
)

// materialCheck is the inventory side of a recipe's requirements
type materialCheck struct {
	Missing             []domain.Shortfall
	MissingRareMaterial bool
	HasTool             bool
}

// gradeCheck is the competency side of a recipe's requirements
type gradeCheck struct {
	Current       domain.Grade
	Required      domain.Grade
	Sufficient    bool
	RarityAllowed bool
}

// checkMaterials evaluates ingredients, rare material and tool without stopping at the first problem.
// StartCrafting reports the first failure in that order, the eligibility listing reports all of them.
func checkMaterials(recipe *domain.Recipe, inv domain.Inventory) materialCheck {
	var mc materialCheck
	for _, ing := range recipe.Ingredients {
		if held := inv.Quantity(ing.ItemID); held < ing.Quantity {
			mc.Missing = append(mc.Missing, domain.NewShortfall(ing.ItemID, ing.ItemName, ing.Quantity, held))
		}
	}

	if recipe.HasRareMaterial() {
		needed := 1
		for _, ing := range recipe.Ingredients {
			if ing.ItemID == *recipe.RareMaterialID {
				needed += ing.Quantity
			}
		}
		mc.MissingRareMaterial = inv.Quantity(*recipe.RareMaterialID) < needed
	}

	mc.HasTool = !recipe.RequiresTool() || holdsTool(inv, recipe.Tool)
	return mc
}

// holdsTool matches the required tool as a case-folded substring of any held item's name,
// so "Smith's Tools" is satisfied by "Dwarven Smith's Tools"
func holdsTool(inv domain.Inventory, tool string) bool {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(tool))
	for _, line := range inv {
		if line.Quantity > 0 && strings.Contains(fold.String(line.ItemName), want) {
			return true
		}
	}
	return false
}

func checkGrade(recipe *domain.Recipe, current domain.Grade) gradeCheck {
	required := recipe.RequiredGrade()
	gc := gradeCheck{
		Current:       current,
		Required:      required,
		Sufficient:    current.AtLeast(required),
		RarityAllowed: true,
	}
	if recipe.IsMagical {
		gc.RarityAllowed = current.CanCraftRarity(recipe.Rarity)
	}
	return gc
}

// Err returns the first failed inventory requirement in start order
func (mc materialCheck) Err(recipe *domain.Recipe) error {
	if len(mc.Missing) > 0 {
		return &domain.IngredientShortfallError{Shortfall: mc.Missing[0]}
	}
	if mc.MissingRareMaterial {
		return fmt.Errorf(ErrMsgMissingRareMaterialFmt, domain.ErrMissingRareMaterial, recipe.RareMaterialName)
	}
	if !mc.HasTool {
		return fmt.Errorf(ErrMsgMissingToolFmt, domain.ErrMissingTool, recipe.Tool)
	}
	return nil
}

// Err returns the grade failure, or the rarity gate for magical recipes
func (gc gradeCheck) Err(recipe *domain.Recipe) error {
	if !gc.Sufficient {
		return &domain.GradeRequirementError{Tool: recipe.Tool, Current: gc.Current, Required: gc.Required}
	}
	if !gc.RarityAllowed {
		return fmt.Errorf(ErrMsgRarityLockedFmt, domain.ErrRarityLocked, gc.Current, recipe.Rarity)
	}
	return nil
}

// rollCost is what a roll requires the character to hold before the die is drawn
func rollCost(recipe *domain.Recipe, grade domain.Grade) domain.Cost {
	if recipe.IsMagical {
		return recipe.MagicalCost()
	}
	return domain.Cost{Days: 1, Gold: grade.Info().GoldCost}
}

// checkAffordable reports a downtime shortfall before a gold one
func checkAffordable(character *domain.Character, cost domain.Cost) error {
	if character.Downtime < cost.Days {
		return domain.NewDowntimeShortfall(cost.Days, character.Downtime)
	}
	if character.Gold < cost.Gold {
		return domain.NewGoldShortfall(cost.Gold, character.Gold)
	}
	return nil
}
