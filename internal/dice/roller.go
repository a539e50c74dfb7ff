package dice

import (
	"errors"
	"fmt"
)

// D20 is the check die
const D20 = 20

// ErrInvalidDice is returned for a non-positive count or sides
var ErrInvalidDice = errors.New("invalid dice")

// Roller provides an interface for rolling dice.
// Services take a Roller so tests can inject scripted results.
type Roller interface {
	// Roll rolls count dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}

// RollResult holds the individual dice and the sum
type RollResult struct {
	Total    int   `json:"total"`
	Rolls    []int `json:"rolls"`
	Bonus    int   `json:"bonus"`
	Count    int   `json:"count"`
	Sides    int   `json:"sides"`
	RawTotal int   `json:"raw_total"`
	IsCrit   bool  `json:"is_crit"`
	IsFumble bool  `json:"is_fumble"`
}

// RollD20 draws one natural d20 result in [1, 20]
func RollD20(r Roller) (int, error) {
	res, err := r.Roll(1, D20, 0)
	if err != nil {
		return 0, err
	}
	return res.RawTotal, nil
}

func validate(count, sides int) error {
	if count < 1 || sides < 1 {
		return fmt.Errorf("%w: %dd%d", ErrInvalidDice, count, sides)
	}
	return nil
}

func newResult(rolls []int, sides, bonus int) *RollResult {
	raw := 0
	for _, r := range rolls {
		raw += r
	}
	res := &RollResult{
		Total:    raw + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    len(rolls),
		Sides:    sides,
		RawTotal: raw,
	}
	// Check for crit/fumble on d20
	if len(rolls) == 1 && sides == D20 {
		res.IsCrit = rolls[0] == D20
		res.IsFumble = rolls[0] == 1
	}
	return res
}
