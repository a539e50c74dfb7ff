package dice

import "math/rand/v2"

// randomRoller draws uniformly distributed dice from the runtime's PRNG
type randomRoller struct{}

// NewRandomRoller creates a new random dice roller
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if err := validate(count, sides); err != nil {
		return nil, err
	}
	rolls := make([]int, count)
	for i := range rolls {
		rolls[i] = rand.IntN(sides) + 1
	}
	return newResult(rolls, sides, bonus), nil
}
