package dice

import (
	"fmt"
	"sync"
)

// ScriptedRoller returns predetermined results, for tests
type ScriptedRoller struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
}

// NewScriptedRoller creates a roller that returns rolls in order
func NewScriptedRoller(rolls ...int) *ScriptedRoller {
	return &ScriptedRoller{rolls: append([]int(nil), rolls...)}
}

// SetNextRoll appends one roll to the script
func (m *ScriptedRoller) SetNextRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls replaces the script and rewinds it
func (m *ScriptedRoller) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append([]int(nil), rolls...)
	m.rollIndex = 0
}

// Used returns how many scripted rolls were consumed
func (m *ScriptedRoller) Used() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rollIndex
}

func (m *ScriptedRoller) getNextRoll() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex >= len(m.rolls) {
		return 0, fmt.Errorf("no more scripted rolls available (used %d of %d)", m.rollIndex, len(m.rolls))
	}
	roll := m.rolls[m.rollIndex]
	m.rollIndex++
	return roll, nil
}

// Roll implements Roller.Roll
func (m *ScriptedRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if err := validate(count, sides); err != nil {
		return nil, err
	}
	rolls := make([]int, count)
	for i := range rolls {
		roll, err := m.getNextRoll()
		if err != nil {
			return nil, err
		}
		if roll < 1 || roll > sides {
			return nil, fmt.Errorf("invalid roll %d for d%d", roll, sides)
		}
		rolls[i] = roll
	}
	return newResult(rolls, sides, bonus), nil
}
