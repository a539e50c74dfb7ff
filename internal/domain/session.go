package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionState is the lifecycle state of a crafting session
type SessionState string

const (
	SessionInProgress SessionState = "in_progress"
	SessionCompleted  SessionState = "completed"
	SessionPaused     SessionState = "paused"
)

// Valid reports whether s is a known state
func (s SessionState) Valid() bool {
	switch s {
	case SessionInProgress, SessionCompleted, SessionPaused:
		return true
	}
	return false
}

// ProgressSession is one attempt to craft a recipe
type ProgressSession struct {
	ID           uuid.UUID `json:"session_id"`
	CharacterID  int       `json:"character_id"`
	RecipeID     int       `json:"recipe_id"`
	CompetencyID int       `json:"competency_id"`
	// AccumulatedGold is mundane progress, an internal counter rather than cash
	AccumulatedGold      int          `json:"accumulated_gold"`
	AccumulatedSuccesses int          `json:"accumulated_successes"`
	RequiredSuccesses    int          `json:"required_successes"`
	DaysWorked           int          `json:"days_worked"`
	State                SessionState `json:"state"`
	StartedAt            time.Time    `json:"started_at"`
	CompletedAt          *time.Time   `json:"completed_at,omitempty"`
}

// NewProgressSession creates an in-progress session for the recipe
func NewProgressSession(characterID int, recipe *Recipe, competencyID int, now time.Time) *ProgressSession {
	return &ProgressSession{
		ID:                uuid.New(),
		CharacterID:       characterID,
		RecipeID:          recipe.ID,
		CompetencyID:      competencyID,
		RequiredSuccesses: recipe.RequiredSuccesses(),
		State:             SessionInProgress,
		StartedAt:         now,
	}
}

// IsCompleted reports whether the session reached its terminal state
func (s *ProgressSession) IsCompleted() bool {
	return s.State == SessionCompleted
}

// ThresholdMet reports whether accumulated progress meets the recipe's completion condition
func (s *ProgressSession) ThresholdMet(recipe *Recipe) bool {
	if recipe.IsMagical {
		return s.AccumulatedSuccesses >= s.RequiredSuccesses
	}
	return s.AccumulatedGold >= recipe.GoldThreshold()
}

// Percent returns completion progress in [0, 100]
func (s *ProgressSession) Percent(recipe *Recipe) float64 {
	var done, need int
	if recipe.IsMagical {
		done, need = s.AccumulatedSuccesses, s.RequiredSuccesses
	} else {
		done, need = s.AccumulatedGold, recipe.GoldThreshold()
	}
	if need <= 0 {
		return 100
	}
	p := float64(done) / float64(need) * 100
	if p > 100 {
		return 100
	}
	return p
}

// Complete moves the session to its terminal state
func (s *ProgressSession) Complete(now time.Time) {
	s.State = SessionCompleted
	s.CompletedAt = &now
}

// RollRecord is the append-only history entry of a single roll
type RollRecord struct {
	ID         int64     `json:"roll_id"`
	SessionID  uuid.UUID `json:"session_id"`
	Die        int       `json:"die"`
	Modifier   int       `json:"modifier"`
	Total      int       `json:"total"`
	DC         int       `json:"dc"`
	Success    bool      `json:"success"`
	GoldGained int       `json:"gold_gained"`
	GoldSpent  int       `json:"gold_spent"`
	DaysSpent  int       `json:"days_spent"`
	RolledAt   time.Time `json:"rolled_at"`
}
