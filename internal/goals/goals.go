// Package goals implements the draft goal-list editor. Edits apply to the
// session's transient draft; Save copies the draft into the session
// profile, and only an explicit profile save persists it to disk.
package goals

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/optifin/optifin/internal/models"
	"github.com/optifin/optifin/internal/session"
	"github.com/shopspring/decimal"
)

// ErrNegativeAmount is returned when an update carries an amount below zero.
var ErrNegativeAmount = errors.New("goal amount must not be negative")

// ErrGoalNotFound is returned when no goal has the given ID.
var ErrGoalNotFound = errors.New("goal not found")

// Fields carries the editable attributes of a goal.
type Fields struct {
	Name       string
	Amount     decimal.Decimal
	TargetDate time.Time
}

// Begin seeds the draft from the profile's saved goals if no draft exists
// yet, so editing always starts from the last saved state.
func Begin(s *session.State) {
	if s.DraftGoals != nil {
		return
	}
	s.DraftGoals = append([]models.Goal(nil), s.Profile.Goals...)
}

// Add appends a fresh goal with an empty name, zero amount, and a target
// date one year out, and returns it.
func Add(s *session.State) models.Goal {
	g := models.Goal{
		ID:         uuid.New(),
		Amount:     decimal.Zero,
		TargetDate: time.Now().AddDate(1, 0, 0),
	}
	s.DraftGoals = append(s.DraftGoals, g)
	return g
}

// Update replaces the fields of the goal with the given ID. Negative
// amounts are rejected and leave the goal unchanged.
func Update(s *session.State, id uuid.UUID, f Fields) error {
	if f.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	for i, g := range s.DraftGoals {
		if g.ID == id {
			s.DraftGoals[i] = models.Goal{
				ID:         id,
				Name:       f.Name,
				Amount:     f.Amount,
				TargetDate: f.TargetDate,
			}
			return nil
		}
	}
	return ErrGoalNotFound
}

// Remove deletes the goal with the given ID and reports whether it existed.
func Remove(s *session.State, id uuid.UUID) bool {
	for i, g := range s.DraftGoals {
		if g.ID == id {
			s.DraftGoals = append(s.DraftGoals[:i], s.DraftGoals[i+1:]...)
			return true
		}
	}
	return false
}

// Save copies the draft into the session profile. It does not write to the
// credential store; saved goals persist only for the session until the
// profile itself is saved.
func Save(s *session.State) {
	s.Profile.Goals = append([]models.Goal(nil), s.DraftGoals...)
}
