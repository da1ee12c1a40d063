package pages

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/optifin/optifin/internal/goals"
	"github.com/optifin/optifin/internal/models"
	"github.com/optifin/optifin/internal/router"
	"github.com/optifin/optifin/internal/session"
	"github.com/shopspring/decimal"
)

// ProfileSaver persists a profile to the credential store.
type ProfileSaver interface {
	SaveProfile(username string, profile models.Profile) error
}

// Goals is the draft goal-list editor page. All edits address goals by
// their stable ID, never by list position.
type Goals struct {
	// Store persists profiles when the user explicitly asks for it.
	Store ProfileSaver
}

func (*Goals) ID() models.PageID { return models.PageGoals }
func (*Goals) Title() string     { return "Your goals" }

func (*Goals) Render(s *session.State) map[string]any {
	goals.Begin(s)
	return map[string]any{
		"goals":    s.DraftGoals,
		"saved":    len(s.Profile.Goals),
		"currency": s.Profile.Currency,
	}
}

func (p *Goals) Handle(s *session.State, ev router.Event) error {
	goals.Begin(s)

	switch ev.Action {
	case "add":
		goals.Add(s)
		return nil

	case "update":
		id, err := uuid.Parse(ev.Payload["id"])
		if err != nil {
			return fmt.Errorf("invalid goal id")
		}
		fields, err := parseGoalFields(ev.Payload)
		if err != nil {
			return err
		}
		return goals.Update(s, id, fields)

	case "remove":
		id, err := uuid.Parse(ev.Payload["id"])
		if err != nil {
			return fmt.Errorf("invalid goal id")
		}
		if !goals.Remove(s, id) {
			return goals.ErrGoalNotFound
		}
		return nil

	case "save":
		goals.Save(s)
		s.Notice = "goals saved for this session"
		return nil

	case "persist":
		if !s.LoggedIn {
			return fmt.Errorf("sign in to save your profile")
		}
		goals.Save(s)
		if err := p.Store.SaveProfile(s.Username, s.Profile); err != nil {
			return fmt.Errorf("could not save profile: %w", err)
		}
		s.Notice = "profile saved"
		return nil

	default:
		return fmt.Errorf("unknown action %q", ev.Action)
	}
}

// parseGoalFields converts submitted form values into editor fields.
func parseGoalFields(payload map[string]string) (goals.Fields, error) {
	amount, err := decimal.NewFromString(payload["amount"])
	if err != nil {
		return goals.Fields{}, fmt.Errorf("amount is not a number")
	}
	target, err := time.Parse("2006-01-02", payload["targetDate"])
	if err != nil {
		return goals.Fields{}, fmt.Errorf("target date must be YYYY-MM-DD")
	}
	return goals.Fields{
		Name:       payload["name"],
		Amount:     amount,
		TargetDate: target,
	}, nil
}
