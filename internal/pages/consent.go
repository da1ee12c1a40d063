// Package pages implements the page render functions and their action
// handlers. Each page reads and mutates the session state; the router
// decides which single page renders per cycle.
package pages

import (
	"fmt"

	"github.com/optifin/optifin/internal/models"
	"github.com/optifin/optifin/internal/router"
	"github.com/optifin/optifin/internal/session"
)

// policyText is the privacy notice shown at the consent gate.
const policyText = "OptiFin stores your profile and goals in a local credential file. " +
	"Uploaded statements stay in your session and are discarded when it ends. " +
	"Accept to continue."

// Consent is the mandatory privacy gate. It is the only page reachable
// before consent is accepted.
type Consent struct{}

func (Consent) ID() models.PageID { return models.PageConsent }
func (Consent) Title() string     { return "Privacy & Consent" }

func (Consent) Render(s *session.State) map[string]any {
	return map[string]any{
		"policy":   policyText,
		"accepted": s.ConsentAccepted,
	}
}

func (Consent) Handle(s *session.State, ev router.Event) error {
	switch ev.Action {
	case "accept":
		s.ConsentAccepted = true
		if s.LoggedIn {
			s.CurrentPage = models.PageSegmentHub
		} else {
			s.CurrentPage = models.PageLogin
		}
		return nil
	case "decline":
		return fmt.Errorf("consent is required to use the application")
	default:
		return fmt.Errorf("unknown action %q", ev.Action)
	}
}
