package pages

import (
	"fmt"

	"github.com/optifin/optifin/internal/models"
	"github.com/optifin/optifin/internal/router"
	"github.com/optifin/optifin/internal/session"
	"github.com/optifin/optifin/internal/statement"
)

// Dashboard summarizes the uploaded statement and saved goals.
type Dashboard struct{}

func (Dashboard) ID() models.PageID { return models.PageDashboard }
func (Dashboard) Title() string     { return "Dashboard" }

func (Dashboard) Render(s *session.State) map[string]any {
	body := map[string]any{
		"currency":     s.Profile.Currency,
		"goals":        s.Profile.Goals,
		"hasStatement": len(s.Statement) > 0,
	}
	if len(s.Statement) > 0 {
		body["summary"] = statement.Summarize(s.Statement)
		body["transactions"] = len(s.Statement)
	}
	return body
}

func (Dashboard) Handle(s *session.State, ev router.Event) error {
	return fmt.Errorf("unknown action %q", ev.Action)
}
