package pages

import (
	"fmt"

	"github.com/optifin/optifin/internal/models"
	"github.com/optifin/optifin/internal/router"
	"github.com/optifin/optifin/internal/session"
)

// Upload shows the bank-statement upload surface. The statement bytes
// arrive over a dedicated multipart endpoint; this page reflects the
// parsed result held in the session.
type Upload struct{}

func (Upload) ID() models.PageID { return models.PageUpload }
func (Upload) Title() string     { return "Upload bank statement" }

func (Upload) Render(s *session.State) map[string]any {
	return map[string]any{
		"loaded":          len(s.Statement) > 0,
		"transactions":    len(s.Statement),
		"requiredColumns": []string{"date", "description", "amount"},
	}
}

func (Upload) Handle(s *session.State, ev router.Event) error {
	switch ev.Action {
	case "clear":
		s.Statement = nil
		s.Notice = "statement discarded"
		return nil
	default:
		return fmt.Errorf("unknown action %q", ev.Action)
	}
}
