package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/optifin/optifin/internal/advisor"
	"github.com/optifin/optifin/internal/models"
	"github.com/optifin/optifin/internal/router"
	"github.com/optifin/optifin/internal/session"
)

// Chat is the assistant page. Replies come from the advisor's templates.
type Chat struct{}

func (Chat) ID() models.PageID { return models.PageChat }
func (Chat) Title() string     { return "Assistant" }

func (Chat) Render(s *session.State) map[string]any {
	return map[string]any{
		"history": s.Chat,
	}
}

func (Chat) Handle(s *session.State, ev router.Event) error {
	switch ev.Action {
	case "send":
		text := strings.TrimSpace(ev.Payload["text"])
		if text == "" {
			return fmt.Errorf("message is empty")
		}
		now := time.Now()
		s.Chat = append(s.Chat, models.ChatMessage{Role: "user", Text: text, At: now})

		reply := advisor.Reply(text, advisor.Context{
			Username: s.Username,
			Segment:  s.Segment,
			Goals:    s.Profile.Goals,
			Currency: s.Profile.Currency,
		})
		s.Chat = append(s.Chat, models.ChatMessage{Role: "assistant", Text: reply, At: now})
		return nil

	case "clear":
		s.Chat = nil
		return nil

	default:
		return fmt.Errorf("unknown action %q", ev.Action)
	}
}
