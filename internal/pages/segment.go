package pages

import (
	"fmt"

	"github.com/optifin/optifin/internal/models"
	"github.com/optifin/optifin/internal/router"
	"github.com/optifin/optifin/internal/session"
)

// SegmentHub lets the user pick a segment and is the routing fallback for
// unknown pages.
type SegmentHub struct{}

func (SegmentHub) ID() models.PageID { return models.PageSegmentHub }
func (SegmentHub) Title() string     { return "Welcome to OptiFin" }

func (SegmentHub) Render(s *session.State) map[string]any {
	return map[string]any{
		"segment": s.Segment,
		"options": []models.Segment{
			models.SegmentIndividual,
			models.SegmentHousehold,
			models.SegmentBusiness,
		},
		"loggedIn": s.LoggedIn,
	}
}

func (SegmentHub) Handle(s *session.State, ev router.Event) error {
	switch ev.Action {
	case "choose":
		segment := models.Segment(ev.Payload["segment"])
		if !models.ValidSegment(segment) {
			return fmt.Errorf("unknown segment %q", ev.Payload["segment"])
		}
		s.Segment = segment
		return nil
	default:
		return fmt.Errorf("unknown action %q", ev.Action)
	}
}
